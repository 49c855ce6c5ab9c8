package report

import (
	"encoding/csv"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/routinglab/manet-compare/internal/measure"

	log "github.com/sirupsen/logrus"
)

// HeaderPolicy controls how Prepare initializes the shared summary file
// before a run appends its row.
type HeaderPolicy int

const (
	// HeaderEnsure creates the file with a header when it is missing or
	// empty, and never touches existing rows.
	HeaderEnsure HeaderPolicy = iota
	// HeaderResetOnFirstKey truncates the file whenever the run's key
	// matches one of the configured first-of-sweep tuples and otherwise
	// appends blind. Fragile: a recurring tuple wipes accumulated rows,
	// and a sweep that never starts on a listed tuple gets no header.
	HeaderResetOnFirstKey
)

// DefaultFirstKeys are the sweep starting points the reset-on-first-key
// policy recognizes.
var DefaultFirstKeys = []measure.SweepKey{
	{Nodes: 20, NodeSpeed: 20, PacketsPerSec: 4},
	{Nodes: 50, NodeSpeed: 5, PacketsPerSec: 4},
	{Nodes: 50, NodeSpeed: 20, PacketsPerSec: 100},
}

var summaryHeader = []string{
	"nWifis",
	"nodeSpeed",
	"packet_per_sec",
	"packet_delivery_ratio",
	"packet_drop_ratio",
	"avg_delay",
	"throughput",
}

// SweepFile manages the summary CSV shared by all runs of a parameter
// sweep. Each run appends exactly one row.
type SweepFile struct {
	path      string
	policy    HeaderPolicy
	firstKeys []measure.SweepKey
}

func NewSweepFile(path string) *SweepFile {
	return &SweepFile{path: path, policy: HeaderEnsure}
}

// UseResetOnFirstKey switches the file to the reset-on-first-key policy.
// With no keys given, DefaultFirstKeys apply.
func (s *SweepFile) UseResetOnFirstKey(keys ...measure.SweepKey) *SweepFile {
	s.policy = HeaderResetOnFirstKey
	if len(keys) == 0 {
		keys = DefaultFirstKeys
	}
	s.firstKeys = keys
	return s
}

func (s *SweepFile) Path() string { return s.path }

// Prepare applies the header policy for a run with the given key. Call once
// per run, before Append.
func (s *SweepFile) Prepare(key measure.SweepKey) error {
	switch s.policy {
	case HeaderResetOnFirstKey:
		for _, k := range s.firstKeys {
			if k == key {
				log.Debugf("[SweepFile] %s reset for first-of-sweep key %+v", s.path, key)
				return s.Reset()
			}
		}
		return nil
	default:
		return s.EnsureHeader()
	}
}

// EnsureHeader writes the header only when the file is missing or empty.
// Idempotent; existing rows survive.
func (s *SweepFile) EnsureHeader() error {
	fi, err := os.Stat(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return s.Reset()
	case err != nil:
		return err
	case fi.Size() == 0:
		return s.Reset()
	}
	return nil
}

// Reset truncates the file and rewrites the header, discarding prior rows.
func (s *SweepFile) Reset() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(summaryHeader); err != nil {
		_ = f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Append opens the file in append mode, writes one result row, and closes
// the handle. No retries; the caller decides what a failure aborts.
func (s *SweepFile) Append(res measure.AggregateResult) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)

	row := []string{
		strconv.Itoa(res.Nodes),
		strconv.Itoa(res.NodeSpeed),
		strconv.Itoa(res.PacketsPerSec),
		fg(res.DeliveryRatio),
		fg(res.DropRatio),
		fg(res.AvgDelaySeconds),
		fg(res.ThroughputKbps),
	}
	if err := w.Write(row); err != nil {
		_ = f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
