package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/routinglab/manet-compare/internal/measure"
)

// CSVSampleWriter appends throughput samples to a CSV time series. The file
// is truncated and given its header once, at construction; every row is then
// written through a fresh append-mode handle, so a crash mid-run leaves at
// most one partial row behind.
type CSVSampleWriter struct {
	path string
}

func NewCSVSampleWriter(path string) (*CSVSampleWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)

	hdr := []string{
		"SimulationSecond",
		"ReceiveRate",
		"PacketsReceived",
		"NumberOfSinks",
		"RoutingProtocol",
		"TransmissionPower",
	}
	if err := w.Write(hdr); err != nil {
		_ = f.Close()
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	return &CSVSampleWriter{path: path}, nil
}

func (c *CSVSampleWriter) Path() string { return c.path }

func (c *CSVSampleWriter) WriteSample(r measure.SampleRow) error {
	f, err := os.OpenFile(c.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)

	row := []string{
		fg(r.Second),
		fg(r.RateKbps),
		strconv.FormatInt(r.Packets, 10),
		strconv.Itoa(r.Sinks),
		r.Protocol,
		fg(r.TxPower),
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

// Close is a no-op; no handle survives between rows.
func (c *CSVSampleWriter) Close() error { return nil }

func fg(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
