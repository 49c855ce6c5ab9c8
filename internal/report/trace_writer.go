package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
)

// TraceRow is one mobility trace record: where a node was and how fast it
// moved at a given simulated second.
type TraceRow struct {
	Second float64
	Node   int
	X, Y   float64
	Speed  float64
}

// TraceWriter records mobility trace rows. Unlike the sample writer it keeps
// its handle open; traces run to nodes-times-seconds rows and are flushed
// once on Close.
type TraceWriter struct {
	f *os.File
	w *csv.Writer
}

func NewTraceWriter(path string) (*TraceWriter, error) {
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

	if err := w.Write([]string{"time", "node", "x", "y", "speed"}); err != nil {
		_ = f.Close()
		return nil, err
	}

	return &TraceWriter{f: f, w: w}, nil
}

func (t *TraceWriter) WriteRow(r TraceRow) {
	_ = t.w.Write([]string{
		fg(r.Second),
		strconv.Itoa(r.Node),
		fg(r.X),
		fg(r.Y),
		fg(r.Speed),
	})
}

func (t *TraceWriter) Close() error {
	t.w.Flush()
	if err := t.w.Error(); err != nil {
		_ = t.f.Close()
		return err
	}
	return t.f.Close()
}
