package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/routinglab/manet-compare/internal/measure"
)

// StdoutWriter prints each sample as one JSON line, for piping a live run
// into other tooling.
type StdoutWriter struct {
	out io.Writer
}

func NewStdoutWriter() *StdoutWriter {
	return &StdoutWriter{out: os.Stdout}
}

func (w *StdoutWriter) WriteSample(r measure.SampleRow) error {
	data, _ := json.Marshal(r)
	fmt.Fprintln(w.out, string(data))
	return nil
}

func (w *StdoutWriter) Close() error { return nil }
