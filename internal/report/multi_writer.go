package report

import "github.com/routinglab/manet-compare/internal/measure"

// MultiWriter fans samples out to several writers. A failing writer does not
// stop the others; the first error is reported.
type MultiWriter struct {
	ws []measure.SampleWriter
}

func NewMultiWriter(ws ...measure.SampleWriter) *MultiWriter {
	out := &MultiWriter{ws: make([]measure.SampleWriter, 0, len(ws))}
	for _, w := range ws {
		if w != nil {
			out.ws = append(out.ws, w)
		}
	}
	return out
}

func (m *MultiWriter) WriteSample(r measure.SampleRow) error {
	var firstErr error
	for _, w := range m.ws {
		if err := w.WriteSample(r); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m *MultiWriter) Close() error {
	var firstErr error
	for _, w := range m.ws {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
