package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTraceWriterRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manet-routing-compare.mob")
	w, err := NewTraceWriter(path)
	require.NoError(t, err)

	w.WriteRow(TraceRow{Second: 0, Node: 0, X: 12.5, Y: 740, Speed: 3.2})
	w.WriteRow(TraceRow{Second: 1, Node: 0, X: 15.7, Y: 741.1, Speed: 3.2})
	require.NoError(t, w.Close())

	lines := readLines(t, path)
	require.Equal(t, "time,node,x,y,speed", lines[0])
	require.Equal(t, "0,0,12.5,740,3.2", lines[1])
	require.Equal(t, "1,0,15.7,741.1,3.2", lines[2])
}
