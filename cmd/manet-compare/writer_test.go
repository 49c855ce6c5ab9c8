package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/routinglab/manet-compare/internal/report"
)

func TestExtraWritersDefault(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "")
	ws, cleanup, err := extraWriters(false)
	require.NoError(t, err)
	defer cleanup()
	require.Empty(t, ws)
}

func TestExtraWritersPrintSamples(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "")
	ws, cleanup, err := extraWriters(true)
	require.NoError(t, err)
	defer cleanup()
	require.Len(t, ws, 1)
	_, ok := ws[0].(*report.StdoutWriter)
	require.True(t, ok)
}
