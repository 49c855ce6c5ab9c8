package main

import (
	"os"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/routinglab/manet-compare/internal/measure"
	"github.com/routinglab/manet-compare/internal/report"
)

// extraWriters assembles the sample writers that run beside the time
// series CSV, based on flags and environment. GREPTIMEDB_ENDPOINT turns
// on database export, tagged with a fresh id for this invocation;
// --print-samples mirrors rows to stdout.
func extraWriters(printSamples bool) ([]measure.SampleWriter, func(), error) {
	var ws []measure.SampleWriter
	cleanup := func() {}

	if printSamples {
		ws = append(ws, report.NewStdoutWriter())
	}
	if endpoint := os.Getenv("GREPTIMEDB_ENDPOINT"); endpoint != "" {
		db := os.Getenv("GREPTIMEDB_DATABASE")
		if db == "" {
			db = "public"
		}
		w, err := report.NewGreptimeDBWriter(endpoint, db, uuid.NewString())
		if err != nil {
			return nil, nil, err
		}
		log.Infof("exporting samples to GreptimeDB at %s", endpoint)
		ws = append(ws, w)
		cleanup = func() { _ = w.Close() }
	}
	return ws, cleanup, nil
}
