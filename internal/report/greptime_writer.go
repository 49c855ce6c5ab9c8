package report

import (
	"context"
	"net"
	"strconv"
	"time"

	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	ingesterContext "github.com/GreptimeTeam/greptimedb-ingester-go/context"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"
	log "github.com/sirupsen/logrus"

	"github.com/routinglab/manet-compare/internal/measure"
)

// GreptimeDBWriter mirrors the sample time series into GreptimeDB via the
// ingester client. Simulation seconds are mapped onto wall time relative to
// the writer's creation instant so rows keep their virtual-time order.
type GreptimeDBWriter struct {
	client *greptime.Client
	db     string
	table  string
	runID  string
	base   time.Time
}

// NewGreptimeDBWriter connects to the given endpoint and auto-creates the
// sample table if needed. The ingester protocol has no SQL channel, so the
// table (with its 30d TTL) is created server-side on first write via the
// ttl ingest hint rather than an explicit DDL statement.
func NewGreptimeDBWriter(endpoint, database, runID string) (*GreptimeDBWriter, error) {
	cfg := greptime.NewConfig(endpoint)
	if host, portStr, err := net.SplitHostPort(endpoint); err == nil {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, err
		}
		cfg = greptime.NewConfig(host).WithPort(port)
	}
	cfg.WithDatabase(database)

	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	return &GreptimeDBWriter{
		client: client,
		db:     database,
		table:  "manet_samples",
		runID:  runID,
		base:   time.Now(),
	}, nil
}

func (w *GreptimeDBWriter) WriteSample(r measure.SampleRow) error {
	ctx := ingesterContext.New(context.Background(),
		ingesterContext.WithHint([]*ingesterContext.Hint{{Key: "ttl", Value: "30d"}}))

	tbl, err := table.New(w.table)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("run_id", types.STRING)
	tbl.AddTagColumn("protocol", types.STRING)
	tbl.AddFieldColumn("sim_second", types.FLOAT64)
	tbl.AddFieldColumn("rate_kbps", types.FLOAT64)
	tbl.AddFieldColumn("packets", types.FLOAT64)
	tbl.AddFieldColumn("sinks", types.FLOAT64)
	tbl.AddFieldColumn("tx_power", types.FLOAT64)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	if err := tbl.AddRow(
		w.runID,
		r.Protocol,
		r.Second,
		r.RateKbps,
		float64(r.Packets),
		float64(r.Sinks),
		r.TxPower,
		w.base.Add(time.Duration(r.Second*float64(time.Second))),
	); err != nil {
		return err
	}

	if _, err := w.client.Write(ctx, tbl); err != nil {
		log.Warnf("[GreptimeDBWriter] write failed: %v", err)
		return err
	}
	return nil
}

func (w *GreptimeDBWriter) Close() error { return nil }
