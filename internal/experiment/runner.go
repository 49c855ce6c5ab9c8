package experiment

import (
	"github.com/google/uuid"
	"github.com/iti/evt/evtm"
	log "github.com/sirupsen/logrus"

	"github.com/routinglab/manet-compare/internal/adhoc"
	"github.com/routinglab/manet-compare/internal/measure"
	"github.com/routinglab/manet-compare/internal/report"
)

// FlowCollector hands over per-flow statistics once the run phase ends.
type FlowCollector interface {
	Collect() ([]measure.FlowRecord, error)
}

// Result summarizes one finished run. Aggregate is nil when flow
// monitoring is off or collection failed.
type Result struct {
	RunID     string
	Rows      int64
	Flows     int
	Aggregate *measure.AggregateResult
}

// Runner executes one configured run: simulate, then report.
type Runner struct {
	cfg   Config
	extra []measure.SampleWriter
}

// NewRunner builds a runner. Extra writers receive every sample row in
// addition to the time series CSV.
func NewRunner(cfg Config, extra ...measure.SampleWriter) *Runner {
	return &Runner{cfg: cfg, extra: extra}
}

// Run drives the whole experiment. The time series CSV is truncated and
// seeded up front, the simulation fills it one row per second, and the
// reporting phase appends the summary row afterwards. A partially failed
// chain still returns the counters accumulated so far.
func (r *Runner) Run() (Result, error) {
	cfg := r.cfg
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	res := Result{RunID: uuid.NewString()}
	log.Infof("run %s: %s, %d nodes, max speed %d m/s, %d packets/s",
		res.RunID, cfg.Protocol, cfg.Nodes, cfg.NodeSpeed, cfg.PacketsPerSec)

	csvw, err := report.NewCSVSampleWriter(cfg.CSVPath)
	if err != nil {
		return res, err
	}
	out := measure.SampleWriter(csvw)
	if len(r.extra) > 0 {
		out = report.NewMultiWriter(append([]measure.SampleWriter{csvw}, r.extra...)...)
	}
	defer func() { _ = out.Close() }()

	acct := measure.NewAccountant()
	network, err := adhoc.NewNetwork(adhoc.Spec{
		Nodes:         cfg.Nodes,
		Sinks:         cfg.Sinks,
		MaxSpeed:      float64(cfg.NodeSpeed),
		PacketsPerSec: cfg.PacketsPerSec,
		Protocol:      cfg.Protocol,
		Duration:      cfg.Duration,
		TrafficStart:  cfg.TrafficStart,
		Port:          cfg.Port,
	}, acct.OnArrival)
	if err != nil {
		return res, err
	}

	sampler := measure.NewSampler(measure.SamplerSpec{
		Until:    cfg.Duration,
		Sinks:    cfg.Sinks,
		Protocol: cfg.Protocol,
		TxPower:  cfg.TxPower,
	}, acct, out)

	evtMgr := evtm.New()
	sampler.Arm(evtMgr)
	network.Arm(evtMgr)
	evtMgr.Run(cfg.Duration)

	res.Rows = sampler.Rows()
	res.Flows = network.Flows()
	log.Infof("run %s done: %d sample rows over %d flows", res.RunID, res.Rows, res.Flows)

	if cfg.TraceMobility {
		if err := writeTrace(cfg.TracePath, network.Mobility(), cfg.Duration); err != nil {
			return res, err
		}
	}

	var reportErr error
	if cfg.FlowMonitor {
		res.Aggregate, reportErr = r.reportPhase(network.Monitor(), cfg.Key(), cfg.Window())
	}
	if reportErr == nil {
		reportErr = sampler.Err()
	}
	return res, reportErr
}

// reportPhase aggregates the collected flow statistics and appends the
// summary row. A collection failure only loses the summary; the time
// series written during the run stays valid, so the failure is logged
// and swallowed rather than returned.
func (r *Runner) reportPhase(col FlowCollector, key measure.SweepKey, w measure.Window) (*measure.AggregateResult, error) {
	records, err := col.Collect()
	if err != nil {
		log.Errorf("flow collection failed, skipping summary: %v", err)
		return nil, nil
	}
	agg := measure.Reduce(key, records, w)

	sweep := report.NewSweepFile(r.cfg.SummaryPath)
	if r.cfg.ResetSummaryOnFirstKey {
		sweep.UseResetOnFirstKey()
	}
	if err := sweep.Prepare(key); err != nil {
		return &agg, err
	}
	if err := sweep.Append(agg); err != nil {
		return &agg, err
	}
	log.Infof("summary: delivery %.3f, drop %.3f, delay %.4fs, throughput %.3f kbps",
		agg.DeliveryRatio, agg.DropRatio, agg.AvgDelaySeconds, agg.ThroughputKbps)
	return &agg, nil
}

// writeTrace samples every node's position once per simulated second.
// Waypoint legs are fixed before the run starts, so sampling them after
// the fact reproduces the motion exactly.
func writeTrace(path string, mob *adhoc.Mobility, duration float64) error {
	tw, err := report.NewTraceWriter(path)
	if err != nil {
		return err
	}
	for t := 0.0; t < duration; t++ {
		for n := 0; n < mob.Nodes(); n++ {
			p := mob.PositionAt(n, t)
			tw.WriteRow(report.TraceRow{Second: t, Node: n, X: p.X, Y: p.Y, Speed: mob.SpeedAt(n, t)})
		}
	}
	return tw.Close()
}
