// Package experiment wires the ad hoc network model, the measurement
// chain and the report writers into complete runs and parameter sweeps.
package experiment

import (
	"fmt"
	"time"

	"github.com/routinglab/manet-compare/internal/adhoc"
	"github.com/routinglab/manet-compare/internal/measure"
)

// Config is the full surface of one run. Zero values are not usable;
// start from Default and override.
type Config struct {
	Protocol      string
	Nodes         int
	NodeSpeed     int // max random-waypoint speed, m/s
	PacketsPerSec int
	Sinks         int
	TxPower       float64 // dBm, stamped onto every sample row
	Duration      float64 // simulated seconds
	TrafficStart  float64 // seconds before the sources come up
	Port          int

	CSVPath     string
	SummaryPath string

	FlowMonitor   bool
	TraceMobility bool
	TracePath     string

	// ResetSummaryOnFirstKey restores the old summary header behavior:
	// instead of writing the header only when the file is missing or
	// empty, the summary is truncated whenever one of the well-known
	// first sweep points comes around. Only useful for reproducing old
	// sweep outputs.
	ResetSummaryOnFirstKey bool
}

// Default mirrors the baseline comparison run.
func Default() Config {
	return Config{
		Protocol:      "AODV",
		Nodes:         50,
		NodeSpeed:     5,
		PacketsPerSec: 100,
		Sinks:         10,
		TxPower:       7.5,
		Duration:      200,
		TrafficStart:  100,
		Port:          9,
		CSVPath:       "manet-routing.output.csv",
		SummaryPath:   "manet-routing.summary.csv",
		TracePath:     "manet-routing-compare.mob",
		FlowMonitor:   true,
	}
}

// Validate rejects configurations that cannot run. It is called before
// any file is touched, so a bad config leaves no output behind.
func (c Config) Validate() error {
	if _, ok := adhoc.ProfileFor(c.Protocol); !ok {
		return fmt.Errorf("no such protocol: %q", c.Protocol)
	}
	if c.Protocol == "DSR" && c.FlowMonitor {
		return fmt.Errorf("flow monitoring does not work with DSR")
	}
	// Node addresses are drawn from a single /24.
	if c.Nodes < 2 || c.Nodes > 254 {
		return fmt.Errorf("node count must be in 2..254, got %d", c.Nodes)
	}
	if c.Sinks < 1 {
		return fmt.Errorf("need at least one sink, got %d", c.Sinks)
	}
	if pairs := c.Nodes / 2; pairs+c.Sinks > c.Nodes {
		return fmt.Errorf("%d pairs plus %d sinks exceed %d nodes", pairs, c.Sinks, c.Nodes)
	}
	if c.NodeSpeed < 0 {
		return fmt.Errorf("node speed must not be negative, got %d", c.NodeSpeed)
	}
	if c.PacketsPerSec <= 0 {
		return fmt.Errorf("packet rate must be positive, got %d", c.PacketsPerSec)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %gs", c.Duration)
	}
	if c.TrafficStart < 0 || c.TrafficStart >= c.Duration {
		return fmt.Errorf("traffic start %gs must fall inside the %gs run", c.TrafficStart, c.Duration)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.CSVPath == "" {
		return fmt.Errorf("time series path is empty")
	}
	if c.FlowMonitor && c.SummaryPath == "" {
		return fmt.Errorf("summary path is empty with flow monitoring on")
	}
	if c.TraceMobility && c.TracePath == "" {
		return fmt.Errorf("mobility trace path is empty")
	}
	return nil
}

// Key is the sweep coordinate this run contributes a summary row for.
func (c Config) Key() measure.SweepKey {
	return measure.SweepKey{Nodes: c.Nodes, NodeSpeed: c.NodeSpeed, PacketsPerSec: c.PacketsPerSec}
}

// Window is the measured part of the run: traffic start to end.
func (c Config) Window() measure.Window {
	return measure.Window{Start: dur(c.TrafficStart), End: dur(c.Duration)}
}

func dur(sec float64) time.Duration { return time.Duration(sec * float64(time.Second)) }
