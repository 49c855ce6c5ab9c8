package experiment

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/routinglab/manet-compare/internal/measure"
	"github.com/routinglab/manet-compare/internal/report"
)

// SweepConfig drives a batch of runs over the parameter grid. Settings
// shared by all points live at the top level; each point overrides the
// three swept axes.
type SweepConfig struct {
	Protocol     string             `yaml:"protocol"`
	Sinks        int                `yaml:"sinks"`
	TxPower      float64            `yaml:"txPower"`
	Duration     float64            `yaml:"duration"`
	TrafficStart float64            `yaml:"trafficStart"`
	SummaryPath  string             `yaml:"summary"`
	CSVDir       string             `yaml:"csvDir"`
	Points       []measure.SweepKey `yaml:"points"`
}

// LoadSweep reads a sweep definition from YAML, fills defaults and
// validates every point.
func LoadSweep(path string) (*SweepConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc SweepConfig
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	sc.applyDefaults()
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// DefaultSweep is the stock comparison: all three axes around the
// baseline run.
func DefaultSweep() *SweepConfig {
	sc := &SweepConfig{Points: DefaultPoints()}
	sc.applyDefaults()
	return sc
}

// DefaultPoints covers the three axes of the comparison: node count at
// speed 20 and 4 packets/s, node speed at 50 nodes and 4 packets/s, and
// offered rate at 50 nodes and speed 20.
func DefaultPoints() []measure.SweepKey {
	return []measure.SweepKey{
		{Nodes: 20, NodeSpeed: 20, PacketsPerSec: 4},
		{Nodes: 40, NodeSpeed: 20, PacketsPerSec: 4},
		{Nodes: 70, NodeSpeed: 20, PacketsPerSec: 4},
		{Nodes: 100, NodeSpeed: 20, PacketsPerSec: 4},
		{Nodes: 50, NodeSpeed: 5, PacketsPerSec: 4},
		{Nodes: 50, NodeSpeed: 10, PacketsPerSec: 4},
		{Nodes: 50, NodeSpeed: 15, PacketsPerSec: 4},
		{Nodes: 50, NodeSpeed: 20, PacketsPerSec: 4},
		{Nodes: 50, NodeSpeed: 20, PacketsPerSec: 100},
		{Nodes: 50, NodeSpeed: 20, PacketsPerSec: 200},
		{Nodes: 50, NodeSpeed: 20, PacketsPerSec: 300},
		{Nodes: 50, NodeSpeed: 20, PacketsPerSec: 400},
	}
}

func (sc *SweepConfig) applyDefaults() {
	def := Default()
	if sc.Protocol == "" {
		sc.Protocol = def.Protocol
	}
	if sc.Sinks == 0 {
		sc.Sinks = def.Sinks
	}
	if sc.TxPower == 0 {
		sc.TxPower = def.TxPower
	}
	if sc.Duration == 0 {
		sc.Duration = def.Duration
	}
	if sc.TrafficStart == 0 {
		sc.TrafficStart = def.TrafficStart
	}
	if sc.SummaryPath == "" {
		sc.SummaryPath = def.SummaryPath
	}
	if sc.CSVDir == "" {
		sc.CSVDir = "."
	}
	if len(sc.Points) == 0 {
		sc.Points = DefaultPoints()
	}
}

// Validate checks the sweep as a whole by validating each expanded run.
func (sc *SweepConfig) Validate() error {
	if len(sc.Points) == 0 {
		return fmt.Errorf("sweep has no points")
	}
	for _, cfg := range sc.Runs() {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("point %dn/%dms/%dpps: %w", cfg.Nodes, cfg.NodeSpeed, cfg.PacketsPerSec, err)
		}
	}
	return nil
}

// Runs expands the points into full run configurations. Every point gets
// its own time series file under CSVDir; all points share the summary.
func (sc *SweepConfig) Runs() []Config {
	runs := make([]Config, 0, len(sc.Points))
	for _, p := range sc.Points {
		cfg := Default()
		cfg.Protocol = sc.Protocol
		cfg.Sinks = sc.Sinks
		cfg.TxPower = sc.TxPower
		cfg.Duration = sc.Duration
		cfg.TrafficStart = sc.TrafficStart
		cfg.SummaryPath = sc.SummaryPath
		cfg.Nodes = p.Nodes
		cfg.NodeSpeed = p.NodeSpeed
		cfg.PacketsPerSec = p.PacketsPerSec
		cfg.CSVPath = filepath.Join(sc.CSVDir, fmt.Sprintf("manet-%s-n%d-s%d-r%d.csv",
			strings.ToLower(sc.Protocol), p.Nodes, p.NodeSpeed, p.PacketsPerSec))
		runs = append(runs, cfg)
	}
	return runs
}

// RunSweep resets the summary once, then executes every point in order.
// The first failed point aborts the sweep.
func RunSweep(sc *SweepConfig, extra ...measure.SampleWriter) error {
	if err := report.NewSweepFile(sc.SummaryPath).Reset(); err != nil {
		return err
	}
	runs := sc.Runs()
	for i, cfg := range runs {
		log.Infof("sweep point %d/%d: %d nodes, speed %d, %d packets/s",
			i+1, len(runs), cfg.Nodes, cfg.NodeSpeed, cfg.PacketsPerSec)
		if _, err := NewRunner(cfg, extra...).Run(); err != nil {
			return err
		}
	}
	return nil
}
