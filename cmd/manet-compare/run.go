package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/routinglab/manet-compare/internal/experiment"
)

var (
	runCfg          = experiment.Default()
	runPrintSamples bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single experiment",
	Long: "run simulates one ad hoc network and writes the per-second receive rate " +
		"series plus, with flow monitoring on, one summary row.",
	RunE: func(cmd *cobra.Command, args []string) error {
		extra, cleanup, err := extraWriters(runPrintSamples)
		if err != nil {
			return err
		}
		defer cleanup()

		res, err := experiment.NewRunner(runCfg, extra...).Run()
		if err != nil {
			return err
		}
		log.Infof("wrote %d sample rows to %s", res.Rows, runCfg.CSVPath)
		return nil
	},
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runCfg.Protocol, "protocol", runCfg.Protocol, "Routing protocol (OLSR, AODV, DSDV, DSR)")
	f.IntVar(&runCfg.Nodes, "nodes", runCfg.Nodes, "Number of nodes")
	f.IntVar(&runCfg.NodeSpeed, "speed", runCfg.NodeSpeed, "Max node speed in m/s")
	f.IntVar(&runCfg.PacketsPerSec, "rate", runCfg.PacketsPerSec, "Packets per second per flow")
	f.IntVar(&runCfg.Sinks, "sinks", runCfg.Sinks, "Number of sink nodes")
	f.Float64Var(&runCfg.TxPower, "tx-power", runCfg.TxPower, "Transmission power in dBm, recorded in the output")
	f.Float64Var(&runCfg.Duration, "duration", runCfg.Duration, "Simulated seconds")
	f.Float64Var(&runCfg.TrafficStart, "traffic-start", runCfg.TrafficStart, "Seconds before the sources come up")
	f.IntVar(&runCfg.Port, "port", runCfg.Port, "Sink UDP port")
	f.StringVar(&runCfg.CSVPath, "csv", runCfg.CSVPath, "Time series output file")
	f.StringVar(&runCfg.SummaryPath, "summary", runCfg.SummaryPath, "Summary output file")
	f.BoolVar(&runCfg.FlowMonitor, "flow-monitor", runCfg.FlowMonitor, "Collect per-flow statistics")
	f.BoolVar(&runCfg.TraceMobility, "trace-mobility", runCfg.TraceMobility, "Write a mobility trace")
	f.StringVar(&runCfg.TracePath, "trace", runCfg.TracePath, "Mobility trace output file")
	f.BoolVar(&runCfg.ResetSummaryOnFirstKey, "reset-summary-on-first-key", false,
		"Old summary header behavior: truncate when a well-known first sweep point recurs")
	f.BoolVar(&runPrintSamples, "print-samples", false, "Mirror sample rows to stdout as JSON")
}
