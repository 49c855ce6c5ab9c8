package main

import (
	"github.com/spf13/cobra"

	"github.com/routinglab/manet-compare/internal/experiment"
)

var (
	sweepConfigPath   string
	sweepPrintSamples bool
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the full parameter sweep",
	Long: "sweep executes a batch of runs over the parameter grid, resetting the " +
		"shared summary file once at the start.",
	RunE: func(cmd *cobra.Command, args []string) error {
		sc := experiment.DefaultSweep()
		if sweepConfigPath != "" {
			var err error
			sc, err = experiment.LoadSweep(sweepConfigPath)
			if err != nil {
				return err
			}
		}

		extra, cleanup, err := extraWriters(sweepPrintSamples)
		if err != nil {
			return err
		}
		defer cleanup()

		return experiment.RunSweep(sc, extra...)
	},
}

func init() {
	sweepCmd.Flags().StringVar(&sweepConfigPath, "config", "", "Sweep definition YAML (default: built-in grid)")
	sweepCmd.Flags().BoolVar(&sweepPrintSamples, "print-samples", false, "Mirror sample rows to stdout as JSON")
}
