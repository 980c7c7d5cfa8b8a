package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "spacebio",
	Short: "NASA space-biology experiment catalogue",
	Long: `spacebio serves a catalogue of NASA space-biology experiments.

It stores experiments, measurements, papers and analytics snapshots, enriches
experiments with heuristic text analysis and outcome predictions, and pushes
newly arrived measurements to WebSocket clients.

Configuration is read from SPACEBIO_* environment variables.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
