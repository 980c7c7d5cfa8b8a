package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/robinrobin1706/space-biology/internal/pushclient"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the push channel of a running server",
	Long: `Connect to a server's WebSocket channel and print every event as one
JSON line. Dropped connections are retried with exponential backoff.

Examples:
  spacebio watch
  spacebio watch --url ws://catalog:8080/ws --experiment RadGene`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

var (
	watchURL         string
	watchExperiments []string
	watchRetries     uint64
)

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchURL, "url", "ws://localhost:8080/ws", "WebSocket endpoint")
	watchCmd.Flags().StringSliceVarP(&watchExperiments, "experiment", "e", nil, "Experiment codes to subscribe to")
	watchCmd.Flags().Uint64Var(&watchRetries, "retries", pushclient.DefaultMaxRetries, "Reconnection attempts before giving up (at least 1)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchRetries == 0 {
		return fmt.Errorf("--retries must be at least 1")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := pushclient.New(pushclient.Config{
		URL:        watchURL,
		Subscribe:  watchExperiments,
		MaxRetries: watchRetries,
	}, newLogger(os.Stderr, levelFromEnv(), false))

	enc := json.NewEncoder(cmd.OutOrStdout())
	return client.Run(ctx, func(ev pushclient.Event) {
		if err := enc.Encode(ev); err != nil {
			cmd.PrintErrln(err)
		}
	})
}
