package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/robinrobin1706/space-biology/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the bundled catalogue into an empty store",
	Long: `Insert the bundled experiments and papers.

Each collection is only seeded while it is empty, so running the command
twice is harmless.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := newLogger(os.Stderr, levelFromEnv(), false)

	app, err := NewAppContext(ctx, logger)
	if err != nil {
		return err
	}
	defer app.Close(ctx)

	catalogue, err := seed.Load()
	if err != nil {
		return err
	}
	res, err := seed.Apply(ctx, app.Store, catalogue, timeNow(), logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d experiments and %d papers\n", res.Experiments, res.Papers)
	return nil
}
