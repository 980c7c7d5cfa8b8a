package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/robinrobin1706/space-biology/internal/catalog"
	"github.com/robinrobin1706/space-biology/internal/domain"
	"github.com/robinrobin1706/space-biology/internal/util"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "List experiments matching a filter",
	Long: `List stored experiments, filtered by category, mission and a free-text
query over title, description and organism.

Examples:
  spacebio search
  spacebio search stem --category "Cell Biology"
  spacebio search --mission Mars`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

var (
	searchCategory string
	searchMission  string
	searchLimit    int
)

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVarP(&searchCategory, "category", "c", "", "Research category")
	searchCmd.Flags().StringVarP(&searchMission, "mission", "m", "", "Mission keyword matched against the impact statement")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 50, "Maximum number of experiments")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var query string
	if len(args) == 1 {
		query = args[0]
	}
	spec, err := catalog.ParseSpec(searchCategory, searchMission, query, catalog.BackendFields)
	if err != nil {
		return err
	}

	app, err := NewAppContext(ctx, newLogger(os.Stderr, levelFromEnv(), false))
	if err != nil {
		return err
	}
	defer app.Close(ctx)

	records, err := app.Store.Experiments.List(ctx, spec, searchLimit)
	if err != nil {
		return fmt.Errorf("failed to list experiments: %w", err)
	}
	renderExperiments(cmd, catalog.Filter(records, spec))
	return nil
}

func renderExperiments(cmd *cobra.Command, experiments []domain.Experiment) {
	out := cmd.OutOrStdout()
	if len(experiments) == 0 {
		fmt.Fprintln(out, "No experiments found.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tTITLE\tCATEGORY\tDURATION\tSUCCESS\tCREATED")
	for _, e := range experiments {
		success := "-"
		if e.Analysis != nil && e.Analysis.Prediction != nil {
			success = util.FormatPercent(e.Analysis.Prediction.SuccessProbability)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Code,
			truncate(e.Title, 40),
			e.Category,
			e.Duration(),
			success,
			util.FormatDateHuman(e.CreatedAt),
		)
	}
	w.Flush()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
