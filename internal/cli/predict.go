package cli

import (
	"github.com/spf13/cobra"

	"github.com/robinrobin1706/space-biology/internal/analysis"
	"github.com/robinrobin1706/space-biology/internal/domain"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Estimate the success probability of an experiment",
	Long: `Run the outcome predictor on the given attributes.

Examples:
  spacebio predict --duration "133 days" --category "Cell Biology" --organism "Human cells"
  spacebio predict --duration 30`,
	Args: cobra.NoArgs,
	RunE: runPredict,
}

var (
	predictDuration string
	predictCategory string
	predictOrganism string
)

func init() {
	rootCmd.AddCommand(predictCmd)
	predictCmd.Flags().StringVar(&predictDuration, "duration", "", "Duration, e.g. \"90 days\" or 90")
	predictCmd.Flags().StringVar(&predictCategory, "category", "", "Research category")
	predictCmd.Flags().StringVar(&predictOrganism, "organism", "", "Studied organism")
	_ = predictCmd.MarkFlagRequired("duration")
}

func runPredict(cmd *cobra.Command, args []string) error {
	days, err := domain.ParseDuration(predictDuration)
	if err != nil {
		return err
	}
	in := analysis.PredictionInput{DurationDays: days, Organism: predictOrganism}
	if predictCategory != "" {
		if in.Category, err = domain.ParseCategory(predictCategory); err != nil {
			return err
		}
	}
	return printJSON(cmd.OutOrStdout(), analysis.PredictOutcome(in))
}
