package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robinrobin1706/space-biology/internal/analysis"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text...]",
	Short: "Score text for sentiment, complexity and keywords",
	Long: `Run the text analyzer on the arguments, or on stdin when none are given.

Examples:
  spacebio analyze "Plants thrive in microgravity"
  cat abstract.txt | spacebio analyze`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if len(args) == 0 {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(b)
	}
	return printJSON(cmd.OutOrStdout(), analysis.AnalyzeText(text))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
