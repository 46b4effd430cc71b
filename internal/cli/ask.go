package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a one-off question about the pipeline data",
	Long: `Ask a single question about the CI/CD pipeline execution history.

The pipeline dataset is loaded from Athena on first use, summarized, and
the summary grounds the model's answer.

Examples:
  pipeline-chat ask "Which pipeline failed most often?"
  pipeline-chat ask "When did the latest execution start?"`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ds, err := loadDataset(ctx)
	if err != nil {
		return err
	}
	a, err := getAnalyst(ctx)
	if err != nil {
		return err
	}

	fmt.Println(a.Ask(ctx, args[0], ds))
	return nil
}
