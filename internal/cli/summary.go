package cli

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the aggregate pipeline digest",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}
	s := ds.Summary
	states, _ := json.Marshal(s.States)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Total events", strconv.Itoa(s.TotalEvents)})
	table.Append([]string{"Unique pipelines", strconv.Itoa(s.UniquePipelines)})
	table.Append([]string{"Unique executions", strconv.Itoa(s.UniqueExecutions)})
	table.Append([]string{"Regions", strings.Join(s.Regions, ", ")})
	table.Append([]string{"Stages", strings.Join(s.Stages, ", ")})
	table.Append([]string{"Actions", strings.Join(s.Actions, ", ")})
	table.Append([]string{"States", string(states)})
	table.Append([]string{"Earliest execution time", s.EarliestExecutionTime.String()})
	table.Append([]string{"Latest execution time", s.LatestExecutionTime.String()})
	table.Append([]string{"Latest execution ID", s.LatestExecutionID})
	table.Append([]string{"Accounts involved", strings.Join(s.Accounts, ", ")})
	table.Render()

	return nil
}
