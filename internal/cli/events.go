package cli

import (
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var eventsLimit int

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List the most recent pipeline events",
	Args:  cobra.NoArgs,
	RunE:  runEvents,
}

func init() {
	eventsCmd.Flags().IntVarP(&eventsLimit, "limit", "n", 20, "max events to show")
}

func runEvents(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}

	// Events are already sorted by start time descending
	events := ds.Events
	if eventsLimit > 0 && len(events) > eventsLimit {
		events = events[:eventsLimit]
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Start Time", "Pipeline", "Execution", "Stage", "Action", "State"})
	for _, ev := range events {
		table.Append([]string{
			ev.StartTime.String(), ev.Pipeline, ev.ExecutionID, ev.Stage, ev.Action, ev.State,
		})
	}
	table.Render()

	return nil
}
