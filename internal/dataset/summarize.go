package dataset

import (
	"slices"

	"github.com/nikhilsana1004/devops-pipeline-chatbot/internal/models"
)

// Summarize computes the aggregate digest of an event set. It is pure and
// total: the empty input yields zero counts, empty sets, and the
// NoExecutions marker. The latest execution id belongs to the first event,
// in input order, whose start time equals the maximum.
func Summarize(events []models.Event) models.Summary {
	s := models.Summary{
		TotalEvents:       len(events),
		States:            make(map[string]int),
		LatestExecutionID: models.NoExecutions,
	}

	pipelines := make(map[string]struct{})
	executions := make(map[string]struct{})

	for _, ev := range events {
		pipelines[ev.Pipeline] = struct{}{}
		executions[ev.ExecutionID] = struct{}{}
		s.Regions = appendDistinct(s.Regions, ev.Region)
		s.Stages = appendDistinct(s.Stages, ev.Stage)
		s.Actions = appendDistinct(s.Actions, ev.Action)
		s.Accounts = appendDistinct(s.Accounts, ev.Account)
		s.States[ev.State]++

		if !ev.StartTime.Valid {
			continue
		}
		if ev.StartTime.After(s.LatestExecutionTime) || !s.LatestExecutionTime.Valid {
			s.LatestExecutionTime = ev.StartTime
			s.LatestExecutionID = ev.ExecutionID
		}
		if ev.StartTime.Before(s.EarliestExecutionTime) || !s.EarliestExecutionTime.Valid {
			s.EarliestExecutionTime = ev.StartTime
		}
	}

	s.UniquePipelines = len(pipelines)
	s.UniqueExecutions = len(executions)
	return s
}

func appendDistinct(list []string, v string) []string {
	if slices.Contains(list, v) {
		return list
	}
	return append(list, v)
}
