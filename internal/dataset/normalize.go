// Package dataset builds the canonical pipeline dataset: normalization of
// raw query rows, aggregation, and the memoized one-time load.
package dataset

import (
	"sort"

	"github.com/nikhilsana1004/devops-pipeline-chatbot/internal/athena"
	"github.com/nikhilsana1004/devops-pipeline-chatbot/internal/models"
)

// Normalize coerces raw query rows into canonical events. Missing string
// columns default to the Unknown sentinel; missing timestamp columns
// become nulls tagged as missing. Output is sorted by start time
// descending, nulls last, stable among ties.
func Normalize(rows []athena.Row) []models.Event {
	events := make([]models.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, normalizeRow(row))
	}
	sortEvents(events)
	return events
}

func normalizeRow(row athena.Row) models.Event {
	return models.Event{
		Account:     stringField(row, "account"),
		Time:        timeField(row, "time"),
		Region:      stringField(row, "region"),
		Pipeline:    stringField(row, "pipeline"),
		ExecutionID: stringField(row, "execution_id"),
		StartTime:   timeField(row, "start_time"),
		Stage:       stringField(row, "stage"),
		Action:      stringField(row, "action"),
		State:       stringField(row, "state"),
	}
}

func stringField(row athena.Row, name string) string {
	if v, ok := row[name]; ok {
		return v
	}
	return models.Unknown
}

func timeField(row athena.Row, name string) models.Timestamp {
	if v, ok := row[name]; ok {
		return models.ParseTimestamp(v)
	}
	return models.NullTimestamp(models.ReasonMissing)
}

func sortEvents(events []models.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i].StartTime, events[j].StartTime
		switch {
		case a.Valid && b.Valid:
			return a.Time.After(b.Time)
		case a.Valid:
			return true
		default:
			return false
		}
	})
}
