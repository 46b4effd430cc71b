package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhilsana1004/devops-pipeline-chatbot/internal/athena"
	"github.com/nikhilsana1004/devops-pipeline-chatbot/internal/models"
)

func fullRow(executionID, startTime string) athena.Row {
	return athena.Row{
		"account":      "123456789012",
		"time":         "2024-05-01T10:00:00Z",
		"region":       "us-west-2",
		"pipeline":     "deploy",
		"execution_id": executionID,
		"start_time":   startTime,
		"stage":        "Build",
		"action":       "CodeBuild",
		"state":        "SUCCEEDED",
	}
}

func TestNormalizePreservesLength(t *testing.T) {
	rows := []athena.Row{
		fullRow("e1", "2024-05-01T10:00:00Z"),
		fullRow("e2", "garbage"),
		{},
	}
	events := Normalize(rows)
	assert.Len(t, events, len(rows))
}

func TestNormalizeDefaultsMissingFields(t *testing.T) {
	events := Normalize([]athena.Row{{}})
	require.Len(t, events, 1)
	ev := events[0]

	assert.Equal(t, models.Unknown, ev.Account)
	assert.Equal(t, models.Unknown, ev.Region)
	assert.Equal(t, models.Unknown, ev.Pipeline)
	assert.Equal(t, models.Unknown, ev.ExecutionID)
	assert.Equal(t, models.Unknown, ev.Stage)
	assert.Equal(t, models.Unknown, ev.Action)
	assert.Equal(t, models.Unknown, ev.State)

	assert.False(t, ev.Time.Valid)
	assert.Equal(t, models.ReasonMissing, ev.Time.Reason)
	assert.False(t, ev.StartTime.Valid)
	assert.Equal(t, models.ReasonMissing, ev.StartTime.Reason)
}

func TestNormalizeKeepsEmptyCellValues(t *testing.T) {
	// An unset result cell arrives as "", which is distinct from an
	// absent column.
	events := Normalize([]athena.Row{{"pipeline": "", "start_time": ""}})
	require.Len(t, events, 1)

	assert.Equal(t, "", events[0].Pipeline)
	assert.Equal(t, models.ReasonUnknown, events[0].StartTime.Reason)
	assert.Equal(t, models.Unknown, events[0].Region)
}

func TestNormalizeTagsMalformedTimestamps(t *testing.T) {
	events := Normalize([]athena.Row{fullRow("e1", "05/01/2024")})
	require.Len(t, events, 1)
	assert.False(t, events[0].StartTime.Valid)
	assert.Equal(t, models.ReasonMalformed, events[0].StartTime.Reason)
}

func TestNormalizeSortsByStartTimeDescendingNullsLast(t *testing.T) {
	rows := []athena.Row{
		fullRow("older", "2024-05-01T10:00:00Z"),
		fullRow("null-a", "Unknown"),
		fullRow("newest", "2024-05-01T10:00:02Z"),
		fullRow("null-b", ""),
		fullRow("newer", "2024-05-01T10:00:01Z"),
	}
	events := Normalize(rows)

	var order []string
	for _, ev := range events {
		order = append(order, ev.ExecutionID)
	}
	// Nulls keep their relative input order (stable sort)
	assert.Equal(t, []string{"newest", "newer", "older", "null-a", "null-b"}, order)
}

func TestNormalizeSortIsIdempotent(t *testing.T) {
	rows := []athena.Row{
		fullRow("b", "2024-05-01T10:00:00Z"),
		fullRow("a", "2024-05-01T10:00:05Z"),
		fullRow("c", "Unknown"),
	}
	events := Normalize(rows)

	resorted := make([]models.Event, len(events))
	copy(resorted, events)
	sortEvents(resorted)

	assert.Equal(t, events, resorted)
}
