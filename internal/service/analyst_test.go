package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhilsana1004/devops-pipeline-chatbot/internal/athena"
	"github.com/nikhilsana1004/devops-pipeline-chatbot/internal/dataset"
)

type fakeGenerator struct {
	answer string
	err    error
	prompt string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.answer, f.err
}

func testDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	rows := []athena.Row{
		{
			"account": "111122223333", "time": "2024-05-01T10:00:00Z",
			"region": "us-west-2", "pipeline": "deploy", "execution_id": "e1",
			"start_time": "2024-05-01T10:00:01Z", "stage": "Build",
			"action": "CodeBuild", "state": "SUCCEEDED",
		},
		{
			"account": "111122223333", "time": "2024-05-01T09:00:00Z",
			"region": "eu-west-1", "pipeline": "deploy", "execution_id": "e2",
			"start_time": "Unknown", "stage": "Deploy",
			"action": "CloudFormation", "state": "FAILED",
		},
	}
	events := dataset.Normalize(rows)
	return &dataset.Dataset{Events: events, Summary: dataset.Summarize(events)}
}

func TestAskGroundsPromptInSummary(t *testing.T) {
	gen := &fakeGenerator{answer: "- deploy failed once"}
	a := NewAnalyst(gen, nil)
	ds := testDataset(t)

	answer := a.Ask(context.Background(), "which pipeline failed?", ds)
	assert.Equal(t, "- deploy failed once", answer)

	prompt := gen.prompt
	assert.Contains(t, prompt, "Total Events: 2")
	assert.Contains(t, prompt, "Unique Pipelines: 1")
	assert.Contains(t, prompt, "Unique Executions: 2")
	assert.Contains(t, prompt, "us-west-2")
	assert.Contains(t, prompt, "eu-west-1")
	assert.Contains(t, prompt, `"FAILED":1`)
	assert.Contains(t, prompt, `"SUCCEEDED":1`)
	assert.Contains(t, prompt, "Latest Execution ID: e1")
	assert.Contains(t, prompt, "which pipeline failed?")
	assert.Contains(t, prompt, "prefixed with a hyphen")
}

func TestAskAbsorbsTransportFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("connection reset")}
	a := NewAnalyst(gen, nil)

	answer := a.Ask(context.Background(), "anything", testDataset(t))
	assert.Equal(t, Apology, answer)
}

func TestColumnDigestCoversEverySchemaColumn(t *testing.T) {
	ds := testDataset(t)
	digest := columnDigest(ds.Events)

	lines := strings.Split(digest, "\n")
	require.Len(t, lines, 9)
	assert.Contains(t, digest, "- account: string, 1 unique values, 2 non-null, 0 null")
	assert.Contains(t, digest, "- start_time: timestamp, 1 unique values, 1 non-null, 1 null")
	assert.Contains(t, digest, "- state: string, 2 unique values, 2 non-null, 0 null")
}

func TestColumnDigestSamplesWithinBounds(t *testing.T) {
	ds := testDataset(t)
	digest := columnDigest(ds.Events)

	for _, line := range strings.Split(digest, "\n") {
		_, tail, ok := strings.Cut(line, "Sample values: ")
		require.True(t, ok, "digest line missing sample section: %s", line)
		var samples int
		if tail != "" {
			samples = strings.Count(tail, ", ") + 1
		}
		assert.LessOrEqual(t, samples, 3, "line: %s", line)
	}
}

func TestSampleValuesNeverExceedsAvailable(t *testing.T) {
	tests := []struct {
		available int
		want      int
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 3},
		{10, 3},
	}

	for _, tt := range tests {
		values := make([]string, tt.available)
		for i := range values {
			values[i] = fmt.Sprintf("v%d", i)
		}
		got := sampleValues(values, 3)
		assert.Len(t, got, tt.want, "available=%d", tt.available)

		// Without replacement: no duplicates
		seen := make(map[string]struct{})
		for _, v := range got {
			_, dup := seen[v]
			assert.False(t, dup, "duplicate sample %q", v)
			seen[v] = struct{}{}
		}
	}
}
