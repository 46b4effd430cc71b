// Package service composes grounded answers about the pipeline dataset.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/nikhilsana1004/devops-pipeline-chatbot/internal/dataset"
	"github.com/nikhilsana1004/devops-pipeline-chatbot/internal/llm"
	"github.com/nikhilsana1004/devops-pipeline-chatbot/internal/models"
)

// Apology is returned when the model transport fails. Per-question
// failures are absorbed here so the session stays usable.
const Apology = "I'm sorry, but I encountered an error while trying to analyze the data. Please try again later or contact support if the problem persists."

const promptTemplate = `You are an AI assistant specialized in analyzing CI/CD pipeline data. Provide concise, data-driven answers to questions about the pipeline. Use the provided summary and data structure to support your responses. Do not explain how to analyze the data or provide code solutions.

Here's a summary of the CI/CD pipeline data:

Total Events: %d
Unique Pipelines: %d
Unique Executions: %d
Regions: %s
Stages: %s
Actions: %s
States: %s
Latest Execution Time: %s
Earliest Execution Time: %s
Latest Execution ID: %s
Accounts Involved: %s

The dataset contains the following columns:

%s

Based on this information, please answer the following question:
%s

Please provide your concise and data-driven response here, ensuring each distinct piece of information is on a separate line, prefixed with a hyphen and a space.`

// Analyst answers questions about a loaded dataset.
type Analyst struct {
	model llm.Generator
	log   *slog.Logger
}

// NewAnalyst creates an Analyst backed by the given generator.
func NewAnalyst(model llm.Generator, logger *slog.Logger) *Analyst {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyst{model: model, log: logger}
}

// Ask grounds question in the dataset summary and column digests and
// returns the model's answer. Transport failures become the fixed Apology
// string; Ask itself never fails.
func (a *Analyst) Ask(ctx context.Context, question string, ds *dataset.Dataset) string {
	prompt := buildPrompt(question, ds)

	answer, err := a.model.Generate(ctx, prompt)
	if err != nil {
		a.log.Error("model generation failed", "error", err)
		return Apology
	}
	return answer
}

// buildPrompt renders the bounded grounding document: summary statistics,
// per-column digests, and the verbatim question.
func buildPrompt(question string, ds *dataset.Dataset) string {
	s := ds.Summary
	states, _ := json.Marshal(s.States)

	return fmt.Sprintf(promptTemplate,
		s.TotalEvents,
		s.UniquePipelines,
		s.UniqueExecutions,
		strings.Join(s.Regions, ", "),
		strings.Join(s.Stages, ", "),
		strings.Join(s.Actions, ", "),
		string(states),
		s.LatestExecutionTime,
		s.EarliestExecutionTime,
		s.LatestExecutionID,
		strings.Join(s.Accounts, ", "),
		columnDigest(ds.Events),
		question,
	)
}

// columnDigest renders one descriptive line per schema column: declared
// type, distinct count, non-null and null counts, and up to three values
// sampled from the distinct non-null set. Sampling is intentionally
// non-deterministic; it gives the model texture, not reproducibility.
func columnDigest(events []models.Event) string {
	lines := make([]string, 0, len(models.Columns))
	for _, col := range models.Columns {
		var distinct []string
		seen := make(map[string]struct{})
		nonNull, null := 0, 0

		for _, ev := range events {
			value, isNull := ev.Field(col.Name)
			if isNull {
				null++
				continue
			}
			nonNull++
			if _, ok := seen[value]; !ok {
				seen[value] = struct{}{}
				distinct = append(distinct, value)
			}
		}

		samples := sampleValues(distinct, 3)
		lines = append(lines, fmt.Sprintf(
			"- %s: %s, %d unique values, %d non-null, %d null. Sample values: %s",
			col.Name, col.Type, len(distinct), nonNull, null, strings.Join(samples, ", ")))
	}
	return strings.Join(lines, "\n")
}

// sampleValues picks up to n values without replacement; the pick count
// never exceeds the available distinct values.
func sampleValues(values []string, n int) []string {
	if n > len(values) {
		n = len(values)
	}
	picked := make([]string, 0, n)
	for _, i := range rand.Perm(len(values))[:n] {
		picked = append(picked, values[i])
	}
	return picked
}
