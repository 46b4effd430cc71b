package models

// NoExecutions is reported as the latest execution id of an empty dataset.
const NoExecutions = "No executions"

// Summary is an aggregate digest of a canonical event set. It is derived
// wholesale from the events and never mutated in place.
type Summary struct {
	TotalEvents      int
	UniquePipelines  int
	UniqueExecutions int

	Regions  []string
	Stages   []string
	Actions  []string
	Accounts []string

	// States maps each observed state to its occurrence count.
	States map[string]int

	LatestExecutionTime   Timestamp
	EarliestExecutionTime Timestamp
	LatestExecutionID     string
}
