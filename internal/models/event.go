// Package models defines the canonical data structures for pipeline
// execution history.
package models

// Unknown is the sentinel value for string fields absent from the source.
const Unknown = "Unknown"

// Event is one canonical pipeline event. Every Event carries all nine
// fields; missing source columns are defaulted during normalization.
type Event struct {
	Account     string
	Time        Timestamp
	Region      string
	Pipeline    string
	ExecutionID string
	StartTime   Timestamp
	Stage       string
	Action      string
	State       string
}

// Column describes one field of the canonical event schema.
type Column struct {
	Name string
	Type string
}

// Schema column type names.
const (
	TypeString    = "string"
	TypeTimestamp = "timestamp"
)

// Columns is the canonical event schema in source order.
var Columns = []Column{
	{Name: "account", Type: TypeString},
	{Name: "time", Type: TypeTimestamp},
	{Name: "region", Type: TypeString},
	{Name: "pipeline", Type: TypeString},
	{Name: "execution_id", Type: TypeString},
	{Name: "start_time", Type: TypeTimestamp},
	{Name: "stage", Type: TypeString},
	{Name: "action", Type: TypeString},
	{Name: "state", Type: TypeString},
}

// Field returns the rendered value of the named schema column and whether
// that value is null. String columns are never null; timestamp columns are
// null when invalid. Unnamed columns report null.
func (e Event) Field(name string) (value string, null bool) {
	switch name {
	case "account":
		return e.Account, false
	case "time":
		return e.Time.String(), !e.Time.Valid
	case "region":
		return e.Region, false
	case "pipeline":
		return e.Pipeline, false
	case "execution_id":
		return e.ExecutionID, false
	case "start_time":
		return e.StartTime.String(), !e.StartTime.Valid
	case "stage":
		return e.Stage, false
	case "action":
		return e.Action, false
	case "state":
		return e.State, false
	}
	return "", true
}
