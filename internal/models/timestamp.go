package models

import "time"

// Timestamp parse layouts, tried in order: fractional seconds with a
// trailing UTC marker first, then whole seconds.
const (
	layoutFractional = "2006-01-02T15:04:05.999999999Z"
	layoutSeconds    = "2006-01-02T15:04:05Z"
)

// NullReason records why a Timestamp holds no value.
type NullReason string

const (
	// ReasonMissing means the source column was absent from the row.
	ReasonMissing NullReason = "missing"
	// ReasonUnknown means the source carried the Unknown sentinel or an
	// empty string.
	ReasonUnknown NullReason = "unknown"
	// ReasonMalformed means the value matched neither supported layout.
	ReasonMalformed NullReason = "malformed"
)

// Timestamp is a nullable instant. Invalid timestamps carry a reason so
// callers can tell an absent column from an unparsable value.
type Timestamp struct {
	Time   time.Time
	Valid  bool
	Reason NullReason
}

// NullTimestamp returns an invalid Timestamp tagged with reason.
func NullTimestamp(reason NullReason) Timestamp {
	return Timestamp{Reason: reason}
}

// ParseTimestamp parses a source timestamp string. It is total: any input
// yields either a valid UTC instant or a reason-tagged null, never an error.
func ParseTimestamp(s string) Timestamp {
	if s == "" || s == Unknown {
		return NullTimestamp(ReasonUnknown)
	}
	if t, err := time.Parse(layoutFractional, s); err == nil {
		return Timestamp{Time: t.UTC(), Valid: true}
	}
	if t, err := time.Parse(layoutSeconds, s); err == nil {
		return Timestamp{Time: t.UTC(), Valid: true}
	}
	return NullTimestamp(ReasonMalformed)
}

// Before reports whether t is strictly earlier than u. An invalid
// Timestamp is never before anything.
func (t Timestamp) Before(u Timestamp) bool {
	if !t.Valid || !u.Valid {
		return false
	}
	return t.Time.Before(u.Time)
}

// After reports whether t is strictly later than u. An invalid Timestamp
// is never after anything.
func (t Timestamp) After(u Timestamp) bool {
	if !t.Valid || !u.Valid {
		return false
	}
	return t.Time.After(u.Time)
}

// Equal reports whether both timestamps are valid and denote the same
// instant, or both are invalid.
func (t Timestamp) Equal(u Timestamp) bool {
	if t.Valid != u.Valid {
		return false
	}
	if !t.Valid {
		return true
	}
	return t.Time.Equal(u.Time)
}

// String renders the instant in RFC 3339, or "n/a" for a null value.
func (t Timestamp) String() string {
	if !t.Valid {
		return "n/a"
	}
	return t.Time.Format(time.RFC3339)
}
