// Package status defines the closed issue status vocabulary.
// The five statuses have stable numeric identities used as foreign keys in
// the store; the set is fixed and not extensible at runtime.
package status

import "fmt"

// Status identifies one of the five issue statuses.
type Status int64

const (
	Pending    Status = 1
	InProgress Status = 2
	Resolved   Status = 3
	Closed     Status = 4
	Duplicate  Status = 5
)

// Initial is the status every issue is created in.
const Initial = Pending

// names maps each status to its display label, matching the status table.
var names = map[Status]string{
	Pending:    "Pending",
	InProgress: "In-Progress",
	Resolved:   "Resolved",
	Closed:     "Closed",
	Duplicate:  "Duplicate",
}

// All returns the statuses in identity order.
func All() []Status {
	return []Status{Pending, InProgress, Resolved, Closed, Duplicate}
}

// Name returns the display label for a status.
func (s Status) Name() string {
	if n, ok := names[s]; ok {
		return n
	}
	return fmt.Sprintf("status(%d)", int64(s))
}

// Valid reports whether s is one of the five known statuses.
func (s Status) Valid() bool {
	_, ok := names[s]
	return ok
}

// TerminalLike reports whether s counts toward resolution-time measurement.
// Resolved and Closed are not machine-terminal: any status may still follow.
func (s Status) TerminalLike() bool {
	return s == Resolved || s == Closed
}

// Parse resolves a display label (case-sensitive, as stored) to a status.
func Parse(name string) (Status, bool) {
	for s, n := range names {
		if n == name {
			return s, true
		}
	}
	return 0, false
}
