// Package issue contains the pure business logic for issue operations.
// Guards are pure functions that evaluate preconditions without side effects.
package issue

import (
	"fmt"
	"strings"

	"github.com/example/civictrack/internal/core/status"
)

// Severity levels accepted for an issue report.
var severities = map[string]bool{
	"Low":    true,
	"Medium": true,
	"High":   true,
}

// ValidSeverity reports whether s is an accepted severity level.
func ValidSeverity(s string) bool {
	return severities[s]
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// SubmitContext provides context for issue submission guards.
type SubmitContext struct {
	ReporterID     int64
	ReporterExists bool
	CategoryID     int64
	CategoryExists bool
	LocationID     int64
	LocationExists bool
	Description    string
	Severity       string
}

// TransitionContext provides context for status transition guards.
type TransitionContext struct {
	IssueID   int64
	NewStatus status.Status
	ActorRole string
}

// CanSubmit evaluates whether an issue can be submitted.
// Rules:
// - Reporter, category, and location must resolve to existing entities
// - Description must not be blank
// - Severity must be Low, Medium, or High
func CanSubmit(ctx SubmitContext) GuardResult {
	if !ctx.ReporterExists {
		return GuardResult{Allowed: false, Reason: fmt.Sprintf("reporter %d not found", ctx.ReporterID)}
	}
	if !ctx.CategoryExists {
		return GuardResult{Allowed: false, Reason: fmt.Sprintf("category %d not found", ctx.CategoryID)}
	}
	if !ctx.LocationExists {
		return GuardResult{Allowed: false, Reason: fmt.Sprintf("location %d not found", ctx.LocationID)}
	}
	if strings.TrimSpace(ctx.Description) == "" {
		return GuardResult{Allowed: false, Reason: "description cannot be blank"}
	}
	if !ValidSeverity(ctx.Severity) {
		return GuardResult{Allowed: false, Reason: fmt.Sprintf("invalid severity %q (want Low, Medium, or High)", ctx.Severity)}
	}
	return GuardResult{Allowed: true}
}

// CanTransition evaluates whether a status transition may be requested.
// Rules:
// - Target status must be one of the five known statuses
// - Actor must hold the staff role
// The vocabulary is flat: any status may follow any other, including
// re-opening a Closed issue, so there is no transition table to consult.
func CanTransition(ctx TransitionContext) GuardResult {
	if !ctx.NewStatus.Valid() {
		return GuardResult{Allowed: false, Reason: fmt.Sprintf("unknown status %d", ctx.NewStatus)}
	}
	if ctx.ActorRole != "staff" {
		return GuardResult{Allowed: false, Reason: "only staff can change issue status"}
	}
	return GuardResult{Allowed: true}
}
