// Package primary defines the primary ports (driving adapters) for the
// application: the service interfaces the presentation layer calls.
package primary

import "context"

// IssueService defines the primary port for issue operations, including the
// status lifecycle.
type IssueService interface {
	// SubmitIssue creates a new issue in the initial status.
	// No history entry is written at creation.
	SubmitIssue(ctx context.Context, req SubmitIssueRequest) (*SubmitIssueResponse, error)

	// GetIssue retrieves an issue by ID.
	GetIssue(ctx context.Context, issueID int64) (*Issue, error)

	// ListIssuesForUser retrieves a reporter's issues, newest first.
	ListIssuesForUser(ctx context.Context, userID int64) ([]*Issue, error)

	// ListAllIssues retrieves issues matching the filters, annotated with
	// reporter and last-updater names, ordered by issue ID ascending.
	ListAllIssues(ctx context.Context, filters IssueFilters) ([]*Issue, error)

	// GetHistory retrieves an issue's transition history, newest first.
	GetHistory(ctx context.Context, issueID int64) ([]*HistoryEntry, error)

	// ApplyTransition changes an issue's status, atomically appending the
	// matching ledger entry. Applying the current status is a no-op success.
	// The actor is taken from the request context (see ctxutil).
	ApplyTransition(ctx context.Context, req TransitionRequest) (*TransitionResponse, error)
}

// SubmitIssueRequest contains parameters for submitting an issue.
type SubmitIssueRequest struct {
	ReporterID  int64
	CategoryID  int64
	LocationID  int64
	Description string
	Severity    string // Low, Medium, High
	PhotoPath   string // Optional, opaque reference
}

// SubmitIssueResponse contains the result of submitting an issue.
type SubmitIssueResponse struct {
	IssueID int64
	Issue   *Issue
}

// TransitionRequest contains parameters for a status transition.
type TransitionRequest struct {
	IssueID   int64
	NewStatus string // status label, e.g. "In-Progress"
}

// TransitionResponse contains the result of a transition.
type TransitionResponse struct {
	Changed   bool
	OldStatus string
	NewStatus string
}

// IssueFilters contains filter options for listing issues.
type IssueFilters struct {
	Status     string // status label, empty for all
	Severity   string
	CategoryID int64
}

// Issue represents an issue entity at the port boundary.
type Issue struct {
	ID          int64
	Reporter    string
	ReporterID  int64
	Category    string
	Area        string
	Address     string
	Description string
	Severity    string
	Status      string
	PhotoPath   string
	UpdatedBy   string // staff who performed the latest transition, if any
	CreatedAt   string
	UpdatedAt   string
}

// HistoryEntry represents one ledger entry at the port boundary.
type HistoryEntry struct {
	Timestamp   string
	UpdaterName string
	OldStatus   string
	NewStatus   string
}
