// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// IssueRepository defines the secondary port for issue persistence.
// It owns the mutable current state of each issue; it never writes history.
type IssueRepository interface {
	// Create persists a new issue in the initial status and returns its ID.
	Create(ctx context.Context, issue *IssueRecord) (int64, error)

	// GetByID retrieves an issue by its ID.
	GetByID(ctx context.Context, id int64) (*IssueRecord, error)

	// ListByReporter retrieves a reporter's issues, newest first.
	ListByReporter(ctx context.Context, reporterID int64) ([]*IssueRecord, error)

	// ListAll retrieves issues matching the given filters, joined with
	// reporter and last-updater names, ordered by issue ID ascending.
	ListAll(ctx context.Context, filters IssueFilters) ([]*IssueRecord, error)
}

// IssueRecord represents an issue as stored in persistence.
// Joined display fields are populated by list and get queries only.
type IssueRecord struct {
	ID            int64
	ReporterID    int64
	CategoryID    int64
	LocationID    int64
	StatusID      int64
	Description   string
	Severity      string
	PhotoPath     string
	MasterIssueID int64 // reserved for duplicate merging, never populated
	CreatedAt     string
	UpdatedAt     string

	// Joined display fields
	ReporterName string
	UpdatedBy    string
	Category     string
	Area         string
	Address      string
	Status       string
}

// IssueFilters contains filter options for querying issues.
type IssueFilters struct {
	StatusID   int64
	Severity   string
	CategoryID int64
}

// HistoryRepository defines the read side of the resolution history ledger.
// Appends happen only inside the lifecycle transaction (see LifecycleStore).
type HistoryRepository interface {
	// ListByIssue retrieves an issue's history entries, joined with status
	// and actor names, ordered by timestamp descending.
	ListByIssue(ctx context.Context, issueID int64) ([]*HistoryRecord, error)

	// LatestUpdater returns the actor name of the most recent entry for an
	// issue, ties broken by highest entry ID. Empty string when no entries.
	LatestUpdater(ctx context.Context, issueID int64) (string, error)
}

// HistoryRecord represents one immutable ledger entry.
type HistoryRecord struct {
	ID          int64
	IssueID     int64
	OldStatusID int64
	NewStatusID int64
	ChangedBy   int64
	Timestamp   string

	// Joined display fields
	OldStatus   string
	NewStatus   string
	UpdaterName string
}

// LifecycleStore defines the secondary port for the one atomic unit of the
// system: reading an issue's current status, updating it, and appending the
// matching ledger entry in a single transaction.
type LifecycleStore interface {
	// Transition applies a status change. When the issue is already in the
	// target status it returns Changed=false and writes nothing. Both writes
	// commit together or neither does.
	Transition(ctx context.Context, issueID, newStatusID, actorID int64) (*TransitionResult, error)
}

// TransitionResult captures the outcome of a transition.
type TransitionResult struct {
	Changed     bool
	OldStatusID int64
	NewStatusID int64
	HistoryID   int64 // 0 when Changed is false
}

// UserRepository defines the secondary port for the identity directory.
type UserRepository interface {
	// Create persists a new user and returns its ID.
	// Duplicate email or phone surfaces errs.ErrConflict.
	Create(ctx context.Context, user *UserRecord) (int64, error)

	// GetByID retrieves a user by its ID.
	GetByID(ctx context.Context, id int64) (*UserRecord, error)

	// GetByEmailAndRole retrieves a user by email and role.
	GetByEmailAndRole(ctx context.Context, email, role string) (*UserRecord, error)

	// Exists checks if a user exists (for validation).
	Exists(ctx context.Context, id int64) (bool, error)

	// CountByRole returns the number of users holding a role.
	CountByRole(ctx context.Context, role string) (int, error)
}

// UserRecord represents a user as stored in persistence.
type UserRecord struct {
	ID           int64
	Name         string
	Phone        string
	Email        string
	Role         string
	PasswordHash string
	CreatedAt    string
}

// CatalogRepository defines read access to the reference catalog.
type CatalogRepository interface {
	// Categories retrieves all categories ordered by name.
	Categories(ctx context.Context) ([]*CategoryRecord, error)

	// Locations retrieves all locations ordered by area.
	Locations(ctx context.Context) ([]*LocationRecord, error)

	// Statuses retrieves the status vocabulary in identity order.
	Statuses(ctx context.Context) ([]*StatusRecord, error)

	// CategoryExists checks if a category exists (for validation).
	CategoryExists(ctx context.Context, id int64) (bool, error)

	// LocationExists checks if a location exists (for validation).
	LocationExists(ctx context.Context, id int64) (bool, error)
}

// CategoryRecord represents a category as stored in persistence.
type CategoryRecord struct {
	ID   int64
	Name string
}

// LocationRecord represents a location as stored in persistence.
type LocationRecord struct {
	ID        int64
	Area      string
	Address   string
	Latitude  float64
	Longitude float64
}

// StatusRecord represents one entry of the status vocabulary.
type StatusRecord struct {
	ID   int64
	Name string
}

// ReportRepository defines the read-only aggregation queries.
// Every query sees some consistent committed state; no locks are taken.
type ReportRepository interface {
	// StatusCounts returns per-status counts, optionally scoped to one
	// reporter (reporterID 0 means all issues).
	StatusCounts(ctx context.Context, reporterID int64) ([]*StatusCount, error)

	// TotalIssues returns the issue count, optionally scoped to one reporter.
	TotalIssues(ctx context.Context, reporterID int64) (int, error)

	// CountsByCategory returns per-category counts, descending by count.
	// Categories with no issues appear with a zero count.
	CountsByCategory(ctx context.Context) ([]*CategoryCount, error)

	// CountsByArea returns the top areas by issue count, descending.
	CountsByArea(ctx context.Context, limit int) ([]*AreaCount, error)

	// Timeline returns per-day per-status counts for the trailing window.
	Timeline(ctx context.Context, days int) ([]*TimelinePoint, error)

	// AverageResolutionHours returns the average hours from issue creation
	// to the earliest Resolved/Closed ledger entry, and the number of
	// qualifying issues. Zero qualifying issues means no average exists.
	AverageResolutionHours(ctx context.Context) (float64, int, error)
}

// StatusCount is one row of a per-status breakdown.
type StatusCount struct {
	Status string
	Count  int
}

// CategoryCount is one row of a per-category breakdown.
type CategoryCount struct {
	Category string
	Count    int
}

// AreaCount is one row of a per-area breakdown.
type AreaCount struct {
	Area  string
	Count int
}

// TimelinePoint is one row of the daily timeline, keyed by date and status.
type TimelinePoint struct {
	Date   string
	Status string
	Count  int
}
