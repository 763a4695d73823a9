package primary

import "context"

// ReportService defines the primary port for read-side aggregation.
// All operations are read-only and see committed data only.
type ReportService interface {
	// Statistics returns per-status counts plus a total, optionally scoped
	// to one reporter (reporterID 0 means all issues). Every status of the
	// vocabulary is present in the result, zero when absent.
	Statistics(ctx context.Context, reporterID int64) (*Statistics, error)

	// CategoryBreakdown returns per-category counts, descending by count.
	CategoryBreakdown(ctx context.Context) ([]*CategoryCount, error)

	// AreaBreakdown returns the top 10 areas by count, descending.
	AreaBreakdown(ctx context.Context) ([]*AreaCount, error)

	// Timeline returns per-day per-status counts for the last 30 days.
	Timeline(ctx context.Context) ([]*TimelineBucket, error)

	// AverageResolutionTime returns the average time from creation to the
	// earliest Resolved/Closed ledger entry over all qualifying issues.
	// Available is false when no issue has ever reached Resolved/Closed.
	AverageResolutionTime(ctx context.Context) (*ResolutionSummary, error)

	// CitizenCount returns the number of registered citizens.
	CitizenCount(ctx context.Context) (int, error)
}

// Statistics is a per-status breakdown with a total.
type Statistics struct {
	Total    int
	ByStatus map[string]int
}

// CategoryCount is one row of the category breakdown.
type CategoryCount struct {
	Category string
	Count    int
}

// AreaCount is one row of the area breakdown.
type AreaCount struct {
	Area  string
	Count int
}

// TimelineBucket is one row of the daily timeline.
type TimelineBucket struct {
	Date   string
	Status string
	Count  int
}

// ResolutionSummary is the formatted average resolution time.
type ResolutionSummary struct {
	Available    bool
	Display      string // "3.2 days" or "14.5 hours"
	AverageHours float64
	SampleSize   int
}
