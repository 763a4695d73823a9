package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/civictrack/internal/core/status"
	"github.com/example/civictrack/internal/ports/secondary"
)

// ReportRepository implements secondary.ReportRepository with SQLite.
// Read-only aggregation over issues and the resolution history ledger;
// every query sees some consistent committed state.
type ReportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new SQLite report repository.
func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// StatusCounts returns per-status counts, optionally scoped to one reporter
// (reporterID 0 means all issues). Statuses with no issues are absent; the
// service layer fills in zeroes from the vocabulary.
func (r *ReportRepository) StatusCounts(ctx context.Context, reporterID int64) ([]*secondary.StatusCount, error) {
	query := `
		SELECT s.status_name, COUNT(*)
		FROM issues i
		JOIN status s ON i.status_id = s.status_id`
	args := []any{}

	if reporterID != 0 {
		query += " WHERE i.user_id = ?"
		args = append(args, reporterID)
	}

	query += " GROUP BY s.status_name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}
	defer rows.Close()

	var counts []*secondary.StatusCount
	for rows.Next() {
		c := &secondary.StatusCount{}
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// TotalIssues returns the issue count, optionally scoped to one reporter.
func (r *ReportRepository) TotalIssues(ctx context.Context, reporterID int64) (int, error) {
	query := "SELECT COUNT(*) FROM issues"
	args := []any{}
	if reporterID != 0 {
		query += " WHERE user_id = ?"
		args = append(args, reporterID)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count issues: %w", err)
	}
	return total, nil
}

// CountsByCategory returns per-category counts, descending by count.
// The LEFT JOIN keeps categories with no issues in the result at zero.
func (r *ReportRepository) CountsByCategory(ctx context.Context) ([]*secondary.CategoryCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.name, COUNT(i.issue_id)
		FROM categories c
		LEFT JOIN issues i ON c.category_id = i.category_id
		GROUP BY c.name
		ORDER BY COUNT(i.issue_id) DESC, c.name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count by category: %w", err)
	}
	defer rows.Close()

	var counts []*secondary.CategoryCount
	for rows.Next() {
		c := &secondary.CategoryCount{}
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// CountsByArea returns the top areas by issue count, descending.
func (r *ReportRepository) CountsByArea(ctx context.Context, limit int) ([]*secondary.AreaCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT l.area, COUNT(i.issue_id)
		FROM locations l
		JOIN issues i ON l.location_id = i.location_id
		GROUP BY l.area
		ORDER BY COUNT(i.issue_id) DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count by area: %w", err)
	}
	defer rows.Close()

	var counts []*secondary.AreaCount
	for rows.Next() {
		c := &secondary.AreaCount{}
		if err := rows.Scan(&c.Area, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan area count: %w", err)
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// Timeline returns per-day per-status counts for the trailing window.
func (r *ReportRepository) Timeline(ctx context.Context, days int) ([]*secondary.TimelinePoint, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date(i.created_at), s.status_name, COUNT(*)
		FROM issues i
		JOIN status s ON i.status_id = s.status_id
		WHERE i.created_at >= datetime('now', ?)
		GROUP BY date(i.created_at), s.status_name
		ORDER BY date(i.created_at)`,
		fmt.Sprintf("-%d days", days),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build timeline: %w", err)
	}
	defer rows.Close()

	var points []*secondary.TimelinePoint
	for rows.Next() {
		p := &secondary.TimelinePoint{}
		if err := rows.Scan(&p.Date, &p.Status, &p.Count); err != nil {
			return nil, fmt.Errorf("failed to scan timeline point: %w", err)
		}
		points = append(points, p)
	}

	return points, rows.Err()
}

// AverageResolutionHours computes, per issue that ever reached Resolved or
// Closed, the hours from creation to the EARLIEST such ledger entry (the
// first time it reached a terminal-like state, not the latest), then
// averages over all qualifying issues.
func (r *ReportRepository) AverageResolutionHours(ctx context.Context) (float64, int, error) {
	var (
		avgHours sql.NullFloat64
		sample   int
	)
	err := r.db.QueryRowContext(ctx, `
		WITH resolution_time AS (
			SELECT
				i.issue_id,
				i.created_at,
				MIN(rh.timestamp) AS resolved_at
			FROM issues i
			JOIN resolution_history rh ON i.issue_id = rh.issue_id
			WHERE rh.new_status_id IN (?, ?)
			GROUP BY i.issue_id, i.created_at
		)
		SELECT
			AVG((julianday(resolved_at) - julianday(created_at)) * 24.0),
			COUNT(*)
		FROM resolution_time`,
		int64(status.Resolved), int64(status.Closed),
	).Scan(&avgHours, &sample)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to compute resolution time: %w", err)
	}

	if !avgHours.Valid {
		return 0, 0, nil
	}

	return avgHours.Float64, sample, nil
}

// Ensure ReportRepository implements the interface
var _ secondary.ReportRepository = (*ReportRepository)(nil)
