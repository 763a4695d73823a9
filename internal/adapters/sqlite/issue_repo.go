// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/civictrack/internal/core/errs"
	"github.com/example/civictrack/internal/core/status"
	"github.com/example/civictrack/internal/ports/secondary"
)

// IssueRepository implements secondary.IssueRepository with SQLite.
type IssueRepository struct {
	db *sql.DB
}

// NewIssueRepository creates a new SQLite issue repository.
func NewIssueRepository(db *sql.DB) *IssueRepository {
	return &IssueRepository{db: db}
}

// scanIssue scans a joined issue row into an IssueRecord.
func scanIssue(scanner interface {
	Scan(dest ...any) error
}) (*secondary.IssueRecord, error) {
	var (
		photoPath     sql.NullString
		masterIssueID sql.NullInt64
		updatedBy     sql.NullString
		createdAt     time.Time
		updatedAt     time.Time
	)

	record := &secondary.IssueRecord{}
	err := scanner.Scan(
		&record.ID, &record.ReporterID, &record.CategoryID, &record.LocationID,
		&record.StatusID, &record.Description, &record.Severity, &photoPath,
		&masterIssueID, &createdAt, &updatedAt,
		&record.ReporterName, &updatedBy, &record.Category, &record.Area,
		&record.Address, &record.Status,
	)
	if err != nil {
		return nil, err
	}

	record.PhotoPath = photoPath.String
	record.MasterIssueID = masterIssueID.Int64
	record.UpdatedBy = updatedBy.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

// latestHistoryCTE resolves the actor of the most recent ledger entry per
// issue, ties broken by highest entry ID (insertion order).
const latestHistoryCTE = `
	WITH latest_history AS (
		SELECT
			rh.issue_id,
			u2.name AS updated_by,
			ROW_NUMBER() OVER (PARTITION BY rh.issue_id ORDER BY rh.timestamp DESC, rh.history_id DESC) AS rn
		FROM resolution_history rh
		LEFT JOIN users u2 ON rh.changed_by = u2.user_id
	)`

const issueSelect = `
	SELECT
		i.issue_id, i.user_id, i.category_id, i.location_id, i.status_id,
		i.description, i.severity, i.photo_path, i.master_issue_id,
		i.created_at, i.updated_at,
		u.name, lh.updated_by, c.name, l.area, COALESCE(l.address, ''), s.status_name
	FROM issues i
	JOIN users u ON i.user_id = u.user_id
	JOIN categories c ON i.category_id = c.category_id
	JOIN locations l ON i.location_id = l.location_id
	JOIN status s ON i.status_id = s.status_id
	LEFT JOIN latest_history lh ON i.issue_id = lh.issue_id AND lh.rn = 1`

// Create persists a new issue in the initial status and returns its ID.
// created_at and updated_at are assigned together by the store; no history
// entry is written at creation.
func (r *IssueRepository) Create(ctx context.Context, issue *secondary.IssueRecord) (int64, error) {
	var photoPath sql.NullString
	if issue.PhotoPath != "" {
		photoPath = sql.NullString{String: issue.PhotoPath, Valid: true}
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO issues (user_id, category_id, location_id, status_id, description, severity, photo_path, master_issue_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, NULL)`,
		issue.ReporterID, issue.CategoryID, issue.LocationID, int64(status.Initial),
		issue.Description, issue.Severity, photoPath,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create issue: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get issue ID: %w", err)
	}

	return id, nil
}

// GetByID retrieves an issue by its ID.
func (r *IssueRepository) GetByID(ctx context.Context, id int64) (*secondary.IssueRecord, error) {
	row := r.db.QueryRowContext(ctx, latestHistoryCTE+issueSelect+" WHERE i.issue_id = ?", id)

	record, err := scanIssue(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("issue %d: %w", id, errs.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get issue: %w", err)
	}

	return record, nil
}

// ListByReporter retrieves a reporter's issues, newest first.
func (r *IssueRepository) ListByReporter(ctx context.Context, reporterID int64) ([]*secondary.IssueRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		latestHistoryCTE+issueSelect+" WHERE i.user_id = ? ORDER BY i.created_at DESC, i.issue_id DESC",
		reporterID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}
	defer rows.Close()

	return collectIssues(rows)
}

// ListAll retrieves issues matching the given filters, ordered by issue ID
// ascending.
func (r *IssueRepository) ListAll(ctx context.Context, filters secondary.IssueFilters) ([]*secondary.IssueRecord, error) {
	query := latestHistoryCTE + issueSelect + " WHERE 1=1"
	args := []any{}

	if filters.StatusID != 0 {
		query += " AND i.status_id = ?"
		args = append(args, filters.StatusID)
	}

	if filters.Severity != "" {
		query += " AND i.severity = ?"
		args = append(args, filters.Severity)
	}

	if filters.CategoryID != 0 {
		query += " AND i.category_id = ?"
		args = append(args, filters.CategoryID)
	}

	query += " ORDER BY i.issue_id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}
	defer rows.Close()

	return collectIssues(rows)
}

func collectIssues(rows *sql.Rows) ([]*secondary.IssueRecord, error) {
	var issues []*secondary.IssueRecord
	for rows.Next() {
		record, err := scanIssue(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan issue: %w", err)
		}
		issues = append(issues, record)
	}
	return issues, rows.Err()
}

// Ensure IssueRepository implements the interface
var _ secondary.IssueRepository = (*IssueRepository)(nil)
