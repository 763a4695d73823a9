package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/civictrack/internal/ports/secondary"
)

// HistoryRepository implements the read side of secondary.HistoryRepository
// with SQLite. Appends happen only inside LifecycleStore.Transition.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new SQLite history repository.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// ListByIssue retrieves an issue's ledger entries, newest first.
func (r *HistoryRepository) ListByIssue(ctx context.Context, issueID int64) ([]*secondary.HistoryRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			rh.history_id, rh.issue_id, rh.old_status_id, rh.new_status_id,
			rh.changed_by, rh.timestamp,
			s_old.status_name, s_new.status_name, u.name
		FROM resolution_history rh
		JOIN status s_old ON rh.old_status_id = s_old.status_id
		JOIN status s_new ON rh.new_status_id = s_new.status_id
		JOIN users u ON rh.changed_by = u.user_id
		WHERE rh.issue_id = ?
		ORDER BY rh.timestamp DESC, rh.history_id DESC`,
		issueID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.HistoryRecord
	for rows.Next() {
		var timestamp time.Time
		record := &secondary.HistoryRecord{}
		err := rows.Scan(
			&record.ID, &record.IssueID, &record.OldStatusID, &record.NewStatusID,
			&record.ChangedBy, &timestamp,
			&record.OldStatus, &record.NewStatus, &record.UpdaterName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		record.Timestamp = timestamp.Format(time.RFC3339)
		entries = append(entries, record)
	}

	return entries, rows.Err()
}

// LatestUpdater returns the actor name of the most recent entry for an
// issue, ties broken by highest entry ID. Empty string when no entries.
func (r *HistoryRepository) LatestUpdater(ctx context.Context, issueID int64) (string, error) {
	var name string
	err := r.db.QueryRowContext(ctx, `
		SELECT u.name
		FROM resolution_history rh
		JOIN users u ON rh.changed_by = u.user_id
		WHERE rh.issue_id = ?
		ORDER BY rh.timestamp DESC, rh.history_id DESC
		LIMIT 1`,
		issueID,
	).Scan(&name)

	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get latest updater: %w", err)
	}

	return name, nil
}

// Ensure HistoryRepository implements the interface
var _ secondary.HistoryRepository = (*HistoryRepository)(nil)
