package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/civictrack/internal/core/errs"
	"github.com/example/civictrack/internal/ports/secondary"
)

// LifecycleStore implements secondary.LifecycleStore with SQLite.
//
// Transition is the only write path that touches both the issues table and
// the resolution_history ledger. The read of the current status and both
// writes happen inside one transaction: a failure between the issue update
// and the ledger append would desynchronize the current status from the
// audit trail, so no intermediate state may ever become visible.
type LifecycleStore struct {
	db *sql.DB
}

// NewLifecycleStore creates a new SQLite lifecycle store.
func NewLifecycleStore(db *sql.DB) *LifecycleStore {
	return &LifecycleStore{db: db}
}

// Transition applies a status change. Applying the current status is a
// no-op success with no ledger entry. Both writes commit together or
// neither does; on failure the issue's visible status is unchanged.
func (s *LifecycleStore) Transition(ctx context.Context, issueID, newStatusID, actorID int64) (*secondary.TransitionResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transition: %w", errs.ErrTransaction)
	}
	defer tx.Rollback()

	var oldStatusID int64
	err = tx.QueryRowContext(ctx,
		"SELECT status_id FROM issues WHERE issue_id = ?", issueID,
	).Scan(&oldStatusID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("issue %d: %w", issueID, errs.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read current status: %w", errs.ErrTransaction)
	}

	// Idempotent re-application: nothing to write.
	if oldStatusID == newStatusID {
		return &secondary.TransitionResult{
			Changed:     false,
			OldStatusID: oldStatusID,
			NewStatusID: newStatusID,
		}, nil
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE issues SET status_id = ?, updated_at = CURRENT_TIMESTAMP WHERE issue_id = ?",
		newStatusID, issueID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update issue status: %w", errs.ErrTransaction)
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO resolution_history (issue_id, old_status_id, new_status_id, changed_by, timestamp)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		issueID, oldStatusID, newStatusID, actorID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to append history: %w", errs.ErrTransaction)
	}

	historyID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get history ID: %w", errs.ErrTransaction)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transition: %w", errs.ErrTransaction)
	}

	return &secondary.TransitionResult{
		Changed:     true,
		OldStatusID: oldStatusID,
		NewStatusID: newStatusID,
		HistoryID:   historyID,
	}, nil
}

// Ensure LifecycleStore implements the interface
var _ secondary.LifecycleStore = (*LifecycleStore)(nil)
