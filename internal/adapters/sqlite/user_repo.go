package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/example/civictrack/internal/core/errs"
	"github.com/example/civictrack/internal/ports/secondary"
)

// UserRepository implements secondary.UserRepository with SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userSelectCols = "user_id, name, phone, email, role, password_hash, created_at"

func scanUser(scanner interface {
	Scan(dest ...any) error
}) (*secondary.UserRecord, error) {
	var createdAt time.Time
	record := &secondary.UserRecord{}
	err := scanner.Scan(
		&record.ID, &record.Name, &record.Phone, &record.Email,
		&record.Role, &record.PasswordHash, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	return record, nil
}

// Create persists a new user and returns its ID.
// A duplicate email or phone surfaces errs.ErrConflict; the existing row
// is untouched.
func (r *UserRepository) Create(ctx context.Context, user *secondary.UserRecord) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO users (name, phone, email, role, password_hash) VALUES (?, ?, ?, ?, ?)",
		user.Name, user.Phone, user.Email, user.Role, user.PasswordHash,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return 0, fmt.Errorf("email or phone already registered: %w", errs.ErrConflict)
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get user ID: %w", err)
	}

	return id, nil
}

// GetByID retrieves a user by its ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*secondary.UserRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userSelectCols+" FROM users WHERE user_id = ?", id,
	)

	record, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %d: %w", id, errs.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return record, nil
}

// GetByEmailAndRole retrieves a user by email and role.
func (r *UserRepository) GetByEmailAndRole(ctx context.Context, email, role string) (*secondary.UserRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userSelectCols+" FROM users WHERE email = ? AND role = ?", email, role,
	)

	record, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s (%s): %w", email, role, errs.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return record, nil
}

// Exists checks if a user exists.
func (r *UserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE user_id = ?", id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return count > 0, nil
}

// CountByRole returns the number of users holding a role.
func (r *UserRepository) CountByRole(ctx context.Context, role string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE role = ?", role).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// Ensure UserRepository implements the interface
var _ secondary.UserRepository = (*UserRepository)(nil)
