package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/civictrack/internal/ports/secondary"
)

// CatalogRepository implements secondary.CatalogRepository with SQLite.
// Reference data only; no write paths.
type CatalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new SQLite catalog repository.
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Categories retrieves all categories ordered by name.
func (r *CatalogRepository) Categories(ctx context.Context) ([]*secondary.CategoryRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT category_id, name FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*secondary.CategoryRecord
	for rows.Next() {
		record := &secondary.CategoryRecord{}
		if err := rows.Scan(&record.ID, &record.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, record)
	}

	return categories, rows.Err()
}

// Locations retrieves all locations ordered by area.
func (r *CatalogRepository) Locations(ctx context.Context) ([]*secondary.LocationRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT location_id, area, COALESCE(address, ''), COALESCE(latitude, 0), COALESCE(longitude, 0) FROM locations ORDER BY area",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	var locations []*secondary.LocationRecord
	for rows.Next() {
		record := &secondary.LocationRecord{}
		if err := rows.Scan(&record.ID, &record.Area, &record.Address, &record.Latitude, &record.Longitude); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, record)
	}

	return locations, rows.Err()
}

// Statuses retrieves the status vocabulary in identity order.
func (r *CatalogRepository) Statuses(ctx context.Context) ([]*secondary.StatusRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT status_id, status_name FROM status ORDER BY status_id")
	if err != nil {
		return nil, fmt.Errorf("failed to list statuses: %w", err)
	}
	defer rows.Close()

	var statuses []*secondary.StatusRecord
	for rows.Next() {
		record := &secondary.StatusRecord{}
		if err := rows.Scan(&record.ID, &record.Name); err != nil {
			return nil, fmt.Errorf("failed to scan status: %w", err)
		}
		statuses = append(statuses, record)
	}

	return statuses, rows.Err()
}

// CategoryExists checks if a category exists.
func (r *CatalogRepository) CategoryExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, "SELECT COUNT(*) FROM categories WHERE category_id = ?", id)
}

// LocationExists checks if a location exists.
func (r *CatalogRepository) LocationExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, "SELECT COUNT(*) FROM locations WHERE location_id = ?", id)
}

func (r *CatalogRepository) exists(ctx context.Context, query string, id int64) (bool, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return count > 0, nil
}

var _ secondary.CatalogRepository = (*CatalogRepository)(nil)
