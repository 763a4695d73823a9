package primary

import "context"

// CatalogService defines the primary port for reference data lookups.
type CatalogService interface {
	// Categories retrieves all categories ordered by name.
	Categories(ctx context.Context) ([]*Category, error)

	// Locations retrieves all locations ordered by area.
	Locations(ctx context.Context) ([]*Location, error)

	// Statuses retrieves the status vocabulary in identity order.
	Statuses(ctx context.Context) ([]*StatusEntry, error)
}

// Category represents a category at the port boundary.
type Category struct {
	ID   int64
	Name string
}

// Location represents a location at the port boundary.
type Location struct {
	ID        int64
	Area      string
	Address   string
	Latitude  float64
	Longitude float64
}

// StatusEntry represents one status of the vocabulary.
type StatusEntry struct {
	ID   int64
	Name string
}
