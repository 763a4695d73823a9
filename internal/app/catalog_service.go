package app

import (
	"context"

	"github.com/example/civictrack/internal/ports/primary"
	"github.com/example/civictrack/internal/ports/secondary"
)

// CatalogServiceImpl implements the CatalogService interface. Reference data
// changes only at init or reseed time, so snapshots live a full hour.
type CatalogServiceImpl struct {
	catalogRepo secondary.CatalogRepository
	cache       secondary.SnapshotCache
}

// NewCatalogService creates a new CatalogService with injected dependencies.
func NewCatalogService(catalogRepo secondary.CatalogRepository, cache secondary.SnapshotCache) *CatalogServiceImpl {
	return &CatalogServiceImpl{catalogRepo: catalogRepo, cache: cache}
}

// Categories retrieves all categories ordered by name.
func (s *CatalogServiceImpl) Categories(ctx context.Context) ([]*primary.Category, error) {
	return cachedJSON(ctx, s.cache, "catalog:categories", catalogTTL, func() ([]*primary.Category, error) {
		records, err := s.catalogRepo.Categories(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]*primary.Category, len(records))
		for i, r := range records {
			out[i] = &primary.Category{ID: r.ID, Name: r.Name}
		}
		return out, nil
	})
}

// Locations retrieves all locations ordered by area.
func (s *CatalogServiceImpl) Locations(ctx context.Context) ([]*primary.Location, error) {
	return cachedJSON(ctx, s.cache, "catalog:locations", catalogTTL, func() ([]*primary.Location, error) {
		records, err := s.catalogRepo.Locations(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]*primary.Location, len(records))
		for i, r := range records {
			out[i] = &primary.Location{
				ID:        r.ID,
				Area:      r.Area,
				Address:   r.Address,
				Latitude:  r.Latitude,
				Longitude: r.Longitude,
			}
		}
		return out, nil
	})
}

// Statuses retrieves the status vocabulary in identity order.
func (s *CatalogServiceImpl) Statuses(ctx context.Context) ([]*primary.StatusEntry, error) {
	return cachedJSON(ctx, s.cache, "catalog:statuses", catalogTTL, func() ([]*primary.StatusEntry, error) {
		records, err := s.catalogRepo.Statuses(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]*primary.StatusEntry, len(records))
		for i, r := range records {
			out[i] = &primary.StatusEntry{ID: r.ID, Name: r.Name}
		}
		return out, nil
	})
}

// Ensure CatalogServiceImpl implements the interface
var _ primary.CatalogService = (*CatalogServiceImpl)(nil)
