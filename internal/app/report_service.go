package app

import (
	"context"
	"fmt"

	"github.com/example/civictrack/internal/core/status"
	"github.com/example/civictrack/internal/ports/primary"
	"github.com/example/civictrack/internal/ports/secondary"
)

// Report shape constants, matching the dashboard the reports feed.
const (
	topAreaLimit = 10
	timelineDays = 30
	hoursPerDay  = 24.0
)

// ReportServiceImpl implements the ReportService interface.
type ReportServiceImpl struct {
	reportRepo secondary.ReportRepository
	userRepo   secondary.UserRepository
	cache      secondary.SnapshotCache
}

// NewReportService creates a new ReportService with injected dependencies.
func NewReportService(reportRepo secondary.ReportRepository, userRepo secondary.UserRepository, cache secondary.SnapshotCache) *ReportServiceImpl {
	return &ReportServiceImpl{
		reportRepo: reportRepo,
		userRepo:   userRepo,
		cache:      cache,
	}
}

// Statistics returns per-status counts plus a total. Every status of the
// vocabulary appears in the result, zero-filled when no issue holds it.
func (s *ReportServiceImpl) Statistics(ctx context.Context, reporterID int64) (*primary.Statistics, error) {
	key := fmt.Sprintf("stats:%d", reporterID)
	return cachedJSON(ctx, s.cache, key, reportTTL, func() (*primary.Statistics, error) {
		counts, err := s.reportRepo.StatusCounts(ctx, reporterID)
		if err != nil {
			return nil, err
		}
		total, err := s.reportRepo.TotalIssues(ctx, reporterID)
		if err != nil {
			return nil, err
		}

		byStatus := make(map[string]int, len(status.All()))
		for _, st := range status.All() {
			byStatus[st.Name()] = 0
		}
		for _, c := range counts {
			byStatus[c.Status] = c.Count
		}

		return &primary.Statistics{Total: total, ByStatus: byStatus}, nil
	})
}

// CategoryBreakdown returns per-category counts, descending by count.
// Categories with no issues are included at zero.
func (s *ReportServiceImpl) CategoryBreakdown(ctx context.Context) ([]*primary.CategoryCount, error) {
	return cachedJSON(ctx, s.cache, "report:categories", reportTTL, func() ([]*primary.CategoryCount, error) {
		counts, err := s.reportRepo.CountsByCategory(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]*primary.CategoryCount, len(counts))
		for i, c := range counts {
			out[i] = &primary.CategoryCount{Category: c.Category, Count: c.Count}
		}
		return out, nil
	})
}

// AreaBreakdown returns the top areas by issue count, descending.
func (s *ReportServiceImpl) AreaBreakdown(ctx context.Context) ([]*primary.AreaCount, error) {
	return cachedJSON(ctx, s.cache, "report:areas", reportTTL, func() ([]*primary.AreaCount, error) {
		counts, err := s.reportRepo.CountsByArea(ctx, topAreaLimit)
		if err != nil {
			return nil, err
		}
		out := make([]*primary.AreaCount, len(counts))
		for i, c := range counts {
			out[i] = &primary.AreaCount{Area: c.Area, Count: c.Count}
		}
		return out, nil
	})
}

// Timeline returns per-day per-status counts for the trailing month.
func (s *ReportServiceImpl) Timeline(ctx context.Context) ([]*primary.TimelineBucket, error) {
	return cachedJSON(ctx, s.cache, "report:timeline", reportTTL, func() ([]*primary.TimelineBucket, error) {
		points, err := s.reportRepo.Timeline(ctx, timelineDays)
		if err != nil {
			return nil, err
		}
		out := make([]*primary.TimelineBucket, len(points))
		for i, p := range points {
			out[i] = &primary.TimelineBucket{Date: p.Date, Status: p.Status, Count: p.Count}
		}
		return out, nil
	})
}

// AverageResolutionTime returns the average time from creation to the first
// Resolved or Closed ledger entry, over all issues that ever got there.
func (s *ReportServiceImpl) AverageResolutionTime(ctx context.Context) (*primary.ResolutionSummary, error) {
	return cachedJSON(ctx, s.cache, "report:resolution", reportTTL, func() (*primary.ResolutionSummary, error) {
		avgHours, sample, err := s.reportRepo.AverageResolutionHours(ctx)
		if err != nil {
			return nil, err
		}
		if sample == 0 {
			return &primary.ResolutionSummary{Available: false}, nil
		}

		display := fmt.Sprintf("%.1f hours", avgHours)
		if avgHours >= hoursPerDay {
			display = fmt.Sprintf("%.1f days", avgHours/hoursPerDay)
		}

		return &primary.ResolutionSummary{
			Available:    true,
			Display:      display,
			AverageHours: avgHours,
			SampleSize:   sample,
		}, nil
	})
}

// CitizenCount returns the number of registered citizens. Registration
// invalidates the stats prefix, so the cached value never outlives a signup.
func (s *ReportServiceImpl) CitizenCount(ctx context.Context) (int, error) {
	return cachedJSON(ctx, s.cache, "stats:citizens", reportTTL, func() (int, error) {
		return s.userRepo.CountByRole(ctx, "citizen")
	})
}

// Ensure ReportServiceImpl implements the interface
var _ primary.ReportService = (*ReportServiceImpl)(nil)
