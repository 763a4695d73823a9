package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/example/civictrack/internal/core/status"
	"github.com/example/civictrack/internal/ports/primary"
)

// ReportAdapter translates CLI operations to ReportService calls.
type ReportAdapter struct {
	service primary.ReportService
	out     io.Writer
}

// NewReportAdapter creates a new ReportAdapter with the given service.
func NewReportAdapter(service primary.ReportService, out io.Writer) *ReportAdapter {
	return &ReportAdapter{
		service: service,
		out:     out,
	}
}

// Stats prints per-status counts plus a total. With reporterID 0 the city
// total, otherwise scoped to one reporter's issues.
func (a *ReportAdapter) Stats(ctx context.Context, reporterID int64) error {
	stats, err := a.service.Statistics(ctx, reporterID)
	if err != nil {
		return fmt.Errorf("failed to build statistics: %w", err)
	}

	fmt.Fprintf(a.out, "\nTotal issues: %d\n", stats.Total)
	// Vocabulary order, not map order.
	for _, st := range status.All() {
		name := st.Name()
		fmt.Fprintf(a.out, "  %-12s %d\n", colorizeStatus(name), stats.ByStatus[name])
	}
	fmt.Fprintln(a.out)

	return nil
}

// Categories prints the per-category breakdown, descending by count.
func (a *ReportAdapter) Categories(ctx context.Context) error {
	counts, err := a.service.CategoryBreakdown(ctx)
	if err != nil {
		return fmt.Errorf("failed to build category breakdown: %w", err)
	}

	fmt.Fprintf(a.out, "\n%-25s %s\n", "CATEGORY", "ISSUES")
	fmt.Fprintln(a.out, strings.Repeat("─", 35))
	for _, c := range counts {
		fmt.Fprintf(a.out, "%-25s %d\n", c.Category, c.Count)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Areas prints the top areas by issue count.
func (a *ReportAdapter) Areas(ctx context.Context) error {
	counts, err := a.service.AreaBreakdown(ctx)
	if err != nil {
		return fmt.Errorf("failed to build area breakdown: %w", err)
	}

	if len(counts) == 0 {
		fmt.Fprintln(a.out, "No issues filed yet")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-20s %s\n", "AREA", "ISSUES")
	fmt.Fprintln(a.out, strings.Repeat("─", 30))
	for _, c := range counts {
		fmt.Fprintf(a.out, "%-20s %d\n", c.Area, c.Count)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Timeline prints daily per-status counts for the trailing month.
func (a *ReportAdapter) Timeline(ctx context.Context) error {
	buckets, err := a.service.Timeline(ctx)
	if err != nil {
		return fmt.Errorf("failed to build timeline: %w", err)
	}

	if len(buckets) == 0 {
		fmt.Fprintln(a.out, "No issues filed in the last 30 days")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-12s %-12s %s\n", "DATE", "STATUS", "ISSUES")
	fmt.Fprintln(a.out, strings.Repeat("─", 32))
	for _, b := range buckets {
		fmt.Fprintf(a.out, "%-12s %-12s %d\n", b.Date, colorizeStatus(b.Status), b.Count)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Resolution prints the average resolution time.
func (a *ReportAdapter) Resolution(ctx context.Context) error {
	summary, err := a.service.AverageResolutionTime(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute resolution time: %w", err)
	}

	if !summary.Available {
		fmt.Fprintln(a.out, "No issue has been resolved yet")
		return nil
	}

	fmt.Fprintf(a.out, "Average resolution time: %s (over %d resolved issues)\n",
		summary.Display, summary.SampleSize)
	return nil
}
