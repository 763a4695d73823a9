// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/civictrack/internal/ports/primary"
)

// IssueAdapter is a thin adapter that translates CLI operations to
// IssueService calls. It depends only on the IssueService interface,
// enabling easy testing with mocks.
type IssueAdapter struct {
	service primary.IssueService
	out     io.Writer
}

// NewIssueAdapter creates a new IssueAdapter with the given service.
func NewIssueAdapter(service primary.IssueService, out io.Writer) *IssueAdapter {
	return &IssueAdapter{
		service: service,
		out:     out,
	}
}

// colorizeStatus renders a status label with its conventional accent.
func colorizeStatus(status string) string {
	switch status {
	case "Pending":
		return color.New(color.FgYellow).Sprint(status)
	case "In-Progress":
		return color.New(color.FgCyan).Sprint(status)
	case "Resolved":
		return color.New(color.FgGreen).Sprint(status)
	case "Closed":
		return color.New(color.FgHiBlack).Sprint(status)
	case "Duplicate":
		return color.New(color.FgMagenta).Sprint(status)
	}
	return status
}

// Submit files a new issue.
func (a *IssueAdapter) Submit(ctx context.Context, req primary.SubmitIssueRequest) error {
	resp, err := a.service.SubmitIssue(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Submitted issue #%d (%s, %s) in %s\n",
		resp.IssueID, resp.Issue.Category, resp.Issue.Severity, resp.Issue.Area)
	return nil
}

// ListMine lists the calling reporter's issues, newest first.
func (a *IssueAdapter) ListMine(ctx context.Context, userID int64) error {
	issues, err := a.service.ListIssuesForUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list issues: %w", err)
	}
	a.printIssueTable(issues)
	return nil
}

// ListAll lists issues matching the filters, annotated with reporter and
// last-updater names.
func (a *IssueAdapter) ListAll(ctx context.Context, filters primary.IssueFilters) error {
	issues, err := a.service.ListAllIssues(ctx, filters)
	if err != nil {
		return fmt.Errorf("failed to list issues: %w", err)
	}
	a.printIssueTable(issues)
	return nil
}

func (a *IssueAdapter) printIssueTable(issues []*primary.Issue) {
	if len(issues) == 0 {
		fmt.Fprintln(a.out, "No issues found")
		return
	}

	fmt.Fprintf(a.out, "\n%-6s %-12s %-20s %-15s %-8s %s\n", "ID", "STATUS", "CATEGORY", "AREA", "SEVERITY", "REPORTER")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────────────────")
	for _, i := range issues {
		fmt.Fprintf(a.out, "#%-5d %-12s %-20s %-15s %-8s %s\n",
			i.ID, colorizeStatus(i.Status), i.Category, i.Area, i.Severity, i.Reporter)
		if i.UpdatedBy != "" {
			fmt.Fprintf(a.out, "       last updated by %s\n", i.UpdatedBy)
		}
	}
	fmt.Fprintln(a.out)
}

// Show displays details for a single issue.
func (a *IssueAdapter) Show(ctx context.Context, issueID int64) error {
	issue, err := a.service.GetIssue(ctx, issueID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nIssue:    #%d\n", issue.ID)
	fmt.Fprintf(a.out, "Status:   %s\n", colorizeStatus(issue.Status))
	fmt.Fprintf(a.out, "Category: %s\n", issue.Category)
	fmt.Fprintf(a.out, "Area:     %s\n", issue.Area)
	if issue.Address != "" {
		fmt.Fprintf(a.out, "Address:  %s\n", issue.Address)
	}
	fmt.Fprintf(a.out, "Severity: %s\n", issue.Severity)
	fmt.Fprintf(a.out, "Reporter: %s\n", issue.Reporter)
	fmt.Fprintf(a.out, "Filed:    %s\n", issue.CreatedAt)
	if issue.UpdatedBy != "" {
		fmt.Fprintf(a.out, "Updated:  %s by %s\n", issue.UpdatedAt, issue.UpdatedBy)
	}
	if issue.PhotoPath != "" {
		fmt.Fprintf(a.out, "Photo:    %s\n", issue.PhotoPath)
	}
	fmt.Fprintf(a.out, "\n%s\n\n", issue.Description)

	return nil
}

// History prints an issue's transition ledger, newest first.
func (a *IssueAdapter) History(ctx context.Context, issueID int64) error {
	entries, err := a.service.GetHistory(ctx, issueID)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintf(a.out, "Issue #%d has no status changes yet\n", issueID)
		return nil
	}

	fmt.Fprintf(a.out, "\nHistory for issue #%d:\n", issueID)
	for _, e := range entries {
		fmt.Fprintf(a.out, "  %s  %s → %s  by %s\n",
			e.Timestamp, colorizeStatus(e.OldStatus), colorizeStatus(e.NewStatus), e.UpdaterName)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Transition moves an issue to a new status.
func (a *IssueAdapter) Transition(ctx context.Context, issueID int64, newStatus string) error {
	resp, err := a.service.ApplyTransition(ctx, primary.TransitionRequest{
		IssueID:   issueID,
		NewStatus: newStatus,
	})
	if err != nil {
		return err
	}

	if !resp.Changed {
		fmt.Fprintf(a.out, "Issue #%d is already %s\n", issueID, colorizeStatus(resp.NewStatus))
		return nil
	}

	fmt.Fprintf(a.out, "✓ Issue #%d: %s → %s\n",
		issueID, colorizeStatus(resp.OldStatus), colorizeStatus(resp.NewStatus))
	return nil
}
