package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/civictrack/internal/adapters/sqlite"
	"github.com/example/civictrack/internal/ports/secondary"
)

// TestIssueLifecycleEndToEnd walks one issue through its full life against
// real repositories: submitted in Pending with an empty ledger, moved to
// In-Progress by one staff member and Resolved by another, with the ledger,
// the issue row, and the resolution report agreeing at every step.
func TestIssueLifecycleEndToEnd(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	issues := sqlite.NewIssueRepository(db)
	history := sqlite.NewHistoryRepository(db)
	store := sqlite.NewLifecycleStore(db)
	reports := sqlite.NewReportRepository(db)

	reporterID := seedUser(t, db, "Asha Rao", "citizen")
	staffA := seedUser(t, db, "Officer Kulkarni", "staff")
	staffB := seedUser(t, db, "Officer Deshmukh", "staff")
	categoryID := seedCategory(t, db, "Pothole")
	locationID := seedLocation(t, db, "Kothrud")

	issueID, err := issues.Create(ctx, &secondary.IssueRecord{
		ReporterID:  reporterID,
		CategoryID:  categoryID,
		LocationID:  locationID,
		Description: "Deep pothole near the bus stop",
		Severity:    "High",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Freshly submitted: Pending, empty ledger.
	issue, err := issues.GetByID(ctx, issueID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if issue.Status != "Pending" {
		t.Fatalf("new issue status = %q, want Pending", issue.Status)
	}
	entries, err := history.ListByIssue(ctx, issueID)
	if err != nil {
		t.Fatalf("ListByIssue failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("fresh issue has %d ledger entries, want 0", len(entries))
	}

	if _, err := store.Transition(ctx, issueID, 2, staffA); err != nil {
		t.Fatalf("transition to In-Progress failed: %v", err)
	}
	if _, err := store.Transition(ctx, issueID, 3, staffB); err != nil {
		t.Fatalf("transition to Resolved failed: %v", err)
	}

	issue, err = issues.GetByID(ctx, issueID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if issue.Status != "Resolved" {
		t.Errorf("status = %q, want Resolved", issue.Status)
	}
	if issue.UpdatedBy != "Officer Deshmukh" {
		t.Errorf("last updater = %q, want Officer Deshmukh", issue.UpdatedBy)
	}

	entries, err = history.ListByIssue(ctx, issueID)
	if err != nil {
		t.Fatalf("ListByIssue failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d ledger entries, want 2", len(entries))
	}
	// Newest first.
	if entries[0].OldStatus != "In-Progress" || entries[0].NewStatus != "Resolved" || entries[0].UpdaterName != "Officer Deshmukh" {
		t.Errorf("newest entry = %s→%s by %s", entries[0].OldStatus, entries[0].NewStatus, entries[0].UpdaterName)
	}
	if entries[1].OldStatus != "Pending" || entries[1].NewStatus != "In-Progress" || entries[1].UpdaterName != "Officer Kulkarni" {
		t.Errorf("oldest entry = %s→%s by %s", entries[1].OldStatus, entries[1].NewStatus, entries[1].UpdaterName)
	}

	// The resolution report picks the issue up: one sample, measured from
	// creation to the Resolved entry, which all happened within this test.
	avg, sample, err := reports.AverageResolutionHours(ctx)
	if err != nil {
		t.Fatalf("AverageResolutionHours failed: %v", err)
	}
	if sample != 1 {
		t.Errorf("sample = %d, want 1", sample)
	}
	if avg < 0 || avg > 0.1 {
		t.Errorf("average = %.4f hours, want near zero for an issue resolved moments after creation", avg)
	}

	counts, err := reports.StatusCounts(ctx, 0)
	if err != nil {
		t.Fatalf("StatusCounts failed: %v", err)
	}
	if len(counts) != 1 || counts[0].Status != "Resolved" || counts[0].Count != 1 {
		t.Errorf("status counts = %+v, want Resolved:1", counts)
	}
}
