package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/civictrack/internal/core/errs"
	"github.com/example/civictrack/internal/ctxutil"
	"github.com/example/civictrack/internal/ports/primary"
	"github.com/example/civictrack/internal/ports/secondary"
)

type issueServiceFixture struct {
	issues    *mockIssueRepository
	history   *mockHistoryRepository
	lifecycle *mockLifecycleStore
	users     *mockUserRepository
	catalog   *mockCatalogRepository
	cache     *mockSnapshotCache
	service   *IssueServiceImpl
}

func newIssueServiceFixture() *issueServiceFixture {
	f := &issueServiceFixture{
		issues:    newMockIssueRepository(),
		history:   newMockHistoryRepository(),
		lifecycle: &mockLifecycleStore{},
		users:     newMockUserRepository(),
		catalog:   newMockCatalogRepository(),
		cache:     newMockCache(),
	}
	f.service = NewIssueService(f.issues, f.history, f.lifecycle, f.users, f.catalog, f.cache)
	return f
}

func TestSubmitIssue(t *testing.T) {
	f := newIssueServiceFixture()
	reporterID := f.users.addUser("Asha Rao", "citizen", "asha@example.com", "9822001100")
	f.catalog.addCategory(1, "Pothole")
	f.catalog.addLocation(1, "Kothrud")

	resp, err := f.service.SubmitIssue(context.Background(), primary.SubmitIssueRequest{
		ReporterID:  reporterID,
		CategoryID:  1,
		LocationID:  1,
		Description: "Deep pothole near the bus stop",
		Severity:    "High",
	})
	if err != nil {
		t.Fatalf("SubmitIssue failed: %v", err)
	}
	if resp.IssueID == 0 {
		t.Fatal("expected a nonzero issue ID")
	}
	if resp.Issue.Status != "Pending" {
		t.Errorf("new issue status = %q, want Pending", resp.Issue.Status)
	}

	if !f.cache.wasInvalidated("issues:") || !f.cache.wasInvalidated("stats:") {
		t.Error("submission should invalidate issue and stats snapshots")
	}
}

func TestSubmitIssue_ValidationErrors(t *testing.T) {
	f := newIssueServiceFixture()
	reporterID := f.users.addUser("Asha Rao", "citizen", "asha@example.com", "9822001100")
	f.catalog.addCategory(1, "Pothole")
	f.catalog.addLocation(1, "Kothrud")

	valid := primary.SubmitIssueRequest{
		ReporterID:  reporterID,
		CategoryID:  1,
		LocationID:  1,
		Description: "Deep pothole",
		Severity:    "High",
	}

	cases := []struct {
		name   string
		mutate func(*primary.SubmitIssueRequest)
	}{
		{"unknown reporter", func(r *primary.SubmitIssueRequest) { r.ReporterID = 404 }},
		{"unknown category", func(r *primary.SubmitIssueRequest) { r.CategoryID = 404 }},
		{"unknown location", func(r *primary.SubmitIssueRequest) { r.LocationID = 404 }},
		{"blank description", func(r *primary.SubmitIssueRequest) { r.Description = "   " }},
		{"nbsp-only description", func(r *primary.SubmitIssueRequest) { r.Description = "\u00a0\u00a0" }},
		{"bad severity", func(r *primary.SubmitIssueRequest) { r.Severity = "Urgent" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)
			_, err := f.service.SubmitIssue(context.Background(), req)
			if !errors.Is(err, errs.ErrValidation) {
				t.Errorf("expected ErrValidation, got: %v", err)
			}
		})
	}

	if len(f.issues.issues) != 0 {
		t.Errorf("rejected submissions stored %d issues, want 0", len(f.issues.issues))
	}
}

func TestApplyTransition(t *testing.T) {
	f := newIssueServiceFixture()
	staffID := f.users.addUser("Officer Kulkarni", "staff", "kulkarni@example.com", "9822002200")
	ctx := ctxutil.WithActor(context.Background(), staffID, "staff")

	resp, err := f.service.ApplyTransition(ctx, primary.TransitionRequest{
		IssueID:   7,
		NewStatus: "In-Progress",
	})
	if err != nil {
		t.Fatalf("ApplyTransition failed: %v", err)
	}
	if !resp.Changed {
		t.Error("expected Changed=true")
	}
	if resp.OldStatus != "Pending" || resp.NewStatus != "In-Progress" {
		t.Errorf("transition = %s→%s, want Pending→In-Progress", resp.OldStatus, resp.NewStatus)
	}

	if len(f.lifecycle.calls) != 1 {
		t.Fatalf("lifecycle store called %d times, want 1", len(f.lifecycle.calls))
	}
	call := f.lifecycle.calls[0]
	if call.issueID != 7 || call.newStatusID != 2 || call.actorID != staffID {
		t.Errorf("lifecycle call = %+v", call)
	}

	if !f.cache.wasInvalidated("history:7") {
		t.Error("transition should invalidate the issue's history snapshot")
	}
}

func TestApplyTransition_RequiresStaff(t *testing.T) {
	f := newIssueServiceFixture()
	citizenID := f.users.addUser("Asha Rao", "citizen", "asha@example.com", "9822001100")
	ctx := ctxutil.WithActor(context.Background(), citizenID, "citizen")

	_, err := f.service.ApplyTransition(ctx, primary.TransitionRequest{
		IssueID:   7,
		NewStatus: "Resolved",
	})
	if !errors.Is(err, errs.ErrValidation) {
		t.Errorf("expected ErrValidation, got: %v", err)
	}
	if len(f.lifecycle.calls) != 0 {
		t.Error("rejected transition must not reach the lifecycle store")
	}
}

func TestApplyTransition_UnknownStatus(t *testing.T) {
	f := newIssueServiceFixture()
	staffID := f.users.addUser("Officer Kulkarni", "staff", "kulkarni@example.com", "9822002200")
	ctx := ctxutil.WithActor(context.Background(), staffID, "staff")

	_, err := f.service.ApplyTransition(ctx, primary.TransitionRequest{
		IssueID:   7,
		NewStatus: "Done",
	})
	if !errors.Is(err, errs.ErrValidation) {
		t.Errorf("expected ErrValidation, got: %v", err)
	}
}

func TestApplyTransition_NoAuthenticatedUser(t *testing.T) {
	f := newIssueServiceFixture()

	_, err := f.service.ApplyTransition(context.Background(), primary.TransitionRequest{
		IssueID:   7,
		NewStatus: "Resolved",
	})
	if !errors.Is(err, errs.ErrValidation) {
		t.Errorf("expected ErrValidation, got: %v", err)
	}
}

func TestApplyTransition_NoOpSkipsInvalidation(t *testing.T) {
	f := newIssueServiceFixture()
	staffID := f.users.addUser("Officer Kulkarni", "staff", "kulkarni@example.com", "9822002200")
	ctx := ctxutil.WithActor(context.Background(), staffID, "staff")

	f.lifecycle.result = &secondary.TransitionResult{
		Changed:     false,
		OldStatusID: 1,
		NewStatusID: 1,
	}

	resp, err := f.service.ApplyTransition(ctx, primary.TransitionRequest{
		IssueID:   7,
		NewStatus: "Pending",
	})
	if err != nil {
		t.Fatalf("ApplyTransition failed: %v", err)
	}
	if resp.Changed {
		t.Error("expected Changed=false")
	}
	if len(f.cache.invalidated) != 0 {
		t.Error("a no-op transition must not invalidate snapshots")
	}
}

func TestListIssuesForUser_ServesCachedSnapshot(t *testing.T) {
	f := newIssueServiceFixture()
	reporterID := f.users.addUser("Asha Rao", "citizen", "asha@example.com", "9822001100")
	f.catalog.addCategory(1, "Pothole")
	f.catalog.addLocation(1, "Kothrud")

	if _, err := f.service.SubmitIssue(context.Background(), primary.SubmitIssueRequest{
		ReporterID: reporterID, CategoryID: 1, LocationID: 1,
		Description: "Deep pothole", Severity: "Low",
	}); err != nil {
		t.Fatalf("SubmitIssue failed: %v", err)
	}

	first, err := f.service.ListIssuesForUser(context.Background(), reporterID)
	if err != nil {
		t.Fatalf("first list failed: %v", err)
	}
	second, err := f.service.ListIssuesForUser(context.Background(), reporterID)
	if err != nil {
		t.Fatalf("second list failed: %v", err)
	}

	if f.issues.listCalls != 1 {
		t.Errorf("repository hit %d times, want 1 (second call served from cache)", f.issues.listCalls)
	}
	if len(first) != 1 || len(second) != 1 || first[0].ID != second[0].ID {
		t.Errorf("cached snapshot disagrees with the first read")
	}
}

func TestGetHistory_MissingIssue(t *testing.T) {
	f := newIssueServiceFixture()

	_, err := f.service.GetHistory(context.Background(), 404)
	if !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestListAllIssues_UnknownStatusFilter(t *testing.T) {
	f := newIssueServiceFixture()

	_, err := f.service.ListAllIssues(context.Background(), primary.IssueFilters{Status: "Finished"})
	if !errors.Is(err, errs.ErrValidation) {
		t.Errorf("expected ErrValidation, got: %v", err)
	}
}
