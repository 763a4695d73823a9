package app

import (
	"context"
	"fmt"

	"github.com/example/civictrack/internal/core/account"
	"github.com/example/civictrack/internal/core/errs"
	"github.com/example/civictrack/internal/core/issue"
	"github.com/example/civictrack/internal/core/status"
	"github.com/example/civictrack/internal/ctxutil"
	"github.com/example/civictrack/internal/ports/primary"
	"github.com/example/civictrack/internal/ports/secondary"
)

// IssueServiceImpl implements the IssueService interface.
type IssueServiceImpl struct {
	issueRepo   secondary.IssueRepository
	historyRepo secondary.HistoryRepository
	lifecycle   secondary.LifecycleStore
	userRepo    secondary.UserRepository
	catalogRepo secondary.CatalogRepository
	cache       secondary.SnapshotCache
}

// NewIssueService creates a new IssueService with injected dependencies.
func NewIssueService(
	issueRepo secondary.IssueRepository,
	historyRepo secondary.HistoryRepository,
	lifecycle secondary.LifecycleStore,
	userRepo secondary.UserRepository,
	catalogRepo secondary.CatalogRepository,
	cache secondary.SnapshotCache,
) *IssueServiceImpl {
	return &IssueServiceImpl{
		issueRepo:   issueRepo,
		historyRepo: historyRepo,
		lifecycle:   lifecycle,
		userRepo:    userRepo,
		catalogRepo: catalogRepo,
		cache:       cache,
	}
}

// SubmitIssue creates a new issue in the initial status. No history entry is
// written; the ledger records transitions, not submissions.
func (s *IssueServiceImpl) SubmitIssue(ctx context.Context, req primary.SubmitIssueRequest) (*primary.SubmitIssueResponse, error) {
	description := account.Clean(req.Description)

	reporterExists, err := s.userRepo.Exists(ctx, req.ReporterID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate reporter: %w", err)
	}
	categoryExists, err := s.catalogRepo.CategoryExists(ctx, req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate category: %w", err)
	}
	locationExists, err := s.catalogRepo.LocationExists(ctx, req.LocationID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate location: %w", err)
	}

	guard := issue.CanSubmit(issue.SubmitContext{
		ReporterID:     req.ReporterID,
		ReporterExists: reporterExists,
		CategoryID:     req.CategoryID,
		CategoryExists: categoryExists,
		LocationID:     req.LocationID,
		LocationExists: locationExists,
		Description:    description,
		Severity:       req.Severity,
	})
	if !guard.Allowed {
		return nil, fmt.Errorf("%s: %w", guard.Reason, errs.ErrValidation)
	}

	id, err := s.issueRepo.Create(ctx, &secondary.IssueRecord{
		ReporterID:  req.ReporterID,
		CategoryID:  req.CategoryID,
		LocationID:  req.LocationID,
		Description: description,
		Severity:    req.Severity,
		PhotoPath:   req.PhotoPath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}

	created, err := s.issueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created issue: %w", err)
	}

	s.cache.InvalidatePrefix(ctx, "issues:", "stats:", "report:")

	return &primary.SubmitIssueResponse{
		IssueID: id,
		Issue:   recordToIssue(created),
	}, nil
}

// GetIssue retrieves an issue by ID.
func (s *IssueServiceImpl) GetIssue(ctx context.Context, issueID int64) (*primary.Issue, error) {
	record, err := s.issueRepo.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	return recordToIssue(record), nil
}

// ListIssuesForUser retrieves a reporter's issues, newest first.
func (s *IssueServiceImpl) ListIssuesForUser(ctx context.Context, userID int64) ([]*primary.Issue, error) {
	key := fmt.Sprintf("issues:user:%d", userID)
	return cachedJSON(ctx, s.cache, key, listTTL, func() ([]*primary.Issue, error) {
		records, err := s.issueRepo.ListByReporter(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list issues: %w", err)
		}
		return recordsToIssues(records), nil
	})
}

// ListAllIssues retrieves issues matching the filters.
func (s *IssueServiceImpl) ListAllIssues(ctx context.Context, filters primary.IssueFilters) ([]*primary.Issue, error) {
	repoFilters := secondary.IssueFilters{
		Severity:   filters.Severity,
		CategoryID: filters.CategoryID,
	}
	if filters.Status != "" {
		st, ok := status.Parse(filters.Status)
		if !ok {
			return nil, fmt.Errorf("unknown status %q: %w", filters.Status, errs.ErrValidation)
		}
		repoFilters.StatusID = int64(st)
	}

	key := fmt.Sprintf("issues:all:s%d:v%s:c%d", repoFilters.StatusID, filters.Severity, filters.CategoryID)
	return cachedJSON(ctx, s.cache, key, listTTL, func() ([]*primary.Issue, error) {
		records, err := s.issueRepo.ListAll(ctx, repoFilters)
		if err != nil {
			return nil, fmt.Errorf("failed to list issues: %w", err)
		}
		return recordsToIssues(records), nil
	})
}

// GetHistory retrieves an issue's transition history, newest first.
func (s *IssueServiceImpl) GetHistory(ctx context.Context, issueID int64) ([]*primary.HistoryEntry, error) {
	// Verify the issue exists so a missing issue is NotFound rather than
	// an empty history.
	if _, err := s.issueRepo.GetByID(ctx, issueID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("history:%d", issueID)
	return cachedJSON(ctx, s.cache, key, listTTL, func() ([]*primary.HistoryEntry, error) {
		records, err := s.historyRepo.ListByIssue(ctx, issueID)
		if err != nil {
			return nil, fmt.Errorf("failed to list history: %w", err)
		}
		entries := make([]*primary.HistoryEntry, len(records))
		for i, r := range records {
			entries[i] = &primary.HistoryEntry{
				Timestamp:   r.Timestamp,
				UpdaterName: r.UpdaterName,
				OldStatus:   r.OldStatus,
				NewStatus:   r.NewStatus,
			}
		}
		return entries, nil
	})
}

// ApplyTransition changes an issue's status and appends the matching ledger
// entry in one atomic unit. The acting user comes from the request context.
func (s *IssueServiceImpl) ApplyTransition(ctx context.Context, req primary.TransitionRequest) (*primary.TransitionResponse, error) {
	newStatus, ok := status.Parse(req.NewStatus)
	if !ok {
		return nil, fmt.Errorf("unknown status %q: %w", req.NewStatus, errs.ErrValidation)
	}

	actorID := ctxutil.ActorFromContext(ctx)
	if actorID == 0 {
		return nil, fmt.Errorf("no authenticated user: %w", errs.ErrValidation)
	}

	guard := issue.CanTransition(issue.TransitionContext{
		IssueID:   req.IssueID,
		NewStatus: newStatus,
		ActorRole: ctxutil.RoleFromContext(ctx),
	})
	if !guard.Allowed {
		return nil, fmt.Errorf("%s: %w", guard.Reason, errs.ErrValidation)
	}

	result, err := s.lifecycle.Transition(ctx, req.IssueID, int64(newStatus), actorID)
	if err != nil {
		return nil, err
	}

	if result.Changed {
		s.cache.InvalidatePrefix(ctx, "issues:", "stats:", "report:",
			fmt.Sprintf("history:%d", req.IssueID))
	}

	return &primary.TransitionResponse{
		Changed:   result.Changed,
		OldStatus: status.Status(result.OldStatusID).Name(),
		NewStatus: status.Status(result.NewStatusID).Name(),
	}, nil
}

// Helper methods

func recordToIssue(r *secondary.IssueRecord) *primary.Issue {
	return &primary.Issue{
		ID:          r.ID,
		Reporter:    r.ReporterName,
		ReporterID:  r.ReporterID,
		Category:    r.Category,
		Area:        r.Area,
		Address:     r.Address,
		Description: r.Description,
		Severity:    r.Severity,
		Status:      r.Status,
		PhotoPath:   r.PhotoPath,
		UpdatedBy:   r.UpdatedBy,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func recordsToIssues(records []*secondary.IssueRecord) []*primary.Issue {
	issues := make([]*primary.Issue, len(records))
	for i, r := range records {
		issues[i] = recordToIssue(r)
	}
	return issues
}

// Ensure IssueServiceImpl implements the interface
var _ primary.IssueService = (*IssueServiceImpl)(nil)
