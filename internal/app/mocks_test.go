package app

// Shared mock implementations of the secondary ports. The services under
// test share repositories, so the mocks live together here.

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/example/civictrack/internal/core/errs"
	"github.com/example/civictrack/internal/core/status"
	"github.com/example/civictrack/internal/ports/secondary"
)

// ============================================================================
// Issue repository
// ============================================================================

type mockIssueRepository struct {
	issues    []*secondary.IssueRecord
	nextID    int64
	createErr error
	listCalls int
}

func newMockIssueRepository() *mockIssueRepository {
	return &mockIssueRepository{}
}

func (m *mockIssueRepository) Create(ctx context.Context, record *secondary.IssueRecord) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	m.nextID++
	stored := *record
	stored.ID = m.nextID
	stored.StatusID = int64(status.Initial)
	stored.Status = status.Initial.Name()
	stored.CreatedAt = "2026-08-01T10:00:00Z"
	stored.UpdatedAt = stored.CreatedAt
	m.issues = append(m.issues, &stored)
	return stored.ID, nil
}

func (m *mockIssueRepository) GetByID(ctx context.Context, id int64) (*secondary.IssueRecord, error) {
	for _, i := range m.issues {
		if i.ID == id {
			return i, nil
		}
	}
	return nil, fmt.Errorf("issue %d: %w", id, errs.ErrNotFound)
}

func (m *mockIssueRepository) ListByReporter(ctx context.Context, reporterID int64) ([]*secondary.IssueRecord, error) {
	m.listCalls++
	var result []*secondary.IssueRecord
	for _, i := range m.issues {
		if i.ReporterID == reporterID {
			result = append(result, i)
		}
	}
	return result, nil
}

func (m *mockIssueRepository) ListAll(ctx context.Context, filters secondary.IssueFilters) ([]*secondary.IssueRecord, error) {
	m.listCalls++
	var result []*secondary.IssueRecord
	for _, i := range m.issues {
		if filters.StatusID != 0 && i.StatusID != filters.StatusID {
			continue
		}
		if filters.Severity != "" && i.Severity != filters.Severity {
			continue
		}
		if filters.CategoryID != 0 && i.CategoryID != filters.CategoryID {
			continue
		}
		result = append(result, i)
	}
	return result, nil
}

// ============================================================================
// History repository
// ============================================================================

type mockHistoryRepository struct {
	entries map[int64][]*secondary.HistoryRecord
}

func newMockHistoryRepository() *mockHistoryRepository {
	return &mockHistoryRepository{entries: make(map[int64][]*secondary.HistoryRecord)}
}

func (m *mockHistoryRepository) ListByIssue(ctx context.Context, issueID int64) ([]*secondary.HistoryRecord, error) {
	return m.entries[issueID], nil
}

func (m *mockHistoryRepository) LatestUpdater(ctx context.Context, issueID int64) (string, error) {
	entries := m.entries[issueID]
	if len(entries) == 0 {
		return "", nil
	}
	return entries[0].UpdaterName, nil
}

// ============================================================================
// Lifecycle store
// ============================================================================

type transitionCall struct {
	issueID     int64
	newStatusID int64
	actorID     int64
}

type mockLifecycleStore struct {
	result *secondary.TransitionResult
	err    error
	calls  []transitionCall
}

func (m *mockLifecycleStore) Transition(ctx context.Context, issueID, newStatusID, actorID int64) (*secondary.TransitionResult, error) {
	m.calls = append(m.calls, transitionCall{issueID, newStatusID, actorID})
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &secondary.TransitionResult{
		Changed:     true,
		OldStatusID: int64(status.Initial),
		NewStatusID: newStatusID,
		HistoryID:   1,
	}, nil
}

// ============================================================================
// User repository
// ============================================================================

type mockUserRepository struct {
	users  map[int64]*secondary.UserRecord
	nextID int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[int64]*secondary.UserRecord)}
}

func (m *mockUserRepository) addUser(name, role, email, phone string) int64 {
	m.nextID++
	m.users[m.nextID] = &secondary.UserRecord{
		ID: m.nextID, Name: name, Role: role, Email: email, Phone: phone,
		CreatedAt: "2026-08-01T10:00:00Z",
	}
	return m.nextID
}

func (m *mockUserRepository) Create(ctx context.Context, user *secondary.UserRecord) (int64, error) {
	for _, u := range m.users {
		if u.Email == user.Email || u.Phone == user.Phone {
			return 0, fmt.Errorf("email or phone already registered: %w", errs.ErrConflict)
		}
	}
	m.nextID++
	stored := *user
	stored.ID = m.nextID
	stored.CreatedAt = "2026-08-01T10:00:00Z"
	m.users[m.nextID] = &stored
	return m.nextID, nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*secondary.UserRecord, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user %d: %w", id, errs.ErrNotFound)
}

func (m *mockUserRepository) GetByEmailAndRole(ctx context.Context, email, role string) (*secondary.UserRecord, error) {
	for _, u := range m.users {
		if u.Email == email && u.Role == role {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user %s (%s): %w", email, role, errs.ErrNotFound)
}

func (m *mockUserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := m.users[id]
	return ok, nil
}

func (m *mockUserRepository) CountByRole(ctx context.Context, role string) (int, error) {
	count := 0
	for _, u := range m.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

// ============================================================================
// Catalog repository
// ============================================================================

type mockCatalogRepository struct {
	categories []*secondary.CategoryRecord
	locations  []*secondary.LocationRecord
}

func newMockCatalogRepository() *mockCatalogRepository {
	return &mockCatalogRepository{}
}

func (m *mockCatalogRepository) addCategory(id int64, name string) {
	m.categories = append(m.categories, &secondary.CategoryRecord{ID: id, Name: name})
}

func (m *mockCatalogRepository) addLocation(id int64, area string) {
	m.locations = append(m.locations, &secondary.LocationRecord{ID: id, Area: area})
}

func (m *mockCatalogRepository) Categories(ctx context.Context) ([]*secondary.CategoryRecord, error) {
	return m.categories, nil
}

func (m *mockCatalogRepository) Locations(ctx context.Context) ([]*secondary.LocationRecord, error) {
	return m.locations, nil
}

func (m *mockCatalogRepository) Statuses(ctx context.Context) ([]*secondary.StatusRecord, error) {
	var records []*secondary.StatusRecord
	for _, s := range status.All() {
		records = append(records, &secondary.StatusRecord{ID: int64(s), Name: s.Name()})
	}
	return records, nil
}

func (m *mockCatalogRepository) CategoryExists(ctx context.Context, id int64) (bool, error) {
	for _, c := range m.categories {
		if c.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockCatalogRepository) LocationExists(ctx context.Context, id int64) (bool, error) {
	for _, l := range m.locations {
		if l.ID == id {
			return true, nil
		}
	}
	return false, nil
}

// ============================================================================
// Report repository
// ============================================================================

type mockReportRepository struct {
	statusCounts []*secondary.StatusCount
	total        int
	categories   []*secondary.CategoryCount
	areas        []*secondary.AreaCount
	areaLimit    int
	points       []*secondary.TimelinePoint
	days         int
	avgHours     float64
	sample       int
	calls        int
}

func (m *mockReportRepository) StatusCounts(ctx context.Context, reporterID int64) ([]*secondary.StatusCount, error) {
	m.calls++
	return m.statusCounts, nil
}

func (m *mockReportRepository) TotalIssues(ctx context.Context, reporterID int64) (int, error) {
	return m.total, nil
}

func (m *mockReportRepository) CountsByCategory(ctx context.Context) ([]*secondary.CategoryCount, error) {
	m.calls++
	return m.categories, nil
}

func (m *mockReportRepository) CountsByArea(ctx context.Context, limit int) ([]*secondary.AreaCount, error) {
	m.calls++
	m.areaLimit = limit
	return m.areas, nil
}

func (m *mockReportRepository) Timeline(ctx context.Context, days int) ([]*secondary.TimelinePoint, error) {
	m.calls++
	m.days = days
	return m.points, nil
}

func (m *mockReportRepository) AverageResolutionHours(ctx context.Context) (float64, int, error) {
	m.calls++
	return m.avgHours, m.sample, nil
}

// ============================================================================
// Snapshot cache
// ============================================================================

type mockSnapshotCache struct {
	data        map[string][]byte
	invalidated []string
}

func newMockCache() *mockSnapshotCache {
	return &mockSnapshotCache{data: make(map[string][]byte)}
}

func (m *mockSnapshotCache) Get(ctx context.Context, key string) ([]byte, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *mockSnapshotCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	m.data[key] = value
}

func (m *mockSnapshotCache) InvalidatePrefix(ctx context.Context, prefixes ...string) {
	m.invalidated = append(m.invalidated, prefixes...)
	for key := range m.data {
		for _, p := range prefixes {
			if strings.HasPrefix(key, p) {
				delete(m.data, key)
				break
			}
		}
	}
}

func (m *mockSnapshotCache) Close() error { return nil }

func (m *mockSnapshotCache) wasInvalidated(prefix string) bool {
	for _, p := range m.invalidated {
		if p == prefix {
			return true
		}
	}
	return false
}

// Interface checks
var (
	_ secondary.IssueRepository   = (*mockIssueRepository)(nil)
	_ secondary.HistoryRepository = (*mockHistoryRepository)(nil)
	_ secondary.LifecycleStore    = (*mockLifecycleStore)(nil)
	_ secondary.UserRepository    = (*mockUserRepository)(nil)
	_ secondary.CatalogRepository = (*mockCatalogRepository)(nil)
	_ secondary.ReportRepository  = (*mockReportRepository)(nil)
	_ secondary.SnapshotCache     = (*mockSnapshotCache)(nil)
)
