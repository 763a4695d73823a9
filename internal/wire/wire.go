// Package wire provides dependency injection for the civictrack application.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/example/civictrack/internal/adapters/badgercache"
	cliadapter "github.com/example/civictrack/internal/adapters/cli"
	"github.com/example/civictrack/internal/adapters/sqlite"
	"github.com/example/civictrack/internal/app"
	"github.com/example/civictrack/internal/db"
	"github.com/example/civictrack/internal/ports/primary"
	"github.com/example/civictrack/internal/ports/secondary"
)

var (
	issueService   primary.IssueService
	accountService primary.AccountService
	reportService  primary.ReportService
	catalogService primary.CatalogService
	snapshotCache  secondary.SnapshotCache
	once           sync.Once
)

// IssueService returns the singleton IssueService instance.
func IssueService() primary.IssueService {
	once.Do(initServices)
	return issueService
}

// AccountService returns the singleton AccountService instance.
func AccountService() primary.AccountService {
	once.Do(initServices)
	return accountService
}

// ReportService returns the singleton ReportService instance.
func ReportService() primary.ReportService {
	once.Do(initServices)
	return reportService
}

// CatalogService returns the singleton CatalogService instance.
func CatalogService() primary.CatalogService {
	once.Do(initServices)
	return catalogService
}

// CloseCache flushes and closes the snapshot cache. Called at shutdown.
func CloseCache() error {
	if snapshotCache != nil {
		return snapshotCache.Close()
	}
	return nil
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	dataDir, err := db.GetDataDir()
	if err != nil {
		log.Fatalf("failed to resolve data directory: %v", err)
	}
	snapshotCache, err = badgercache.Open(filepath.Join(dataDir, "cache"))
	if err != nil {
		log.Fatalf("failed to initialize snapshot cache: %v", err)
	}

	// Repository adapters (secondary ports)
	issueRepo := sqlite.NewIssueRepository(database)
	historyRepo := sqlite.NewHistoryRepository(database)
	lifecycle := sqlite.NewLifecycleStore(database)
	userRepo := sqlite.NewUserRepository(database)
	catalogRepo := sqlite.NewCatalogRepository(database)
	reportRepo := sqlite.NewReportRepository(database)

	// Services (primary port implementations)
	issueService = app.NewIssueService(issueRepo, historyRepo, lifecycle, userRepo, catalogRepo, snapshotCache)
	accountService = app.NewAccountService(userRepo, snapshotCache)
	reportService = app.NewReportService(reportRepo, userRepo, snapshotCache)
	catalogService = app.NewCatalogService(catalogRepo, snapshotCache)
}

// IssueAdapter returns a new IssueAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func IssueAdapter() *cliadapter.IssueAdapter {
	return IssueAdapterWithOutput(os.Stdout)
}

// IssueAdapterWithOutput returns a new IssueAdapter writing to the given
// output. This variant allows testing or alternate output destinations.
func IssueAdapterWithOutput(out io.Writer) *cliadapter.IssueAdapter {
	once.Do(initServices)
	return cliadapter.NewIssueAdapter(issueService, out)
}

// ReportAdapter returns a new ReportAdapter writing to stdout.
func ReportAdapter() *cliadapter.ReportAdapter {
	return ReportAdapterWithOutput(os.Stdout)
}

// ReportAdapterWithOutput returns a new ReportAdapter writing to the given
// output.
func ReportAdapterWithOutput(out io.Writer) *cliadapter.ReportAdapter {
	once.Do(initServices)
	return cliadapter.NewReportAdapter(reportService, out)
}
