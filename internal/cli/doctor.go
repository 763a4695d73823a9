package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/civictrack/internal/core/status"
	"github.com/example/civictrack/internal/db"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for installation validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the civictrack installation and data integrity",
		Long: `Health check for the local civictrack installation.

Validates:
- Data directory and database file
- Schema tables
- Status vocabulary integrity
- Agreement between issue statuses and the history ledger

Examples:
  civictrack doctor          # Run full health check
  civictrack doctor --quiet  # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := []CheckResult{
				checkDataDir(),
				checkDatabase(),
				checkVocabulary(),
				checkLedgerAgreement(),
			}

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				fmt.Println()
				fmt.Println("Check              Status")
				fmt.Println("─────────────────────────")
				for _, r := range results {
					fmt.Printf("%-18s %s\n", r.Name, r.Status)
				}
				fmt.Println()

				hasDetails := false
				for _, r := range results {
					if r.Status != "✓" && r.Details != "" {
						if !hasDetails {
							fmt.Println("Details:")
							hasDetails = true
						}
						fmt.Printf("\n%s:\n%s\n", r.Name, r.Details)
					}
				}

				if hasErrors {
					fmt.Println("\n⚠ Issues found.")
				} else {
					fmt.Println("All checks passed.")
				}
			}

			if hasErrors {
				return fmt.Errorf("installation validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

// checkDataDir validates the data directory exists
func checkDataDir() CheckResult {
	dir, err := db.GetDataDir()
	if err != nil {
		return CheckResult{Name: "Data directory", Status: "✗", Details: "  " + err.Error()}
	}
	if _, err := os.Stat(dir); err != nil {
		return CheckResult{Name: "Data directory", Status: "✗",
			Details: fmt.Sprintf("  %s missing (run 'civictrack init')", dir)}
	}
	return CheckResult{Name: "Data directory", Status: "✓"}
}

// checkDatabase validates the database opens and has the expected tables
func checkDatabase() CheckResult {
	database, err := db.GetDB()
	if err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: "  " + err.Error()}
	}

	expected := []string{"users", "categories", "locations", "status", "issues", "resolution_history"}
	var missing []string
	for _, table := range expected {
		var name string
		err := database.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err == sql.ErrNoRows {
			missing = append(missing, table)
		} else if err != nil {
			return CheckResult{Name: "Database", Status: "✗", Details: "  " + err.Error()}
		}
	}
	if len(missing) > 0 {
		return CheckResult{Name: "Database", Status: "✗",
			Details: fmt.Sprintf("  missing tables: %v (run 'civictrack init')", missing)}
	}
	return CheckResult{Name: "Database", Status: "✓"}
}

// checkVocabulary validates the status table matches the built-in vocabulary
func checkVocabulary() CheckResult {
	database, err := db.GetDB()
	if err != nil {
		return CheckResult{Name: "Status vocabulary", Status: "✗", Details: "  " + err.Error()}
	}

	for _, st := range status.All() {
		var name string
		err := database.QueryRow(
			"SELECT status_name FROM status WHERE status_id = ?", int64(st),
		).Scan(&name)
		if err == sql.ErrNoRows {
			return CheckResult{Name: "Status vocabulary", Status: "✗",
				Details: fmt.Sprintf("  status %d (%s) missing from the status table", int64(st), st.Name())}
		}
		if err != nil {
			return CheckResult{Name: "Status vocabulary", Status: "✗", Details: "  " + err.Error()}
		}
		if name != st.Name() {
			return CheckResult{Name: "Status vocabulary", Status: "✗",
				Details: fmt.Sprintf("  status %d is %q, want %q", int64(st), name, st.Name())}
		}
	}
	return CheckResult{Name: "Status vocabulary", Status: "✓"}
}

// checkLedgerAgreement sweeps for issues whose status disagrees with their
// latest history entry. An issue with no entries is fine in any status it
// was created in; one with entries must sit at the newest entry's target.
func checkLedgerAgreement() CheckResult {
	database, err := db.GetDB()
	if err != nil {
		return CheckResult{Name: "Ledger agreement", Status: "✗", Details: "  " + err.Error()}
	}

	rows, err := database.Query(`
		WITH latest AS (
			SELECT issue_id, new_status_id,
			       ROW_NUMBER() OVER (PARTITION BY issue_id ORDER BY timestamp DESC, history_id DESC) AS rn
			FROM resolution_history
		)
		SELECT i.issue_id, i.status_id, l.new_status_id
		FROM issues i
		JOIN latest l ON l.issue_id = i.issue_id AND l.rn = 1
		WHERE i.status_id != l.new_status_id`)
	if err != nil {
		return CheckResult{Name: "Ledger agreement", Status: "✗", Details: "  " + err.Error()}
	}
	defer rows.Close()

	var details string
	count := 0
	for rows.Next() {
		var issueID, current, ledger int64
		if err := rows.Scan(&issueID, &current, &ledger); err != nil {
			return CheckResult{Name: "Ledger agreement", Status: "✗", Details: "  " + err.Error()}
		}
		count++
		if count <= 5 {
			details += fmt.Sprintf("  issue #%d is %s but its ledger ends at %s\n",
				issueID, status.Status(current).Name(), status.Status(ledger).Name())
		}
	}
	if err := rows.Err(); err != nil {
		return CheckResult{Name: "Ledger agreement", Status: "✗", Details: "  " + err.Error()}
	}

	if count > 0 {
		if count > 5 {
			details += fmt.Sprintf("  ... and %d more\n", count-5)
		}
		return CheckResult{Name: "Ledger agreement", Status: "✗", Details: details}
	}
	return CheckResult{Name: "Ledger agreement", Status: "✓"}
}
