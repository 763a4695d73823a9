package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/civictrack/internal/ports/primary"
	"github.com/example/civictrack/internal/wire"
)

// IssueCmd returns the issue command with its subcommands
func IssueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Submit and track civic issues",
		Long:  "Submit issues, inspect their details and history, and move them through the status lifecycle",
	}

	cmd.AddCommand(issueSubmitCmd())
	cmd.AddCommand(issueListCmd())
	cmd.AddCommand(issueShowCmd())
	cmd.AddCommand(issueHistoryCmd())
	cmd.AddCommand(issueTransitionCmd())

	return cmd
}

func parseIssueID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid issue ID %q", arg)
	}
	return id, nil
}

func issueSubmitCmd() *cobra.Command {
	var categoryID, locationID int64
	var severity, photo string

	cmd := &cobra.Command{
		Use:   "submit [description]",
		Short: "Submit a new issue",
		Long: `Submit a new issue in the Pending status.

Category and location IDs come from 'civictrack catalog categories' and
'civictrack catalog areas'.

Examples:
  civictrack issue submit "Deep pothole near the bus stop" --category 1 --location 3 --severity High
  civictrack issue submit "Streetlight out" --category 2 --location 1 --severity Low --photo lamp.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := requireSession()
			if err != nil {
				return err
			}

			return wire.IssueAdapter().Submit(context.Background(), primary.SubmitIssueRequest{
				ReporterID:  session.UserID,
				CategoryID:  categoryID,
				LocationID:  locationID,
				Description: args[0],
				Severity:    severity,
				PhotoPath:   photo,
			})
		},
	}

	cmd.Flags().Int64Var(&categoryID, "category", 0, "Category ID")
	cmd.Flags().Int64Var(&locationID, "location", 0, "Location ID")
	cmd.Flags().StringVar(&severity, "severity", "Medium", "Severity: Low, Medium, or High")
	cmd.Flags().StringVar(&photo, "photo", "", "Photo reference (optional)")
	cmd.MarkFlagRequired("category")
	cmd.MarkFlagRequired("location")

	return cmd
}

func issueListCmd() *cobra.Command {
	var all bool
	var status, severity string
	var categoryID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List issues",
		Long: `List your own issues (newest first), or with --all every issue in the
city, annotated with reporter and last-updater names and ordered by ID.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := requireSession()
			if err != nil {
				return err
			}

			if !all {
				return wire.IssueAdapter().ListMine(context.Background(), session.UserID)
			}

			return wire.IssueAdapter().ListAll(context.Background(), primary.IssueFilters{
				Status:     status,
				Severity:   severity,
				CategoryID: categoryID,
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "List every issue, not just yours")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status label (with --all)")
	cmd.Flags().StringVar(&severity, "severity", "", "Filter by severity (with --all)")
	cmd.Flags().Int64Var(&categoryID, "category", 0, "Filter by category ID (with --all)")

	return cmd
}

func issueShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [issue-id]",
		Short: "Show issue details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIssueID(args[0])
			if err != nil {
				return err
			}
			return wire.IssueAdapter().Show(context.Background(), id)
		},
	}
}

func issueHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history [issue-id]",
		Short: "Show an issue's status history, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIssueID(args[0])
			if err != nil {
				return err
			}
			return wire.IssueAdapter().History(context.Background(), id)
		},
	}
}

func issueTransitionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transition [issue-id] [status]",
		Short: "Move an issue to a new status (staff only)",
		Long: `Move an issue to a new status, recording the change in the issue's
history. Statuses: Pending, In-Progress, Resolved, Closed, Duplicate.
Applying the current status is a no-op.

Examples:
  civictrack issue transition 12 In-Progress
  civictrack issue transition 12 Resolved`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := requireRole("staff")
			if err != nil {
				return err
			}

			id, err := parseIssueID(args[0])
			if err != nil {
				return err
			}

			return wire.IssueAdapter().Transition(sessionContext(session), id, args[1])
		},
	}
}
