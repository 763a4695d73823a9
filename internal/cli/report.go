package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/civictrack/internal/wire"
)

// ReportCmd returns the report command with its subcommands
func ReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregated views over the issue ledger",
	}

	cmd.AddCommand(reportStatsCmd())
	cmd.AddCommand(reportCategoriesCmd())
	cmd.AddCommand(reportAreasCmd())
	cmd.AddCommand(reportTimelineCmd())
	cmd.AddCommand(reportResolutionCmd())
	cmd.AddCommand(reportCitizensCmd())

	return cmd
}

func reportStatsCmd() *cobra.Command {
	var mine bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Issue counts per status",
		RunE: func(cmd *cobra.Command, args []string) error {
			var reporterID int64
			if mine {
				session, err := requireSession()
				if err != nil {
					return err
				}
				reporterID = session.UserID
			}
			return wire.ReportAdapter().Stats(context.Background(), reporterID)
		},
	}

	cmd.Flags().BoolVar(&mine, "mine", false, "Count only your own issues")

	return cmd
}

func reportCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Issue counts per category, busiest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ReportAdapter().Categories(context.Background())
		},
	}
}

func reportAreasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "areas",
		Short: "Top 10 areas by issue count",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ReportAdapter().Areas(context.Background())
		},
	}
}

func reportTimelineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timeline",
		Short: "Daily issue counts for the last 30 days",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ReportAdapter().Timeline(context.Background())
		},
	}
}

func reportResolutionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolution",
		Short: "Average time from submission to resolution",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ReportAdapter().Resolution(context.Background())
		},
	}
}

func reportCitizensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "citizens",
		Short: "Number of registered citizens",
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := wire.ReportService().CitizenCount(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("Registered citizens: %d\n", count)
			return nil
		},
	}
}
