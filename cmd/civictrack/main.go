package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/civictrack/internal/cli"
	"github.com/example/civictrack/internal/db"
	"github.com/example/civictrack/internal/version"
	"github.com/example/civictrack/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "civictrack",
		Short:   "civictrack - civic issue reporting and tracking",
		Version: version.String(),
		Long: `civictrack is a CLI tool for reporting civic issues (potholes, broken
streetlights, garbage pileups) and tracking them through their lifecycle
from Pending to Resolved.`,
	}

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.RegisterCmd())
	rootCmd.AddCommand(cli.LoginCmd())
	rootCmd.AddCommand(cli.LogoutCmd())
	rootCmd.AddCommand(cli.WhoamiCmd())
	rootCmd.AddCommand(cli.IssueCmd())
	rootCmd.AddCommand(cli.ReportCmd())
	rootCmd.AddCommand(cli.CatalogCmd())

	err := rootCmd.Execute()

	// Flush caches and close the store regardless of command outcome.
	wire.CloseCache()
	db.Close()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
