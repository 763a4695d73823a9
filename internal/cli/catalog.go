package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/civictrack/internal/wire"
)

// CatalogCmd returns the catalog command with its subcommands
func CatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse reference data for submitting issues",
	}

	cmd.AddCommand(catalogCategoriesCmd())
	cmd.AddCommand(catalogAreasCmd())
	cmd.AddCommand(catalogStatusesCmd())

	return cmd
}

func catalogCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List issue categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := wire.CatalogService().Categories(context.Background())
			if err != nil {
				return err
			}

			fmt.Printf("\n%-5s %s\n", "ID", "CATEGORY")
			fmt.Println("──────────────────────────────")
			for _, c := range categories {
				fmt.Printf("%-5d %s\n", c.ID, c.Name)
			}
			fmt.Println()
			return nil
		},
	}
}

func catalogAreasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "areas",
		Short: "List city areas",
		RunE: func(cmd *cobra.Command, args []string) error {
			locations, err := wire.CatalogService().Locations(context.Background())
			if err != nil {
				return err
			}

			fmt.Printf("\n%-5s %-15s %s\n", "ID", "AREA", "ADDRESS")
			fmt.Println("────────────────────────────────────────────────")
			for _, l := range locations {
				fmt.Printf("%-5d %-15s %s\n", l.ID, l.Area, l.Address)
			}
			fmt.Println()
			return nil
		},
	}
}

func catalogStatusesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "statuses",
		Short: "List the status vocabulary",
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses, err := wire.CatalogService().Statuses(context.Background())
			if err != nil {
				return err
			}

			for _, s := range statuses {
				fmt.Printf("%d. %s\n", s.ID, s.Name)
			}
			return nil
		},
	}
}
