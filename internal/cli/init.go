package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/civictrack/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var fixtures bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the civictrack database",
		Long: `Initialize the civictrack database with the required schema and the
reference catalog (issue categories and city areas).

With --fixtures, also create demo accounts for trying the tool out:
a staff member (staff@civictrack.local) and a citizen
(citizen@civictrack.local).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, err := db.GetDBPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			fmt.Printf("Initializing civictrack database at %s\n", dbPath)

			database, err := db.GetDB()
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}

			fmt.Println("✓ Database initialized successfully")

			if fixtures {
				if err := db.SeedFixtures(database); err != nil {
					return fmt.Errorf("failed to seed fixtures: %w", err)
				}
				fmt.Println("✓ Catalog and demo accounts seeded")
			} else {
				if err := db.SeedCatalog(database); err != nil {
					return fmt.Errorf("failed to seed catalog: %w", err)
				}
				fmt.Println("✓ Catalog seeded")
			}

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  civictrack register --name \"Your Name\" --phone 98XXXXXXXX --email you@example.com")
			fmt.Println("  civictrack login --email you@example.com")

			return nil
		},
	}

	cmd.Flags().BoolVar(&fixtures, "fixtures", false, "Seed demo accounts alongside the catalog")

	return cmd
}
