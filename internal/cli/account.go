package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/civictrack/internal/config"
	"github.com/example/civictrack/internal/db"
	"github.com/example/civictrack/internal/ports/primary"
	"github.com/example/civictrack/internal/wire"
)

// RegisterCmd returns the register command
func RegisterCmd() *cobra.Command {
	var name, phone, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a citizen account",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := wire.AccountService().Register(context.Background(), primary.RegisterRequest{
				Name:     name,
				Phone:    phone,
				Email:    email,
				Password: password,
			})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Registered %s (user #%d)\n", user.Name, user.ID)
			fmt.Println("Log in with: civictrack login --email " + user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password (min 6 characters)")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("phone")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}

// LoginCmd returns the login command
func LoginCmd() *cobra.Command {
	var email, password string
	var staff bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and persist a local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			role := "citizen"
			if staff {
				role = "staff"
			}

			user, err := wire.AccountService().Authenticate(context.Background(), primary.AuthenticateRequest{
				Email:    email,
				Password: password,
				Role:     role,
			})
			if err != nil {
				return err
			}

			dir, err := db.GetDataDir()
			if err != nil {
				return err
			}
			if err := config.SaveSession(dir, &config.Session{
				UserID: user.ID,
				Name:   user.Name,
				Role:   user.Role,
			}); err != nil {
				return err
			}

			fmt.Printf("✓ Logged in as %s (%s)\n", user.Name, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.Flags().BoolVar(&staff, "staff", false, "Log in with the staff role")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}

// LogoutCmd returns the logout command
func LogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := db.GetDataDir()
			if err != nil {
				return err
			}
			if err := config.ClearSession(dir); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}
			fmt.Println("✓ Logged out")
			return nil
		},
	}
}

// WhoamiCmd returns the whoami command
func WhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := loadSession()
			if err != nil {
				return err
			}
			if session == nil {
				fmt.Println("Not logged in")
				return nil
			}

			// The session may outlive the account; resolve it fresh.
			user, err := wire.AccountService().GetUser(context.Background(), session.UserID)
			if err != nil {
				return fmt.Errorf("session user no longer exists: %w", err)
			}

			fmt.Printf("%s <%s> (%s)\n", user.Name, user.Email, user.Role)
			return nil
		},
	}
}
