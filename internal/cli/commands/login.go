package commands

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/silverstar-dev/silverstar/internal/api"
	"github.com/silverstar-dev/silverstar/internal/logger"
	"github.com/silverstar-dev/silverstar/internal/session"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the menu API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(email, password)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set SILVERSTAR_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set SILVERSTAR_PASSWORD, will prompt if not provided)")

	return cmd
}

func runLogin(email, password string, opts ...Option) error {
	// Environment variables cover CI use
	if email == "" {
		email = os.Getenv("SILVERSTAR_EMAIL")
	}
	if password == "" {
		password = os.Getenv("SILVERSTAR_PASSWORD")
	}

	if email == "" {
		return fmt.Errorf("email is required (use --email flag or SILVERSTAR_EMAIL env var)")
	}

	o, err := buildOptions(opts)
	if err != nil {
		return err
	}

	// Prompt for password when interactive
	if password == "" {
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Fprint(o.out, "Password: ")
			bytePassword, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = string(bytePassword)
			fmt.Fprintln(o.out)
		} else {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or SILVERSTAR_PASSWORD env var)")
		}
	}

	sess := session.New(o.client, o.tokens, logger.GetLogger())

	user, err := sess.Login(email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Fprintln(o.out, "✓ Login successful!")
	fmt.Fprintf(o.out, "  User: %s\n", user.Email)
	switch user.Role {
	case api.RoleSuperAdmin:
		fmt.Fprintln(o.out, "  Role: Super admin")
		fmt.Fprintln(o.out, "\nManage restaurants with: silverstar restaurants ls")
	case api.RoleAdmin:
		fmt.Fprintln(o.out, "  Role: Admin")
	default:
		fmt.Fprintf(o.out, "  Role: %s\n", user.Role)
	}

	return nil
}
