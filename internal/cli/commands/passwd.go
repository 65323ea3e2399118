package commands

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewChangePasswordCmd creates the change-password command
func NewChangePasswordCmd() *cobra.Command {
	var current, next string

	cmd := &cobra.Command{
		Use:   "change-password",
		Short: "Change the account password",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChangePassword(current, next)
		},
	}

	cmd.Flags().StringVar(&current, "current", "", "Current password (will prompt if not provided)")
	cmd.Flags().StringVar(&next, "new", "", "New password (will prompt if not provided)")

	return cmd
}

func runChangePassword(current, next string, opts ...Option) error {
	o, err := buildOptions(opts)
	if err != nil {
		return err
	}

	sess, err := requireSession(o)
	if err != nil {
		return err
	}

	interactive := term.IsTerminal(int(syscall.Stdin))

	if current == "" {
		if !interactive {
			return fmt.Errorf("current password is required in non-interactive mode (use --current)")
		}
		current, err = promptPassword(o, "Current password: ")
		if err != nil {
			return err
		}
	}

	if next == "" {
		if !interactive {
			return fmt.Errorf("new password is required in non-interactive mode (use --new)")
		}
		next, err = promptPassword(o, "New password: ")
		if err != nil {
			return err
		}
		confirm, err := promptPassword(o, "Confirm new password: ")
		if err != nil {
			return err
		}
		if next != confirm {
			return fmt.Errorf("new passwords do not match")
		}
	}

	if len(next) < 6 {
		return fmt.Errorf("new password must be at least 6 characters long")
	}

	// Wrong current password comes back as the server's own message
	if err := sess.ChangePassword(current, next); err != nil {
		return err
	}

	fmt.Fprintln(o.out, "✓ Password changed successfully.")
	return nil
}

func promptPassword(o *options, label string) (string, error) {
	fmt.Fprint(o.out, label)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Fprintln(o.out)
	return string(bytePassword), nil
}
