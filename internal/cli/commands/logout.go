package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/silverstar-dev/silverstar/internal/logger"
	"github.com/silverstar-dev/silverstar/internal/session"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout()
		},
	}
}

// runLogout clears the token locally. No server round-trip is needed; the
// server may invalidate the token on its own schedule.
func runLogout(opts ...Option) error {
	o, err := buildOptions(opts)
	if err != nil {
		return err
	}

	sess := session.New(o.client, o.tokens, logger.GetLogger())
	if err := sess.Logout(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	fmt.Fprintln(o.out, "✓ Logged out.")
	return nil
}
