package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/silverstar-dev/silverstar/internal/cli/userconfig"
)

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhoami()
		},
	}
}

func runWhoami(opts ...Option) error {
	o, err := buildOptions(opts)
	if err != nil {
		return err
	}

	sess, err := requireSession(o)
	if err != nil {
		return err
	}

	user := sess.User()
	fmt.Fprintf(o.out, "ID:    %s\n", user.ID)
	fmt.Fprintf(o.out, "Email: %s\n", user.Email)
	fmt.Fprintf(o.out, "Role:  %s\n", user.Role)

	if _, name, err := userconfig.GetSelectedRestaurant(); err == nil && name != "" {
		fmt.Fprintf(o.out, "\nManaging restaurant: %s\n", name)
	}

	return nil
}
