package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/silverstar-dev/silverstar/internal/cli/commands"
	"github.com/silverstar-dev/silverstar/internal/cli/update"
	"github.com/silverstar-dev/silverstar/internal/logger"
)

var version = "dev" // Will be set during build

var rootCmd = &cobra.Command{
	Use:   "silverstar",
	Short: "Silverstar - Restaurant menu administration",
	Long: `Silverstar CLI - Manage your restaurant menu from the terminal.

Authenticate once, then create and update categories, menu items (image
uploads included) and restaurants against the Silver Star menu API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(os.Getenv("LOG_LEVEL"), "console")

		// Skip update check for the version command
		if cmd.Name() == "version" {
			return
		}

		update.PrintUpdateNotification(version)
	},
}

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("silverstar version %s\n", version)
		},
	})

	// Add all subcommands
	rootCmd.AddCommand(commands.NewLoginCmd())
	rootCmd.AddCommand(commands.NewLogoutCmd())
	rootCmd.AddCommand(commands.NewWhoamiCmd())
	rootCmd.AddCommand(commands.NewChangePasswordCmd())
	rootCmd.AddCommand(commands.NewCategoriesCmd())
	rootCmd.AddCommand(commands.NewMenuCmd())
	rootCmd.AddCommand(commands.NewRestaurantsCmd())
	rootCmd.AddCommand(commands.NewSelectRestaurantCmd())
	rootCmd.AddCommand(commands.NewDashCmd())
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
