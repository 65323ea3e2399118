package commands

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/silverstar-dev/silverstar/internal/cli/restaurantselect"
)

// NewDashCmd creates the dash command
func NewDashCmd() *cobra.Command {
	var restaurant string

	cmd := &cobra.Command{
		Use:   "dash",
		Short: "Open the restaurant's menu site in the browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDash(restaurant)
		},
	}

	cmd.Flags().StringVar(&restaurant, "restaurant", "", "Restaurant ID or name (uses the selected restaurant if not set)")

	return cmd
}

func runDash(idOrName string, opts ...Option) error {
	o, err := buildOptions(opts)
	if err != nil {
		return err
	}

	if _, err := requireSession(o); err != nil {
		return err
	}

	restaurants, err := o.client.ListRestaurants()
	if err != nil {
		return err
	}

	restaurant, err := restaurantselect.Resolve(restaurants, idOrName)
	if err != nil {
		return err
	}

	if restaurant.WebsiteLink == "" {
		return fmt.Errorf("restaurant '%s' has no website link configured", restaurant.RestaurantName)
	}

	fmt.Fprintf(o.out, "Opening %s...\n", restaurant.WebsiteLink)

	if err := openBrowser(restaurant.WebsiteLink); err != nil {
		return fmt.Errorf("failed to open browser: %w\nPlease visit: %s", err, restaurant.WebsiteLink)
	}

	return nil
}

// openBrowser opens the URL in the default browser
func openBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
