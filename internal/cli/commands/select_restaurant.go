package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/silverstar-dev/silverstar/internal/api"
	"github.com/silverstar-dev/silverstar/internal/cli/restaurantselect"
	"github.com/silverstar-dev/silverstar/internal/cli/userconfig"
)

// NewSelectRestaurantCmd creates the select-restaurant command
func NewSelectRestaurantCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select-restaurant [id-or-name]",
		Short: "Select the restaurant to manage",
		Long: `Select the restaurant to manage.

If no param is provided, an interactive prompt will be shown.

Examples:
  $ silverstar select-restaurant                # Interactive selection
  $ silverstar select-restaurant 64f1a2b3c4d5   # Select by ID
  $ silverstar select-restaurant "Silver Star"  # Select by name`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var idOrName string
			if len(args) > 0 {
				idOrName = args[0]
			}
			return runSelectRestaurant(idOrName)
		},
	}
}

func runSelectRestaurant(idOrName string, opts ...Option) error {
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

	var restaurant *api.Restaurant
	if idOrName != "" {
		restaurant, err = restaurantselect.ByIDOrName(restaurants, idOrName)
	} else {
		restaurant, err = restaurantselect.Prompt(restaurants)
	}
	if err != nil {
		return err
	}

	if err := userconfig.SetSelectedRestaurant(restaurant.ID, restaurant.RestaurantName); err != nil {
		return fmt.Errorf("failed to save selected restaurant: %w", err)
	}

	fmt.Fprintf(o.out, "✓ Now managing '%s'\n", restaurant.RestaurantName)
	return nil
}
