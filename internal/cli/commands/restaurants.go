package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/silverstar-dev/silverstar/internal/api"
)

// NewRestaurantsCmd creates the restaurants command group (super admin)
func NewRestaurantsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restaurants",
		Short: "Manage restaurants (super admin)",
	}

	cmd.AddCommand(newRestaurantsListCmd())
	cmd.AddCommand(newRestaurantsCreateCmd())
	cmd.AddCommand(newRestaurantsUpdateCmd())
	cmd.AddCommand(newRestaurantsDeleteCmd())

	return cmd
}

func newRestaurantsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List all restaurants",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestaurantsList()
		},
	}
}

func runRestaurantsList(opts ...Option) error {
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

	if len(restaurants) == 0 {
		fmt.Fprintln(o.out, "No restaurants found.")
		return nil
	}

	w := tabwriter.NewWriter(o.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPHONE\tWHATSAPP\tPLAN VALID UNTIL")
	fmt.Fprintln(w, "──\t────\t─────\t────────\t────────────────")
	for _, r := range restaurants {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.RestaurantName, r.PhoneNumber, r.WhatsappNumber, r.ValidityOfPlan)
	}
	w.Flush()

	return nil
}

// restaurantFlags binds the writable restaurant fields to a command
func restaurantFlags(cmd *cobra.Command, input *api.RestaurantInput) {
	cmd.Flags().StringVar(&input.RestaurantName, "name", "", "Restaurant name")
	cmd.Flags().StringVar(&input.LogoImage, "logo", "", "Logo image URL")
	cmd.Flags().StringVar(&input.AdminID, "admin", "", "Admin account ID")
	cmd.Flags().StringVar(&input.LocationLink, "location", "", "Maps link")
	cmd.Flags().StringVar(&input.WebsiteLink, "website", "", "Website link")
	cmd.Flags().StringVar(&input.InstagramLink, "instagram", "", "Instagram link")
	cmd.Flags().StringVar(&input.FacebookLink, "facebook", "", "Facebook link")
	cmd.Flags().StringVar(&input.WhatsappNumber, "whatsapp", "", "WhatsApp number")
	cmd.Flags().StringVar(&input.PhoneNumber, "phone", "", "Phone number")
	cmd.Flags().StringVar(&input.ValidityOfPlan, "plan-validity", "", "Plan expiry date")
	cmd.Flags().StringVar(&input.PlanID, "plan", "", "Plan ID")
}

func newRestaurantsCreateCmd() *cobra.Command {
	var input api.RestaurantInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a restaurant",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestaurantsCreate(input)
		},
	}

	restaurantFlags(cmd, &input)
	cmd.MarkFlagRequired("name")

	return cmd
}

func runRestaurantsCreate(input api.RestaurantInput, opts ...Option) error {
	o, err := buildOptions(opts)
	if err != nil {
		return err
	}

	if _, err := requireSession(o); err != nil {
		return err
	}

	restaurant, err := o.client.CreateRestaurant(input)
	if err != nil {
		return err
	}

	fmt.Fprintf(o.out, "✓ Restaurant '%s' created (id %s)\n", input.RestaurantName, restaurant.ID)
	return nil
}

func newRestaurantsUpdateCmd() *cobra.Command {
	var input api.RestaurantInput

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a restaurant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestaurantsUpdate(cmd, args[0], input)
		},
	}

	restaurantFlags(cmd, &input)

	return cmd
}

func runRestaurantsUpdate(cmd *cobra.Command, id string, input api.RestaurantInput, opts ...Option) error {
	o, err := buildOptions(opts)
	if err != nil {
		return err
	}

	if _, err := requireSession(o); err != nil {
		return err
	}

	// Start from the current record so unset flags keep their values
	restaurants, err := o.client.ListRestaurants()
	if err != nil {
		return err
	}

	var existing *api.Restaurant
	for i := range restaurants {
		if restaurants[i].ID == id {
			existing = &restaurants[i]
			break
		}
	}
	if existing == nil {
		return fmt.Errorf("restaurant '%s' not found", id)
	}

	merged := api.RestaurantInput{
		RestaurantName: existing.RestaurantName,
		LogoImage:      existing.LogoImage,
		AdminID:        existing.AdminID,
		LocationLink:   existing.LocationLink,
		WebsiteLink:    existing.WebsiteLink,
		InstagramLink:  existing.InstagramLink,
		FacebookLink:   existing.FacebookLink,
		WhatsappNumber: existing.WhatsappNumber,
		PhoneNumber:    existing.PhoneNumber,
		ValidityOfPlan: existing.ValidityOfPlan,
		PlanID:         existing.PlanID,
	}
	for flag, dst := range map[string]*string{
		"name":          &merged.RestaurantName,
		"logo":          &merged.LogoImage,
		"admin":         &merged.AdminID,
		"location":      &merged.LocationLink,
		"website":       &merged.WebsiteLink,
		"instagram":     &merged.InstagramLink,
		"facebook":      &merged.FacebookLink,
		"whatsapp":      &merged.WhatsappNumber,
		"phone":         &merged.PhoneNumber,
		"plan-validity": &merged.ValidityOfPlan,
		"plan":          &merged.PlanID,
	} {
		if cmd.Flags().Changed(flag) {
			value, _ := cmd.Flags().GetString(flag)
			*dst = value
		}
	}

	if _, err := o.client.UpdateRestaurant(id, merged); err != nil {
		return err
	}

	fmt.Fprintf(o.out, "✓ Restaurant %s updated\n", id)
	return nil
}

func newRestaurantsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a restaurant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestaurantsDelete(args[0])
		},
	}
}

func runRestaurantsDelete(id string, opts ...Option) error {
	o, err := buildOptions(opts)
	if err != nil {
		return err
	}

	if _, err := requireSession(o); err != nil {
		return err
	}

	if err := o.client.DeleteRestaurant(id); err != nil {
		return err
	}

	fmt.Fprintf(o.out, "✓ Restaurant %s deleted\n", id)
	return nil
}
