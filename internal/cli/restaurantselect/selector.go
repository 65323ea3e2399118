// Package restaurantselect picks the restaurant a super admin works on.
package restaurantselect

import (
	"fmt"

	"github.com/manifoldco/promptui"

	"github.com/silverstar-dev/silverstar/internal/api"
	"github.com/silverstar-dev/silverstar/internal/cli/userconfig"
)

// Resolve determines which restaurant to use:
//  1. An explicit id or name argument wins.
//  2. Otherwise the selection remembered in the user config.
//  3. A single restaurant on the account is picked automatically.
//  4. Otherwise the user is prompted.
func Resolve(restaurants []api.Restaurant, idOrName string) (*api.Restaurant, error) {
	if idOrName != "" {
		return ByIDOrName(restaurants, idOrName)
	}

	selectedID, _, err := userconfig.GetSelectedRestaurant()
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	if selectedID != "" {
		for i := range restaurants {
			if restaurants[i].ID == selectedID {
				return &restaurants[i], nil
			}
		}
		// Remembered restaurant is gone, forget it and fall through
		_ = userconfig.SetSelectedRestaurant("", "")
	}

	if len(restaurants) == 1 {
		r := &restaurants[0]
		if err := userconfig.SetSelectedRestaurant(r.ID, r.RestaurantName); err != nil {
			fmt.Printf("Warning: failed to save selected restaurant: %v\n", err)
		}
		return r, nil
	}

	r, err := Prompt(restaurants)
	if err != nil {
		return nil, err
	}

	if err := userconfig.SetSelectedRestaurant(r.ID, r.RestaurantName); err != nil {
		fmt.Printf("Warning: failed to save selected restaurant: %v\n", err)
	}

	return r, nil
}

// Prompt shows an interactive prompt for the user to pick a restaurant
func Prompt(restaurants []api.Restaurant) (*api.Restaurant, error) {
	if len(restaurants) == 0 {
		return nil, fmt.Errorf("no restaurants found on this account")
	}

	type restaurantOption struct {
		Label      string
		Restaurant *api.Restaurant
	}

	options := make([]restaurantOption, len(restaurants))
	for i := range restaurants {
		r := &restaurants[i]
		label := r.RestaurantName
		if r.PhoneNumber != "" {
			label = fmt.Sprintf("%s (%s)", r.RestaurantName, r.PhoneNumber)
		}
		options[i] = restaurantOption{Label: label, Restaurant: r}
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "> {{ .Label | cyan }}",
		Inactive: "  {{ .Label }}",
		Selected: "{{ .Label | green }}",
	}

	prompt := promptui.Select{
		Label:     "Select a restaurant",
		Items:     options,
		Templates: templates,
		Size:      10,
	}

	index, _, err := prompt.Run()
	if err != nil {
		return nil, fmt.Errorf("restaurant selection cancelled: %w", err)
	}

	return options[index].Restaurant, nil
}

// ByIDOrName finds a restaurant by id first, then by exact name
func ByIDOrName(restaurants []api.Restaurant, idOrName string) (*api.Restaurant, error) {
	for i := range restaurants {
		if restaurants[i].ID == idOrName {
			return &restaurants[i], nil
		}
	}

	for i := range restaurants {
		if restaurants[i].RestaurantName == idOrName {
			return &restaurants[i], nil
		}
	}

	return nil, fmt.Errorf("restaurant '%s' not found", idOrName)
}
