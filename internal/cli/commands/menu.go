package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/silverstar-dev/silverstar/internal/api"
)

// maxImageSizeBytes caps uploads at 5MB, matching what the API accepts.
const maxImageSizeBytes = 5 * 1024 * 1024

// NewMenuCmd creates the menu command group
func NewMenuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Manage menu items",
	}

	cmd.AddCommand(newMenuListCmd())
	cmd.AddCommand(newMenuGetCmd())
	cmd.AddCommand(newMenuCreateCmd())
	cmd.AddCommand(newMenuUpdateCmd())
	cmd.AddCommand(newMenuDeleteCmd())
	cmd.AddCommand(newMenuExportCmd())

	return cmd
}

func newMenuListCmd() *cobra.Command {
	var (
		category      string
		search        string
		onlyAvailable bool
	)

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List menu items",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := api.MenuFilter{Category: category, Search: search}
			if cmd.Flags().Changed("available") {
				filter.IsAvailable = &onlyAvailable
			}
			return runMenuList(filter)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Filter by category ID")
	cmd.Flags().StringVar(&search, "search", "", "Search by name")
	cmd.Flags().BoolVar(&onlyAvailable, "available", true, "Filter by availability")

	return cmd
}

func runMenuList(filter api.MenuFilter, opts ...Option) error {
	o, err := buildOptions(opts)
	if err != nil {
		return err
	}

	items, err := o.client.ListMenuItems(filter)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		fmt.Fprintln(o.out, "No menu items found.")
		fmt.Fprintln(o.out, "\nCreate one with: silverstar menu create --name <name> --category <id>")
		return nil
	}

	w := tabwriter.NewWriter(o.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tVEG\tAVAILABLE\tSORT")
	fmt.Fprintln(w, "──\t────\t────────\t─────\t───\t─────────\t────")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%t\t%t\t%d\n",
			item.ID, item.Name, item.Category.Name, item.Price,
			item.IsVegetarian, item.IsAvailable, item.SortOrder)
	}
	w.Flush()

	return nil
}

func newMenuGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one menu item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenuGet(args[0])
		},
	}
}

func runMenuGet(id string, opts ...Option) error {
	o, err := buildOptions(opts)
	if err != nil {
		return err
	}

	item, err := o.client.GetMenuItem(id)
	if err != nil {
		return err
	}

	fmt.Fprintf(o.out, "Name:      %s\n", item.Name)
	fmt.Fprintf(o.out, "Category:  %s (%s)\n", item.Category.Name, item.Category.ID)
	fmt.Fprintf(o.out, "Price:     %.2f\n", item.Price)
	fmt.Fprintf(o.out, "Available: %t\n", item.IsAvailable)
	fmt.Fprintf(o.out, "Veg:       %t\n", item.IsVegetarian)
	if item.Sizes != nil {
		fmt.Fprintln(o.out, "Sizes:")
		printSize(o, "quarter", item.Sizes.Quarter)
		printSize(o, "half", item.Sizes.Half)
		printSize(o, "full", item.Sizes.Full)
		printSize(o, "normal", item.Sizes.Normal)
		printSize(o, "schezwan", item.Sizes.Schezwan)
	}
	if item.Image != nil {
		fmt.Fprintf(o.out, "Image:     %s\n", item.Image.URL)
	}

	return nil
}

func printSize(o *options, name string, price float64) {
	if price > 0 {
		fmt.Fprintf(o.out, "  %-9s %.2f\n", name, price)
	}
}

// menuItemFlags binds the writable menu item fields to a command
func menuItemFlags(cmd *cobra.Command, input *api.MenuItemInput, imagePath *string) {
	cmd.Flags().StringVar(&input.Name, "name", "", "Item name")
	cmd.Flags().StringVar(&input.Category, "category", "", "Category ID")
	cmd.Flags().Float64Var(&input.Price, "price", 0, "Base price")
	cmd.Flags().Float64Var(&input.Sizes.Quarter, "size-quarter", 0, "Quarter portion price")
	cmd.Flags().Float64Var(&input.Sizes.Half, "size-half", 0, "Half portion price")
	cmd.Flags().Float64Var(&input.Sizes.Full, "size-full", 0, "Full portion price")
	cmd.Flags().Float64Var(&input.Sizes.Normal, "size-normal", 0, "Normal portion price")
	cmd.Flags().Float64Var(&input.Sizes.Schezwan, "size-schezwan", 0, "Schezwan variant price")
	cmd.Flags().BoolVar(&input.IsAvailable, "available", true, "Whether the item can be ordered")
	cmd.Flags().BoolVar(&input.IsVegetarian, "veg", false, "Vegetarian")
	cmd.Flags().IntVar(&input.SortOrder, "sort", 0, "Sort order")
	cmd.Flags().StringVar(imagePath, "image", "", "Path to an image file (max 5MB)")
}

// openImage opens and size-checks the upload, returning nil for no image.
func openImage(path string) (*os.File, string, error) {
	if path == "" {
		return nil, "", nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}
	if info.Size() > maxImageSizeBytes {
		return nil, "", fmt.Errorf("image exceeds the 5MB limit (%d bytes)", info.Size())
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image: %w", err)
	}
	return f, info.Name(), nil
}

func newMenuCreateCmd() *cobra.Command {
	var (
		input     api.MenuItemInput
		imagePath string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a menu item",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenuCreate(input, imagePath)
		},
	}

	menuItemFlags(cmd, &input, &imagePath)
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("category")

	return cmd
}

func runMenuCreate(input api.MenuItemInput, imagePath string, opts ...Option) error {
	o, err := buildOptions(opts)
	if err != nil {
		return err
	}

	if _, err := requireSession(o); err != nil {
		return err
	}

	image, imageName, err := openImage(imagePath)
	if err != nil {
		return err
	}
	var form *api.Multipart
	if image != nil {
		defer image.Close()
		form, err = api.NewMenuItemForm(input, image, imageName)
	} else {
		form, err = api.NewMenuItemForm(input, nil, "")
	}
	if err != nil {
		return err
	}

	item, err := o.client.CreateMenuItem(form)
	if err != nil {
		return err
	}

	fmt.Fprintf(o.out, "✓ Menu item '%s' created (id %s)\n", input.Name, item.ID)
	return nil
}

func newMenuUpdateCmd() *cobra.Command {
	var (
		input     api.MenuItemInput
		imagePath string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a menu item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenuUpdate(cmd, args[0], input, imagePath)
		},
	}

	menuItemFlags(cmd, &input, &imagePath)

	return cmd
}

func runMenuUpdate(cmd *cobra.Command, id string, input api.MenuItemInput, imagePath string, opts ...Option) error {
	o, err := buildOptions(opts)
	if err != nil {
		return err
	}

	if _, err := requireSession(o); err != nil {
		return err
	}

	// Start from the current record so unset flags keep their values
	existing, err := o.client.GetMenuItem(id)
	if err != nil {
		return err
	}

	merged := api.MenuItemInput{
		Name:         existing.Name,
		Category:     existing.Category.ID,
		Price:        existing.Price,
		IsAvailable:  existing.IsAvailable,
		IsVegetarian: existing.IsVegetarian,
		SortOrder:    existing.SortOrder,
	}
	if existing.Sizes != nil {
		merged.Sizes = *existing.Sizes
	}
	if cmd.Flags().Changed("name") {
		merged.Name = input.Name
	}
	if cmd.Flags().Changed("category") {
		merged.Category = input.Category
	}
	if cmd.Flags().Changed("price") {
		merged.Price = input.Price
	}
	if cmd.Flags().Changed("size-quarter") {
		merged.Sizes.Quarter = input.Sizes.Quarter
	}
	if cmd.Flags().Changed("size-half") {
		merged.Sizes.Half = input.Sizes.Half
	}
	if cmd.Flags().Changed("size-full") {
		merged.Sizes.Full = input.Sizes.Full
	}
	if cmd.Flags().Changed("size-normal") {
		merged.Sizes.Normal = input.Sizes.Normal
	}
	if cmd.Flags().Changed("size-schezwan") {
		merged.Sizes.Schezwan = input.Sizes.Schezwan
	}
	if cmd.Flags().Changed("available") {
		merged.IsAvailable = input.IsAvailable
	}
	if cmd.Flags().Changed("veg") {
		merged.IsVegetarian = input.IsVegetarian
	}
	if cmd.Flags().Changed("sort") {
		merged.SortOrder = input.SortOrder
	}

	image, imageName, err := openImage(imagePath)
	if err != nil {
		return err
	}
	var form *api.Multipart
	if image != nil {
		defer image.Close()
		form, err = api.NewMenuItemForm(merged, image, imageName)
	} else {
		form, err = api.NewMenuItemForm(merged, nil, "")
	}
	if err != nil {
		return err
	}

	if _, err := o.client.UpdateMenuItem(id, form); err != nil {
		return err
	}

	fmt.Fprintf(o.out, "✓ Menu item %s updated\n", id)
	return nil
}

func newMenuDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a menu item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenuDelete(args[0])
		},
	}
}

func runMenuDelete(id string, opts ...Option) error {
	o, err := buildOptions(opts)
	if err != nil {
		return err
	}

	if _, err := requireSession(o); err != nil {
		return err
	}

	if err := o.client.DeleteMenuItem(id); err != nil {
		return err
	}

	fmt.Fprintf(o.out, "✓ Menu item %s deleted\n", id)
	return nil
}
