package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/silverstar-dev/silverstar/internal/api"
)

// NewCategoriesCmd creates the categories command group
func NewCategoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"cat"},
		Short:   "Manage menu categories",
	}

	cmd.AddCommand(newCategoriesListCmd())
	cmd.AddCommand(newCategoriesCreateCmd())
	cmd.AddCommand(newCategoriesUpdateCmd())
	cmd.AddCommand(newCategoriesDeleteCmd())

	return cmd
}

func newCategoriesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List all categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategoriesList()
		},
	}
}

func runCategoriesList(opts ...Option) error {
	o, err := buildOptions(opts)
	if err != nil {
		return err
	}

	categories, err := o.client.ListCategories()
	if err != nil {
		return err
	}

	if len(categories) == 0 {
		fmt.Fprintln(o.out, "No categories found.")
		fmt.Fprintln(o.out, "\nCreate one with: silverstar categories create --name <name>")
		return nil
	}

	w := tabwriter.NewWriter(o.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSLUG\tACTIVE\tSORT")
	fmt.Fprintln(w, "──\t────\t────\t──────\t────")
	for _, c := range categories {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%d\n", c.ID, c.Name, c.Slug, c.IsActive, c.SortOrder)
	}
	w.Flush()

	return nil
}

// categoryFlags binds the writable category fields to a command
func categoryFlags(cmd *cobra.Command, input *api.CategoryInput) {
	cmd.Flags().StringVar(&input.Name, "name", "", "Category name")
	cmd.Flags().StringVar(&input.Slug, "slug", "", "URL slug")
	cmd.Flags().StringVar(&input.Description, "description", "", "Description")
	cmd.Flags().StringVar(&input.Icon, "icon", "UtensilsCrossed", "Icon name")
	cmd.Flags().StringVar(&input.Color, "color", "from-amber-400 to-orange-500", "Display color gradient")
	cmd.Flags().BoolVar(&input.IsActive, "active", true, "Whether the category is shown on the menu")
	cmd.Flags().IntVar(&input.SortOrder, "sort", 0, "Sort order")
}

func newCategoriesCreateCmd() *cobra.Command {
	var input api.CategoryInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategoriesCreate(input)
		},
	}

	categoryFlags(cmd, &input)
	cmd.MarkFlagRequired("name")

	return cmd
}

func runCategoriesCreate(input api.CategoryInput, opts ...Option) error {
	o, err := buildOptions(opts)
	if err != nil {
		return err
	}

	if _, err := requireSession(o); err != nil {
		return err
	}

	category, err := o.client.CreateCategory(input)
	if err != nil {
		return err
	}

	fmt.Fprintf(o.out, "✓ Category '%s' created (id %s)\n", input.Name, category.ID)
	return nil
}

func newCategoriesUpdateCmd() *cobra.Command {
	var input api.CategoryInput

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategoriesUpdate(cmd, args[0], input)
		},
	}

	categoryFlags(cmd, &input)

	return cmd
}

func runCategoriesUpdate(cmd *cobra.Command, id string, input api.CategoryInput, opts ...Option) error {
	o, err := buildOptions(opts)
	if err != nil {
		return err
	}

	if _, err := requireSession(o); err != nil {
		return err
	}

	// Start from the current record so unset flags keep their values
	existing, err := o.client.GetCategory(id)
	if err != nil {
		return err
	}

	merged := api.CategoryInput{
		Name:        existing.Name,
		Slug:        existing.Slug,
		Description: existing.Description,
		Icon:        existing.Icon,
		Color:       existing.Color,
		IsActive:    existing.IsActive,
		SortOrder:   existing.SortOrder,
	}
	if cmd.Flags().Changed("name") {
		merged.Name = input.Name
	}
	if cmd.Flags().Changed("slug") {
		merged.Slug = input.Slug
	}
	if cmd.Flags().Changed("description") {
		merged.Description = input.Description
	}
	if cmd.Flags().Changed("icon") {
		merged.Icon = input.Icon
	}
	if cmd.Flags().Changed("color") {
		merged.Color = input.Color
	}
	if cmd.Flags().Changed("active") {
		merged.IsActive = input.IsActive
	}
	if cmd.Flags().Changed("sort") {
		merged.SortOrder = input.SortOrder
	}

	if _, err := o.client.UpdateCategory(id, merged); err != nil {
		return err
	}

	fmt.Fprintf(o.out, "✓ Category %s updated\n", id)
	return nil
}

func newCategoriesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategoriesDelete(args[0])
		},
	}
}

func runCategoriesDelete(id string, opts ...Option) error {
	o, err := buildOptions(opts)
	if err != nil {
		return err
	}

	if _, err := requireSession(o); err != nil {
		return err
	}

	if err := o.client.DeleteCategory(id); err != nil {
		return err
	}

	fmt.Fprintf(o.out, "✓ Category %s deleted\n", id)
	return nil
}
