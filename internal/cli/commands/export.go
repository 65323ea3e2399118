package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/silverstar-dev/silverstar/internal/api"
)

// menuExport is the on-disk shape of a menu backup
type menuExport struct {
	ExportedAt time.Time      `json:"exported_at" yaml:"exported_at"`
	Categories []api.Category `json:"categories" yaml:"categories"`
	Items      []api.MenuItem `json:"items" yaml:"items"`
}

func newMenuExportCmd() *cobra.Command {
	var (
		format  string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full menu for backup",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenuExport(format, outPath)
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write to file instead of stdout")

	return cmd
}

func runMenuExport(format, outPath string, opts ...Option) error {
	if format != "yaml" && format != "json" {
		return fmt.Errorf("unsupported format '%s' (use yaml or json)", format)
	}

	o, err := buildOptions(opts)
	if err != nil {
		return err
	}

	categories, err := o.client.ListCategories()
	if err != nil {
		return fmt.Errorf("failed to fetch categories: %w", err)
	}

	items, err := o.client.ListMenuItems(api.MenuFilter{})
	if err != nil {
		return fmt.Errorf("failed to fetch menu items: %w", err)
	}

	export := menuExport{
		ExportedAt: time.Now().UTC(),
		Categories: categories,
		Items:      items,
	}

	var data []byte
	if format == "json" {
		data, err = json.MarshalIndent(export, "", "  ")
	} else {
		data, err = yaml.Marshal(export)
	}
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}

	if outPath == "" {
		fmt.Fprint(o.out, string(data))
		return nil
	}

	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	fmt.Fprintf(o.out, "✓ Exported %d categories and %d items to %s\n", len(categories), len(items), outPath)
	return nil
}
