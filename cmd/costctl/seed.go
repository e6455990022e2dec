package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ojmarte/construction-api/pkg/clients/costapi"
)

// seedOrder creates referenced resources before the ones pointing at them.
var seedOrder = []costapi.Resource{
	costapi.Equipment,
	costapi.Labour,
	costapi.Materials,
	costapi.Tools,
	costapi.Workers,
	costapi.EquipmentPerformance,
	costapi.MaterialYields,
	costapi.ToolLifespans,
	costapi.Jobs,
}

// seedCatalog maps resource names to the documents to create.
type seedCatalog map[string][]map[string]any

type seedFlags struct {
	file   string
	dryRun bool
}

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var flags seedFlags

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create documents from a YAML catalog",
		Long: `Creates every document listed in a YAML catalog file. The file maps
resource names (see "costctl resources") to lists of documents:

  materials:
    - material_name: Cement
      category: Binder
      unit: {measurement: kg, currency: USD}
      prices:
        - {price: 12.5, date: "2024-01-01"}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "Catalog file (required)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Only validate the file and print what would be created")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func loadSeedCatalog(path string) (seedCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	var catalog seedCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}

	for name := range catalog {
		if _, err := costapi.Lookup(name); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", path, err)
		}
	}
	return catalog, nil
}

func runSeed(cmd *cobra.Command, opts *rootOptions, flags seedFlags) error {
	catalog, err := loadSeedCatalog(flags.file)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	client := opts.client()
	total := 0

	for _, res := range seedOrder {
		docs := catalog[res.Name]
		if len(docs) == 0 {
			continue
		}

		if flags.dryRun {
			fmt.Fprintf(out, "%s: %d to create\n", res.Name, len(docs))
			continue
		}

		for i, doc := range docs {
			if _, err := client.Create(cmd.Context(), res, doc); err != nil {
				return fmt.Errorf("seeding %s #%d: %w", res.Name, i+1, err)
			}
		}
		total += len(docs)
		fmt.Fprintf(out, "%s: %d created\n", res.Name, len(docs))
	}

	if !flags.dryRun {
		fmt.Fprintf(out, "Seeded %d documents.\n", total)
	}
	return nil
}
