package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/rohankatakam/recipegraph/internal/config"
	"github.com/rohankatakam/recipegraph/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a YAML recipe catalog into Neo4j",
	Long: `Merges the authors, recipes and ingredients of a catalog file into the
graph. Without --file the bundled sample catalog is loaded. Running it twice is
harmless: every node and relationship is MERGEd on its name.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringP("file", "f", "", "catalog YAML file (default: bundled sample)")
	seedCmd.Flags().Bool("dry-run", false, "parse and validate the catalog without writing")
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path, _ := cmd.Flags().GetString("file")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	var (
		catalog *seed.Catalog
		err     error
	)
	if path != "" {
		catalog, err = seed.LoadFile(path)
	} else {
		catalog, err = seed.Sample()
	}
	if err != nil {
		return err
	}

	if dryRun {
		statements, err := seed.Statements(catalog)
		if err != nil {
			return err
		}
		logger.WithField("statements", len(statements)).
			WithField("recipes", catalog.RecipeCount()).
			Info("catalog is valid (dry run, nothing written)")
		return nil
	}

	client, err := connect(ctx, config.ValidationContextSeed)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		client.Close(closeCtx)
	}()

	return seed.NewLoader(client, logger).Load(ctx, catalog)
}
