// Package main provides the catalog seed importer: it loads YAML seed files
// and upserts the resource catalog, command reference, and settings into the
// SQLite database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cory-johannsen/bedrockctl/internal/config"
	"github.com/cory-johannsen/bedrockctl/internal/importer"
	"github.com/cory-johannsen/bedrockctl/internal/observability"
	"github.com/cory-johannsen/bedrockctl/internal/storage/sqlite"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	seedDir := flag.String("seed", "", "path to seed YAML directory")
	flag.Parse()

	if *seedDir == "" {
		fmt.Fprintln(os.Stderr, "usage: import-catalog -seed <dir> [-config <file>]")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	start := time.Now()
	ctx := context.Background()

	seed, err := importer.LoadDir(*seedDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := sqlite.Migrate(cfg.Storage.Path); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	store, err := sqlite.Open(ctx, cfg.Storage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	imp := importer.New(
		sqlite.NewResourceRepository(store.DB()),
		sqlite.NewCommandRepository(store.DB()),
		sqlite.NewSettingRepository(store.DB()),
		logger,
	)
	if err := imp.Run(ctx, seed); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("import complete: %d resources, %d commands, %d settings in %s\n",
		len(seed.Entries), len(seed.Commands), len(seed.Settings),
		time.Since(start).Round(time.Millisecond))
}
