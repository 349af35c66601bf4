// Command seed loads the template catalog into the configured store:
//
//	go run ./cmd/seed [--file catalog.yaml] [--keep]
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"resume-builder/internal/bootstrap"
	"resume-builder/internal/seed"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/telemetry"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		telemetry.Error("seed.failed", map[string]any{"error": err})
		os.Exit(1)
	}
}

func run(args []string) error {
	var (
		filePath string
		keep     bool
	)
	flagSet := pflag.NewFlagSet("seed", pflag.ContinueOnError)
	flagSet.StringVar(&filePath, "file", "", "YAML catalog to load instead of the built-in one")
	flagSet.BoolVar(&keep, "keep", false, "keep existing templates and only add missing names")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	cfg := config.Load()
	telemetry.Configure(os.Stdout, cfg.LogLevel)
	if cfg.StoreDriver == config.StoreMemory {
		return fmt.Errorf("seeding needs DATABASE_URL or MONGO_URI; the memory store does not persist")
	}

	catalog, err := loadCatalog(filePath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	app, err := bootstrap.BuildRepos(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close(ctx)

	n, err := seed.Apply(ctx, app.TemplatesService, catalog, keep)
	if err != nil {
		return err
	}
	telemetry.Info("seed.done", map[string]any{"written": n, "keep": keep})
	return nil
}

func loadCatalog(path string) (seed.Catalog, error) {
	if path == "" {
		return seed.Default()
	}
	return seed.LoadFile(path)
}
