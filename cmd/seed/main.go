package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"quicksell-pos/internal/apperr"
	"quicksell-pos/internal/config"
	applog "quicksell-pos/internal/log"
	"quicksell-pos/internal/model"
	"quicksell-pos/internal/repository"
)

func main() {
	app := &cli.App{
		Name:  "seed",
		Usage: "write the default stationery catalog into the configured store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "backend",
				Usage:   "store backend: remote, local or postgres (defaults to STORE_BACKEND)",
				EnvVars: []string{"SEED_BACKEND"},
			},
			&cli.BoolFlag{
				Name:  "overwrite",
				Usage: "replace products that already exist with the default values",
			},
			&cli.BoolFlag{
				Name:  "demo-sales",
				Usage: "also generate random sales for the current year when the store has none",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "only print what would be written",
			},
		},
		Action: seed,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Printf("error running seed: %v\n", err)
		os.Exit(1)
	}
}

func seed(c *cli.Context) error {
	type Config struct {
		Log      config.Log
		Store    config.Store
		Postgres config.Postgres
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if b := c.String("backend"); b != "" {
		if err := cfg.Store.Backend.UnmarshalText([]byte(b)); err != nil {
			return err
		}
	}
	// The local store would otherwise seed on open and hide what this command writes.
	cfg.Store.SeedDefaults = false

	log := applog.NewSlogLogger(cfg.Log)
	ctx := c.Context

	store, err := repository.Open(ctx, cfg.Store, cfg.Postgres, log)
	if err != nil {
		return fmt.Errorf("error opening store: %w", err)
	}
	defer store.Close()

	created, updated, skipped, err := seedProducts(ctx, store, model.DefaultProducts(), c.Bool("overwrite"), c.Bool("dry-run"))
	if err != nil {
		return err
	}

	var sales int
	if c.Bool("demo-sales") {
		products, err := store.ListProducts(ctx)
		if err != nil {
			return fmt.Errorf("error listing products: %w", err)
		}
		if c.Bool("dry-run") {
			products = model.DefaultProducts()
		}
		rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
		sales, err = seedDemoSales(ctx, store, demoSales(products, time.Now(), rng), c.Bool("dry-run"))
		if err != nil {
			return err
		}
	}

	log.Info("seed finished",
		slog.String("backend", store.Name()),
		slog.Int("created", created),
		slog.Int("updated", updated),
		slog.Int("skipped", skipped),
		slog.Int("demo_sales", sales),
		slog.Bool("dry_run", c.Bool("dry-run")))
	return nil
}

func seedProducts(ctx context.Context, store repository.CatalogStore, defaults []model.Product, overwrite, dryRun bool) (created, updated, skipped int, err error) {
	existing, err := store.ListProducts(ctx)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("error listing products: %w", err)
	}
	byID := make(map[string]bool, len(existing))
	for _, p := range existing {
		byID[p.ID] = true
	}

	for _, p := range defaults {
		switch {
		case !byID[p.ID]:
			if !dryRun {
				if _, err := store.CreateProduct(ctx, p); err != nil {
					if errors.Is(err, apperr.ErrValidation) {
						skipped++
						continue
					}
					return created, updated, skipped, fmt.Errorf("error creating %s: %w", p.ID, err)
				}
			}
			created++
		case overwrite:
			if !dryRun {
				if err := store.UpdateProduct(ctx, p); err != nil {
					return created, updated, skipped, fmt.Errorf("error updating %s: %w", p.ID, err)
				}
			}
			updated++
		default:
			skipped++
		}
	}
	return created, updated, skipped, nil
}
