// cmd/restockd/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/pantryops/restockd/internal/config"
	"github.com/pantryops/restockd/internal/csvio"
	"github.com/pantryops/restockd/internal/domain"
	"github.com/pantryops/restockd/internal/engine"
	"github.com/pantryops/restockd/internal/repository"
	"github.com/pantryops/restockd/internal/service"
	"github.com/pantryops/restockd/internal/storage"
)

func newFileFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "file",
		Usage:    "Inventory CSV file",
		Required: true,
		EnvVars:  []string{"INVENTORY_CSV"},
	}
}

func suggestFlags() []cli.Flag {
	return []cli.Flag{
		newFileFlag(),
		&cli.IntFlag{
			Name:  "notification-threshold",
			Usage: "Depletion horizon in days",
		},
		&cli.IntFlag{
			Name:  "bulk-threshold",
			Usage: "Order quantity that triggers a bulk recommendation",
		},
		&cli.StringFlag{
			Name:  "out",
			Usage: "Write results as CSV to this path instead of stdout",
		},
	}
}

func optimizeFlags() []cli.Flag {
	return append(suggestFlags(),
		&cli.StringFlag{
			Name:  "preference",
			Usage: "Ordering strategy: cost, time, urgent or balanced",
		},
		&cli.Float64Flag{
			Name:  "budget",
			Usage: "Budget cap for non-essential items",
		},
		&cli.IntFlag{
			Name:  "max-items",
			Usage: "Cap the final list size",
		},
		&cli.StringFlag{
			Name:  "stores",
			Usage: "Comma-separated preferred store ranking",
		},
		&cli.BoolFlag{
			Name:  "essentials-only",
			Usage: "Drop everything not labeled essential",
		},
	)
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "restockd",
		Usage: "Predict consumption and plan reorders from an inventory CSV",
		Commands: []*cli.Command{
			{
				Name:   "suggest",
				Usage:  "List items that need reordering",
				Flags:  suggestFlags(),
				Action: runSuggest,
			},
			{
				Name:   "optimize",
				Usage:  "Build an ordered, constrained shopping list",
				Flags:  optimizeFlags(),
				Action: runOptimize,
			},
			{
				Name:   "plan",
				Usage:  "Split the shopping list into bounded purchase batches",
				Flags:  optimizeFlags(),
				Action: runPlan,
			},
			{
				Name:   "insights",
				Usage:  "Report spending patterns and stock health",
				Flags:  []cli.Flag{newFileFlag()},
				Action: runInsights,
			},
			{
				Name:   "subscriptions",
				Usage:  "Estimate subscribe-and-save opportunities",
				Flags:  []cli.Flag{newFileFlag()},
				Action: runSubscriptions,
			},
			{
				Name:   "import",
				Usage:  "Load an inventory CSV into the database",
				Flags:  importFlags(),
				Action: runImport,
			},
			{
				Name:  "export",
				Usage: "Upload inventory and suggestion CSVs to object storage",
				Flags: []cli.Flag{
					newFileFlag(),
					&cli.StringFlag{
						Name:  "prefix",
						Usage: "Object key prefix",
						Value: "exports",
					},
				},
				Action: runExport,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadService reads the inventory file into an in-memory store and wraps it
// with the full service stack, so CLI commands and the server share one code
// path.
func loadService(ctx context.Context, c *cli.Context) (*service.RestockService, error) {
	result, err := csvio.ReadFile(c.String("file"))
	if err != nil {
		return nil, err
	}
	if result.SkippedRows > 0 {
		log.Printf("skipped %d unusable rows", result.SkippedRows)
	}

	repo := repository.NewMemoryInventoryRepository()
	if err := repo.ReplaceAll(ctx, result.Items); err != nil {
		return nil, err
	}

	cfg := config.Load()
	return service.NewRestockService(repo, nil, cfg.App.HouseholdSize), nil
}

func parseSuggestOptions(c *cli.Context) engine.SuggestOptions {
	return engine.SuggestOptions{
		NotificationThreshold: c.Int("notification-threshold"),
		BulkPurchaseThreshold: c.Int("bulk-threshold"),
	}
}

func parseOptimizeOptions(c *cli.Context) engine.OptimizeOptions {
	opts := engine.OptimizeOptions{
		Preference:           domain.ParsePreference(c.String("preference")),
		MaxItems:             c.Int("max-items"),
		Budget:               c.Float64("budget"),
		ExcludeNonEssentials: c.Bool("essentials-only"),
	}
	for _, store := range strings.Split(c.String("stores"), ",") {
		if store = strings.TrimSpace(store); store != "" {
			opts.PreferredStores = append(opts.PreferredStores, store)
		}
	}
	return opts
}

func runSuggest(c *cli.Context) error {
	svc, err := loadService(c.Context, c)
	if err != nil {
		return err
	}

	set, err := svc.GetSuggestions(c.Context, parseSuggestOptions(c))
	if err != nil {
		return err
	}

	if out := c.String("out"); out != "" {
		return writeCSVFile(out, func(f *os.File) error {
			return csvio.WriteSuggestions(f, set.Items)
		})
	}
	return printJSON(set)
}

func runOptimize(c *cli.Context) error {
	svc, err := loadService(c.Context, c)
	if err != nil {
		return err
	}

	list, err := svc.GetOptimizedList(c.Context, parseSuggestOptions(c), parseOptimizeOptions(c))
	if err != nil {
		return err
	}

	if out := c.String("out"); out != "" {
		return writeCSVFile(out, func(f *os.File) error {
			return csvio.WriteSuggestions(f, list.Items)
		})
	}
	return printJSON(list)
}

func runPlan(c *cli.Context) error {
	svc, err := loadService(c.Context, c)
	if err != nil {
		return err
	}

	list, batches, err := svc.GetShoppingPlan(c.Context, parseSuggestOptions(c), parseOptimizeOptions(c))
	if err != nil {
		return err
	}

	if out := c.String("out"); out != "" {
		return writeCSVFile(out, func(f *os.File) error {
			return csvio.WriteBatches(f, batches)
		})
	}
	return printJSON(map[string]any{
		"list":    list,
		"batches": batches,
	})
}

func runInsights(c *cli.Context) error {
	svc, err := loadService(c.Context, c)
	if err != nil {
		return err
	}

	report, err := svc.GetInsights(c.Context)
	if err != nil {
		return err
	}
	return printJSON(report)
}

func runSubscriptions(c *cli.Context) error {
	svc, err := loadService(c.Context, c)
	if err != nil {
		return err
	}

	report, err := svc.GetSubscriptionReport(c.Context)
	if err != nil {
		return err
	}
	return printJSON(report)
}

// runExport builds the inventory and suggestion CSVs and uploads both
// concurrently.
func runExport(c *cli.Context) error {
	svc, err := loadService(c.Context, c)
	if err != nil {
		return err
	}

	cfg := config.Load()
	store, err := storage.NewMinioClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("object storage unavailable: %w", err)
	}

	items, err := svc.ListItems(c.Context)
	if err != nil {
		return err
	}
	set, err := svc.GetSuggestions(c.Context, engine.SuggestOptions{})
	if err != nil {
		return err
	}

	stamp := time.Now().Format("20060102-150405")
	prefix := strings.Trim(c.String("prefix"), "/")

	g, ctx := errgroup.WithContext(c.Context)
	g.Go(func() error {
		var buf strings.Builder
		if err := csvio.WriteItems(&buf, items); err != nil {
			return err
		}
		key := filepath.ToSlash(filepath.Join(prefix, "inventory-"+stamp+".csv"))
		return store.UploadObject(ctx, key, []byte(buf.String()))
	})
	g.Go(func() error {
		var buf strings.Builder
		if err := csvio.WriteSuggestions(&buf, set.Items); err != nil {
			return err
		}
		key := filepath.ToSlash(filepath.Join(prefix, "suggestions-"+stamp+".csv"))
		return store.UploadObject(ctx, key, []byte(buf.String()))
	})
	if err := g.Wait(); err != nil {
		return err
	}

	log.Printf("exported %d items and %d suggestions under %s/", len(items), len(set.Items), prefix)
	return nil
}

func writeCSVFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	return write(f)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
