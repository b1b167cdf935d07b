// cmd/restockd/db_import.go
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/urfave/cli/v2"

	"github.com/pantryops/restockd/internal/csvio"
	"github.com/pantryops/restockd/internal/domain"
	"github.com/pantryops/restockd/internal/pipeline"
)

func importFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "file",
			Usage:   "Inventory CSV file",
			EnvVars: []string{"INVENTORY_CSV"},
		},
		&cli.StringFlag{
			Name:  "dir",
			Usage: "Directory of inventory CSVs to merge and load",
		},
		&cli.StringFlag{
			Name:     "db-url",
			Usage:    "Database connection string",
			Required: true,
			EnvVars:  []string{"DATABASE_URL"},
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "Concurrent file readers for --dir",
		},
		&cli.BoolFlag{
			Name:  "replace",
			Usage: "Clear existing inventory before loading",
		},
	}
}

// runImport loads inventory CSVs straight into Postgres. It opens its own
// short-lived connection rather than going through the server's pool.
func runImport(c *cli.Context) error {
	items, err := collectImportItems(c)
	if err != nil {
		return err
	}

	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	ctx := c.Context

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if c.Bool("replace") {
		if _, err := tx.ExecContext(ctx, `DELETE FROM purchase_history`); err != nil {
			return fmt.Errorf("failed to clear purchase history: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM inventory_items`); err != nil {
			return fmt.Errorf("failed to clear inventory: %w", err)
		}
	}

	if err := loadItems(ctx, tx, items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("imported %d items", len(items))
	return nil
}

// collectImportItems reads either a single CSV or a merged directory of CSVs.
func collectImportItems(c *cli.Context) ([]domain.InventoryItem, error) {
	if dir := c.String("dir"); dir != "" {
		ingestor := pipeline.NewIngestor(pipeline.Config{WorkerCount: c.Int("workers")})
		result, err := ingestor.IngestDir(c.Context, dir)
		if err != nil {
			return nil, err
		}
		if result.SkippedRows > 0 {
			log.Printf("skipped %d unusable rows across %d files", result.SkippedRows, result.Files)
		}
		for _, failed := range result.Failed {
			log.Printf("warning: could not ingest %s: %v", failed.Path, failed.Err)
		}
		return result.Items, nil
	}

	file := c.String("file")
	if file == "" {
		return nil, fmt.Errorf("either --file or --dir is required")
	}

	result, err := csvio.ReadFile(file)
	if err != nil {
		return nil, err
	}
	if len(result.Items) == 0 {
		return nil, fmt.Errorf("no usable rows in %s", file)
	}
	if result.SkippedRows > 0 {
		log.Printf("skipped %d unusable rows", result.SkippedRows)
	}
	return result.Items, nil
}

func loadItems(ctx context.Context, tx *sql.Tx, items []domain.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (
			id, name, quantity, unit, min_threshold, category,
			purchase_frequency, price, daily_consumption_rate,
			has_subscription, seasonal_patterns, store, aisle, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			quantity = EXCLUDED.quantity,
			unit = EXCLUDED.unit,
			min_threshold = EXCLUDED.min_threshold,
			category = EXCLUDED.category,
			purchase_frequency = EXCLUDED.purchase_frequency,
			price = EXCLUDED.price,
			daily_consumption_rate = EXCLUDED.daily_consumption_rate,
			has_subscription = EXCLUDED.has_subscription,
			seasonal_patterns = EXCLUDED.seasonal_patterns,
			store = EXCLUDED.store,
			aisle = EXCLUDED.aisle,
			updated_at = NOW()
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i := range items {
		item := &items[i]

		var seasonal any
		if len(item.SeasonalPatterns) > 0 {
			data, err := json.Marshal(item.SeasonalPatterns)
			if err != nil {
				return fmt.Errorf("failed to marshal seasonal patterns for %s: %w", item.ID, err)
			}
			seasonal = data
		}

		if _, err := stmt.ExecContext(ctx,
			item.ID,
			item.Name,
			item.Quantity,
			item.Unit,
			item.MinThreshold,
			string(item.Category),
			string(item.PurchaseFrequency),
			item.Price,
			item.DailyConsumptionRate,
			item.HasSubscription,
			seasonal,
			nullIfEmpty(item.Store),
			nullIfEmpty(item.Aisle),
		); err != nil {
			return fmt.Errorf("failed to insert item %s: %w", item.ID, err)
		}
	}

	return nil
}

// nullIfEmpty returns NULL if the string is empty, otherwise returns the string
func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
