// internal/repository/postgres/inventory_repository.go
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pantryops/restockd/internal/domain"
)

type inventoryRepository struct {
	db *DB
}

func NewInventoryRepository(db *DB) *inventoryRepository {
	return &inventoryRepository{db: db}
}

// itemRow mirrors the inventory_items table. Prediction metadata and seasonal
// patterns live in jsonb columns so the schema does not chase every new field.
type itemRow struct {
	ID                   string          `db:"id"`
	Name                 string          `db:"name"`
	Quantity             int             `db:"quantity"`
	Unit                 string          `db:"unit"`
	MinThreshold         float64         `db:"min_threshold"`
	Category             string          `db:"category"`
	PurchaseFrequency    string          `db:"purchase_frequency"`
	Price                float64         `db:"price"`
	DailyConsumptionRate float64         `db:"daily_consumption_rate"`
	HasSubscription      bool            `db:"has_subscription"`
	AIMetadata           json.RawMessage `db:"ai_metadata"`
	SeasonalPatterns     json.RawMessage `db:"seasonal_patterns"`
	Store                sql.NullString  `db:"store"`
	Aisle                sql.NullString  `db:"aisle"`
	UpdatedAt            time.Time       `db:"updated_at"`
}

const upsertItemQuery = `
	INSERT INTO inventory_items (
		id, name, quantity, unit, min_threshold, category, purchase_frequency,
		price, daily_consumption_rate, has_subscription, ai_metadata,
		seasonal_patterns, store, aisle, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW())
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
		ai_metadata = EXCLUDED.ai_metadata,
		seasonal_patterns = EXCLUDED.seasonal_patterns,
		store = EXCLUDED.store,
		aisle = EXCLUDED.aisle,
		updated_at = NOW()
`

func (r *inventoryRepository) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	query := `
		SELECT id, name, quantity, unit, min_threshold, category,
			purchase_frequency, price, daily_consumption_rate,
			has_subscription, ai_metadata, seasonal_patterns, store, aisle,
			updated_at
		FROM inventory_items
		ORDER BY id
	`

	var rows []itemRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}

	items := make([]domain.InventoryItem, 0, len(rows))
	for i := range rows {
		item, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		history, err := r.purchaseHistory(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		item.PurchaseHistory = history
		items = append(items, *item)
	}

	return items, nil
}

func (r *inventoryRepository) GetItem(ctx context.Context, id string) (*domain.InventoryItem, error) {
	query := `
		SELECT id, name, quantity, unit, min_threshold, category,
			purchase_frequency, price, daily_consumption_rate,
			has_subscription, ai_metadata, seasonal_patterns, store, aisle,
			updated_at
		FROM inventory_items
		WHERE id = $1
	`

	var row itemRow
	if err := sqlx.GetContext(ctx, r.db, &row, query, id); err != nil {
		return nil, fmt.Errorf("failed to get item %s: %w", id, err)
	}

	item, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	history, err := r.purchaseHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	item.PurchaseHistory = history

	return item, nil
}

func (r *inventoryRepository) UpsertItem(ctx context.Context, item *domain.InventoryItem) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		return upsertItemTx(ctx, tx, item)
	})
}

func (r *inventoryRepository) DeleteItem(ctx context.Context, id string) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM purchase_history WHERE item_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete purchase history for %s: %w", id, err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete item %s: %w", id, err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("item %s not found", id)
		}
		return nil
	})
}

// ReplaceAll swaps the stored inventory for a freshly imported snapshot in a
// single transaction.
func (r *inventoryRepository) ReplaceAll(ctx context.Context, items []domain.InventoryItem) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM purchase_history`); err != nil {
			return fmt.Errorf("failed to clear purchase history: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM inventory_items`); err != nil {
			return fmt.Errorf("failed to clear inventory: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, upsertItemQuery)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		historyStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO purchase_history (item_id, purchased_at, quantity, price)
			VALUES ($1, $2, $3, $4)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare history statement: %w", err)
		}
		defer historyStmt.Close()

		for i := range items {
			item := &items[i]
			args, err := upsertArgs(item)
			if err != nil {
				return err
			}
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return fmt.Errorf("failed to insert item %s: %w", item.ID, err)
			}
			for _, record := range item.PurchaseHistory {
				if _, err := historyStmt.ExecContext(ctx, item.ID, record.Date, record.Quantity, record.Price); err != nil {
					return fmt.Errorf("failed to insert history for %s: %w", item.ID, err)
				}
			}
		}

		return nil
	})
}

func (r *inventoryRepository) AppendPurchase(ctx context.Context, itemID string, record domain.PurchaseRecord) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO purchase_history (item_id, purchased_at, quantity, price)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := tx.ExecContext(ctx, query, itemID, record.Date, record.Quantity, record.Price); err != nil {
			return fmt.Errorf("failed to append purchase for %s: %w", itemID, err)
		}
		return nil
	})
}

func (r *inventoryRepository) purchaseHistory(ctx context.Context, itemID string) ([]domain.PurchaseRecord, error) {
	query := `
		SELECT purchased_at, quantity, price
		FROM purchase_history
		WHERE item_id = $1
		ORDER BY purchased_at ASC
	`

	var records []domain.PurchaseRecord
	if err := sqlx.SelectContext(ctx, r.db, &records, query, itemID); err != nil {
		return nil, fmt.Errorf("failed to get purchase history for %s: %w", itemID, err)
	}

	return records, nil
}

func upsertItemTx(ctx context.Context, tx *sql.Tx, item *domain.InventoryItem) error {
	args, err := upsertArgs(item)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, upsertItemQuery, args...); err != nil {
		return fmt.Errorf("failed to upsert item %s: %w", item.ID, err)
	}
	return nil
}

func upsertArgs(item *domain.InventoryItem) ([]any, error) {
	var aiMeta any
	if item.AIMeta != nil {
		data, err := json.Marshal(item.AIMeta)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal ai metadata for %s: %w", item.ID, err)
		}
		aiMeta = data
	}

	var seasonal any
	if len(item.SeasonalPatterns) > 0 {
		data, err := json.Marshal(item.SeasonalPatterns)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal seasonal patterns for %s: %w", item.ID, err)
		}
		seasonal = data
	}

	return []any{
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
		aiMeta,
		seasonal,
		nullableString(item.Store),
		nullableString(item.Aisle),
	}, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (row *itemRow) toDomain() (*domain.InventoryItem, error) {
	item := &domain.InventoryItem{
		ID:                   row.ID,
		Name:                 row.Name,
		Quantity:             row.Quantity,
		Unit:                 row.Unit,
		MinThreshold:         row.MinThreshold,
		Category:             domain.Category(row.Category),
		PurchaseFrequency:    domain.Frequency(row.PurchaseFrequency),
		Price:                row.Price,
		DailyConsumptionRate: row.DailyConsumptionRate,
		HasSubscription:      row.HasSubscription,
		Store:                row.Store.String,
		Aisle:                row.Aisle.String,
		UpdatedAt:            row.UpdatedAt,
	}

	if len(row.AIMetadata) > 0 {
		var meta domain.AIMetadata
		if err := json.Unmarshal(row.AIMetadata, &meta); err != nil {
			return nil, fmt.Errorf("failed to decode ai metadata for %s: %w", row.ID, err)
		}
		item.AIMeta = &meta
	}

	if len(row.SeasonalPatterns) > 0 {
		patterns := make(map[int]float64)
		if err := json.Unmarshal(row.SeasonalPatterns, &patterns); err != nil {
			return nil, fmt.Errorf("failed to decode seasonal patterns for %s: %w", row.ID, err)
		}
		item.SeasonalPatterns = patterns
	}

	return item, nil
}
