// internal/repository/inventory.go
package repository

import (
	"context"

	"github.com/pantryops/restockd/internal/domain"
)

type InventoryRepository interface {
	ListItems(ctx context.Context) ([]domain.InventoryItem, error)
	GetItem(ctx context.Context, id string) (*domain.InventoryItem, error)
	UpsertItem(ctx context.Context, item *domain.InventoryItem) error
	DeleteItem(ctx context.Context, id string) error

	// ReplaceAll swaps the stored inventory for a freshly imported snapshot.
	ReplaceAll(ctx context.Context, items []domain.InventoryItem) error

	// AppendPurchase records one purchase history entry for an item.
	AppendPurchase(ctx context.Context, itemID string, record domain.PurchaseRecord) error
}
