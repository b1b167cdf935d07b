// internal/repository/memory.go
package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/pantryops/restockd/internal/domain"
)

// MemoryInventoryRepository holds the inventory in process memory. It backs
// the CLI (which works from CSV snapshots) and tests.
type MemoryInventoryRepository struct {
	mu    sync.RWMutex
	items map[string]domain.InventoryItem
}

func NewMemoryInventoryRepository() *MemoryInventoryRepository {
	return &MemoryInventoryRepository{items: make(map[string]domain.InventoryItem)}
}

func (r *MemoryInventoryRepository) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]domain.InventoryItem, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *MemoryInventoryRepository) GetItem(ctx context.Context, id string) (*domain.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("item %s not found", id)
	}
	return &item, nil
}

func (r *MemoryInventoryRepository) UpsertItem(ctx context.Context, item *domain.InventoryItem) error {
	if item == nil || item.ID == "" {
		return fmt.Errorf("item id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = *item
	return nil
}

func (r *MemoryInventoryRepository) DeleteItem(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("item %s not found", id)
	}
	delete(r.items, id)
	return nil
}

func (r *MemoryInventoryRepository) ReplaceAll(ctx context.Context, items []domain.InventoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = make(map[string]domain.InventoryItem, len(items))
	for _, item := range items {
		if item.ID == "" {
			return fmt.Errorf("item %q has no id", item.Name)
		}
		r.items[item.ID] = item
	}
	return nil
}

func (r *MemoryInventoryRepository) AppendPurchase(ctx context.Context, itemID string, record domain.PurchaseRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[itemID]
	if !ok {
		return fmt.Errorf("item %s not found", itemID)
	}
	item.PurchaseHistory = append(item.PurchaseHistory, record)
	r.items[itemID] = item
	return nil
}
