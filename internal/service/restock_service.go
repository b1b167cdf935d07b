package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/pantryops/restockd/internal/cache"
	"github.com/pantryops/restockd/internal/domain"
	"github.com/pantryops/restockd/internal/engine"
	"github.com/pantryops/restockd/internal/repository"
)

// RestockService composes the inventory store, the suggestion cache and the
// prediction engine. Handlers and CLI commands talk to this, never to the
// engine directly.
type RestockService struct {
	repo          repository.InventoryRepository
	cache         cache.SuggestionCache
	predictor     *engine.Predictor
	householdSize int
}

func NewRestockService(repo repository.InventoryRepository, cacheImpl cache.SuggestionCache, householdSize int) *RestockService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopSuggestionCache()
	}
	return &RestockService{
		repo:          repo,
		cache:         cacheImpl,
		predictor:     engine.NewPredictor(),
		householdSize: householdSize,
	}
}

func (s *RestockService) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	return s.repo.ListItems(ctx)
}

func (s *RestockService) GetItem(ctx context.Context, id string) (*domain.InventoryItem, error) {
	return s.repo.GetItem(ctx, id)
}

func (s *RestockService) UpsertItem(ctx context.Context, item *domain.InventoryItem) error {
	if err := engine.Validate(item); err != nil {
		return err
	}
	if err := s.repo.UpsertItem(ctx, item); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *RestockService) DeleteItem(ctx context.Context, id string) error {
	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *RestockService) RecordPurchase(ctx context.Context, itemID string, record domain.PurchaseRecord) error {
	if err := s.repo.AppendPurchase(ctx, itemID, record); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// ImportInventory replaces the stored inventory with an imported snapshot.
func (s *RestockService) ImportInventory(ctx context.Context, items []domain.InventoryItem) error {
	if len(items) == 0 {
		return fmt.Errorf("import contains no items")
	}
	if err := s.repo.ReplaceAll(ctx, items); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// GetSuggestions builds the reorder suggestion set for the current inventory.
// Items without a known consumption rate are enriched with a predicted one
// before depletion math runs.
func (s *RestockService) GetSuggestions(ctx context.Context, opts engine.SuggestOptions) (*domain.SuggestionSet, error) {
	if set, ok, err := s.cache.Get(ctx, opts); err == nil && ok {
		return set, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("suggestions: cache get failed")
	}

	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	s.enrich(items)

	set, err := engine.Suggest(items, opts)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, opts, set); err != nil {
		log.Warn().Err(err).Msg("suggestions: cache set failed")
	}

	return set, nil
}

// GetOptimizedList runs suggestion generation and list optimization in one go.
func (s *RestockService) GetOptimizedList(ctx context.Context, sopts engine.SuggestOptions, oopts engine.OptimizeOptions) (*domain.OptimizedList, error) {
	set, err := s.GetSuggestions(ctx, sopts)
	if err != nil {
		return nil, err
	}
	return engine.Optimize(set.Items, oopts)
}

// GetShoppingPlan produces the optimized list split into bounded purchase
// batches.
func (s *RestockService) GetShoppingPlan(ctx context.Context, sopts engine.SuggestOptions, oopts engine.OptimizeOptions) (*domain.OptimizedList, []domain.Batch, error) {
	list, err := s.GetOptimizedList(ctx, sopts, oopts)
	if err != nil {
		return nil, nil, err
	}
	return list, engine.PlanBatches(list.Items), nil
}

func (s *RestockService) GetInsights(ctx context.Context) (*domain.InsightReport, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	s.enrich(items)
	return engine.Insights(items)
}

func (s *RestockService) GetSubscriptionReport(ctx context.Context) (*domain.SubscriptionSavingsReport, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	return engine.SubscriptionSavings(items), nil
}

// PredictItem exposes the consumption heuristic for a single named item.
func (s *RestockService) PredictItem(ctx context.Context, req engine.PredictRequest) (engine.Prediction, error) {
	if req.HouseholdSize <= 0 {
		req.HouseholdSize = s.householdSize
	}
	return s.predictor.Predict(req)
}

// enrich fills in a predicted consumption rate for items that have none, so
// depletion math never falls back blind when the predictor has an opinion.
func (s *RestockService) enrich(items []domain.InventoryItem) {
	for i := range items {
		item := &items[i]
		if item.DailyConsumptionRate > 0 {
			continue
		}

		pred, err := s.predictor.Predict(engine.PredictRequest{
			ItemName:        item.Name,
			Category:        item.Category,
			HouseholdSize:   s.householdSize,
			Seasonality:     item.SeasonalPatterns,
			PurchaseHistory: item.PurchaseHistory,
		})
		if err != nil {
			continue
		}

		item.DailyConsumptionRate = pred.DailyConsumptionRate
		if item.MinThreshold <= 0 {
			item.MinThreshold = pred.SuggestedThreshold
		}
		if item.AIMeta == nil {
			item.AIMeta = &domain.AIMetadata{Confidence: pred.Confidence}
		}
	}
}

func (s *RestockService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("suggestions: cache invalidate failed")
	}
}
