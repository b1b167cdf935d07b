// internal/api/handlers/restock_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pantryops/restockd/internal/domain"
	"github.com/pantryops/restockd/internal/engine"
	"github.com/pantryops/restockd/internal/service"
)

type RestockHandler struct {
	service *service.RestockService
}

func NewRestockHandler(service *service.RestockService) *RestockHandler {
	return &RestockHandler{service: service}
}

func (h *RestockHandler) parseSuggestOptions(c *gin.Context) engine.SuggestOptions {
	opts := engine.SuggestOptions{}

	if v, err := strconv.Atoi(c.Query("notification_threshold")); err == nil && v > 0 {
		opts.NotificationThreshold = v
	}
	if v, err := strconv.Atoi(c.Query("bulk_threshold")); err == nil && v > 0 {
		opts.BulkPurchaseThreshold = v
	}

	// include_* flags default to true; an explicit false flips the skip
	opts.SkipOutOfStock = !parseBoolDefault(c.Query("include_out_of_stock"), true)
	opts.SkipBelowThreshold = !parseBoolDefault(c.Query("include_below_threshold"), true)
	opts.SkipNearDepletion = !parseBoolDefault(c.Query("include_near_depletion"), true)

	return opts
}

func (h *RestockHandler) parseOptimizeOptions(c *gin.Context) engine.OptimizeOptions {
	opts := engine.OptimizeOptions{}

	opts.Preference = domain.ParsePreference(c.Query("preference"))
	if v, err := strconv.Atoi(c.Query("max_items")); err == nil && v > 0 {
		opts.MaxItems = v
	}
	if v, err := strconv.ParseFloat(c.Query("budget"), 64); err == nil && v > 0 {
		opts.Budget = v
	}
	if stores := strings.TrimSpace(c.Query("stores")); stores != "" {
		for _, store := range strings.Split(stores, ",") {
			if store = strings.TrimSpace(store); store != "" {
				opts.PreferredStores = append(opts.PreferredStores, store)
			}
		}
	}
	opts.ExcludeNonEssentials = parseBoolDefault(c.Query("essentials_only"), false)

	return opts
}

func (h *RestockHandler) GetSuggestions(c *gin.Context) {
	set, err := h.service.GetSuggestions(c.Request.Context(), h.parseSuggestOptions(c))
	if err != nil {
		respondEngineError(c, err, "failed to build suggestions")
		return
	}

	c.JSON(http.StatusOK, set)
}

func (h *RestockHandler) GetOptimizedList(c *gin.Context) {
	list, err := h.service.GetOptimizedList(c.Request.Context(),
		h.parseSuggestOptions(c), h.parseOptimizeOptions(c))
	if err != nil {
		respondEngineError(c, err, "failed to optimize shopping list")
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *RestockHandler) GetShoppingPlan(c *gin.Context) {
	list, batches, err := h.service.GetShoppingPlan(c.Request.Context(),
		h.parseSuggestOptions(c), h.parseOptimizeOptions(c))
	if err != nil {
		respondEngineError(c, err, "failed to build shopping plan")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"list":    list,
		"batches": batches,
	})
}

func (h *RestockHandler) GetInsights(c *gin.Context) {
	report, err := h.service.GetInsights(c.Request.Context())
	if err != nil {
		respondEngineError(c, err, "failed to build insights")
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *RestockHandler) GetSubscriptionReport(c *gin.Context) {
	report, err := h.service.GetSubscriptionReport(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build subscription report", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *RestockHandler) PredictItem(c *gin.Context) {
	req := engine.PredictRequest{
		ItemName: c.Query("name"),
		Category: domain.Category(strings.ToLower(strings.TrimSpace(c.Query("category")))),
	}
	if v, err := strconv.Atoi(c.Query("household_size")); err == nil && v > 0 {
		req.HouseholdSize = v
	}

	pred, err := h.service.PredictItem(c.Request.Context(), req)
	if err != nil {
		respondEngineError(c, err, "failed to predict consumption")
		return
	}

	c.JSON(http.StatusOK, pred)
}

func respondEngineError(c *gin.Context, err error, message string) {
	var validationErr *engine.ValidationError
	var emptyErr *engine.EmptyInputError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &emptyErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": emptyErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": message, "details": err.Error()})
	}
}

func parseBoolDefault(value string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "y":
		return true
	case "0", "false", "no", "n":
		return false
	}
	return fallback
}
