// internal/api/handlers/inventory_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/pantryops/restockd/internal/csvio"
	"github.com/pantryops/restockd/internal/domain"
	"github.com/pantryops/restockd/internal/service"
)

type InventoryHandler struct {
	service *service.RestockService
}

func NewInventoryHandler(service *service.RestockService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

func (h *InventoryHandler) ListItems(c *gin.Context) {
	items, err := h.service.ListItems(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list items", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": len(items),
	})
}

func (h *InventoryHandler) GetItem(c *gin.Context) {
	item, err := h.service.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) UpsertItem(c *gin.Context) {
	var item domain.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item payload"})
		return
	}
	item.ID = c.Param("id")

	if err := h.service.UpsertItem(c.Request.Context(), &item); err != nil {
		respondEngineError(c, err, "failed to save item")
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	if err := h.service.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *InventoryHandler) RecordPurchase(c *gin.Context) {
	var record domain.PurchaseRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid purchase payload"})
		return
	}
	if record.Date.IsZero() {
		record.Date = time.Now()
	}

	if err := h.service.RecordPurchase(c.Request.Context(), c.Param("id"), record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record purchase", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, record)
}

// ImportCSV replaces the stored inventory with an uploaded CSV snapshot.
func (h *InventoryHandler) ImportCSV(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}

	opened, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	defer opened.Close()

	result, err := csvio.Read(opened)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid inventory csv", "details": err.Error()})
		return
	}

	if err := h.service.ImportInventory(c.Request.Context(), result.Items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to import inventory", "details": err.Error()})
		return
	}

	log.Info().
		Str("filename", file.Filename).
		Int("items", len(result.Items)).
		Int("skipped_rows", result.SkippedRows).
		Msg("inventory imported")

	c.JSON(http.StatusOK, gin.H{
		"imported":     len(result.Items),
		"skipped_rows": result.SkippedRows,
	})
}
