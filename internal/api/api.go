// internal/api/api.go
package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pantryops/restockd/internal/api/handlers"
	"github.com/pantryops/restockd/internal/api/middleware"
	"github.com/pantryops/restockd/internal/service"
)

func NewRouter(restockService *service.RestockService, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	apiGroup := router.Group("/api/v1")

	if restockService != nil {
		inventoryHandler := handlers.NewInventoryHandler(restockService)
		itemsGroup := apiGroup.Group("/items")
		{
			itemsGroup.GET("", inventoryHandler.ListItems)
			itemsGroup.GET("/:id", inventoryHandler.GetItem)
			itemsGroup.PUT("/:id", inventoryHandler.UpsertItem)
			itemsGroup.DELETE("/:id", inventoryHandler.DeleteItem)
			itemsGroup.POST("/:id/purchases", inventoryHandler.RecordPurchase)
		}
		apiGroup.POST("/inventory/import", inventoryHandler.ImportCSV)

		restockHandler := handlers.NewRestockHandler(restockService)
		restockGroup := apiGroup.Group("/restock")
		{
			restockGroup.GET("/suggestions", restockHandler.GetSuggestions)
			restockGroup.GET("/optimize", restockHandler.GetOptimizedList)
			restockGroup.POST("/optimize", restockHandler.GetOptimizedList)
			restockGroup.GET("/plan", restockHandler.GetShoppingPlan)
			restockGroup.POST("/plan", restockHandler.GetShoppingPlan)
			restockGroup.GET("/insights", restockHandler.GetInsights)
			restockGroup.GET("/subscriptions", restockHandler.GetSubscriptionReport)
			restockGroup.GET("/predict", restockHandler.PredictItem)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
