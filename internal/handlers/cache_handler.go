package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/matiisnothere-15/septjunto/internal/services"
)

// CacheHandler handles cache-related HTTP endpoints
type CacheHandler struct {
	cache  *services.CatalogCache
	logger *zap.Logger
}

// NewCacheHandler creates a new cache handler
func NewCacheHandler(cache *services.CatalogCache, logger *zap.Logger) *CacheHandler {
	return &CacheHandler{cache: cache, logger: logger}
}

// GetCacheStats returns the statistics of the catalog cache
// @Summary Get cache statistics
// @Description Hits, misses and entries of the active catalog cache layer
// @Tags cache
// @Produce json
// @Success 200 {object} cache.LayerStats
// @Router /cache/stats [get]
func (h *CacheHandler) GetCacheStats(c *fiber.Ctx) error {
	stats, enabled := h.cache.Stats(c.UserContext())
	if !enabled {
		return c.JSON(fiber.Map{"enabled": false})
	}
	return c.JSON(fiber.Map{
		"enabled": true,
		"layer":   stats,
	})
}

// ClearCache empties the catalog cache
// @Summary Clear the catalog cache
// @Tags cache
// @Produce json
// @Success 200 {object} map[string]interface{} "Cache cleared"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /cache [delete]
func (h *CacheHandler) ClearCache(c *fiber.Ctx) error {
	if err := h.cache.Clear(c.UserContext()); err != nil {
		return respondError(c, h.logger, err, "Failed to clear cache")
	}
	h.logger.Info("catalog cache cleared")
	return c.JSON(fiber.Map{"message": "Cache cleared"})
}
