package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/matiisnothere-15/septjunto/internal/services"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
	logger         *zap.Logger
}

func NewCatalogHandler(catalogService *services.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, logger: logger}
}

// ImportCatalog imports a catalog document
// @Summary Import a catalog
// @Description Upload a YAML catalog, or a zip/tar archive of YAML catalogs. Importing the same document twice changes nothing.
// @Tags catalog
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Catalog (.yaml, .yml, .zip, .tar, .tar.gz)"
// @Success 200 {object} services.ImportResult
// @Failure 400 {object} map[string]interface{} "Invalid catalog"
// @Failure 409 {object} map[string]interface{} "Catalog conflicts with existing data"
// @Router /catalog/import [post]
func (h *CatalogHandler) ImportCatalog(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "Failed to read file", err)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return badRequest(c, "Failed to open file", err)
	}
	defer file.Close()

	h.logger.Info("importing catalog", zap.String("filename", fileHeader.Filename), zap.Int64("size", fileHeader.Size))
	result, err := h.catalogService.ImportFile(c.UserContext(), fileHeader.Filename, file)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to import catalog")
	}
	return c.JSON(result)
}

// SeedCatalog imports the built-in reference catalog
// @Summary Apply the built-in catalog
// @Tags catalog
// @Produce json
// @Success 200 {object} services.ImportResult
// @Router /catalog/seed [post]
func (h *CatalogHandler) SeedCatalog(c *fiber.Ctx) error {
	result, err := h.catalogService.Seed(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err, "Failed to seed catalog")
	}
	return c.JSON(result)
}
