package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/matiisnothere-15/septjunto/internal/services"
)

type ComplexityHandler struct {
	complexityService *services.ComplexityService
	logger            *zap.Logger
}

func NewComplexityHandler(complexityService *services.ComplexityService, logger *zap.Logger) *ComplexityHandler {
	return &ComplexityHandler{complexityService: complexityService, logger: logger}
}

// CreateComplexity creates a complexity level
// @Summary Create a complexity level
// @Tags complexities
// @Accept json
// @Produce json
// @Param complexity body services.ComplexityInput true "Complexity level"
// @Success 201 {object} models.ComplexityLevel
// @Failure 400 {object} map[string]interface{} "Invalid complexity data"
// @Failure 409 {object} map[string]interface{} "Name or rank already in use"
// @Router /complexities [post]
func (h *ComplexityHandler) CreateComplexity(c *fiber.Ctx) error {
	var in services.ComplexityInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request format", err)
	}

	level, err := h.complexityService.CreateComplexity(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create complexity level")
	}
	return c.Status(fiber.StatusCreated).JSON(level)
}

// ListComplexities lists complexity levels by rank
// @Summary List complexity levels
// @Tags complexities
// @Produce json
// @Param include_inactive query bool false "Include deactivated levels"
// @Success 200 {array} models.ComplexityLevel
// @Router /complexities [get]
func (h *ComplexityHandler) ListComplexities(c *fiber.Ctx) error {
	levels, err := h.complexityService.ListComplexities(c.UserContext(), c.QueryBool("include_inactive", false))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list complexity levels")
	}
	return c.JSON(levels)
}

// GetComplexity returns a complexity level by ID
// @Summary Get a complexity level
// @Tags complexities
// @Produce json
// @Param id path string true "Complexity ID" Format(uuid)
// @Success 200 {object} models.ComplexityLevel
// @Failure 404 {object} map[string]interface{} "Complexity level not found"
// @Router /complexities/{id} [get]
func (h *ComplexityHandler) GetComplexity(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, InvalidUuidError, err)
	}

	level, err := h.complexityService.GetComplexity(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err, "Complexity level not found")
	}
	return c.JSON(level)
}

// UpdateComplexity updates a complexity level
// @Summary Update a complexity level
// @Tags complexities
// @Accept json
// @Produce json
// @Param id path string true "Complexity ID" Format(uuid)
// @Param complexity body services.ComplexityInput true "Updated complexity level"
// @Success 200 {object} models.ComplexityLevel
// @Failure 400 {object} map[string]interface{} "Invalid complexity data"
// @Failure 404 {object} map[string]interface{} "Complexity level not found"
// @Failure 409 {object} map[string]interface{} "Name or rank already in use"
// @Router /complexities/{id} [put]
func (h *ComplexityHandler) UpdateComplexity(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, InvalidUuidError, err)
	}
	var in services.ComplexityInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request format", err)
	}

	level, err := h.complexityService.UpdateComplexity(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update complexity level")
	}
	return c.JSON(level)
}

// DeleteComplexity deactivates a complexity level
// @Summary Deactivate a complexity level
// @Tags complexities
// @Produce json
// @Param id path string true "Complexity ID" Format(uuid)
// @Success 200 {object} map[string]interface{} "Complexity level deactivated"
// @Failure 404 {object} map[string]interface{} "Complexity level not found"
// @Failure 409 {object} map[string]interface{} "Complexity level has relations"
// @Router /complexities/{id} [delete]
func (h *ComplexityHandler) DeleteComplexity(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, InvalidUuidError, err)
	}

	if err := h.complexityService.DeleteComplexity(c.UserContext(), id); err != nil {
		return respondError(c, h.logger, err, "Failed to delete complexity level")
	}
	return c.JSON(fiber.Map{"message": "Complexity level deactivated", "id": id.String()})
}
