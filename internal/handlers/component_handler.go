package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/matiisnothere-15/septjunto/internal/repository"
	"github.com/matiisnothere-15/septjunto/internal/services"
)

type ComponentHandler struct {
	componentService *services.ComponentService
	logger           *zap.Logger
}

func NewComponentHandler(componentService *services.ComponentService, logger *zap.Logger) *ComponentHandler {
	return &ComponentHandler{componentService: componentService, logger: logger}
}

// CreateComponent creates a component in a project
// @Summary Create a component
// @Tags components
// @Accept json
// @Produce json
// @Param component body services.ComponentInput true "Component data"
// @Success 201 {object} models.Component
// @Failure 400 {object} map[string]interface{} "Invalid component data"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Failure 409 {object} map[string]interface{} "Component name already in use"
// @Router /components [post]
func (h *ComponentHandler) CreateComponent(c *fiber.Ctx) error {
	var in services.ComponentInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request format", err)
	}

	component, err := h.componentService.CreateComponent(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create component")
	}
	return c.Status(fiber.StatusCreated).JSON(component)
}

// ListComponents lists components
// @Summary List components
// @Description Active components ordered by name, optionally for one project
// @Tags components
// @Produce json
// @Param project_id query string false "Project ID" Format(uuid)
// @Param include_inactive query bool false "Include deactivated components"
// @Success 200 {array} models.Component
// @Failure 400 {object} map[string]interface{} "Invalid UUID"
// @Router /components [get]
func (h *ComponentHandler) ListComponents(c *fiber.Ctx) error {
	projectID, err := optionalID(c, "project_id")
	if err != nil {
		return badRequest(c, InvalidUuidError, err)
	}

	components, err := h.componentService.ListComponents(c.UserContext(), repository.ComponentFilter{
		ProjectID:       projectID,
		IncludeInactive: c.QueryBool("include_inactive", false),
	})
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list components")
	}
	return c.JSON(components)
}

// GetComponent returns a component by ID
// @Summary Get a component
// @Tags components
// @Produce json
// @Param id path string true "Component ID" Format(uuid)
// @Success 200 {object} models.Component
// @Failure 404 {object} map[string]interface{} "Component not found"
// @Router /components/{id} [get]
func (h *ComponentHandler) GetComponent(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, InvalidUuidError, err)
	}

	component, err := h.componentService.GetComponent(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err, "Component not found")
	}
	return c.JSON(component)
}

// UpdateComponent updates a component
// @Summary Update a component
// @Tags components
// @Accept json
// @Produce json
// @Param id path string true "Component ID" Format(uuid)
// @Param component body services.ComponentUpdateInput true "Updated component data"
// @Success 200 {object} models.Component
// @Failure 400 {object} map[string]interface{} "Invalid component data"
// @Failure 404 {object} map[string]interface{} "Component not found"
// @Failure 409 {object} map[string]interface{} "Component name already in use"
// @Router /components/{id} [put]
func (h *ComponentHandler) UpdateComponent(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, InvalidUuidError, err)
	}
	var in services.ComponentUpdateInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request format", err)
	}

	component, err := h.componentService.UpdateComponent(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update component")
	}
	return c.JSON(component)
}

// DeleteComponent deactivates a component
// @Summary Deactivate a component
// @Tags components
// @Produce json
// @Param id path string true "Component ID" Format(uuid)
// @Success 200 {object} map[string]interface{} "Component deactivated"
// @Failure 404 {object} map[string]interface{} "Component not found"
// @Failure 409 {object} map[string]interface{} "Component has relations"
// @Router /components/{id} [delete]
func (h *ComponentHandler) DeleteComponent(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, InvalidUuidError, err)
	}

	if err := h.componentService.DeleteComponent(c.UserContext(), id); err != nil {
		return respondError(c, h.logger, err, "Failed to delete component")
	}
	return c.JSON(fiber.Map{"message": "Component deactivated", "id": id.String()})
}
