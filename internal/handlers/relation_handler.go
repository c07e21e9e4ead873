package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/matiisnothere-15/septjunto/internal/repository"
	"github.com/matiisnothere-15/septjunto/internal/services"
)

type RelationHandler struct {
	relationService *services.RelationService
	logger          *zap.Logger
}

func NewRelationHandler(relationService *services.RelationService, logger *zap.Logger) *RelationHandler {
	return &RelationHandler{relationService: relationService, logger: logger}
}

// CreateRelation assigns hours to a component/complexity pair
// @Summary Create a relation
// @Tags relations
// @Accept json
// @Produce json
// @Param relation body services.RelationInput true "Pair and hours"
// @Success 201 {object} models.Relation
// @Failure 400 {object} map[string]interface{} "Invalid relation data"
// @Failure 404 {object} map[string]interface{} "Component or complexity not found"
// @Failure 409 {object} map[string]interface{} "Pair already has hours"
// @Router /relations [post]
func (h *RelationHandler) CreateRelation(c *fiber.Ctx) error {
	var in services.RelationInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request format", err)
	}

	relation, err := h.relationService.CreateRelation(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create relation")
	}
	return c.Status(fiber.StatusCreated).JSON(relation)
}

// UpsertRelation sets the hours of a pair
// @Summary Create or update the hours of a pair
// @Tags relations
// @Accept json
// @Produce json
// @Param relation body services.RelationInput true "Pair and hours"
// @Success 200 {object} models.Relation
// @Failure 400 {object} map[string]interface{} "Invalid relation data"
// @Failure 404 {object} map[string]interface{} "Component or complexity not found"
// @Router /relations [put]
func (h *RelationHandler) UpsertRelation(c *fiber.Ctx) error {
	var in services.RelationInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request format", err)
	}

	relation, err := h.relationService.UpsertRelation(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to save relation")
	}
	return c.JSON(relation)
}

// ListRelations lists relations
// @Summary List relations
// @Description Relations ordered by component name and complexity rank
// @Tags relations
// @Produce json
// @Param component_id query string false "Component ID" Format(uuid)
// @Param complexity_id query string false "Complexity ID" Format(uuid)
// @Success 200 {array} models.Relation
// @Failure 400 {object} map[string]interface{} "Invalid UUID"
// @Router /relations [get]
func (h *RelationHandler) ListRelations(c *fiber.Ctx) error {
	componentID, err := optionalID(c, "component_id")
	if err != nil {
		return badRequest(c, InvalidUuidError, err)
	}
	complexityID, err := optionalID(c, "complexity_id")
	if err != nil {
		return badRequest(c, InvalidUuidError, err)
	}

	relations, err := h.relationService.ListRelations(c.UserContext(), repository.RelationFilter{
		ComponentID:  componentID,
		ComplexityID: complexityID,
	})
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list relations")
	}
	return c.JSON(relations)
}

// LookupRelation returns the hours of one pair
// @Summary Look up the relation of a pair
// @Tags relations
// @Produce json
// @Param component_id query string true "Component ID" Format(uuid)
// @Param complexity_id query string true "Complexity ID" Format(uuid)
// @Success 200 {object} models.Relation
// @Failure 400 {object} map[string]interface{} "Invalid UUID"
// @Failure 404 {object} map[string]interface{} "No hours for the pair"
// @Router /relations/lookup [get]
func (h *RelationHandler) LookupRelation(c *fiber.Ctx) error {
	componentID, err := uuid.Parse(c.Query("component_id"))
	if err != nil {
		return badRequest(c, InvalidUuidError, err)
	}
	complexityID, err := uuid.Parse(c.Query("complexity_id"))
	if err != nil {
		return badRequest(c, InvalidUuidError, err)
	}

	relation, err := h.relationService.LookupRelation(c.UserContext(), componentID, complexityID)
	if err != nil {
		return respondError(c, h.logger, err, "Relation not found")
	}
	return c.JSON(relation)
}

// GetRelation returns a relation by ID
// @Summary Get a relation
// @Tags relations
// @Produce json
// @Param id path string true "Relation ID" Format(uuid)
// @Success 200 {object} models.Relation
// @Failure 404 {object} map[string]interface{} "Relation not found"
// @Router /relations/{id} [get]
func (h *RelationHandler) GetRelation(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, InvalidUuidError, err)
	}

	relation, err := h.relationService.GetRelation(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err, "Relation not found")
	}
	return c.JSON(relation)
}

// UpdateRelationHours changes the hours of a relation
// @Summary Update relation hours
// @Tags relations
// @Accept json
// @Produce json
// @Param id path string true "Relation ID" Format(uuid)
// @Param hours body services.RelationHoursInput true "New hours"
// @Success 200 {object} models.Relation
// @Failure 400 {object} map[string]interface{} "Invalid hours"
// @Failure 404 {object} map[string]interface{} "Relation not found"
// @Router /relations/{id} [put]
func (h *RelationHandler) UpdateRelationHours(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, InvalidUuidError, err)
	}
	var in services.RelationHoursInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request format", err)
	}

	relation, err := h.relationService.UpdateRelationHours(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update relation")
	}
	return c.JSON(relation)
}

// DeleteRelation removes a relation
// @Summary Delete a relation
// @Tags relations
// @Produce json
// @Param id path string true "Relation ID" Format(uuid)
// @Success 200 {object} map[string]interface{} "Relation deleted"
// @Failure 404 {object} map[string]interface{} "Relation not found"
// @Router /relations/{id} [delete]
func (h *RelationHandler) DeleteRelation(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, InvalidUuidError, err)
	}

	if err := h.relationService.DeleteRelation(c.UserContext(), id); err != nil {
		return respondError(c, h.logger, err, "Failed to delete relation")
	}
	return c.JSON(fiber.Map{"message": "Relation deleted", "id": id.String()})
}
