package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/matiisnothere-15/septjunto/internal/services"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	logger         *zap.Logger
}

func NewProjectHandler(projectService *services.ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, logger: logger}
}

// CreateProject creates a new project
// @Summary Create a new project
// @Description Create a project with a unique name
// @Tags projects
// @Accept json
// @Produce json
// @Param project body services.ProjectInput true "Project data"
// @Success 201 {object} models.Project "Project successfully created"
// @Failure 400 {object} map[string]interface{} "Bad request - Invalid project data"
// @Failure 409 {object} map[string]interface{} "Project name already in use"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	var in services.ProjectInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request format", err)
	}

	project, err := h.projectService.CreateProject(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create project")
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

// GetProject returns a project by ID
// @Summary Get a project by ID
// @Tags projects
// @Produce json
// @Param id path string true "Project ID" Format(uuid)
// @Success 200 {object} models.Project "Project found"
// @Failure 400 {object} map[string]interface{} "Invalid UUID"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, InvalidUuidError, err)
	}

	project, err := h.projectService.GetProject(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err, "Project not found")
	}
	return c.JSON(project)
}

// UpdateProject updates a project
// @Summary Update a project
// @Description Update the project name, description and date. Totals are derived from evaluations.
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID" Format(uuid)
// @Param project body services.ProjectInput true "Updated project data"
// @Success 200 {object} models.Project "Updated project"
// @Failure 400 {object} map[string]interface{} "Bad request - Invalid UUID or data"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Failure 409 {object} map[string]interface{} "Project name already in use"
// @Router /projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, InvalidUuidError, err)
	}
	var in services.ProjectInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request format", err)
	}

	project, err := h.projectService.UpdateProject(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update project")
	}
	return c.JSON(project)
}

// DeleteProject deletes a project
// @Summary Delete a project
// @Description Delete a project with its components, relations and evaluations
// @Tags projects
// @Produce json
// @Param id path string true "Project ID" Format(uuid)
// @Success 200 {object} map[string]interface{} "Project deleted successfully"
// @Failure 400 {object} map[string]interface{} "Invalid UUID"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Router /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, InvalidUuidError, err)
	}

	if err := h.projectService.DeleteProject(c.UserContext(), id); err != nil {
		return respondError(c, h.logger, err, "Failed to delete project")
	}
	return c.JSON(fiber.Map{
		"message": "Project deleted successfully",
		"id":      id.String(),
	})
}

// ListProjects returns all projects
// @Summary List all projects
// @Tags projects
// @Produce json
// @Success 200 {array} models.Project "List of all projects"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /projects [get]
func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	projects, err := h.projectService.ListProjects(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list projects")
	}
	return c.JSON(projects)
}

// ListProjectComponents returns the active components of a project
// @Summary List the components of a project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID" Format(uuid)
// @Success 200 {array} models.Component "Active components ordered by name"
// @Failure 400 {object} map[string]interface{} "Invalid UUID"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Router /projects/{id}/components [get]
func (h *ProjectHandler) ListProjectComponents(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, InvalidUuidError, err)
	}

	components, err := h.projectService.ListProjectComponents(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list project components")
	}
	return c.JSON(components)
}

// ListProjectEvaluations returns the evaluations of a project
// @Summary List the evaluations of a project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID" Format(uuid)
// @Success 200 {array} models.Evaluation "Evaluations, newest first"
// @Failure 400 {object} map[string]interface{} "Invalid UUID"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Router /projects/{id}/evaluations [get]
func (h *ProjectHandler) ListProjectEvaluations(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, InvalidUuidError, err)
	}

	evaluations, err := h.projectService.ListProjectEvaluations(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list project evaluations")
	}
	return c.JSON(evaluations)
}
