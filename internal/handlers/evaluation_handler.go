package handlers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/matiisnothere-15/septjunto/internal/metrics"
	"github.com/matiisnothere-15/septjunto/internal/services"
)

type EvaluationHandler struct {
	evaluationService *services.EvaluationService
	reportService     *services.ReportService
	logger            *zap.Logger
}

func NewEvaluationHandler(evaluationService *services.EvaluationService, reportService *services.ReportService, logger *zap.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		evaluationService: evaluationService,
		reportService:     reportService,
		logger:            logger,
	}
}

// PreviewEvaluation computes an evaluation without storing it
// @Summary Preview an evaluation
// @Description Validate the line items and compute totals, days and the task schedule
// @Tags evaluations
// @Accept json
// @Produce json
// @Param evaluation body services.EvaluationInput true "Evaluation data"
// @Success 200 {object} services.EvaluationPreview
// @Failure 400 {object} map[string]interface{} "Invalid evaluation data"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Router /evaluations/preview [post]
func (h *EvaluationHandler) PreviewEvaluation(c *fiber.Ctx) error {
	var in services.EvaluationInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request format", err)
	}

	preview, err := h.evaluationService.PreviewEvaluation(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to preview evaluation")
	}
	return c.JSON(preview)
}

// CreateEvaluation stores an evaluation
// @Summary Create an evaluation
// @Description Hours are copied from the relations at creation time
// @Tags evaluations
// @Accept json
// @Produce json
// @Param evaluation body services.EvaluationInput true "Evaluation data"
// @Success 201 {object} models.Evaluation
// @Failure 400 {object} map[string]interface{} "Invalid evaluation data"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Router /evaluations [post]
func (h *EvaluationHandler) CreateEvaluation(c *fiber.Ctx) error {
	var in services.EvaluationInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request format", err)
	}

	evaluation, err := h.evaluationService.CreateEvaluation(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create evaluation")
	}
	return c.Status(fiber.StatusCreated).JSON(evaluation)
}

// ListEvaluations lists evaluations
// @Summary List evaluations
// @Description Newest first, optionally for one project
// @Tags evaluations
// @Produce json
// @Param project_id query string false "Project ID" Format(uuid)
// @Success 200 {array} models.Evaluation
// @Failure 400 {object} map[string]interface{} "Invalid UUID"
// @Router /evaluations [get]
func (h *EvaluationHandler) ListEvaluations(c *fiber.Ctx) error {
	projectID, err := optionalID(c, "project_id")
	if err != nil {
		return badRequest(c, InvalidUuidError, err)
	}

	evaluations, err := h.evaluationService.ListEvaluations(c.UserContext(), projectID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list evaluations")
	}
	return c.JSON(evaluations)
}

// GetEvaluation returns an evaluation with its details
// @Summary Get an evaluation
// @Tags evaluations
// @Produce json
// @Param id path string true "Evaluation ID" Format(uuid)
// @Success 200 {object} models.Evaluation
// @Failure 404 {object} map[string]interface{} "Evaluation not found"
// @Router /evaluations/{id} [get]
func (h *EvaluationHandler) GetEvaluation(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, InvalidUuidError, err)
	}

	evaluation, err := h.evaluationService.GetEvaluation(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err, "Evaluation not found")
	}
	return c.JSON(evaluation)
}

// UpdateEvaluation replaces an evaluation
// @Summary Update an evaluation
// @Description Replaces the risk, name and every line item; hours are copied again from the relations
// @Tags evaluations
// @Accept json
// @Produce json
// @Param id path string true "Evaluation ID" Format(uuid)
// @Param evaluation body services.EvaluationInput true "Evaluation data"
// @Success 200 {object} models.Evaluation
// @Failure 400 {object} map[string]interface{} "Invalid evaluation data"
// @Failure 404 {object} map[string]interface{} "Evaluation or project not found"
// @Router /evaluations/{id} [put]
func (h *EvaluationHandler) UpdateEvaluation(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, InvalidUuidError, err)
	}
	var in services.EvaluationInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request format", err)
	}

	evaluation, err := h.evaluationService.UpdateEvaluation(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update evaluation")
	}
	return c.JSON(evaluation)
}

// DeleteEvaluation deletes an evaluation
// @Summary Delete an evaluation
// @Tags evaluations
// @Produce json
// @Param id path string true "Evaluation ID" Format(uuid)
// @Success 200 {object} map[string]interface{} "Evaluation deleted"
// @Failure 404 {object} map[string]interface{} "Evaluation not found"
// @Router /evaluations/{id} [delete]
func (h *EvaluationHandler) DeleteEvaluation(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, InvalidUuidError, err)
	}

	if err := h.evaluationService.DeleteEvaluation(c.UserContext(), id); err != nil {
		return respondError(c, h.logger, err, "Failed to delete evaluation")
	}
	return c.JSON(fiber.Map{"message": "Evaluation deleted", "id": id.String()})
}

// DownloadReport renders the PDF report of an evaluation
// @Summary Download the evaluation report
// @Tags evaluations
// @Produce application/pdf
// @Param id path string true "Evaluation ID" Format(uuid)
// @Success 200 {file} binary "PDF report"
// @Failure 404 {object} map[string]interface{} "Evaluation not found"
// @Router /evaluations/{id}/report [get]
func (h *EvaluationHandler) DownloadReport(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, InvalidUuidError, err)
	}

	timings := metrics.NewStageTimings()
	done := timings.Start("Render")
	rendered, err := h.reportService.RenderEvaluationReport(c.UserContext(), id)
	done()
	if err != nil {
		return respondError(c, h.logger, err, "Failed to render report")
	}

	setTimingHeaders(c, timings)
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", rendered.FileName))
	return c.Send(rendered.Content)
}

// ExportReports bundles the PDF reports of many evaluations
// @Summary Export evaluation reports
// @Description A zip with one PDF per evaluation, optionally for one project
// @Tags evaluations
// @Produce application/zip
// @Param project_id query string false "Project ID" Format(uuid)
// @Success 200 {file} binary "Zip archive"
// @Failure 404 {object} map[string]interface{} "No evaluations to export"
// @Router /evaluations/export [get]
func (h *EvaluationHandler) ExportReports(c *fiber.Ctx) error {
	projectID, err := optionalID(c, "project_id")
	if err != nil {
		return badRequest(c, InvalidUuidError, err)
	}

	timings := metrics.NewStageTimings()
	done := timings.Start("Bundle")
	var buf bytes.Buffer
	err = h.reportService.ExportReports(c.UserContext(), projectID, &buf)
	done()
	if err != nil {
		return respondError(c, h.logger, err, "Failed to export reports")
	}

	name := fmt.Sprintf("Evaluaciones_%s.zip", time.Now().Format("2006-01-02"))
	setTimingHeaders(c, timings)
	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(buf.Bytes())
}
