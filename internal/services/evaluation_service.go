package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/matiisnothere-15/septjunto/internal/estimation"
	"github.com/matiisnothere-15/septjunto/internal/metrics"
	"github.com/matiisnothere-15/septjunto/internal/models"
	"github.com/matiisnothere-15/septjunto/internal/repository"
)

// EvaluationPreview is a computed, unsaved evaluation with its task timeline.
type EvaluationPreview struct {
	*models.Evaluation
	Schedule []estimation.ScheduleEntry `json:"schedule"`
}

type EvaluationService struct {
	repo         *repository.EvaluationRepository
	projects     *repository.ProjectRepository
	components   *repository.ComponentRepository
	complexities *repository.ComplexityRepository
	relations    *repository.RelationRepository
	logger       *zap.Logger
}

func NewEvaluationService(
	repo *repository.EvaluationRepository,
	projects *repository.ProjectRepository,
	components *repository.ComponentRepository,
	complexities *repository.ComplexityRepository,
	relations *repository.RelationRepository,
	logger *zap.Logger,
) *EvaluationService {
	return &EvaluationService{
		repo:         repo,
		projects:     projects,
		components:   components,
		complexities: complexities,
		relations:    relations,
		logger:       logger,
	}
}

// PreviewEvaluation computes totals and the schedule without storing anything.
func (s *EvaluationService) PreviewEvaluation(ctx context.Context, in EvaluationInput) (*EvaluationPreview, error) {
	evaluation, err := s.build(ctx, in)
	if err != nil {
		return nil, err
	}
	return &EvaluationPreview{
		Evaluation: evaluation,
		Schedule:   estimation.Schedule(detailHours(evaluation.Details), evaluation.RiskPct),
	}, nil
}

func (s *EvaluationService) CreateEvaluation(ctx context.Context, in EvaluationInput) (*models.Evaluation, error) {
	evaluation, err := s.build(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateEvaluation(ctx, evaluation); err != nil {
		return nil, errors.Wrap(err, "failed to create evaluation")
	}
	metrics.IncrementEvaluations()
	s.logger.Info("evaluation created",
		zap.String("id", evaluation.ID.String()),
		zap.String("project_id", evaluation.ProjectID.String()),
		zap.Float64("total_hours", evaluation.TotalHours),
		zap.Int("estimated_days", evaluation.EstimatedDays),
	)
	return s.GetEvaluation(ctx, evaluation.ID)
}

func (s *EvaluationService) GetEvaluation(ctx context.Context, id uuid.UUID) (*models.Evaluation, error) {
	evaluation, err := s.repo.GetEvaluation(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "evaluation %s", id)
	}
	return evaluation, nil
}

// UpdateEvaluation replaces the evaluation's risk and line items. Hours are taken
// again from the current relations.
func (s *EvaluationService) UpdateEvaluation(ctx context.Context, id uuid.UUID, in EvaluationInput) (*models.Evaluation, error) {
	existing, err := s.GetEvaluation(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Date == nil {
		in.Date = &existing.Date
	}
	evaluation, err := s.build(ctx, in)
	if err != nil {
		return nil, err
	}
	evaluation.ID = existing.ID
	evaluation.CreatedAt = existing.CreatedAt

	if err := s.repo.ReplaceEvaluation(ctx, evaluation, existing.ProjectID); err != nil {
		return nil, errors.Wrapf(err, "failed to update evaluation %s", id)
	}
	s.logger.Info("evaluation updated", zap.String("id", id.String()), zap.Int("details", len(evaluation.Details)))
	return s.GetEvaluation(ctx, id)
}

func (s *EvaluationService) DeleteEvaluation(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteEvaluation(ctx, id); err != nil {
		return lookupErr(err, "evaluation %s", id)
	}
	s.logger.Info("evaluation deleted", zap.String("id", id.String()))
	return nil
}

// ListEvaluations returns evaluations newest first, optionally for one project.
func (s *EvaluationService) ListEvaluations(ctx context.Context, projectID *uuid.UUID) ([]models.Evaluation, error) {
	evaluations, err := s.repo.ListEvaluations(ctx, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list evaluations")
	}
	return evaluations, nil
}

// build validates the input against the catalog and snapshots the relation hours.
func (s *EvaluationService) build(ctx context.Context, in EvaluationInput) (*models.Evaluation, error) {
	in.normalize()
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	project, err := s.projects.GetProject(ctx, in.ProjectID)
	if err != nil {
		return nil, lookupErr(err, "project %s", in.ProjectID)
	}

	componentIDs := make([]uuid.UUID, 0, len(in.Details))
	complexityIDs := make([]uuid.UUID, 0, len(in.Details))
	for _, d := range in.Details {
		componentIDs = append(componentIDs, d.ComponentID)
		complexityIDs = append(complexityIDs, d.ComplexityID)
	}
	components, err := s.components.GetComponents(ctx, componentIDs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load components")
	}
	complexities, err := s.complexities.GetComplexities(ctx, complexityIDs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load complexity levels")
	}

	vErr := &ValidationError{}
	details := make([]models.EvaluationDetail, 0, len(in.Details))
	for i, d := range in.Details {
		field := fmt.Sprintf("details[%d]", i)
		before := len(vErr.Fields)

		component, ok := components[d.ComponentID]
		if !ok {
			return nil, errors.Wrapf(ErrNotFound, "component %s in %s", d.ComponentID, field)
		}
		level, ok := complexities[d.ComplexityID]
		if !ok {
			return nil, errors.Wrapf(ErrNotFound, "complexity level %s in %s", d.ComplexityID, field)
		}

		if !component.Active {
			vErr.add(field+".component_id", fmt.Sprintf("component %q is inactive", component.Name))
		} else if component.ProjectID != in.ProjectID {
			vErr.add(field+".component_id", fmt.Sprintf("component %q does not belong to project %q", component.Name, project.Name))
		}
		if !level.Active {
			vErr.add(field+".complexity_id", fmt.Sprintf("complexity level %q is inactive", level.Name))
		}
		if len(vErr.Fields) > before {
			continue
		}

		relation, err := s.relations.FindRelationByPair(ctx, d.ComponentID, d.ComplexityID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			vErr.add(field, fmt.Sprintf("no hours defined for component %q at complexity %q", component.Name, level.Name))
			continue
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to load relation hours")
		}

		details = append(details, models.EvaluationDetail{
			Position:        i + 1,
			ComponentID:     component.ID,
			Component:       &component,
			ComplexityID:    level.ID,
			Complexity:      &level,
			BaseHours:       relation.Hours,
			TaskDescription: d.TaskDescription,
		})
	}
	if err := vErr.orNil(); err != nil {
		return nil, err
	}

	var riskPct *float64
	if in.RiskPct != nil {
		r := estimation.Round2(*in.RiskPct)
		riskPct = &r
	}
	totals := estimation.Compute(detailHours(details), riskPct)

	date := time.Now().UTC()
	if in.Date != nil {
		date = *in.Date
	}

	return &models.Evaluation{
		ProjectID:         project.ID,
		Project:           project,
		Name:              in.Name,
		Date:              date,
		RiskPct:           riskPct,
		TotalHours:        totals.BaseHours,
		RiskAdjustedHours: totals.RiskAdjustedHours,
		EstimatedDays:     totals.EstimatedDays,
		Details:           details,
	}, nil
}

func detailHours(details []models.EvaluationDetail) []float64 {
	hours := make([]float64, len(details))
	for i, d := range details {
		hours[i] = d.BaseHours
	}
	return hours
}
