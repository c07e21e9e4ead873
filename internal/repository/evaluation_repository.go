package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/matiisnothere-15/septjunto/internal/models"
)

type EvaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

// CreateEvaluation stores the evaluation with its details and refreshes the project totals.
func (r *EvaluationRepository) CreateEvaluation(ctx context.Context, evaluation *models.Evaluation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(evaluation).Error; err != nil {
			return err
		}
		if err := createDetails(tx, evaluation); err != nil {
			return err
		}
		return syncProjectTotals(tx, evaluation.ProjectID)
	})
}

// ReplaceEvaluation overwrites the evaluation and all of its details. previousProject
// is the project the evaluation belonged to before the change; its totals are
// refreshed too when it differs.
func (r *EvaluationRepository) ReplaceEvaluation(ctx context.Context, evaluation *models.Evaluation, previousProject uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("evaluation_id = ?", evaluation.ID).Delete(&models.EvaluationDetail{}).Error; err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(evaluation).Error; err != nil {
			return err
		}
		if err := createDetails(tx, evaluation); err != nil {
			return err
		}
		if err := syncProjectTotals(tx, evaluation.ProjectID); err != nil {
			return err
		}
		if previousProject != uuid.Nil && previousProject != evaluation.ProjectID {
			return syncProjectTotals(tx, previousProject)
		}
		return nil
	})
}

// DeleteEvaluation removes the evaluation and its details and refreshes the project totals.
func (r *EvaluationRepository) DeleteEvaluation(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var evaluation models.Evaluation
		if err := tx.Select("id", "project_id").First(&evaluation, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("evaluation_id = ?", id).Delete(&models.EvaluationDetail{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Evaluation{}, "id = ?", id).Error; err != nil {
			return err
		}
		return syncProjectTotals(tx, evaluation.ProjectID)
	})
}

// GetEvaluation retrieves an Evaluation with its project and ordered details.
func (r *EvaluationRepository) GetEvaluation(ctx context.Context, id uuid.UUID) (*models.Evaluation, error) {
	var evaluation models.Evaluation
	err := withDetails(r.db.WithContext(ctx)).First(&evaluation, "id = ?", id).Error
	return &evaluation, err
}

// ListEvaluations returns evaluations newest first. A nil projectID lists every project.
func (r *EvaluationRepository) ListEvaluations(ctx context.Context, projectID *uuid.UUID) ([]models.Evaluation, error) {
	q := withDetails(r.db.WithContext(ctx))
	if projectID != nil {
		q = q.Where("project_id = ?", *projectID)
	}
	var evaluations []models.Evaluation
	err := q.Order("date DESC").Order("created_at DESC").Find(&evaluations).Error
	return evaluations, err
}

func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Project").
		Preload("Details", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("Details.Component").
		Preload("Details.Complexity")
}

func createDetails(tx *gorm.DB, evaluation *models.Evaluation) error {
	if len(evaluation.Details) == 0 {
		return nil
	}
	for i := range evaluation.Details {
		evaluation.Details[i].EvaluationID = evaluation.ID
		evaluation.Details[i].ID = uuid.Nil
	}
	return tx.Omit(clause.Associations).Create(&evaluation.Details).Error
}

// syncProjectTotals mirrors the project's latest evaluation onto the project row.
func syncProjectTotals(tx *gorm.DB, projectID uuid.UUID) error {
	updates := map[string]interface{}{
		"total_hours":    0,
		"estimated_days": 0,
		"risk":           0,
	}

	var latest models.Evaluation
	err := tx.Where("project_id = ?", projectID).
		Order("date DESC").
		Order("created_at DESC").
		First(&latest).Error
	switch {
	case err == nil:
		risk := 0.0
		if latest.RiskPct != nil {
			risk = *latest.RiskPct
		}
		updates["total_hours"] = latest.EffectiveHours()
		updates["estimated_days"] = latest.EstimatedDays
		updates["risk"] = risk
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}

	return tx.Model(&models.Project{}).Where("id = ?", projectID).Updates(updates).Error
}
