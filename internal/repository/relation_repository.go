package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/matiisnothere-15/septjunto/internal/models"
)

// RelationFilter narrows ListRelations.
type RelationFilter struct {
	ComponentID  *uuid.UUID
	ComplexityID *uuid.UUID
}

type RelationRepository struct {
	db *gorm.DB
}

func NewRelationRepository(db *gorm.DB) *RelationRepository {
	return &RelationRepository{db: db}
}

func (r *RelationRepository) CreateRelation(ctx context.Context, relation *models.Relation) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(relation).Error
}

// GetRelation retrieves a Relation with its component and complexity.
func (r *RelationRepository) GetRelation(ctx context.Context, id uuid.UUID) (*models.Relation, error) {
	var relation models.Relation
	err := r.db.WithContext(ctx).
		Preload("Component").
		Preload("Complexity").
		First(&relation, "id = ?", id).Error
	return &relation, err
}

// FindRelationByPair retrieves the Relation for a (component, complexity) pair.
func (r *RelationRepository) FindRelationByPair(ctx context.Context, componentID, complexityID uuid.UUID) (*models.Relation, error) {
	var relation models.Relation
	err := r.db.WithContext(ctx).
		Preload("Component").
		Preload("Complexity").
		Where("component_id = ? AND complexity_id = ?", componentID, complexityID).
		First(&relation).Error
	return &relation, err
}

// UpdateRelationHours changes the hours of an existing relation.
func (r *RelationRepository) UpdateRelationHours(ctx context.Context, id uuid.UUID, hours float64) error {
	res := r.db.WithContext(ctx).Model(&models.Relation{}).Where("id = ?", id).Update("hours", hours)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpsertRelation inserts the pair or, when it already exists, overwrites its hours.
func (r *RelationRepository) UpsertRelation(ctx context.Context, relation *models.Relation) (*models.Relation, error) {
	relation.UpdatedAt = time.Now()
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "component_id"}, {Name: "complexity_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"hours", "updated_at"}),
		}).
		Create(relation).Error
	if err != nil {
		return nil, err
	}
	return r.FindRelationByPair(ctx, relation.ComponentID, relation.ComplexityID)
}

func (r *RelationRepository) DeleteRelation(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Relation{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListRelations returns relations with their component and complexity,
// ordered by component name then complexity rank.
func (r *RelationRepository) ListRelations(ctx context.Context, filter RelationFilter) ([]models.Relation, error) {
	q := r.db.WithContext(ctx).
		Preload("Component").
		Preload("Complexity").
		Joins("JOIN components ON components.id = component_complexity_relations.component_id").
		Joins("JOIN complexity_levels ON complexity_levels.id = component_complexity_relations.complexity_id")
	if filter.ComponentID != nil {
		q = q.Where("component_complexity_relations.component_id = ?", *filter.ComponentID)
	}
	if filter.ComplexityID != nil {
		q = q.Where("component_complexity_relations.complexity_id = ?", *filter.ComplexityID)
	}
	var relations []models.Relation
	err := q.Order("components.name").Order("complexity_levels.rank").Find(&relations).Error
	return relations, err
}
