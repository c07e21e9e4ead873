package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/matiisnothere-15/septjunto/internal/models"
)

// ComponentFilter narrows ListComponents. A nil ProjectID lists every project.
type ComponentFilter struct {
	ProjectID       *uuid.UUID
	IncludeInactive bool
}

type ComponentRepository struct {
	db *gorm.DB
}

func NewComponentRepository(db *gorm.DB) *ComponentRepository {
	return &ComponentRepository{db: db}
}

func (r *ComponentRepository) CreateComponent(ctx context.Context, component *models.Component) error {
	return r.db.WithContext(ctx).Create(component).Error
}

func (r *ComponentRepository) GetComponent(ctx context.Context, id uuid.UUID) (*models.Component, error) {
	var component models.Component
	err := r.db.WithContext(ctx).First(&component, "id = ?", id).Error
	return &component, err
}

// FindComponentByName looks a component up by name, ignoring case.
func (r *ComponentRepository) FindComponentByName(ctx context.Context, name string) (*models.Component, error) {
	var component models.Component
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&component).Error
	return &component, err
}

// GetComponents loads the components with the given IDs, keyed by ID.
func (r *ComponentRepository) GetComponents(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Component, error) {
	var components []models.Component
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&components).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.Component, len(components))
	for _, c := range components {
		byID[c.ID] = c
	}
	return byID, nil
}

func (r *ComponentRepository) ComponentNameTaken(ctx context.Context, name string, exclude uuid.UUID) (bool, error) {
	return nameTaken(ctx, r.db, &models.Component{}, name, exclude)
}

func (r *ComponentRepository) UpdateComponent(ctx context.Context, component *models.Component) error {
	return r.db.WithContext(ctx).Save(component).Error
}

// CountComponentRelations returns how many relations reference the component.
func (r *ComponentRepository) CountComponentRelations(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Relation{}).Where("component_id = ?", id).Count(&n).Error
	return n, err
}

// ListComponents returns components ordered by name.
func (r *ComponentRepository) ListComponents(ctx context.Context, filter ComponentFilter) ([]models.Component, error) {
	q := r.db.WithContext(ctx)
	if filter.ProjectID != nil {
		q = q.Where("project_id = ?", *filter.ProjectID)
	}
	if !filter.IncludeInactive {
		q = q.Where("active = ?", true)
	}
	var components []models.Component
	err := q.Order("name").Find(&components).Error
	return components, err
}
