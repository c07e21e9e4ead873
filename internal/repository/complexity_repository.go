package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/matiisnothere-15/septjunto/internal/models"
)

type ComplexityRepository struct {
	db *gorm.DB
}

func NewComplexityRepository(db *gorm.DB) *ComplexityRepository {
	return &ComplexityRepository{db: db}
}

func (r *ComplexityRepository) CreateComplexity(ctx context.Context, level *models.ComplexityLevel) error {
	return r.db.WithContext(ctx).Create(level).Error
}

func (r *ComplexityRepository) GetComplexity(ctx context.Context, id uuid.UUID) (*models.ComplexityLevel, error) {
	var level models.ComplexityLevel
	err := r.db.WithContext(ctx).First(&level, "id = ?", id).Error
	return &level, err
}

func (r *ComplexityRepository) FindComplexityByRank(ctx context.Context, rank int) (*models.ComplexityLevel, error) {
	var level models.ComplexityLevel
	err := r.db.WithContext(ctx).First(&level, "rank = ?", rank).Error
	return &level, err
}

// GetComplexities loads the levels with the given IDs, keyed by ID.
func (r *ComplexityRepository) GetComplexities(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.ComplexityLevel, error) {
	var levels []models.ComplexityLevel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&levels).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.ComplexityLevel, len(levels))
	for _, l := range levels {
		byID[l.ID] = l
	}
	return byID, nil
}

func (r *ComplexityRepository) ComplexityNameTaken(ctx context.Context, name string, exclude uuid.UUID) (bool, error) {
	return nameTaken(ctx, r.db, &models.ComplexityLevel{}, name, exclude)
}

// RankTaken reports whether a level other than exclude already has rank.
func (r *ComplexityRepository) RankTaken(ctx context.Context, rank int, exclude uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.ComplexityLevel{}).Where("rank = ?", rank)
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

func (r *ComplexityRepository) UpdateComplexity(ctx context.Context, level *models.ComplexityLevel) error {
	return r.db.WithContext(ctx).Save(level).Error
}

func (r *ComplexityRepository) CountComplexityRelations(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Relation{}).Where("complexity_id = ?", id).Count(&n).Error
	return n, err
}

// ListComplexities returns levels ordered by rank.
func (r *ComplexityRepository) ListComplexities(ctx context.Context, includeInactive bool) ([]models.ComplexityLevel, error) {
	q := r.db.WithContext(ctx)
	if !includeInactive {
		q = q.Where("active = ?", true)
	}
	var levels []models.ComplexityLevel
	err := q.Order("rank").Find(&levels).Error
	return levels, err
}
