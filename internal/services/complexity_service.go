package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/matiisnothere-15/septjunto/internal/models"
	"github.com/matiisnothere-15/septjunto/internal/repository"
)

type ComplexityService struct {
	repo   *repository.ComplexityRepository
	cache  *CatalogCache
	logger *zap.Logger
}

func NewComplexityService(repo *repository.ComplexityRepository, cache *CatalogCache, logger *zap.Logger) *ComplexityService {
	return &ComplexityService{repo: repo, cache: cache, logger: logger}
}

func (s *ComplexityService) CreateComplexity(ctx context.Context, in ComplexityInput) (*models.ComplexityLevel, error) {
	in.normalize()
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, in, uuid.Nil); err != nil {
		return nil, err
	}

	level := &models.ComplexityLevel{
		Name:   in.Name,
		Rank:   in.Rank,
		Active: boolOr(in.Active, true),
	}
	if err := s.repo.CreateComplexity(ctx, level); err != nil {
		return nil, storeErr(err, "complexity level %q", in.Name)
	}
	s.cache.Invalidate(ctx, complexitiesCacheKey)
	s.logger.Info("complexity level created", zap.String("id", level.ID.String()), zap.Int("rank", level.Rank))
	return level, nil
}

func (s *ComplexityService) GetComplexity(ctx context.Context, id uuid.UUID) (*models.ComplexityLevel, error) {
	level, err := s.repo.GetComplexity(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "complexity level %s", id)
	}
	return level, nil
}

func (s *ComplexityService) UpdateComplexity(ctx context.Context, id uuid.UUID, in ComplexityInput) (*models.ComplexityLevel, error) {
	in.normalize()
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	level, err := s.GetComplexity(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, in, id); err != nil {
		return nil, err
	}

	level.Name = in.Name
	level.Rank = in.Rank
	level.Active = boolOr(in.Active, level.Active)
	if err := s.repo.UpdateComplexity(ctx, level); err != nil {
		return nil, storeErr(err, "complexity level %s", id)
	}
	s.cache.Invalidate(ctx, complexitiesCacheKey)
	return level, nil
}

// DeleteComplexity deactivates the level. Levels with relations cannot be removed.
func (s *ComplexityService) DeleteComplexity(ctx context.Context, id uuid.UUID) error {
	level, err := s.GetComplexity(ctx, id)
	if err != nil {
		return err
	}
	n, err := s.repo.CountComplexityRelations(ctx, id)
	if err != nil {
		return errors.Wrapf(err, "failed to count relations of complexity level %s", id)
	}
	if n > 0 {
		return errors.Wrapf(ErrInUse, "complexity level %q has %d relations", level.Name, n)
	}

	level.Active = false
	if err := s.repo.UpdateComplexity(ctx, level); err != nil {
		return errors.Wrapf(err, "failed to deactivate complexity level %s", id)
	}
	s.cache.Invalidate(ctx, complexitiesCacheKey)
	s.logger.Info("complexity level deactivated", zap.String("id", id.String()))
	return nil
}

// ListComplexities returns levels ordered by rank. The active listing is cached.
func (s *ComplexityService) ListComplexities(ctx context.Context, includeInactive bool) ([]models.ComplexityLevel, error) {
	load := func() ([]models.ComplexityLevel, error) {
		levels, err := s.repo.ListComplexities(ctx, includeInactive)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list complexity levels")
		}
		return levels, nil
	}
	if includeInactive {
		return load()
	}
	return cached(ctx, s.cache, complexitiesCacheKey, load)
}

func (s *ComplexityService) ensureUnique(ctx context.Context, in ComplexityInput, exclude uuid.UUID) error {
	taken, err := s.repo.ComplexityNameTaken(ctx, in.Name, exclude)
	if err != nil {
		return errors.Wrap(err, "failed to check complexity name")
	}
	if taken {
		return errors.Wrapf(ErrAlreadyExists, "complexity level named %q", in.Name)
	}
	taken, err = s.repo.RankTaken(ctx, in.Rank, exclude)
	if err != nil {
		return errors.Wrap(err, "failed to check complexity rank")
	}
	if taken {
		return errors.Wrapf(ErrAlreadyExists, "complexity level with rank %d", in.Rank)
	}
	return nil
}
