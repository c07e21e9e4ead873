package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/matiisnothere-15/septjunto/internal/models"
	"github.com/matiisnothere-15/septjunto/internal/repository"
)

type RelationService struct {
	repo         *repository.RelationRepository
	components   *repository.ComponentRepository
	complexities *repository.ComplexityRepository
	logger       *zap.Logger
}

func NewRelationService(
	repo *repository.RelationRepository,
	components *repository.ComponentRepository,
	complexities *repository.ComplexityRepository,
	logger *zap.Logger,
) *RelationService {
	return &RelationService{repo: repo, components: components, complexities: complexities, logger: logger}
}

// CreateRelation assigns hours to a new (component, complexity) pair.
func (s *RelationService) CreateRelation(ctx context.Context, in RelationInput) (*models.Relation, error) {
	in.normalize()
	if err := s.checkInput(ctx, in); err != nil {
		return nil, err
	}
	_, err := s.repo.FindRelationByPair(ctx, in.ComponentID, in.ComplexityID)
	switch {
	case err == nil:
		return nil, errors.Wrapf(ErrAlreadyExists, "relation for component %s and complexity %s", in.ComponentID, in.ComplexityID)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, errors.Wrap(err, "failed to check relation pair")
	}

	relation := &models.Relation{
		ComponentID:  in.ComponentID,
		ComplexityID: in.ComplexityID,
		Hours:        in.Hours,
	}
	if err := s.repo.CreateRelation(ctx, relation); err != nil {
		return nil, storeErr(err, "relation for component %s and complexity %s", in.ComponentID, in.ComplexityID)
	}
	s.logger.Info("relation created",
		zap.String("component_id", in.ComponentID.String()),
		zap.String("complexity_id", in.ComplexityID.String()),
		zap.Float64("hours", relation.Hours),
	)
	return s.GetRelation(ctx, relation.ID)
}

// UpsertRelation sets the hours of a pair, creating the relation when it does not exist.
func (s *RelationService) UpsertRelation(ctx context.Context, in RelationInput) (*models.Relation, error) {
	in.normalize()
	if err := s.checkInput(ctx, in); err != nil {
		return nil, err
	}
	relation, err := s.repo.UpsertRelation(ctx, &models.Relation{
		ComponentID:  in.ComponentID,
		ComplexityID: in.ComplexityID,
		Hours:        in.Hours,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to upsert relation")
	}
	return relation, nil
}

func (s *RelationService) GetRelation(ctx context.Context, id uuid.UUID) (*models.Relation, error) {
	relation, err := s.repo.GetRelation(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "relation %s", id)
	}
	return relation, nil
}

// LookupRelation returns the relation for a pair.
func (s *RelationService) LookupRelation(ctx context.Context, componentID, complexityID uuid.UUID) (*models.Relation, error) {
	relation, err := s.repo.FindRelationByPair(ctx, componentID, complexityID)
	if err != nil {
		return nil, lookupErr(err, "relation for component %s and complexity %s", componentID, complexityID)
	}
	return relation, nil
}

// UpdateRelationHours changes the hours only; the pair is immutable.
func (s *RelationService) UpdateRelationHours(ctx context.Context, id uuid.UUID, in RelationHoursInput) (*models.Relation, error) {
	in.normalize()
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateRelationHours(ctx, id, in.Hours); err != nil {
		return nil, lookupErr(err, "relation %s", id)
	}
	return s.GetRelation(ctx, id)
}

// DeleteRelation removes the pair. Evaluations keep their snapshotted hours.
func (s *RelationService) DeleteRelation(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteRelation(ctx, id); err != nil {
		return lookupErr(err, "relation %s", id)
	}
	s.logger.Info("relation deleted", zap.String("id", id.String()))
	return nil
}

func (s *RelationService) ListRelations(ctx context.Context, filter repository.RelationFilter) ([]models.Relation, error) {
	relations, err := s.repo.ListRelations(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list relations")
	}
	return relations, nil
}

func (s *RelationService) checkInput(ctx context.Context, in RelationInput) error {
	if err := validateStruct(in); err != nil {
		return err
	}
	if _, err := s.components.GetComponent(ctx, in.ComponentID); err != nil {
		return lookupErr(err, "component %s", in.ComponentID)
	}
	if _, err := s.complexities.GetComplexity(ctx, in.ComplexityID); err != nil {
		return lookupErr(err, "complexity level %s", in.ComplexityID)
	}
	return nil
}
