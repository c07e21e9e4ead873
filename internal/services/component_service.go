package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/matiisnothere-15/septjunto/internal/models"
	"github.com/matiisnothere-15/septjunto/internal/repository"
)

type ComponentService struct {
	repo     *repository.ComponentRepository
	projects *repository.ProjectRepository
	cache    *CatalogCache
	logger   *zap.Logger
}

func NewComponentService(
	repo *repository.ComponentRepository,
	projects *repository.ProjectRepository,
	cache *CatalogCache,
	logger *zap.Logger,
) *ComponentService {
	return &ComponentService{repo: repo, projects: projects, cache: cache, logger: logger}
}

func (s *ComponentService) CreateComponent(ctx context.Context, in ComponentInput) (*models.Component, error) {
	in.normalize()
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if _, err := s.projects.GetProject(ctx, in.ProjectID); err != nil {
		return nil, lookupErr(err, "project %s", in.ProjectID)
	}
	if err := s.ensureNameFree(ctx, in.Name, uuid.Nil); err != nil {
		return nil, err
	}

	component := &models.Component{
		ProjectID:   in.ProjectID,
		Name:        in.Name,
		Description: in.Description,
		Active:      boolOr(in.Active, true),
	}
	if err := s.repo.CreateComponent(ctx, component); err != nil {
		return nil, storeErr(err, "component %q", in.Name)
	}
	s.cache.Invalidate(ctx, componentsCacheKey)
	s.logger.Info("component created", zap.String("id", component.ID.String()), zap.String("name", component.Name))
	return component, nil
}

func (s *ComponentService) GetComponent(ctx context.Context, id uuid.UUID) (*models.Component, error) {
	component, err := s.repo.GetComponent(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "component %s", id)
	}
	return component, nil
}

func (s *ComponentService) UpdateComponent(ctx context.Context, id uuid.UUID, in ComponentUpdateInput) (*models.Component, error) {
	in.normalize()
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	component, err := s.GetComponent(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, in.Name, id); err != nil {
		return nil, err
	}

	component.Name = in.Name
	component.Description = in.Description
	component.Active = boolOr(in.Active, component.Active)
	if err := s.repo.UpdateComponent(ctx, component); err != nil {
		return nil, storeErr(err, "component %s", id)
	}
	s.cache.Invalidate(ctx, componentsCacheKey)
	return component, nil
}

// DeleteComponent deactivates the component. Components with relations cannot be removed.
func (s *ComponentService) DeleteComponent(ctx context.Context, id uuid.UUID) error {
	component, err := s.GetComponent(ctx, id)
	if err != nil {
		return err
	}
	n, err := s.repo.CountComponentRelations(ctx, id)
	if err != nil {
		return errors.Wrapf(err, "failed to count relations of component %s", id)
	}
	if n > 0 {
		return errors.Wrapf(ErrInUse, "component %q has %d relations", component.Name, n)
	}

	component.Active = false
	if err := s.repo.UpdateComponent(ctx, component); err != nil {
		return errors.Wrapf(err, "failed to deactivate component %s", id)
	}
	s.cache.Invalidate(ctx, componentsCacheKey)
	s.logger.Info("component deactivated", zap.String("id", id.String()))
	return nil
}

// ListComponents returns components ordered by name. The unfiltered active listing is cached.
func (s *ComponentService) ListComponents(ctx context.Context, filter repository.ComponentFilter) ([]models.Component, error) {
	load := func() ([]models.Component, error) {
		components, err := s.repo.ListComponents(ctx, filter)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list components")
		}
		return components, nil
	}
	if filter.ProjectID == nil && !filter.IncludeInactive {
		return cached(ctx, s.cache, componentsCacheKey, load)
	}
	return load()
}

func (s *ComponentService) ensureNameFree(ctx context.Context, name string, exclude uuid.UUID) error {
	taken, err := s.repo.ComponentNameTaken(ctx, name, exclude)
	if err != nil {
		return errors.Wrap(err, "failed to check component name")
	}
	if taken {
		return errors.Wrapf(ErrAlreadyExists, "component named %q", name)
	}
	return nil
}
