package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/matiisnothere-15/septjunto/internal/models"
	"github.com/matiisnothere-15/septjunto/internal/repository"
)

type ProjectService struct {
	repo        *repository.ProjectRepository
	components  *repository.ComponentRepository
	evaluations *repository.EvaluationRepository
	cache       *CatalogCache
	logger      *zap.Logger
}

func NewProjectService(
	repo *repository.ProjectRepository,
	components *repository.ComponentRepository,
	evaluations *repository.EvaluationRepository,
	cache *CatalogCache,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		repo:        repo,
		components:  components,
		evaluations: evaluations,
		cache:       cache,
		logger:      logger,
	}
}

func (s *ProjectService) CreateProject(ctx context.Context, in ProjectInput) (*models.Project, error) {
	in.normalize()
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, in.Name, uuid.Nil); err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:        in.Name,
		Description: in.Description,
		Date:        time.Now().UTC(),
	}
	if in.Date != nil {
		project.Date = *in.Date
	}
	if err := s.repo.CreateProject(ctx, project); err != nil {
		return nil, storeErr(err, "project %q", in.Name)
	}
	s.logger.Info("project created", zap.String("id", project.ID.String()), zap.String("name", project.Name))
	return project, nil
}

func (s *ProjectService) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project, err := s.repo.GetProject(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "project %s", id)
	}
	return project, nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, id uuid.UUID, in ProjectInput) (*models.Project, error) {
	in.normalize()
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	project, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, in.Name, id); err != nil {
		return nil, err
	}

	// Totals are owned by the evaluation rollup and are not editable here.
	project.Name = in.Name
	project.Description = in.Description
	if in.Date != nil {
		project.Date = *in.Date
	}
	if err := s.repo.UpdateProject(ctx, project); err != nil {
		return nil, storeErr(err, "project %s", id)
	}
	return project, nil
}

// DeleteProject removes the project with its components, relations and evaluations.
func (s *ProjectService) DeleteProject(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteProject(ctx, id); err != nil {
		return lookupErr(err, "project %s", id)
	}
	s.cache.Invalidate(ctx, componentsCacheKey)
	s.logger.Info("project deleted", zap.String("id", id.String()))
	return nil
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]models.Project, error) {
	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list projects")
	}
	return projects, nil
}

// ListProjectComponents returns the project's active components ordered by name.
func (s *ProjectService) ListProjectComponents(ctx context.Context, id uuid.UUID) ([]models.Component, error) {
	if _, err := s.GetProject(ctx, id); err != nil {
		return nil, err
	}
	components, err := s.components.ListComponents(ctx, repository.ComponentFilter{ProjectID: &id})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list components of project %s", id)
	}
	return components, nil
}

// ListProjectEvaluations returns the project's evaluations, newest first.
func (s *ProjectService) ListProjectEvaluations(ctx context.Context, id uuid.UUID) ([]models.Evaluation, error) {
	if _, err := s.GetProject(ctx, id); err != nil {
		return nil, err
	}
	evaluations, err := s.evaluations.ListEvaluations(ctx, &id)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list evaluations of project %s", id)
	}
	return evaluations, nil
}

func (s *ProjectService) ensureNameFree(ctx context.Context, name string, exclude uuid.UUID) error {
	taken, err := s.repo.ProjectNameTaken(ctx, name, exclude)
	if err != nil {
		return errors.Wrap(err, "failed to check project name")
	}
	if taken {
		return errors.Wrapf(ErrAlreadyExists, "project named %q", name)
	}
	return nil
}
