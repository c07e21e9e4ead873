package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/matiisnothere-15/septjunto/internal/models"
	"github.com/matiisnothere-15/septjunto/internal/repository"
	"github.com/matiisnothere-15/septjunto/internal/services/caches"
	"github.com/matiisnothere-15/septjunto/internal/testutil"
)

type testEnv struct {
	db           *gorm.DB
	cache        *CatalogCache
	projects     *ProjectService
	components   *ComponentService
	complexities *ComplexityService
	relations    *RelationService
	evaluations  *EvaluationService
	catalog      *CatalogService
	reports      *ReportService
	store        *memoryReportStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewTestDB(t)
	logger := zap.NewNop()

	layer := caches.NewMemoryCache(1<<20, time.Minute, logger)
	t.Cleanup(layer.Close)
	catalogCache := NewCatalogCache(layer, logger)

	projectRepo := repository.NewProjectRepository(db)
	componentRepo := repository.NewComponentRepository(db)
	complexityRepo := repository.NewComplexityRepository(db)
	relationRepo := repository.NewRelationRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)
	store := &memoryReportStore{objects: map[string][]byte{}}

	return &testEnv{
		db:           db,
		cache:        catalogCache,
		projects:     NewProjectService(projectRepo, componentRepo, evaluationRepo, catalogCache, logger),
		components:   NewComponentService(componentRepo, projectRepo, catalogCache, logger),
		complexities: NewComplexityService(complexityRepo, catalogCache, logger),
		relations:    NewRelationService(relationRepo, componentRepo, complexityRepo, logger),
		evaluations:  NewEvaluationService(evaluationRepo, projectRepo, componentRepo, complexityRepo, relationRepo, logger),
		catalog:      NewCatalogService(db, catalogCache, logger),
		reports:      NewReportService(evaluationRepo, store, logger),
		store:        store,
	}
}

type memoryReportStore struct {
	objects map[string][]byte
	err     error
}

func (s *memoryReportStore) Put(_ context.Context, key string, data []byte, _ string) error {
	if s.err != nil {
		return s.err
	}
	s.objects[key] = data
	return nil
}

// fixture is a project with two components, two complexity levels and hours
// for every pair.
type fixture struct {
	project  *models.Project
	frontend *models.Component
	backend  *models.Component
	low      *models.ComplexityLevel
	high     *models.ComplexityLevel
}

func (e *testEnv) seedFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	project, err := e.projects.CreateProject(ctx, ProjectInput{Name: "Portal Clientes"})
	require.NoError(t, err)
	frontend, err := e.components.CreateComponent(ctx, ComponentInput{ProjectID: project.ID, Name: "Frontend"})
	require.NoError(t, err)
	backend, err := e.components.CreateComponent(ctx, ComponentInput{ProjectID: project.ID, Name: "Backend"})
	require.NoError(t, err)
	low, err := e.complexities.CreateComplexity(ctx, ComplexityInput{Name: "Baja", Rank: 1})
	require.NoError(t, err)
	high, err := e.complexities.CreateComplexity(ctx, ComplexityInput{Name: "Alta", Rank: 4})
	require.NoError(t, err)

	hours := map[[2]uuid.UUID]float64{
		{frontend.ID, low.ID}:  4,
		{frontend.ID, high.ID}: 16,
		{backend.ID, low.ID}:   6,
		{backend.ID, high.ID}:  24,
	}
	for pair, h := range hours {
		_, err := e.relations.CreateRelation(ctx, RelationInput{ComponentID: pair[0], ComplexityID: pair[1], Hours: h})
		require.NoError(t, err)
	}

	return &fixture{project: project, frontend: frontend, backend: backend, low: low, high: high}
}

func ptr[T any](v T) *T {
	return &v
}
