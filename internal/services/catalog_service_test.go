package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matiisnothere-15/septjunto/internal/models"
	"github.com/matiisnothere-15/septjunto/internal/report"
	"github.com/matiisnothere-15/septjunto/internal/repository"
)

const smallCatalog = `
project:
  name: Integraciones
complexities:
  - name: Baja
    rank: 1
  - name: Alta
    rank: 4
default_hours:
  1: 3
  4: 12
components:
  - name: Conector SAP
    description: RFC
  - name: Webhook
    hours:
      1: 1.5
`

func countRows(t *testing.T, env *testEnv, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, env.db.Model(model).Count(&n).Error)
	return n
}

func TestCatalogService_SeedIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.catalog.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.ProjectsCreated)
	assert.Equal(t, 5, result.ComplexitiesCreated)
	assert.Equal(t, 16, result.ComponentsCreated)
	assert.Equal(t, 80, result.RelationsUpserted)

	again, err := env.catalog.Seed(ctx)
	require.NoError(t, err)
	assert.Zero(t, again.ProjectsCreated)
	assert.Zero(t, again.ComplexitiesCreated)
	assert.Zero(t, again.ComplexitiesUpdated)
	assert.Zero(t, again.ComponentsCreated)
	assert.Zero(t, again.ComponentsUpdated)

	assert.Equal(t, int64(1), countRows(t, env, &models.Project{}))
	assert.Equal(t, int64(5), countRows(t, env, &models.ComplexityLevel{}))
	assert.Equal(t, int64(16), countRows(t, env, &models.Component{}))
	assert.Equal(t, int64(80), countRows(t, env, &models.Relation{}))

	component, err := repository.NewComponentRepository(env.db).FindComponentByName(ctx, "documentación")
	require.NoError(t, err)
	level, err := repository.NewComplexityRepository(env.db).FindComplexityByRank(ctx, 5)
	require.NoError(t, err)
	relation, err := env.relations.LookupRelation(ctx, component.ID, level.ID)
	require.NoError(t, err)
	assert.Equal(t, 32.0, relation.Hours)
}

func TestCatalogService_ImportYAML(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.catalog.ImportFile(ctx, "integraciones.yaml", strings.NewReader(smallCatalog))
	require.NoError(t, err)
	assert.Equal(t, []string{"Integraciones"}, result.Projects)
	assert.Equal(t, 2, result.ComponentsCreated)
	// Webhook has its own table with a single rank.
	assert.Equal(t, 3, result.RelationsUpserted)

	webhook, err := repository.NewComponentRepository(env.db).FindComponentByName(ctx, "Webhook")
	require.NoError(t, err)
	relations, err := env.relations.ListRelations(ctx, repository.RelationFilter{ComponentID: &webhook.ID})
	require.NoError(t, err)
	require.Len(t, relations, 1)
	assert.Equal(t, 1.5, relations[0].Hours)
}

func TestCatalogService_ImportReactivatesAndUpdatesHours(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.catalog.ImportFile(ctx, "a.yaml", strings.NewReader(smallCatalog))
	require.NoError(t, err)

	sap, err := repository.NewComponentRepository(env.db).FindComponentByName(ctx, "Conector SAP")
	require.NoError(t, err)
	relations, err := env.relations.ListRelations(ctx, repository.RelationFilter{ComponentID: &sap.ID})
	require.NoError(t, err)
	for _, r := range relations {
		require.NoError(t, env.relations.DeleteRelation(ctx, r.ID))
	}
	require.NoError(t, env.components.DeleteComponent(ctx, sap.ID))

	changed := strings.Replace(smallCatalog, "1: 3", "1: 5", 1)
	result, err := env.catalog.ImportFile(ctx, "a.yml", strings.NewReader(changed))
	require.NoError(t, err)
	assert.Equal(t, 1, result.ComponentsUpdated)

	got, err := env.components.GetComponent(ctx, sap.ID)
	require.NoError(t, err)
	assert.True(t, got.Active)

	low, err := repository.NewComplexityRepository(env.db).FindComplexityByRank(ctx, 1)
	require.NoError(t, err)
	relation, err := env.relations.LookupRelation(ctx, sap.ID, low.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, relation.Hours)
}

func TestCatalogService_ImportConflictRollsBack(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	other, err := env.projects.CreateProject(ctx, ProjectInput{Name: "Otro"})
	require.NoError(t, err)
	_, err = env.components.CreateComponent(ctx, ComponentInput{ProjectID: other.ID, Name: "Webhook"})
	require.NoError(t, err)

	_, err = env.catalog.ImportFile(ctx, "a.yaml", strings.NewReader(smallCatalog))
	assert.ErrorIs(t, err, ErrAlreadyExists)

	assert.Equal(t, int64(1), countRows(t, env, &models.Project{}))
	assert.Equal(t, int64(0), countRows(t, env, &models.ComplexityLevel{}))
	assert.Equal(t, int64(1), countRows(t, env, &models.Component{}))
}

func TestCatalogService_ImportRejectsBadDocuments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		filename string
		content  string
	}{
		{"unknown field", "a.yaml", "project:\n  name: X\n  owner: someone\n"},
		{"rank out of range", "a.yaml", "project:\n  name: Proyecto\ncomplexities:\n  - name: Extrema\n    rank: 9\n"},
		{"hours for a missing rank", "a.yaml", "project:\n  name: Proyecto\ncomponents:\n  - name: Webhook\n    hours:\n      3: 2\n"},
		{"not an archive", "catalog.zip", "plain text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.catalog.ImportFile(ctx, tt.filename, strings.NewReader(tt.content))
			var vErr *ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}
	assert.Equal(t, int64(0), countRows(t, env, &models.Project{}))
}

func TestCatalogService_ImportArchive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	var buf bytes.Buffer
	require.NoError(t, report.WriteZip(ctx, &buf, []report.File{
		{Name: "integraciones.yaml", Content: []byte(smallCatalog)},
		{Name: ".borrador.yaml", Content: []byte("not: [valid")},
		{Name: "LEEME.txt", Content: []byte("catálogo de integraciones")},
	}))

	result, err := env.catalog.ImportFile(ctx, "catalogo.zip", &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Documents)
	assert.Equal(t, 2, result.ComponentsCreated)

	var empty bytes.Buffer
	require.NoError(t, report.WriteZip(ctx, &empty, []report.File{{Name: "LEEME.txt", Content: []byte("vacío")}}))
	_, err = env.catalog.ImportFile(ctx, "vacio.zip", &empty)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestCatalogService_ImportArchiveIsAllOrNothing(t *testing.T) {
	const conflicting = `
project:
  name: Otro Proyecto
components:
  - name: Conector SAP
`
	tests := []struct {
		name   string
		second string
		check  func(t *testing.T, err error)
	}{
		{"second document conflicts", conflicting, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrAlreadyExists)
		}},
		{"second document is malformed", "project: [roto", func(t *testing.T, err error) {
			var vErr *ValidationError
			assert.ErrorAs(t, err, &vErr)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			ctx := context.Background()

			var buf bytes.Buffer
			require.NoError(t, report.WriteZip(ctx, &buf, []report.File{
				{Name: "a.yaml", Content: []byte(smallCatalog)},
				{Name: "b.yaml", Content: []byte(tt.second)},
			}))

			_, err := env.catalog.ImportFile(ctx, "catalogo.zip", &buf)
			tt.check(t, err)

			assert.Zero(t, countRows(t, env, &models.Project{}))
			assert.Zero(t, countRows(t, env, &models.ComplexityLevel{}))
			assert.Zero(t, countRows(t, env, &models.Component{}))
			assert.Zero(t, countRows(t, env, &models.Relation{}))
		})
	}
}

func TestCatalogService_ImportArchiveManyDocuments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	var buf bytes.Buffer
	require.NoError(t, report.WriteZip(ctx, &buf, []report.File{
		{Name: "a.yaml", Content: []byte(smallCatalog)},
		{Name: "b.yml", Content: []byte("project:\n  name: Portal Clientes\ncomponents:\n  - name: Frontend\n    hours:\n      4: 20.004\n")},
	}))

	result, err := env.catalog.ImportFile(ctx, "catalogo.zip", &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Documents)
	assert.ElementsMatch(t, []string{"Integraciones", "Portal Clientes"}, result.Projects)
	assert.Equal(t, 3, result.ComponentsCreated)
	assert.Equal(t, 4, result.RelationsUpserted)

	frontend, err := repository.NewComponentRepository(env.db).FindComponentByName(ctx, "Frontend")
	require.NoError(t, err)
	high, err := repository.NewComplexityRepository(env.db).FindComplexityByRank(ctx, 4)
	require.NoError(t, err)
	relation, err := env.relations.LookupRelation(ctx, frontend.ID, high.ID)
	require.NoError(t, err)
	assert.Equal(t, 20.0, relation.Hours)
}
