package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matiisnothere-15/septjunto/internal/repository"
)

func TestComponentService_Create(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	project, err := env.projects.CreateProject(ctx, ProjectInput{Name: "Portal"})
	require.NoError(t, err)

	component, err := env.components.CreateComponent(ctx, ComponentInput{ProjectID: project.ID, Name: "Documentación"})
	require.NoError(t, err)
	assert.True(t, component.Active)

	_, err = env.components.CreateComponent(ctx, ComponentInput{ProjectID: project.ID, Name: "documentación"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	_, err = env.components.CreateComponent(ctx, ComponentInput{ProjectID: uuid.New(), Name: "Backend"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.components.CreateComponent(ctx, ComponentInput{ProjectID: project.ID, Name: "API/REST"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "name", vErr.Fields[0].Field)
}

func TestComponentService_DeleteIsSoftAndBlockedByRelations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fx := env.seedFixture(t)

	err := env.components.DeleteComponent(ctx, fx.frontend.ID)
	assert.ErrorIs(t, err, ErrInUse)

	spare, err := env.components.CreateComponent(ctx, ComponentInput{ProjectID: fx.project.ID, Name: "Reportes"})
	require.NoError(t, err)
	require.NoError(t, env.components.DeleteComponent(ctx, spare.ID))

	got, err := env.components.GetComponent(ctx, spare.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	active, err := env.components.ListComponents(ctx, repository.ComponentFilter{})
	require.NoError(t, err)
	assert.Len(t, active, 2)

	all, err := env.components.ListComponents(ctx, repository.ComponentFilter{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestComponentService_UpdateReactivates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	project, err := env.projects.CreateProject(ctx, ProjectInput{Name: "Portal"})
	require.NoError(t, err)
	component, err := env.components.CreateComponent(ctx, ComponentInput{ProjectID: project.ID, Name: "Backend", Active: ptr(false)})
	require.NoError(t, err)
	assert.False(t, component.Active)

	updated, err := env.components.UpdateComponent(ctx, component.ID, ComponentUpdateInput{Name: "Backend API", Active: ptr(true)})
	require.NoError(t, err)
	assert.True(t, updated.Active)
	assert.Equal(t, "Backend API", updated.Name)
}

func TestComponentService_ActiveListingIsCached(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fx := env.seedFixture(t)

	_, err := env.components.ListComponents(ctx, repository.ComponentFilter{})
	require.NoError(t, err)
	_, err = env.components.ListComponents(ctx, repository.ComponentFilter{})
	require.NoError(t, err)

	stats, ok := env.cache.Stats(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(1), stats.Hits)

	// Writes drop the cached listing.
	_, err = env.components.CreateComponent(ctx, ComponentInput{ProjectID: fx.project.ID, Name: "Reportes"})
	require.NoError(t, err)
	listed, err := env.components.ListComponents(ctx, repository.ComponentFilter{})
	require.NoError(t, err)
	assert.Len(t, listed, 3)
}

func TestComplexityService_RankAndNameAreUnique(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.complexities.CreateComplexity(ctx, ComplexityInput{Name: "Media", Rank: 3})
	require.NoError(t, err)

	_, err = env.complexities.CreateComplexity(ctx, ComplexityInput{Name: "Intermedia", Rank: 3})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	_, err = env.complexities.CreateComplexity(ctx, ComplexityInput{Name: "media", Rank: 2})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	_, err = env.complexities.CreateComplexity(ctx, ComplexityInput{Name: "Extrema", Rank: 6})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "rank", vErr.Fields[0].Field)

	_, err = env.complexities.CreateComplexity(ctx, ComplexityInput{Name: "Nivel 2", Rank: 2})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "name", vErr.Fields[0].Field)
}

func TestComplexityService_ListOrderedByRank(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, in := range []ComplexityInput{{Name: "Alta", Rank: 4}, {Name: "Baja", Rank: 2}, {Name: "Muy Baja", Rank: 1}} {
		_, err := env.complexities.CreateComplexity(ctx, in)
		require.NoError(t, err)
	}

	levels, err := env.complexities.ListComplexities(ctx, false)
	require.NoError(t, err)
	require.Len(t, levels, 3)
	assert.Equal(t, []int{1, 2, 4}, []int{levels[0].Rank, levels[1].Rank, levels[2].Rank})
}

func TestComplexityService_DeleteBlockedByRelations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fx := env.seedFixture(t)

	assert.ErrorIs(t, env.complexities.DeleteComplexity(ctx, fx.low.ID), ErrInUse)

	spare, err := env.complexities.CreateComplexity(ctx, ComplexityInput{Name: "Media", Rank: 3})
	require.NoError(t, err)
	require.NoError(t, env.complexities.DeleteComplexity(ctx, spare.ID))

	got, err := env.complexities.GetComplexity(ctx, spare.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestRelationService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fx := env.seedFixture(t)

	_, err := env.relations.CreateRelation(ctx, RelationInput{ComponentID: fx.frontend.ID, ComplexityID: fx.low.ID, Hours: 5})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	_, err = env.relations.CreateRelation(ctx, RelationInput{ComponentID: uuid.New(), ComplexityID: fx.low.ID, Hours: 5})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.relations.CreateRelation(ctx, RelationInput{ComponentID: fx.frontend.ID, ComplexityID: fx.low.ID, Hours: 0})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "hours", vErr.Fields[0].Field)

	relation, err := env.relations.LookupRelation(ctx, fx.frontend.ID, fx.low.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, relation.Hours)

	updated, err := env.relations.UpdateRelationHours(ctx, relation.ID, RelationHoursInput{Hours: 4.567})
	require.NoError(t, err)
	assert.Equal(t, 4.57, updated.Hours)
	require.NotNil(t, updated.Component)
	assert.Equal(t, "Frontend", updated.Component.Name)

	upserted, err := env.relations.UpsertRelation(ctx, RelationInput{ComponentID: fx.frontend.ID, ComplexityID: fx.low.ID, Hours: 3})
	require.NoError(t, err)
	assert.Equal(t, relation.ID, upserted.ID)
	assert.Equal(t, 3.0, upserted.Hours)

	listed, err := env.relations.ListRelations(ctx, repository.RelationFilter{ComponentID: &fx.frontend.ID})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, 1, listed[0].Complexity.Rank)
	assert.Equal(t, 4, listed[1].Complexity.Rank)

	require.NoError(t, env.relations.DeleteRelation(ctx, relation.ID))
	_, err = env.relations.GetRelation(ctx, relation.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, env.relations.DeleteRelation(ctx, relation.ID), ErrNotFound)
}

func TestRelationService_RejectsHoursRoundingToZero(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fx := env.seedFixture(t)

	relation, err := env.relations.LookupRelation(ctx, fx.frontend.ID, fx.low.ID)
	require.NoError(t, err)

	tests := []struct {
		name string
		call func() error
	}{
		{"upsert", func() error {
			_, err := env.relations.UpsertRelation(ctx, RelationInput{ComponentID: fx.frontend.ID, ComplexityID: fx.low.ID, Hours: 0.004})
			return err
		}},
		{"create", func() error {
			_, err := env.relations.CreateRelation(ctx, RelationInput{ComponentID: fx.backend.ID, ComplexityID: fx.low.ID, Hours: 0.001})
			return err
		}},
		{"update hours", func() error {
			_, err := env.relations.UpdateRelationHours(ctx, relation.ID, RelationHoursInput{Hours: 0.004})
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var vErr *ValidationError
			require.ErrorAs(t, tt.call(), &vErr)
			assert.Equal(t, "hours", vErr.Fields[0].Field)
		})
	}

	stored, err := env.relations.LookupRelation(ctx, fx.frontend.ID, fx.low.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, stored.Hours)

	smallest, err := env.relations.UpsertRelation(ctx, RelationInput{ComponentID: fx.frontend.ID, ComplexityID: fx.low.ID, Hours: 0.005})
	require.NoError(t, err)
	assert.Equal(t, 0.01, smallest.Hours)
}
