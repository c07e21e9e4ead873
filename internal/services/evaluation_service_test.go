package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evaluationInput(fx *fixture, risk *float64) EvaluationInput {
	return EvaluationInput{
		ProjectID: fx.project.ID,
		Name:      "Primera estimación",
		Date:      ptr(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)),
		RiskPct:   risk,
		Details: []EvaluationDetailInput{
			{ComponentID: fx.frontend.ID, ComplexityID: fx.high.ID, TaskDescription: "Formulario de registro de clientes"},
			{ComponentID: fx.backend.ID, ComplexityID: fx.low.ID, TaskDescription: "Endpoint de consulta de saldo"},
		},
	}
}

func TestEvaluationService_Create(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fx := env.seedFixture(t)

	ev, err := env.evaluations.CreateEvaluation(ctx, evaluationInput(fx, ptr(25.0)))
	require.NoError(t, err)

	assert.Equal(t, 22.0, ev.TotalHours)
	require.NotNil(t, ev.RiskAdjustedHours)
	assert.Equal(t, 27.5, *ev.RiskAdjustedHours)
	assert.Equal(t, 5, ev.EstimatedDays)

	require.Len(t, ev.Details, 2)
	assert.Equal(t, 16.0, ev.Details[0].BaseHours)
	assert.Equal(t, "Frontend", ev.Details[0].Component.Name)
	assert.Equal(t, 6.0, ev.Details[1].BaseHours)

	project, err := env.projects.GetProject(ctx, fx.project.ID)
	require.NoError(t, err)
	assert.Equal(t, 27.5, project.TotalHours)
	assert.Equal(t, 5, project.EstimatedDays)
	assert.Equal(t, 25.0, project.Risk)
}

func TestEvaluationService_NoRisk(t *testing.T) {
	env := newTestEnv(t)
	fx := env.seedFixture(t)

	for _, risk := range []*float64{nil, ptr(0.0)} {
		ev, err := env.evaluations.CreateEvaluation(context.Background(), evaluationInput(fx, risk))
		require.NoError(t, err)
		assert.Nil(t, ev.RiskAdjustedHours)
		assert.Equal(t, 22.0, ev.TotalHours)
		assert.Equal(t, 4, ev.EstimatedDays)
	}
}

func TestEvaluationService_HoursAreSnapshotted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fx := env.seedFixture(t)

	ev, err := env.evaluations.CreateEvaluation(ctx, evaluationInput(fx, nil))
	require.NoError(t, err)

	_, err = env.relations.UpsertRelation(ctx, RelationInput{ComponentID: fx.frontend.ID, ComplexityID: fx.high.ID, Hours: 40})
	require.NoError(t, err)

	got, err := env.evaluations.GetEvaluation(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, 16.0, got.Details[0].BaseHours)
	assert.Equal(t, 22.0, got.TotalHours)
}

func TestEvaluationService_RejectsInvalidDetails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fx := env.seedFixture(t)

	other, err := env.projects.CreateProject(ctx, ProjectInput{Name: "Otro proyecto"})
	require.NoError(t, err)
	foreign, err := env.components.CreateComponent(ctx, ComponentInput{ProjectID: other.ID, Name: "Integraciones"})
	require.NoError(t, err)

	t.Run("component of another project", func(t *testing.T) {
		in := evaluationInput(fx, nil)
		in.Details[1].ComponentID = foreign.ID
		_, err := env.evaluations.CreateEvaluation(ctx, in)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		require.Len(t, vErr.Fields, 1)
		assert.Equal(t, "details[1].component_id", vErr.Fields[0].Field)
	})

	t.Run("pair without hours", func(t *testing.T) {
		level, err := env.complexities.CreateComplexity(ctx, ComplexityInput{Name: "Media", Rank: 3})
		require.NoError(t, err)
		in := evaluationInput(fx, nil)
		in.Details[0].ComplexityID = level.ID
		_, err = env.evaluations.CreateEvaluation(ctx, in)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "details[0]", vErr.Fields[0].Field)
	})

	t.Run("short task description", func(t *testing.T) {
		in := evaluationInput(fx, nil)
		in.Details[0].TaskDescription = "  corto   "
		_, err := env.evaluations.CreateEvaluation(ctx, in)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "details[0].task_description", vErr.Fields[0].Field)
	})

	t.Run("no details", func(t *testing.T) {
		in := evaluationInput(fx, nil)
		in.Details = nil
		_, err := env.evaluations.CreateEvaluation(ctx, in)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "details", vErr.Fields[0].Field)
	})

	t.Run("risk out of range", func(t *testing.T) {
		_, err := env.evaluations.CreateEvaluation(ctx, evaluationInput(fx, ptr(120.0)))
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "risk_pct", vErr.Fields[0].Field)
	})

	t.Run("inactive component", func(t *testing.T) {
		inactive, err := env.components.CreateComponent(ctx, ComponentInput{ProjectID: fx.project.ID, Name: "Reportes", Active: ptr(false)})
		require.NoError(t, err)
		in := evaluationInput(fx, nil)
		in.Details[0].ComponentID = inactive.ID
		_, err = env.evaluations.CreateEvaluation(ctx, in)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "details[0].component_id", vErr.Fields[0].Field)
	})

	t.Run("unknown component", func(t *testing.T) {
		in := evaluationInput(fx, nil)
		in.Details[1].ComponentID = uuid.New()
		_, err := env.evaluations.CreateEvaluation(ctx, in)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown complexity level", func(t *testing.T) {
		in := evaluationInput(fx, nil)
		in.Details[0].ComplexityID = uuid.New()
		_, err := env.evaluations.CreateEvaluation(ctx, in)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown project", func(t *testing.T) {
		in := evaluationInput(fx, nil)
		in.ProjectID = uuid.New()
		_, err := env.evaluations.CreateEvaluation(ctx, in)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	evaluations, err := env.evaluations.ListEvaluations(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, evaluations)
}

func TestEvaluationService_UpdateReplacesDetails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fx := env.seedFixture(t)

	ev, err := env.evaluations.CreateEvaluation(ctx, evaluationInput(fx, nil))
	require.NoError(t, err)

	in := EvaluationInput{
		ProjectID: fx.project.ID,
		RiskPct:   ptr(10.0),
		Details: []EvaluationDetailInput{
			{ComponentID: fx.backend.ID, ComplexityID: fx.high.ID, TaskDescription: "Motor de conciliación bancaria"},
		},
	}
	updated, err := env.evaluations.UpdateEvaluation(ctx, ev.ID, in)
	require.NoError(t, err)

	assert.Equal(t, ev.ID, updated.ID)
	assert.True(t, ev.Date.Equal(updated.Date))
	require.Len(t, updated.Details, 1)
	assert.Equal(t, 24.0, updated.TotalHours)
	require.NotNil(t, updated.RiskAdjustedHours)
	assert.Equal(t, 26.4, *updated.RiskAdjustedHours)
	assert.Equal(t, 5, updated.EstimatedDays)

	project, err := env.projects.GetProject(ctx, fx.project.ID)
	require.NoError(t, err)
	assert.Equal(t, 26.4, project.TotalHours)
	assert.Equal(t, 10.0, project.Risk)

	_, err = env.evaluations.UpdateEvaluation(ctx, uuid.New(), in)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEvaluationService_UpdateRemovesRisk(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fx := env.seedFixture(t)

	ev, err := env.evaluations.CreateEvaluation(ctx, evaluationInput(fx, ptr(25.0)))
	require.NoError(t, err)
	require.NotNil(t, ev.RiskAdjustedHours)

	for _, risk := range []*float64{ptr(0.0), nil} {
		updated, err := env.evaluations.UpdateEvaluation(ctx, ev.ID, evaluationInput(fx, risk))
		require.NoError(t, err)
		assert.Nil(t, updated.RiskAdjustedHours)
		assert.Equal(t, 22.0, updated.TotalHours)
		assert.Equal(t, 4, updated.EstimatedDays)

		stored, err := env.evaluations.GetEvaluation(ctx, ev.ID)
		require.NoError(t, err)
		assert.Nil(t, stored.RiskAdjustedHours)

		project, err := env.projects.GetProject(ctx, fx.project.ID)
		require.NoError(t, err)
		assert.Equal(t, 22.0, project.TotalHours)
		assert.Equal(t, 4, project.EstimatedDays)
		assert.Zero(t, project.Risk)
	}
}

func TestEvaluationService_UpdateMovesProject(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fx := env.seedFixture(t)

	other, err := env.projects.CreateProject(ctx, ProjectInput{Name: "Banca Móvil"})
	require.NoError(t, err)
	app, err := env.components.CreateComponent(ctx, ComponentInput{ProjectID: other.ID, Name: "App Móvil"})
	require.NoError(t, err)
	_, err = env.relations.CreateRelation(ctx, RelationInput{ComponentID: app.ID, ComplexityID: fx.high.ID, Hours: 30})
	require.NoError(t, err)

	ev, err := env.evaluations.CreateEvaluation(ctx, evaluationInput(fx, ptr(25.0)))
	require.NoError(t, err)

	moved, err := env.evaluations.UpdateEvaluation(ctx, ev.ID, EvaluationInput{
		ProjectID: other.ID,
		RiskPct:   ptr(10.0),
		Details: []EvaluationDetailInput{
			{ComponentID: app.ID, ComplexityID: fx.high.ID, TaskDescription: "Pantalla de transferencias"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, other.ID, moved.ProjectID)
	assert.Equal(t, 30.0, moved.TotalHours)
	require.NotNil(t, moved.RiskAdjustedHours)
	assert.Equal(t, 33.0, *moved.RiskAdjustedHours)
	assert.Equal(t, 6, moved.EstimatedDays)

	previous, err := env.projects.GetProject(ctx, fx.project.ID)
	require.NoError(t, err)
	assert.Zero(t, previous.TotalHours)
	assert.Zero(t, previous.EstimatedDays)
	assert.Zero(t, previous.Risk)

	current, err := env.projects.GetProject(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, 33.0, current.TotalHours)
	assert.Equal(t, 6, current.EstimatedDays)
	assert.Equal(t, 10.0, current.Risk)

	listed, err := env.evaluations.ListEvaluations(ctx, &fx.project.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestEvaluationService_RollupFollowsLatestEvaluation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fx := env.seedFixture(t)

	older := evaluationInput(fx, nil)
	older.Date = ptr(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
	newer := evaluationInput(fx, ptr(50.0))
	newer.Date = ptr(time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC))

	newerEv, err := env.evaluations.CreateEvaluation(ctx, newer)
	require.NoError(t, err)
	olderEv, err := env.evaluations.CreateEvaluation(ctx, older)
	require.NoError(t, err)

	project, err := env.projects.GetProject(ctx, fx.project.ID)
	require.NoError(t, err)
	assert.Equal(t, 33.0, project.TotalHours)
	assert.Equal(t, 50.0, project.Risk)

	require.NoError(t, env.evaluations.DeleteEvaluation(ctx, newerEv.ID))
	project, err = env.projects.GetProject(ctx, fx.project.ID)
	require.NoError(t, err)
	assert.Equal(t, 22.0, project.TotalHours)
	assert.Equal(t, 4, project.EstimatedDays)
	assert.Zero(t, project.Risk)

	require.NoError(t, env.evaluations.DeleteEvaluation(ctx, olderEv.ID))
	project, err = env.projects.GetProject(ctx, fx.project.ID)
	require.NoError(t, err)
	assert.Zero(t, project.TotalHours)
	assert.Zero(t, project.EstimatedDays)

	assert.ErrorIs(t, env.evaluations.DeleteEvaluation(ctx, olderEv.ID), ErrNotFound)
}

func TestEvaluationService_Preview(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fx := env.seedFixture(t)

	preview, err := env.evaluations.PreviewEvaluation(ctx, evaluationInput(fx, ptr(25.0)))
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, preview.ID)
	require.Len(t, preview.Schedule, 2)
	assert.Equal(t, 20.0, preview.Schedule[0].RiskHours)
	assert.Equal(t, 1, preview.Schedule[0].StartDay)
	assert.Equal(t, 4, preview.Schedule[0].EndDay)
	assert.Equal(t, 4, preview.Schedule[1].StartDay)
	assert.Equal(t, 5, preview.Schedule[1].EndDay)

	evaluations, err := env.evaluations.ListEvaluations(ctx, &fx.project.ID)
	require.NoError(t, err)
	assert.Empty(t, evaluations)
}
