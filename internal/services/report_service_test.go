package services

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportService_RenderEvaluationReport(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fx := env.seedFixture(t)

	ev, err := env.evaluations.CreateEvaluation(ctx, evaluationInput(fx, ptr(25.0)))
	require.NoError(t, err)

	rendered, err := env.reports.RenderEvaluationReport(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, "Evaluacion_Portal_Clientes_2025-03-14.pdf", rendered.FileName)
	assert.True(t, bytes.HasPrefix(rendered.Content, []byte("%PDF")))

	key := fmt.Sprintf("reports/%s/%s", ev.ID, rendered.FileName)
	assert.Equal(t, rendered.Content, env.store.objects[key])

	_, err = env.reports.RenderEvaluationReport(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReportService_ArchiveFailureDoesNotFailRender(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fx := env.seedFixture(t)
	env.store.err = errors.New("bucket unavailable")

	ev, err := env.evaluations.CreateEvaluation(ctx, evaluationInput(fx, nil))
	require.NoError(t, err)

	rendered, err := env.reports.RenderEvaluationReport(ctx, ev.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, rendered.Content)
	assert.Empty(t, env.store.objects)
}

func TestReportService_ExportReports(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fx := env.seedFixture(t)

	var buf bytes.Buffer
	err := env.reports.ExportReports(ctx, &fx.project.ID, &buf)
	assert.ErrorIs(t, err, ErrNotFound)

	// Same project and date: names must still be distinct.
	for i := 0; i < 2; i++ {
		_, err := env.evaluations.CreateEvaluation(ctx, evaluationInput(fx, nil))
		require.NoError(t, err)
	}

	buf.Reset()
	require.NoError(t, env.reports.ExportReports(ctx, nil, &buf))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)
	assert.NotEqual(t, zr.File[0].Name, zr.File[1].Name)
	for _, f := range zr.File {
		assert.True(t, strings.HasPrefix(f.Name, "Evaluacion_Portal_Clientes_2025-03-14_"), f.Name)
		assert.True(t, strings.HasSuffix(f.Name, ".pdf"), f.Name)
	}
}
