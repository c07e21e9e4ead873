package report

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matiisnothere-15/septjunto/internal/models"
)

func sampleEvaluation(tasks int) *models.Evaluation {
	risk := 20.0
	adjusted := 0.0
	project := &models.Project{ID: uuid.New(), Name: "Portal Clientes"}
	component := &models.Component{ID: uuid.New(), ProjectID: project.ID, Name: "Frontend"}
	level := &models.ComplexityLevel{ID: uuid.New(), Name: "Media", Rank: 3}

	ev := &models.Evaluation{
		ID:        uuid.New(),
		ProjectID: project.ID,
		Project:   project,
		Name:      "Sprint inicial",
		Date:      time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		RiskPct:   &risk,
	}
	for i := 0; i < tasks; i++ {
		ev.Details = append(ev.Details, models.EvaluationDetail{
			ID:              uuid.New(),
			Position:        i,
			ComponentID:     component.ID,
			Component:       component,
			ComplexityID:    level.ID,
			Complexity:      level,
			BaseHours:       8,
			TaskDescription: fmt.Sprintf("Pantalla de login con validación de credenciales %d", i+1),
		})
		ev.TotalHours += 8
	}
	adjusted = ev.TotalHours * 1.2
	ev.RiskAdjustedHours = &adjusted
	ev.EstimatedDays = int(adjusted/6) + 1
	return ev
}

func readPDF(t *testing.T, content []byte) (int, string) {
	t.Helper()
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	require.NoError(t, err)

	var text strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		require.NoError(t, err)
		text.WriteString(pageText)
	}
	return reader.NumPage(), text.String()
}

func TestRender(t *testing.T) {
	content, err := Render(sampleEvaluation(3))
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(content, []byte("%PDF")))

	pages, text := readPDF(t, content)
	assert.Equal(t, 1, pages)
	assert.Contains(t, text, "Portal Clientes")
	assert.Contains(t, text, "Frontend")
	assert.Contains(t, text, "Total horas")
	assert.Contains(t, text, "Documento generado autom")
}

func TestRender_ManyTasksSpansPages(t *testing.T) {
	content, err := Render(sampleEvaluation(80))
	require.NoError(t, err)

	pages, _ := readPDF(t, content)
	assert.Greater(t, pages, 1)
}

func TestRender_NoRisk(t *testing.T) {
	ev := sampleEvaluation(1)
	ev.RiskPct = nil
	ev.RiskAdjustedHours = nil

	content, err := Render(ev)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
}

func TestRender_NonASCIITasks(t *testing.T) {
	tests := []struct {
		name        string
		description string
	}{
		{"accents", "Migración de datos históricos"},
		{"euro", "Cálculo de tarifas en € por región"},
		{"outside latin", "Migrar módulo 数据迁移 al nuevo esquema"},
		{"long wrapped", strings.Repeat("Configuración de parámetros ", 12)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := sampleEvaluation(2)
			ev.Details[0].TaskDescription = tt.description

			var content []byte
			var err error
			require.NotPanics(t, func() { content, err = Render(ev) })
			require.NoError(t, err)

			_, text := readPDF(t, content)
			assert.Contains(t, text, "Portal Clientes")
			assert.Contains(t, text, "Total horas")
		})
	}
}

func TestRender_RequiresProject(t *testing.T) {
	ev := sampleEvaluation(1)
	ev.Project = nil

	_, err := Render(ev)
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		project string
		want    string
	}{
		{"Portal", "Evaluacion_Portal_2025-03-14.pdf"},
		{"Portal Clientes", "Evaluacion_Portal_Clientes_2025-03-14.pdf"},
		{"Gestión/Ñandú v2", "Evaluacion_Gesti_n__and__v2_2025-03-14.pdf"},
		{"", "Evaluacion__2025-03-14.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.project, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.project, date))
		})
	}
}

func TestWriteZip(t *testing.T) {
	var buf bytes.Buffer
	err := WriteZip(context.Background(), &buf, []File{
		{Name: "a.pdf", Content: []byte("first")},
		{Name: "b.pdf", Content: []byte("second")},
	})
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	got := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		got[f.Name] = string(data)
	}
	assert.Equal(t, map[string]string{"a.pdf": "first", "b.pdf": "second"}, got)
}

func TestWriteZip_DuplicateName(t *testing.T) {
	var buf bytes.Buffer
	err := WriteZip(context.Background(), &buf, []File{
		{Name: "a.pdf", Content: []byte("one")},
		{Name: "a.pdf", Content: []byte("two")},
	})
	assert.Error(t, err)
}
