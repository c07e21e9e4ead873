package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/matiisnothere-15/septjunto/internal/metrics"
	"github.com/matiisnothere-15/septjunto/internal/models"
	"github.com/matiisnothere-15/septjunto/internal/report"
	"github.com/matiisnothere-15/septjunto/internal/repository"
)

const pdfContentType = "application/pdf"

// ReportStore archives rendered reports.
type ReportStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// RenderedReport is a PDF ready for download.
type RenderedReport struct {
	FileName string
	Content  []byte
}

type ReportService struct {
	evaluations *repository.EvaluationRepository
	store       ReportStore
	logger      *zap.Logger
}

// NewReportService creates the report service. store may be nil, in which case
// reports are only rendered.
func NewReportService(evaluations *repository.EvaluationRepository, store ReportStore, logger *zap.Logger) *ReportService {
	return &ReportService{evaluations: evaluations, store: store, logger: logger}
}

// RenderEvaluationReport renders the PDF of one evaluation and archives a copy.
func (s *ReportService) RenderEvaluationReport(ctx context.Context, id uuid.UUID) (*RenderedReport, error) {
	evaluation, err := s.evaluations.GetEvaluation(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "evaluation %s", id)
	}

	content, err := s.render(evaluation)
	if err != nil {
		return nil, err
	}
	name := report.FileName(evaluation.Project.Name, evaluation.Date)
	s.archive(ctx, fmt.Sprintf("reports/%s/%s", evaluation.ID, name), content)

	return &RenderedReport{FileName: name, Content: content}, nil
}

// ExportReports writes a zip with the report of every evaluation, optionally for one project.
func (s *ReportService) ExportReports(ctx context.Context, projectID *uuid.UUID, w io.Writer) error {
	evaluations, err := s.evaluations.ListEvaluations(ctx, projectID)
	if err != nil {
		return errors.Wrap(err, "failed to list evaluations")
	}
	if len(evaluations) == 0 {
		return errors.Wrap(ErrNotFound, "no evaluations to export")
	}

	files := make([]report.File, 0, len(evaluations))
	for i := range evaluations {
		evaluation := &evaluations[i]
		content, err := s.render(evaluation)
		if err != nil {
			return err
		}
		files = append(files, report.File{Name: bundleName(evaluation), Content: content})
	}

	if err := report.WriteZip(ctx, w, files); err != nil {
		return errors.Wrap(err, "failed to write report bundle")
	}
	s.logger.Info("reports exported", zap.Int("count", len(files)))
	return nil
}

func (s *ReportService) render(evaluation *models.Evaluation) ([]byte, error) {
	start := time.Now()
	content, err := report.Render(evaluation)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to render report of evaluation %s", evaluation.ID)
	}
	metrics.RecordReportRender(time.Since(start))
	return content, nil
}

// archive stores the report when a store is configured. Failures do not fail the request.
func (s *ReportService) archive(ctx context.Context, key string, content []byte) {
	if s.store == nil {
		return
	}
	if err := s.store.Put(ctx, key, content, pdfContentType); err != nil {
		s.logger.Warn("report archive failed", zap.String("key", key), zap.Error(err))
		return
	}
	s.logger.Debug("report archived", zap.String("key", key), zap.Int("bytes", len(content)))
}

// bundleName keeps names unique inside an export: several evaluations of one
// project can share a date.
func bundleName(evaluation *models.Evaluation) string {
	name := report.FileName(evaluation.Project.Name, evaluation.Date)
	return fmt.Sprintf("%s_%s.pdf", strings.TrimSuffix(name, ".pdf"), evaluation.ID.String()[:8])
}
