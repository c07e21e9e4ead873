package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/matiisnothere-15/septjunto/internal/catalog"
	"github.com/matiisnothere-15/septjunto/internal/estimation"
	"github.com/matiisnothere-15/septjunto/internal/extraction"
	"github.com/matiisnothere-15/septjunto/internal/models"
	"github.com/matiisnothere-15/septjunto/internal/repository"
)

// ImportResult counts what a catalog import changed.
type ImportResult struct {
	Documents           int      `json:"documents"`
	Projects            []string `json:"projects"`
	ProjectsCreated     int      `json:"projects_created"`
	ComplexitiesCreated int      `json:"complexities_created"`
	ComplexitiesUpdated int      `json:"complexities_updated"`
	ComponentsCreated   int      `json:"components_created"`
	ComponentsUpdated   int      `json:"components_updated"`
	RelationsUpserted   int      `json:"relations_upserted"`
}

func (r *ImportResult) merge(other *ImportResult) {
	r.Documents += other.Documents
	r.Projects = append(r.Projects, other.Projects...)
	r.ProjectsCreated += other.ProjectsCreated
	r.ComplexitiesCreated += other.ComplexitiesCreated
	r.ComplexitiesUpdated += other.ComplexitiesUpdated
	r.ComponentsCreated += other.ComponentsCreated
	r.ComponentsUpdated += other.ComponentsUpdated
	r.RelationsUpserted += other.RelationsUpserted
}

// CatalogService loads catalog documents into the database.
type CatalogService struct {
	db     *gorm.DB
	cache  *CatalogCache
	logger *zap.Logger
}

func NewCatalogService(db *gorm.DB, cache *CatalogCache, logger *zap.Logger) *CatalogService {
	return &CatalogService{db: db, cache: cache, logger: logger}
}

// Seed imports the built-in reference catalog. Running it again changes nothing.
func (s *CatalogService) Seed(ctx context.Context) (*ImportResult, error) {
	doc, err := catalog.Default()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load built-in catalog")
	}
	return s.Import(ctx, doc)
}

// ImportFile imports a YAML catalog document, or every YAML document inside an archive.
func (s *CatalogService) ImportFile(ctx context.Context, filename string, r io.Reader) (*ImportResult, error) {
	if isCatalogFile(filename) {
		doc, err := catalog.Parse(r)
		if err != nil {
			return nil, invalid("file", err.Error())
		}
		return s.Import(ctx, doc)
	}

	tmp, err := os.CreateTemp("", "catalog-*"+filepath.Ext(filename))
	if err != nil {
		return nil, errors.Wrap(err, "failed to buffer upload")
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, errors.Wrap(err, "failed to buffer upload")
	}
	if err := tmp.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to buffer upload")
	}

	files, dir, err := extraction.ExtractArchive(ctx, tmp.Name())
	if err != nil {
		return nil, invalid("file", fmt.Sprintf("unreadable archive: %v", err))
	}
	defer os.RemoveAll(dir)

	var docs []*catalog.Document
	for _, path := range files {
		if !isCatalogFile(path) {
			continue
		}
		doc, err := parsePath(dir, path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return nil, invalid("file", "archive contains no .yaml or .yml catalog documents")
	}
	return s.Import(ctx, docs...)
}

func parsePath(dir, path string) (*catalog.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	rel, _ := filepath.Rel(dir, path)
	doc, err := catalog.Parse(f)
	if err != nil {
		return nil, invalid("file", fmt.Sprintf("%s: %v", filepath.ToSlash(rel), err))
	}
	return doc, nil
}

// Import upserts each document's project, complexity levels, components and relation
// hours. All documents share one transaction: if any of them fails, nothing is stored.
// Existing rows are matched by name (complexities by rank).
func (s *CatalogService) Import(ctx context.Context, docs ...*catalog.Document) (*ImportResult, error) {
	for _, doc := range docs {
		if err := doc.Validate(); err != nil {
			return nil, invalid("document", err.Error())
		}
	}

	total := &ImportResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, doc := range docs {
			result, err := importTx(ctx, tx, doc)
			if err != nil {
				return err
			}
			total.merge(result)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, componentsCacheKey, complexitiesCacheKey)
	s.logger.Info("catalog imported",
		zap.Strings("projects", total.Projects),
		zap.Int("documents", total.Documents),
		zap.Int("components_created", total.ComponentsCreated),
		zap.Int("complexities_created", total.ComplexitiesCreated),
		zap.Int("relations", total.RelationsUpserted),
	)
	return total, nil
}

func importTx(ctx context.Context, tx *gorm.DB, doc *catalog.Document) (*ImportResult, error) {
	result := &ImportResult{Documents: 1, Projects: []string{doc.Project.Name}}
	project, err := importProject(ctx, tx, doc, result)
	if err != nil {
		return nil, err
	}
	levels, err := importComplexities(ctx, tx, doc, result)
	if err != nil {
		return nil, err
	}
	if err := importComponents(ctx, tx, doc, project, levels, result); err != nil {
		return nil, err
	}
	return result, nil
}

func importProject(ctx context.Context, tx *gorm.DB, doc *catalog.Document, result *ImportResult) (*models.Project, error) {
	projects := repository.NewProjectRepository(tx)

	project, err := projects.FindProjectByName(ctx, doc.Project.Name)
	if err == nil {
		return project, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "failed to look up project")
	}

	in := ProjectInput{Name: doc.Project.Name, Description: doc.Project.Description}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	project = &models.Project{Name: in.Name, Description: in.Description, Date: time.Now().UTC()}
	if err := projects.CreateProject(ctx, project); err != nil {
		return nil, storeErr(err, "project %q", in.Name)
	}
	result.ProjectsCreated++
	return project, nil
}

// importComplexities returns every complexity level known after the import, keyed by rank.
func importComplexities(ctx context.Context, tx *gorm.DB, doc *catalog.Document, result *ImportResult) (map[int]*models.ComplexityLevel, error) {
	complexities := repository.NewComplexityRepository(tx)

	byRank := make(map[int]*models.ComplexityLevel, len(doc.Complexities))
	for _, entry := range doc.Complexities {
		in := ComplexityInput{Name: entry.Name, Rank: entry.Rank}
		if err := validateStruct(in); err != nil {
			return nil, err
		}

		level, err := complexities.FindComplexityByRank(ctx, entry.Rank)
		switch {
		case err == nil:
			if level.Name == entry.Name && level.Active {
				break
			}
			taken, err := complexities.ComplexityNameTaken(ctx, entry.Name, level.ID)
			if err != nil {
				return nil, errors.Wrap(err, "failed to check complexity name")
			}
			if taken {
				return nil, errors.Wrapf(ErrAlreadyExists, "complexity named %q with another rank", entry.Name)
			}
			level.Name = entry.Name
			level.Active = true
			if err := complexities.UpdateComplexity(ctx, level); err != nil {
				return nil, storeErr(err, "complexity rank %d", entry.Rank)
			}
			result.ComplexitiesUpdated++
		case errors.Is(err, gorm.ErrRecordNotFound):
			taken, err := complexities.ComplexityNameTaken(ctx, entry.Name, uuid.Nil)
			if err != nil {
				return nil, errors.Wrap(err, "failed to check complexity name")
			}
			if taken {
				return nil, errors.Wrapf(ErrAlreadyExists, "complexity named %q with another rank", entry.Name)
			}
			level = &models.ComplexityLevel{Name: entry.Name, Rank: entry.Rank, Active: true}
			if err := complexities.CreateComplexity(ctx, level); err != nil {
				return nil, storeErr(err, "complexity %q", entry.Name)
			}
			result.ComplexitiesCreated++
		default:
			return nil, errors.Wrap(err, "failed to look up complexity")
		}
		byRank[level.Rank] = level
	}

	existing, err := complexities.ListComplexities(ctx, true)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list complexity levels")
	}
	for i := range existing {
		if _, ok := byRank[existing[i].Rank]; !ok {
			byRank[existing[i].Rank] = &existing[i]
		}
	}
	return byRank, nil
}

func importComponents(
	ctx context.Context,
	tx *gorm.DB,
	doc *catalog.Document,
	project *models.Project,
	levels map[int]*models.ComplexityLevel,
	result *ImportResult,
) error {
	components := repository.NewComponentRepository(tx)
	relations := repository.NewRelationRepository(tx)

	for _, entry := range doc.Components {
		in := ComponentInput{ProjectID: project.ID, Name: entry.Name, Description: entry.Description}
		if err := validateStruct(in); err != nil {
			return err
		}

		component, err := components.FindComponentByName(ctx, entry.Name)
		switch {
		case err == nil:
			if component.ProjectID != project.ID {
				return errors.Wrapf(ErrAlreadyExists, "component %q belongs to another project", entry.Name)
			}
			if component.Description != entry.Description || !component.Active {
				component.Description = entry.Description
				component.Active = true
				if err := components.UpdateComponent(ctx, component); err != nil {
					return storeErr(err, "component %q", entry.Name)
				}
				result.ComponentsUpdated++
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			component = &models.Component{
				ProjectID:   project.ID,
				Name:        entry.Name,
				Description: entry.Description,
				Active:      true,
			}
			if err := components.CreateComponent(ctx, component); err != nil {
				return storeErr(err, "component %q", entry.Name)
			}
			result.ComponentsCreated++
		default:
			return errors.Wrap(err, "failed to look up component")
		}

		for rank, hours := range doc.HoursFor(entry) {
			level, ok := levels[rank]
			if !ok {
				return invalid("components", fmt.Sprintf("component %q: no complexity level with rank %d", entry.Name, rank))
			}
			relation := &models.Relation{ComponentID: component.ID, ComplexityID: level.ID, Hours: estimation.Round2(hours)}
			if _, err := relations.UpsertRelation(ctx, relation); err != nil {
				return errors.Wrapf(err, "failed to store hours of %q at rank %d", entry.Name, rank)
			}
			result.RelationsUpserted++
		}
	}
	return nil
}

func isCatalogFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
