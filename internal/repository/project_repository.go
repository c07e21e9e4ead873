package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/matiisnothere-15/septjunto/internal/models"
)

// ProjectRepository provides methods to interact with the Project model in the database.
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository instance with the provided GORM database connection.
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// CreateProject creates a new Project in the database.
func (r *ProjectRepository) CreateProject(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error
}

// GetProject retrieves a Project by its ID from the database.
func (r *ProjectRepository) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error
	return &project, err
}

// FindProjectByName looks a project up by name, ignoring case.
func (r *ProjectRepository) FindProjectByName(ctx context.Context, name string) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&project).Error
	return &project, err
}

// ProjectNameTaken reports whether a project other than exclude uses name.
func (r *ProjectRepository) ProjectNameTaken(ctx context.Context, name string, exclude uuid.UUID) (bool, error) {
	return nameTaken(ctx, r.db, &models.Project{}, name, exclude)
}

// UpdateProject updates an existing Project in the database.
func (r *ProjectRepository) UpdateProject(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(project).Error
}

// DeleteProject deletes a Project and everything it owns in one transaction.
func (r *ProjectRepository) DeleteProject(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		evaluations := tx.Model(&models.Evaluation{}).Select("id").Where("project_id = ?", id)
		if err := tx.Where("evaluation_id IN (?)", evaluations).Delete(&models.EvaluationDetail{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Evaluation{}).Error; err != nil {
			return err
		}

		components := tx.Model(&models.Component{}).Select("id").Where("project_id = ?", id)
		if err := tx.Where("component_id IN (?)", components).Delete(&models.Relation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Component{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Project{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListProjects retrieves all Projects ordered by name.
func (r *ProjectRepository) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).Order("name").Find(&projects).Error
	return projects, err
}
