package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Component is a reusable building block (API, database, function...) owned by a project.
type Component struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	ProjectID   uuid.UUID `json:"project_id" gorm:"type:uuid;not null;index"`
	Name        string    `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Description string    `json:"description" gorm:"size:500"`
	Active      bool      `json:"active" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (c *Component) BeforeCreate(tx *gorm.DB) error {
	assignID(&c.ID)
	return nil
}
