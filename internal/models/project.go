package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project groups the components being estimated. TotalHours, EstimatedDays and
// Risk mirror the project's most recent evaluation.
type Project struct {
	ID            uuid.UUID   `json:"id" gorm:"primaryKey;type:uuid"`
	Name          string      `json:"name" gorm:"size:200;not null;uniqueIndex"`
	Description   string      `json:"description" gorm:"size:1000"`
	Date          time.Time   `json:"date" gorm:"not null"`
	TotalHours    float64     `json:"total_hours" gorm:"type:decimal(18,2);not null;default:0"`
	EstimatedDays int         `json:"estimated_days" gorm:"not null;default:0"`
	Risk          float64     `json:"risk" gorm:"type:decimal(5,2);not null;default:0"`
	CreatedAt     time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time   `json:"updated_at" gorm:"autoUpdateTime"`
	Components    []Component `json:"components,omitempty" gorm:"foreignKey:ProjectID"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}
