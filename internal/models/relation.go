package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Relation holds the hours assigned to one (component, complexity) pair.
type Relation struct {
	ID           uuid.UUID        `json:"id" gorm:"primaryKey;type:uuid"`
	ComponentID  uuid.UUID        `json:"component_id" gorm:"type:uuid;not null;uniqueIndex:idx_relation_pair"`
	ComplexityID uuid.UUID        `json:"complexity_id" gorm:"type:uuid;not null;uniqueIndex:idx_relation_pair;index"`
	Hours        float64          `json:"hours" gorm:"type:decimal(18,2);not null"`
	Component    *Component       `json:"component,omitempty" gorm:"foreignKey:ComponentID;constraint:OnDelete:CASCADE"`
	Complexity   *ComplexityLevel `json:"complexity,omitempty" gorm:"foreignKey:ComplexityID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Relation) TableName() string {
	return "component_complexity_relations"
}

func (r *Relation) BeforeCreate(tx *gorm.DB) error {
	assignID(&r.ID)
	return nil
}
