package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinComplexityRank = 1
	MaxComplexityRank = 5
)

// ComplexityLevel is a difficulty tier. Rank orders the tiers from 1 (lowest) to 5.
type ComplexityLevel struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Name      string    `json:"name" gorm:"size:50;not null;uniqueIndex"`
	Rank      int       `json:"rank" gorm:"not null;uniqueIndex"`
	Active    bool      `json:"active" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (c *ComplexityLevel) BeforeCreate(tx *gorm.DB) error {
	assignID(&c.ID)
	return nil
}
