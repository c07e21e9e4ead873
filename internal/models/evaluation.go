package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Evaluation is an estimate for a project built from component/complexity line items.
// RiskAdjustedHours is nil when no positive risk percentage was given.
type Evaluation struct {
	ID                uuid.UUID          `json:"id" gorm:"primaryKey;type:uuid"`
	ProjectID         uuid.UUID          `json:"project_id" gorm:"type:uuid;not null;index"`
	Project           *Project           `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	Name              string             `json:"name" gorm:"size:200"`
	Date              time.Time          `json:"date" gorm:"not null;index"`
	RiskPct           *float64           `json:"risk_pct" gorm:"type:decimal(5,2)"`
	TotalHours        float64            `json:"total_hours" gorm:"type:decimal(18,2);not null"`
	RiskAdjustedHours *float64           `json:"risk_adjusted_hours" gorm:"type:decimal(18,2)"`
	EstimatedDays     int                `json:"estimated_days" gorm:"not null"`
	Details           []EvaluationDetail `json:"details" gorm:"foreignKey:EvaluationID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time          `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time          `json:"updated_at" gorm:"autoUpdateTime"`
}

func (e *Evaluation) BeforeCreate(tx *gorm.DB) error {
	assignID(&e.ID)
	return nil
}

// EffectiveHours returns the hours the schedule is based on.
func (e *Evaluation) EffectiveHours() float64 {
	if e.RiskAdjustedHours != nil {
		return *e.RiskAdjustedHours
	}
	return e.TotalHours
}

// EvaluationDetail is one line item. BaseHours is copied from the relation when the
// evaluation is written and does not follow later changes to it.
type EvaluationDetail struct {
	ID              uuid.UUID        `json:"id" gorm:"primaryKey;type:uuid"`
	EvaluationID    uuid.UUID        `json:"evaluation_id" gorm:"type:uuid;not null;index"`
	Position        int              `json:"position" gorm:"not null"`
	ComponentID     uuid.UUID        `json:"component_id" gorm:"type:uuid;not null;index"`
	Component       *Component       `json:"component,omitempty" gorm:"foreignKey:ComponentID;constraint:OnDelete:RESTRICT"`
	ComplexityID    uuid.UUID        `json:"complexity_id" gorm:"type:uuid;not null;index"`
	Complexity      *ComplexityLevel `json:"complexity,omitempty" gorm:"foreignKey:ComplexityID;constraint:OnDelete:RESTRICT"`
	BaseHours       float64          `json:"base_hours" gorm:"type:decimal(18,2);not null"`
	TaskDescription string           `json:"task_description" gorm:"size:500;not null"`
}

func (d *EvaluationDetail) BeforeCreate(tx *gorm.DB) error {
	assignID(&d.ID)
	return nil
}
