package services

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matiisnothere-15/septjunto/internal/estimation"
)

type ProjectInput struct {
	Name        string     `json:"name" validate:"required,min=3,max=200"`
	Description string     `json:"description" validate:"max=1000"`
	Date        *time.Time `json:"date"`
}

func (in *ProjectInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
}

type ComponentInput struct {
	ProjectID   uuid.UUID `json:"project_id" validate:"required"`
	Name        string    `json:"name" validate:"required,max=100,component_name"`
	Description string    `json:"description" validate:"max=500"`
	Active      *bool     `json:"active"`
}

func (in *ComponentInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
}

// ComponentUpdateInput is the editable part of a component. The owning project is fixed.
type ComponentUpdateInput struct {
	Name        string `json:"name" validate:"required,max=100,component_name"`
	Description string `json:"description" validate:"max=500"`
	Active      *bool  `json:"active"`
}

func (in *ComponentUpdateInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
}

type ComplexityInput struct {
	Name   string `json:"name" validate:"required,max=50,complexity_name"`
	Rank   int    `json:"rank" validate:"required,min=1,max=5"`
	Active *bool  `json:"active"`
}

func (in *ComplexityInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
}

type RelationInput struct {
	ComponentID  uuid.UUID `json:"component_id" validate:"required"`
	ComplexityID uuid.UUID `json:"complexity_id" validate:"required"`
	Hours        float64   `json:"hours" validate:"gt=0,lte=1000"`
}

// normalize rounds the hours to the stored precision so validation sees the stored value.
func (in *RelationInput) normalize() {
	in.Hours = estimation.Round2(in.Hours)
}

type RelationHoursInput struct {
	Hours float64 `json:"hours" validate:"gt=0,lte=1000"`
}

func (in *RelationHoursInput) normalize() {
	in.Hours = estimation.Round2(in.Hours)
}

type EvaluationInput struct {
	ProjectID uuid.UUID               `json:"project_id" validate:"required"`
	Name      string                  `json:"name" validate:"max=200"`
	Date      *time.Time              `json:"date"`
	RiskPct   *float64                `json:"risk_pct" validate:"omitempty,gte=0,lte=100"`
	Details   []EvaluationDetailInput `json:"details" validate:"required,min=1,max=50,dive"`
}

type EvaluationDetailInput struct {
	ComponentID     uuid.UUID `json:"component_id" validate:"required"`
	ComplexityID    uuid.UUID `json:"complexity_id" validate:"required"`
	TaskDescription string    `json:"task_description" validate:"required,min=10,max=500"`
}

func (in *EvaluationInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	for i := range in.Details {
		in.Details[i].TaskDescription = strings.TrimSpace(in.Details[i].TaskDescription)
	}
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
