package models

import "gorm.io/gorm"

// All lists every persisted model in dependency order.
func All() []interface{} {
	return []interface{}{
		&Project{},
		&Component{},
		&ComplexityLevel{},
		&Relation{},
		&Evaluation{},
		&EvaluationDetail{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}
