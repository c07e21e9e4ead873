package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// nameTaken reports whether another row of model already uses name, ignoring case.
// exclude skips the row being updated.
func nameTaken(ctx context.Context, db *gorm.DB, model interface{}, name string, exclude uuid.UUID) (bool, error) {
	q := db.WithContext(ctx).Model(model).Where("LOWER(name) = LOWER(?)", name)
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
