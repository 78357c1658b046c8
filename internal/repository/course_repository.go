package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vtcal/internal/model"
)

// CourseRepository defines linked-course persistence operations.
type CourseRepository interface {
	Upsert(ctx context.Context, course *model.Course) error
	ListByUser(ctx context.Context, userID uint) ([]model.Course, error)
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository creates a new course repository.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

// Upsert replaces the course row for (user, remote course id) wholesale.
func (r *courseRepository) Upsert(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"course_name", "course_code", "enrolled_date"}),
	}).Create(course).Error
}

func (r *courseRepository) ListByUser(ctx context.Context, userID uint) ([]model.Course, error) {
	var courses []model.Course
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("course_name ASC").
		Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}
