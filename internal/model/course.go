package model

import "time"

// Course is a Canvas course linked to a user. Rows are upserted wholesale on
// every sync, keyed by (user_id, course_id); nothing ever deletes them.
type Course struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	UserID       uint       `json:"user_id" gorm:"index:idx_user_course,unique;not null"`
	CourseID     string     `json:"course_id" gorm:"index:idx_user_course,unique;size:64"`
	CourseName   string     `json:"course_name" gorm:"size:255"`
	CourseCode   string     `json:"course_code" gorm:"size:64"`
	EnrolledDate *time.Time `json:"enrolled_date,omitempty"`
}

func (Course) TableName() string { return "canvas_courses" }
