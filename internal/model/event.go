package model

import "time"

// Event sources. Synced rows carry the provider tag, user-created rows are Manual.
const (
	SourceCanvas = "Canvas"
	SourceGoogle = "Google"
	SourceManual = "Manual"
)

// Event is a single calendar entry: a synced assignment, a synced calendar
// event, or a manually created item.
type Event struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"user_id" gorm:"index;not null"`
	Title          string    `json:"title" gorm:"size:255"`
	Description    string    `json:"description"`
	DueDate        time.Time `json:"due_date" gorm:"index"`
	Source         string    `json:"source" gorm:"size:16"`
	CourseName     string    `json:"course_name" gorm:"size:255"`
	CanvasCourseID string    `json:"canvas_course_id" gorm:"size:64"`
	Completed      bool      `json:"completed" gorm:"default:false"`
	ReminderSent   bool      `json:"reminder_sent" gorm:"default:false"`
}

func (Event) TableName() string { return "calendar_events" }
