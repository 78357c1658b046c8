package model

import "time"

// User represents a registered student account.
type User struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	VTEmail           string     `json:"vt_email" gorm:"column:vt_email;uniqueIndex;size:255;not null"`
	CanvasUserID      string     `json:"canvas_user_id" gorm:"size:64"`
	PasswordHash      string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	TwoFactorEnabled  bool       `json:"two_factor_enabled" gorm:"default:false"`
	TwoFactorSecret   string     `json:"-" gorm:"size:64"`
	SessionToken      string     `json:"-" gorm:"size:64;index"`
	GoogleEmail       string     `json:"google_email,omitempty" gorm:"size:255"`
	CreatedAt         time.Time  `json:"created_at"`
	LastLogin         *time.Time `json:"last_login,omitempty"`
}

// TableName keeps the table name from the original schema.
func (User) TableName() string { return "users" }
