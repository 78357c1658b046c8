package model

import "time"

// LoginSession records every session token minted for a user. Revocation
// still goes through the token on the user row; this table is an audit trail.
type LoginSession struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	UserID       uint       `json:"user_id" gorm:"index;not null"`
	SessionToken string     `json:"-" gorm:"uniqueIndex;size:64"`
	IPAddress    string     `json:"ip_address" gorm:"size:45"`
	CreatedAt    time.Time  `json:"created_at"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

func (LoginSession) TableName() string { return "login_sessions" }
