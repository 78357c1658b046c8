package model

import "time"

// ConnectedAccount stores the bearer credentials for an external provider.
// One row per (user, account type), replaced on every re-link.
type ConnectedAccount struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	UserID       uint       `json:"user_id" gorm:"index:idx_user_account,unique;not null"`
	AccountType  string     `json:"account_type" gorm:"index:idx_user_account,unique;size:16"`
	AccessToken  string     `json:"-" gorm:"size:512"`
	RefreshToken string     `json:"-" gorm:"size:512"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

func (ConnectedAccount) TableName() string { return "connected_accounts" }
