package repository

import (
	"context"

	"gorm.io/gorm"

	"vtcal/internal/model"
)

// SessionRepository records minted session tokens for auditing.
type SessionRepository interface {
	Create(ctx context.Context, session *model.LoginSession) error
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new login-session repository.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *model.LoginSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}
