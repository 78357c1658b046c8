package repository

import (
	"context"

	"gorm.io/gorm"

	"vtcal/internal/model"
)

// SettingRepository defines user-settings persistence operations.
type SettingRepository interface {
	FindByUser(ctx context.Context, userID uint) (*model.Setting, error)
	Create(ctx context.Context, setting *model.Setting) error
	Update(ctx context.Context, setting *model.Setting) error
}

type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new settings repository.
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) FindByUser(ctx context.Context, userID uint) (*model.Setting, error) {
	var setting model.Setting
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepository) Create(ctx context.Context, setting *model.Setting) error {
	return r.db.WithContext(ctx).Create(setting).Error
}

func (r *settingRepository) Update(ctx context.Context, setting *model.Setting) error {
	return r.db.WithContext(ctx).Save(setting).Error
}
