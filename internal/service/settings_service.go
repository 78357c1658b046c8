package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"vtcal/internal/model"
	"vtcal/internal/repository"
)

// SettingsService handles per-user notification and privacy preferences.
type SettingsService interface {
	Get(ctx context.Context, userID uint) (*model.Setting, error)
	Update(ctx context.Context, userID uint, setting *model.Setting) error
}

type settingsService struct {
	settingRepo repository.SettingRepository
}

// NewSettingsService creates a new settings service.
func NewSettingsService(settingRepo repository.SettingRepository) SettingsService {
	return &settingsService{settingRepo: settingRepo}
}

// Get returns the user's settings, creating the defaults row on first read.
// A second read returns the same row without creating another.
func (s *settingsService) Get(ctx context.Context, userID uint) (*model.Setting, error) {
	setting, err := s.settingRepo.FindByUser(ctx, userID)
	if err == nil {
		return setting, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("find settings: %w", err)
	}

	setting = model.DefaultSetting(userID)
	if err := s.settingRepo.Create(ctx, setting); err != nil {
		return nil, fmt.Errorf("create default settings: %w", err)
	}
	return setting, nil
}

// Update replaces the settings row wholesale, creating it when absent.
func (s *settingsService) Update(ctx context.Context, userID uint, setting *model.Setting) error {
	setting.UserID = userID

	existing, err := s.settingRepo.FindByUser(ctx, userID)
	if err == gorm.ErrRecordNotFound {
		if err := s.settingRepo.Create(ctx, setting); err != nil {
			return fmt.Errorf("create settings: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("find settings: %w", err)
	}

	setting.ID = existing.ID
	if err := s.settingRepo.Update(ctx, setting); err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}
