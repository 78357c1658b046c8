package repository

import (
	"context"

	"gorm.io/gorm"

	"vtcal/internal/model"
)

// AccountRepository defines connected-account persistence operations.
type AccountRepository interface {
	Upsert(ctx context.Context, account *model.ConnectedAccount) error
	FindByUserAndType(ctx context.Context, userID uint, accountType string) (*model.ConnectedAccount, error)
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new connected-account repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Upsert replaces any prior credentials for (user, account type).
func (r *accountRepository) Upsert(ctx context.Context, account *model.ConnectedAccount) error {
	var existing model.ConnectedAccount
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND account_type = ?", account.UserID, account.AccountType).
		First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.WithContext(ctx).Create(account).Error
	}
	if err != nil {
		return err
	}

	account.ID = existing.ID
	return r.db.WithContext(ctx).Save(account).Error
}

func (r *accountRepository) FindByUserAndType(ctx context.Context, userID uint, accountType string) (*model.ConnectedAccount, error) {
	var account model.ConnectedAccount
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND account_type = ?", userID, accountType).
		First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}
