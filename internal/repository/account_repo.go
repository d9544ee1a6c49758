package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/DrNour/Nour-translation-app/internal/models"
)

// AccountRepository defines data operations for accounts. Accounts are
// created once and never updated, so there is no mutation path.
type AccountRepository interface {
	GetByID(ctx context.Context, id uint) (models.Account, error)
	GetByUsername(ctx context.Context, username string) (models.Account, error)
	Create(ctx context.Context, account *models.Account) error
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository instantiates the repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) GetByID(ctx context.Context, id uint) (models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).First(&account, id).Error; err != nil {
		return models.Account{}, err
	}

	return account, nil
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&account).Error; err != nil {
		return models.Account{}, err
	}

	return account, nil
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}
