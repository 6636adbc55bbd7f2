package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/ayushlabs/ayush-backend/internal/logger"
	"github.com/ayushlabs/ayush-backend/internal/types"
)

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error)
	GetByPhones(ctx context.Context, tx *gorm.DB, phones []string) ([]*types.User, error)
	PhoneExists(ctx context.Context, tx *gorm.DB, phone string) (bool, error)
	// UpdateByPhone applies the given column set to the user document and
	// returns the number of rows matched, so callers can distinguish a
	// missing user from a successful write.
	UpdateByPhone(ctx context.Context, tx *gorm.DB, phone string, fields map[string]any) (int64, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (ur *userRepo) Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	if len(users) == 0 {
		return []*types.User{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (ur *userRepo) GetByPhones(ctx context.Context, tx *gorm.DB, phones []string) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var results []*types.User

	if len(phones) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("phone IN ?", phones).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) PhoneExists(ctx context.Context, tx *gorm.DB, phone string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var count int64

	if err := transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("phone = ?", phone).
		Count(&count).Error; err != nil {
		return false, err
	}
	exists := count > 0
	return exists, nil
}

func (ur *userRepo) UpdateByPhone(ctx context.Context, tx *gorm.DB, phone string, fields map[string]any) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	result := transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("phone = ?", phone).
		Updates(fields)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
