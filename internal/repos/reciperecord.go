package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/ayushlabs/ayush-backend/internal/logger"
	"github.com/ayushlabs/ayush-backend/internal/types"
)

type RecipeRecordRepo interface {
	Create(ctx context.Context, tx *gorm.DB, records []*types.RecipeRecord) ([]*types.RecipeRecord, error)
	ListByPhone(ctx context.Context, tx *gorm.DB, phone string, limit int) ([]*types.RecipeRecord, error)
}

type recipeRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecipeRecordRepo(db *gorm.DB, baseLog *logger.Logger) RecipeRecordRepo {
	repoLog := baseLog.With("repo", "RecipeRecordRepo")
	return &recipeRecordRepo{db: db, log: repoLog}
}

func (rr *recipeRecordRepo) Create(ctx context.Context, tx *gorm.DB, records []*types.RecipeRecord) ([]*types.RecipeRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	if len(records) == 0 {
		return []*types.RecipeRecord{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (rr *recipeRecordRepo) ListByPhone(ctx context.Context, tx *gorm.DB, phone string, limit int) ([]*types.RecipeRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.RecipeRecord
	q := transaction.WithContext(ctx).
		Where("phone = ?", phone).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
