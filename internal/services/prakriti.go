package services

import (
	"context"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ayushlabs/ayush-backend/internal/apierr"
	"github.com/ayushlabs/ayush-backend/internal/dinacharya"
	"github.com/ayushlabs/ayush-backend/internal/logger"
	"github.com/ayushlabs/ayush-backend/internal/prakriti"
	"github.com/ayushlabs/ayush-backend/internal/repos"
	"github.com/ayushlabs/ayush-backend/internal/types"
)

// PrakritiService classifies a user's constitution from quiz answers and
// assigns the initial weekly ritual set in the same write.
type PrakritiService interface {
	Classify(ctx context.Context, phone string, answers []int, reportUploaded bool) (types.PrakritiProfile, error)
}

type prakritiService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
	catalog  *dinacharya.Catalog
	locks    *PhoneLocks
	cache    ProfileCache
}

func NewPrakritiService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, catalog *dinacharya.Catalog, locks *PhoneLocks, cache ProfileCache) PrakritiService {
	serviceLog := log.With("service", "PrakritiService")
	return &prakritiService{
		db:       db,
		log:      serviceLog,
		userRepo: userRepo,
		catalog:  catalog,
		locks:    locks,
		cache:    cache,
	}
}

// Classify overwrites the stored profile wholesale (never merged) and
// injects the full weekly plan for the dominant dosha, so the user has all
// seven rituals the moment onboarding completes.
func (ps *prakritiService) Classify(ctx context.Context, phone string, answers []int, reportUploaded bool) (types.PrakritiProfile, error) {
	profile, err := prakriti.Classify(answers)
	if err != nil {
		return types.PrakritiProfile{}, err
	}

	unlock := ps.locks.Lock(phone)
	defer unlock()

	tasks := ps.catalog.RitualsFor(profile.Dominant)
	rows, err := ps.userRepo.UpdateByPhone(ctx, nil, phone, map[string]any{
		"prakriti":            datatypes.NewJSONType(profile),
		"onboarding_complete": true,
		"weekly_tasks":        datatypes.NewJSONSlice(tasks),
		"report_uploaded":     reportUploaded,
	})
	if err != nil {
		return types.PrakritiProfile{}, fmt.Errorf("Failed to persist prakriti classification: %w", err)
	}
	if rows == 0 {
		return types.PrakritiProfile{}, fmt.Errorf("%w: user %s", apierr.ErrNotFound, phone)
	}

	ps.log.Info("Prakriti classified", "phone", phone, "dominant", profile.Dominant)
	ps.cache.Invalidate(ctx, phone)
	return profile, nil
}
