package services

import (
	"context"
	"sort"
	"strings"

	"github.com/ayushlabs/ayush-backend/internal/knowledge"
	"github.com/ayushlabs/ayush-backend/internal/logger"
	"github.com/ayushlabs/ayush-backend/internal/prakriti"
	"github.com/ayushlabs/ayush-backend/internal/repos"

	"gorm.io/gorm"
)

const dietListLimit = 5

type DietFood struct {
	Name  string `json:"name"`
	Virya string `json:"virya"`
	Note  string `json:"note"`
}

type DietPlan struct {
	Prakriti string     `json:"prakriti"`
	Pathya   []DietFood `json:"pathya"`
	Apathya  []DietFood `json:"apathya"`
}

// DietService derives pathya (favorable) and apathya (unfavorable) food lists
// for a user's dominant dosha from the food knowledge base.
type DietService interface {
	GetDietPlan(ctx context.Context, phone string) (*DietPlan, error)
}

type dietService struct {
	db       *gorm.DB
	log      *logger.Logger
	foods    map[string]knowledge.FoodInfo
	userRepo repos.UserRepo
}

func NewDietService(db *gorm.DB, log *logger.Logger, base *knowledge.Base, userRepo repos.UserRepo) DietService {
	serviceLog := log.With("service", "DietService")
	return &dietService{
		db:       db,
		log:      serviceLog,
		foods:    base.Foods,
		userRepo: userRepo,
	}
}

func (ds *dietService) GetDietPlan(ctx context.Context, phone string) (*DietPlan, error) {
	user, err := fetchUserByPhone(ctx, nil, ds.userRepo, phone)
	if err != nil {
		return nil, err
	}
	dominant := user.Prakriti.Data().Dominant
	if dominant == "" {
		dominant = prakriti.DoshaVata
	}

	plan := &DietPlan{
		Prakriti: dominant,
		Pathya:   []DietFood{},
		Apathya:  []DietFood{},
	}
	needle := strings.ToLower(dominant)

	// Map iteration order is random; sort keys so the same user always
	// sees the same lists.
	keys := make([]string, 0, len(ds.foods))
	for k := range ds.foods {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		info := ds.foods[k]
		dosha := strings.ToLower(info.Dosha)
		food := DietFood{Name: info.Name, Virya: info.Virya, Note: info.Note}
		switch {
		case strings.Contains(dosha, "tridoshic"):
			if len(plan.Pathya) < dietListLimit {
				plan.Pathya = append(plan.Pathya, food)
			}
		case strings.Contains(dosha, needle) && strings.Contains(dosha, "aggravating"):
			if len(plan.Apathya) < dietListLimit {
				plan.Apathya = append(plan.Apathya, food)
			}
		case strings.Contains(dosha, needle):
			if len(plan.Pathya) < dietListLimit {
				plan.Pathya = append(plan.Pathya, food)
			}
		}
		if len(plan.Pathya) >= dietListLimit && len(plan.Apathya) >= dietListLimit {
			break
		}
	}
	return plan, nil
}
