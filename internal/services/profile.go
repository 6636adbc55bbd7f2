package services

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/ayushlabs/ayush-backend/internal/logger"
	"github.com/ayushlabs/ayush-backend/internal/repos"
	"github.com/ayushlabs/ayush-backend/internal/types"
)

// ProfileView is the client-facing profile document.
type ProfileView struct {
	FullName           string                `json:"fullname"`
	Phone              string                `json:"phone"`
	Gender             string                `json:"gender"`
	Prakriti           types.PrakritiProfile `json:"prakriti"`
	OnboardingComplete bool                  `json:"onboarding_complete"`
	OjasScore          int                   `json:"ojas_score"`
	WeeklyTasks        []types.WeeklyTask    `json:"weekly_tasks"`
	CurrentDay         int                   `json:"current_day"`
}

type ProfileService interface {
	GetProfile(ctx context.Context, phone string) (*ProfileView, error)
}

type profileService struct {
	db          *gorm.DB
	log         *logger.Logger
	userRepo    repos.UserRepo
	taskService TaskService
	cache       ProfileCache
}

func NewProfileService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, taskService TaskService, cache ProfileCache) ProfileService {
	serviceLog := log.With("service", "ProfileService")
	return &profileService{
		db:          db,
		log:         serviceLog,
		userRepo:    userRepo,
		taskService: taskService,
		cache:       cache,
	}
}

// GetProfile runs the weekly-plan read-repair before rendering, so clients
// created under the legacy two-task format are silently upgraded on their
// next fetch.
func (ps *profileService) GetProfile(ctx context.Context, phone string) (*ProfileView, error) {
	if raw, ok := ps.cache.Get(ctx, phone); ok {
		var view ProfileView
		if err := json.Unmarshal(raw, &view); err == nil {
			return &view, nil
		}
		ps.cache.Invalidate(ctx, phone)
	}

	tasks, err := ps.taskService.EnsureValidPlan(ctx, phone)
	if err != nil {
		return nil, err
	}
	user, err := fetchUserByPhone(ctx, nil, ps.userRepo, phone)
	if err != nil {
		return nil, err
	}

	profile := user.Prakriti.Data()
	if profile.Dominant == "" {
		// never classified: the neutral placeholder the clients expect
		profile = types.PrakritiProfile{Vata: 33.3, Pitta: 33.3, Kapha: 33.3, Dominant: "Balanced"}
	}

	view := &ProfileView{
		FullName:           user.FullName,
		Phone:              user.Phone,
		Gender:             user.Gender,
		Prakriti:           profile,
		OnboardingComplete: user.OnboardingComplete,
		OjasScore:          user.OjasScore,
		WeeklyTasks:        tasks,
		CurrentDay:         user.CurrentDay,
	}

	if raw, err := json.Marshal(view); err == nil {
		ps.cache.Set(ctx, phone, raw)
	}
	return view, nil
}
