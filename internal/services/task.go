package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ayushlabs/ayush-backend/internal/apierr"
	"github.com/ayushlabs/ayush-backend/internal/dinacharya"
	"github.com/ayushlabs/ayush-backend/internal/logger"
	"github.com/ayushlabs/ayush-backend/internal/ojas"
	"github.com/ayushlabs/ayush-backend/internal/repos"
	"github.com/ayushlabs/ayush-backend/internal/types"
)

// completedAtLayout renders the human-readable completion label shown in the
// task list ("02 Jan, 03:04 PM").
const completedAtLayout = "02 Jan, 03:04 PM"

type ToggleResult struct {
	CompletedAt string `json:"completed_at"`
	NewOjas     int    `json:"new_ojas"`
}

type WeeklySummary struct {
	AvgOjas        float64 `json:"avg_ojas"`
	TaskCompletion float64 `json:"task_completion"`
	ClinicalStatus string  `json:"clinical_status"`
	Recommendation string  `json:"recommendation"`
}

// TaskService is the ritual lifecycle manager: it assigns and repairs weekly
// plans, applies completion toggles, recomputes the ojas score, and resets
// the cycle. All compound read-modify-write sequences are serialized per
// user through PhoneLocks.
type TaskService interface {
	EnsureValidPlan(ctx context.Context, phone string) ([]types.WeeklyTask, error)
	ToggleTask(ctx context.Context, phone, taskID string, isDone bool) (*ToggleResult, error)
	ResetWeek(ctx context.Context, phone string) error
	WeeklySummary(ctx context.Context, phone string) (*WeeklySummary, error)
}

type taskService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
	catalog  *dinacharya.Catalog
	locks    *PhoneLocks
	cache    ProfileCache
	now      func() time.Time
}

func NewTaskService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, catalog *dinacharya.Catalog, locks *PhoneLocks, cache ProfileCache) TaskService {
	serviceLog := log.With("service", "TaskService")
	return &taskService{
		db:       db,
		log:      serviceLog,
		userRepo: userRepo,
		catalog:  catalog,
		locks:    locks,
		cache:    cache,
		now:      time.Now,
	}
}

// EnsureValidPlan is the read-repair invoked on profile fetch. A plan of
// length 0 (never assigned) or shorter than a full week (legacy two-task
// format) is replaced wholesale from the catalog, using the user's stored
// dominant dosha, and persisted before returning.
func (ts *taskService) EnsureValidPlan(ctx context.Context, phone string) ([]types.WeeklyTask, error) {
	unlock := ts.locks.Lock(phone)
	defer unlock()

	user, err := fetchUserByPhone(ctx, nil, ts.userRepo, phone)
	if err != nil {
		return nil, err
	}

	tasks := []types.WeeklyTask(user.WeeklyTasks)
	if len(tasks) >= dinacharya.TasksPerWeek {
		return tasks, nil
	}

	dominant := user.Prakriti.Data().Dominant
	fresh := ts.catalog.RitualsFor(dominant)
	rows, err := ts.userRepo.UpdateByPhone(ctx, nil, phone, map[string]any{
		"weekly_tasks": datatypes.NewJSONSlice(fresh),
	})
	if err != nil {
		return nil, fmt.Errorf("Failed to persist repaired weekly plan: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: user %s", apierr.ErrNotFound, phone)
	}
	ts.log.Info("Repaired weekly plan", "phone", phone, "previous_len", len(tasks), "dominant", dominant)
	ts.cache.Invalidate(ctx, phone)
	return fresh, nil
}

// ToggleTask flips one task's done state, stamps (or clears) its completion
// label, and recomputes the ojas score from the resulting completed count.
// The read, mutation, and write happen under the user's lock so two
// concurrent toggles can never recompute from a stale count.
func (ts *taskService) ToggleTask(ctx context.Context, phone, taskID string, isDone bool) (*ToggleResult, error) {
	unlock := ts.locks.Lock(phone)
	defer unlock()

	user, err := fetchUserByPhone(ctx, nil, ts.userRepo, phone)
	if err != nil {
		return nil, err
	}

	tasks := make([]types.WeeklyTask, len(user.WeeklyTasks))
	copy(tasks, user.WeeklyTasks)

	idx := -1
	for i := range tasks {
		if tasks[i].ID == taskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: task %s for user %s", apierr.ErrNotFound, taskID, phone)
	}

	label := ""
	if isDone {
		label = ts.now().Format(completedAtLayout)
	}
	tasks[idx].Done = isDone
	tasks[idx].CompletedAt = label

	newScore := ojas.ScoreFromCompletion(ojas.CompletedCount(tasks))
	growth := append([]types.GrowthSample(user.GrowthHistory), types.GrowthSample{Score: newScore, Time: ts.now()})

	rows, err := ts.userRepo.UpdateByPhone(ctx, nil, phone, map[string]any{
		"weekly_tasks":   datatypes.NewJSONSlice(tasks),
		"ojas_score":     newScore,
		"growth_history": datatypes.NewJSONSlice(growth),
	})
	if err != nil {
		return nil, fmt.Errorf("Failed to persist task toggle: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: user %s", apierr.ErrNotFound, phone)
	}
	ts.cache.Invalidate(ctx, phone)
	return &ToggleResult{CompletedAt: label, NewOjas: newScore}, nil
}

// ResetWeek reassigns a fresh plan for the user's dominant dosha and drops
// the ojas score back to the baseline. Histories are kept.
func (ts *taskService) ResetWeek(ctx context.Context, phone string) error {
	unlock := ts.locks.Lock(phone)
	defer unlock()

	user, err := fetchUserByPhone(ctx, nil, ts.userRepo, phone)
	if err != nil {
		return err
	}

	dominant := user.Prakriti.Data().Dominant
	fresh := ts.catalog.RitualsFor(dominant)
	growth := append([]types.GrowthSample(user.GrowthHistory), types.GrowthSample{Score: ojas.BaseScore, Time: ts.now()})

	rows, err := ts.userRepo.UpdateByPhone(ctx, nil, phone, map[string]any{
		"weekly_tasks":   datatypes.NewJSONSlice(fresh),
		"ojas_score":     ojas.BaseScore,
		"growth_history": datatypes.NewJSONSlice(growth),
	})
	if err != nil {
		return fmt.Errorf("Failed to persist weekly reset: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: user %s", apierr.ErrNotFound, phone)
	}
	ts.cache.Invalidate(ctx, phone)
	return nil
}

// WeeklySummary reports the rolling ojas average, the plan completion rate,
// and the clinical status label.
func (ts *taskService) WeeklySummary(ctx context.Context, phone string) (*WeeklySummary, error) {
	user, err := fetchUserByPhone(ctx, nil, ts.userRepo, phone)
	if err != nil {
		return nil, err
	}

	avg := ojas.RollingAverage(user.GrowthHistory, ojas.RollingWindow, user.OjasScore)
	return &WeeklySummary{
		AvgOjas:        round1(avg),
		TaskCompletion: round1(ojas.CompletionRate(user.WeeklyTasks)),
		ClinicalStatus: ojas.ClassifyStatus(avg),
		Recommendation: "Maintain Dinacharya rituals to stabilize Agni.",
	}, nil
}
