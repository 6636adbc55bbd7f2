package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ayushlabs/ayush-backend/internal/apierr"
	"github.com/ayushlabs/ayush-backend/internal/dinacharya"
	"github.com/ayushlabs/ayush-backend/internal/logger"
	"github.com/ayushlabs/ayush-backend/internal/ojas"
	"github.com/ayushlabs/ayush-backend/internal/prakriti"
	"github.com/ayushlabs/ayush-backend/internal/types"
)

// fakeUserRepo keeps a single user document in memory and applies the same
// column map UpdateByPhone would send to postgres.
type fakeUserRepo struct {
	user    *types.User
	updates int
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error) {
	if len(users) > 0 {
		f.user = users[0]
	}
	return users, nil
}

func (f *fakeUserRepo) GetByPhones(ctx context.Context, tx *gorm.DB, phones []string) ([]*types.User, error) {
	if f.user == nil || len(phones) == 0 || phones[0] != f.user.Phone {
		return nil, nil
	}
	clone := *f.user
	return []*types.User{&clone}, nil
}

func (f *fakeUserRepo) PhoneExists(ctx context.Context, tx *gorm.DB, phone string) (bool, error) {
	return f.user != nil && f.user.Phone == phone, nil
}

func (f *fakeUserRepo) UpdateByPhone(ctx context.Context, tx *gorm.DB, phone string, fields map[string]any) (int64, error) {
	if f.user == nil || f.user.Phone != phone {
		return 0, nil
	}
	f.updates++
	for col, val := range fields {
		switch col {
		case "weekly_tasks":
			f.user.WeeklyTasks = val.(datatypes.JSONSlice[types.WeeklyTask])
		case "growth_history":
			f.user.GrowthHistory = val.(datatypes.JSONSlice[types.GrowthSample])
		case "assessment_history":
			f.user.AssessmentHistory = val.(datatypes.JSONSlice[types.AssessmentEntry])
		case "ojas_score":
			f.user.OjasScore = val.(int)
		case "prakriti":
			f.user.Prakriti = val.(datatypes.JSONType[types.PrakritiProfile])
		case "onboarding_complete":
			f.user.OnboardingComplete = val.(bool)
		case "report_uploaded":
			f.user.ReportUploaded = val.(bool)
		}
	}
	return 1, nil
}

// overlapReadsUserRepo pairs two concurrent GetByPhones callers so both read
// the same document version before either writes back. A caller whose partner
// never arrives times out and proceeds alone, so serialized callers pass
// through unharmed while unserialized ones overlap and lose an update.
type overlapReadsUserRepo struct {
	fakeUserRepo
	reads chan struct{}
}

func (o *overlapReadsUserRepo) GetByPhones(ctx context.Context, tx *gorm.DB, phones []string) ([]*types.User, error) {
	users, err := o.fakeUserRepo.GetByPhones(ctx, tx, phones)
	select {
	case o.reads <- struct{}{}:
	case <-o.reads:
	case <-time.After(50 * time.Millisecond):
	}
	return users, err
}

func newTestTaskService(t *testing.T, user *types.User) (TaskService, *fakeUserRepo) {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	repo := &fakeUserRepo{user: user}
	svc := NewTaskService(nil, log, repo, dinacharya.NewCatalog(), NewPhoneLocks(), NoopProfileCache{})
	return svc, repo
}

func vataUser(phone string) *types.User {
	return &types.User{
		Phone: phone,
		Prakriti: datatypes.NewJSONType(types.PrakritiProfile{
			Vata: 60, Pitta: 30, Kapha: 10, Dominant: prakriti.DoshaVata,
		}),
		OjasScore:     ojas.BaseScore,
		WeeklyTasks:   datatypes.NewJSONSlice(dinacharya.NewCatalog().RitualsFor(prakriti.DoshaVata)),
		GrowthHistory: datatypes.NewJSONSlice([]types.GrowthSample{{Score: ojas.BaseScore}}),
	}
}

func TestEnsureValidPlan_RepairsLegacyTwoTaskPlan(t *testing.T) {
	user := vataUser("919900112233")
	user.WeeklyTasks = datatypes.NewJSONSlice([]types.WeeklyTask{
		{ID: "v1", TaskEN: "Oil Pulling", Done: true},
		{ID: "v2", TaskEN: "Warm Abhyanga"},
	})
	svc, repo := newTestTaskService(t, user)

	tasks, err := svc.EnsureValidPlan(context.Background(), "919900112233")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != dinacharya.TasksPerWeek {
		t.Fatalf("expected %d tasks after repair got %d", dinacharya.TasksPerWeek, len(tasks))
	}
	for _, task := range tasks {
		if task.Done || task.CompletedAt != "" {
			t.Fatalf("repaired plan should reset completion state, task %s", task.ID)
		}
	}
	if repo.updates != 1 {
		t.Fatalf("expected repair to persist once got %d updates", repo.updates)
	}
	if len(repo.user.WeeklyTasks) != dinacharya.TasksPerWeek {
		t.Fatalf("repair was not written through")
	}
}

func TestEnsureValidPlan_FullPlanIsUntouched(t *testing.T) {
	user := vataUser("919900112233")
	svc, repo := newTestTaskService(t, user)

	tasks, err := svc.EnsureValidPlan(context.Background(), "919900112233")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != dinacharya.TasksPerWeek {
		t.Fatalf("expected full plan back got %d", len(tasks))
	}
	if repo.updates != 0 {
		t.Fatalf("a valid plan must not trigger a write, got %d updates", repo.updates)
	}
}

func TestToggleTask_CompletingRaisesScoreAndStampsLabel(t *testing.T) {
	svc, repo := newTestTaskService(t, vataUser("919900112233"))

	result, err := svc.ToggleTask(context.Background(), "919900112233", "v1", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.NewOjas != ojas.BaseScore+ojas.PointsPerTask {
		t.Fatalf("expected score %d got %d", ojas.BaseScore+ojas.PointsPerTask, result.NewOjas)
	}
	if result.CompletedAt == "" {
		t.Fatalf("expected a completion label")
	}
	if repo.user.OjasScore != result.NewOjas {
		t.Fatalf("score not written through")
	}
	if len(repo.user.GrowthHistory) != 2 {
		t.Fatalf("expected growth sample appended got %d", len(repo.user.GrowthHistory))
	}
}

func TestToggleTask_ConcurrentTogglesKeepBothCompletions(t *testing.T) {
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	repo := &overlapReadsUserRepo{
		fakeUserRepo: fakeUserRepo{user: vataUser("919900112233")},
		reads:        make(chan struct{}),
	}
	svc := NewTaskService(nil, log, repo, dinacharya.NewCatalog(), NewPhoneLocks(), NoopProfileCache{})

	var wg sync.WaitGroup
	for _, id := range []string{"v1", "v2"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if _, err := svc.ToggleTask(context.Background(), "919900112233", id, true); err != nil {
				t.Errorf("toggle %s: %v", id, err)
			}
		}(id)
	}
	wg.Wait()

	if repo.user.OjasScore != ojas.BaseScore+2*ojas.PointsPerTask {
		t.Fatalf("a completion was lost: expected score %d got %d",
			ojas.BaseScore+2*ojas.PointsPerTask, repo.user.OjasScore)
	}
	tasks := []types.WeeklyTask(repo.user.WeeklyTasks)
	if !tasks[0].Done || !tasks[1].Done {
		t.Fatalf("both tasks should be done, got v1=%v v2=%v", tasks[0].Done, tasks[1].Done)
	}
	if len(repo.user.GrowthHistory) != 3 {
		t.Fatalf("expected seed plus 2 growth samples got %d", len(repo.user.GrowthHistory))
	}
}

func TestToggleTask_UndoingDropsScoreAndClearsLabel(t *testing.T) {
	svc, repo := newTestTaskService(t, vataUser("919900112233"))

	if _, err := svc.ToggleTask(context.Background(), "919900112233", "v1", true); err != nil {
		t.Fatalf("setup toggle failed: %v", err)
	}
	result, err := svc.ToggleTask(context.Background(), "919900112233", "v1", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.NewOjas != ojas.BaseScore {
		t.Fatalf("expected score back to %d got %d", ojas.BaseScore, result.NewOjas)
	}
	if result.CompletedAt != "" {
		t.Fatalf("expected cleared label got %q", result.CompletedAt)
	}
	if repo.user.WeeklyTasks[0].Done {
		t.Fatalf("task should be not-done after undo")
	}
}

func TestToggleTask_UnknownTaskIsNotFound(t *testing.T) {
	svc, _ := newTestTaskService(t, vataUser("919900112233"))
	_, err := svc.ToggleTask(context.Background(), "919900112233", "zz9", true)
	if !errors.Is(err, apierr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound got %v", err)
	}
}

func TestToggleTask_UnknownUserIsNotFound(t *testing.T) {
	svc, _ := newTestTaskService(t, vataUser("919900112233"))
	_, err := svc.ToggleTask(context.Background(), "910000000000", "v1", true)
	if !errors.Is(err, apierr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound got %v", err)
	}
}

func TestResetWeek_FreshPlanAndBaseScore(t *testing.T) {
	svc, repo := newTestTaskService(t, vataUser("919900112233"))

	if _, err := svc.ToggleTask(context.Background(), "919900112233", "v1", true); err != nil {
		t.Fatalf("setup toggle failed: %v", err)
	}
	if err := svc.ResetWeek(context.Background(), "919900112233"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.user.OjasScore != ojas.BaseScore {
		t.Fatalf("expected reset score %d got %d", ojas.BaseScore, repo.user.OjasScore)
	}
	for _, task := range repo.user.WeeklyTasks {
		if task.Done || task.CompletedAt != "" {
			t.Fatalf("reset plan should be all not-done")
		}
	}
	// one sample from the toggle, one from the reset, plus the seed
	if len(repo.user.GrowthHistory) != 3 {
		t.Fatalf("expected 3 growth samples got %d", len(repo.user.GrowthHistory))
	}
}

func TestWeeklySummary_AveragesAndClassifies(t *testing.T) {
	user := vataUser("919900112233")
	samples := make([]types.GrowthSample, 0, 7)
	for i := 0; i < 7; i++ {
		samples = append(samples, types.GrowthSample{Score: 80})
	}
	user.GrowthHistory = datatypes.NewJSONSlice(samples)
	tasks := []types.WeeklyTask(user.WeeklyTasks)
	tasks[0].Done = true
	tasks[1].Done = true
	user.WeeklyTasks = datatypes.NewJSONSlice(tasks)
	svc, _ := newTestTaskService(t, user)

	summary, err := svc.WeeklySummary(context.Background(), "919900112233")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.AvgOjas != 80 {
		t.Fatalf("expected avg 80 got %v", summary.AvgOjas)
	}
	if summary.ClinicalStatus != ojas.StatusBalanced {
		t.Fatalf("expected %q got %q", ojas.StatusBalanced, summary.ClinicalStatus)
	}
	if summary.TaskCompletion != 28.6 {
		t.Fatalf("expected completion 28.6 got %v", summary.TaskCompletion)
	}
	if summary.Recommendation == "" {
		t.Fatalf("expected a recommendation string")
	}
}

func TestWeeklySummary_EmptyHistoryFallsBackToCurrentScore(t *testing.T) {
	user := vataUser("919900112233")
	user.OjasScore = 56
	user.GrowthHistory = datatypes.NewJSONSlice([]types.GrowthSample{})
	svc, _ := newTestTaskService(t, user)

	summary, err := svc.WeeklySummary(context.Background(), "919900112233")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.AvgOjas != 56 {
		t.Fatalf("expected fallback avg 56 got %v", summary.AvgOjas)
	}
	if summary.ClinicalStatus != ojas.StatusAtRisk {
		t.Fatalf("expected %q got %q", ojas.StatusAtRisk, summary.ClinicalStatus)
	}
}
