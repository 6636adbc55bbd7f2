package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/datatypes"

	"github.com/ayushlabs/ayush-backend/internal/apierr"
	"github.com/ayushlabs/ayush-backend/internal/dinacharya"
	"github.com/ayushlabs/ayush-backend/internal/logger"
	"github.com/ayushlabs/ayush-backend/internal/prakriti"
	"github.com/ayushlabs/ayush-backend/internal/types"
)

func newTestPrakritiService(t *testing.T, user *types.User) (PrakritiService, *fakeUserRepo) {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	repo := &fakeUserRepo{user: user}
	svc := NewPrakritiService(nil, log, repo, dinacharya.NewCatalog(), NewPhoneLocks(), NoopProfileCache{})
	return svc, repo
}

func TestClassify_WritesProfilePlanAndOnboardingTogether(t *testing.T) {
	user := &types.User{Phone: "919900112233"}
	svc, repo := newTestPrakritiService(t, user)

	profile, err := svc.Classify(context.Background(), "919900112233", []int{2, 2, 1}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Dominant != prakriti.DoshaKapha {
		t.Fatalf("expected dominant Kapha got %q", profile.Dominant)
	}
	if repo.updates != 1 {
		t.Fatalf("expected a single write got %d", repo.updates)
	}
	if repo.user.Prakriti.Data().Dominant != prakriti.DoshaKapha {
		t.Fatalf("profile not written through")
	}
	if !repo.user.OnboardingComplete {
		t.Fatalf("onboarding_complete should be set in the same write")
	}
	if !repo.user.ReportUploaded {
		t.Fatalf("report_uploaded should be set in the same write")
	}
	if len(repo.user.WeeklyTasks) != dinacharya.TasksPerWeek {
		t.Fatalf("expected %d assigned tasks got %d", dinacharya.TasksPerWeek, len(repo.user.WeeklyTasks))
	}
	if repo.user.WeeklyTasks[0].ID != "k1" {
		t.Fatalf("expected kapha plan got task %q", repo.user.WeeklyTasks[0].ID)
	}
}

func TestClassify_OverwritesPreviousProfileWholesale(t *testing.T) {
	user := &types.User{
		Phone: "919900112233",
		Prakriti: datatypes.NewJSONType(types.PrakritiProfile{
			Vata: 100, Dominant: prakriti.DoshaVata,
		}),
	}
	svc, repo := newTestPrakritiService(t, user)

	if _, err := svc.Classify(context.Background(), "919900112233", []int{1, 1, 1}, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := repo.user.Prakriti.Data()
	if got.Dominant != prakriti.DoshaPitta || got.Vata != 0 {
		t.Fatalf("expected wholesale overwrite, got %+v", got)
	}
}

func TestClassify_InvalidAnswersRejectedBeforeAnyWrite(t *testing.T) {
	svc, repo := newTestPrakritiService(t, &types.User{Phone: "919900112233"})

	_, err := svc.Classify(context.Background(), "919900112233", []int{0, 5}, false)
	if !errors.Is(err, apierr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput got %v", err)
	}
	if repo.updates != 0 {
		t.Fatalf("invalid input must not write, got %d updates", repo.updates)
	}
}

func TestClassify_UnknownUserIsNotFound(t *testing.T) {
	svc, _ := newTestPrakritiService(t, &types.User{Phone: "919900112233"})
	_, err := svc.Classify(context.Background(), "910000000000", []int{0}, false)
	if !errors.Is(err, apierr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound got %v", err)
	}
}
