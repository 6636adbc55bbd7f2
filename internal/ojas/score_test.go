package ojas

import (
	"testing"
	"time"

	"github.com/ayushlabs/ayush-backend/internal/types"
)

func TestScoreFromCompletion(t *testing.T) {
	cases := []struct {
		completed int
		want      int
	}{
		{0, 40},
		{1, 48},
		{7, 96},
		{8, 100},
		{10, 100},
	}
	for _, tc := range cases {
		if got := ScoreFromCompletion(tc.completed); got != tc.want {
			t.Fatalf("ScoreFromCompletion(%d): expected %d got %d", tc.completed, tc.want, got)
		}
	}
}

func TestRollingAverage_EmptyHistoryFallsBackToCurrentScore(t *testing.T) {
	got := RollingAverage(nil, RollingWindow, 56)
	if got != 56 {
		t.Fatalf("expected fallback 56 got %v", got)
	}
}

func TestRollingAverage_UsesOnlyTrailingWindow(t *testing.T) {
	history := make([]types.GrowthSample, 0, 10)
	// three old samples that must be ignored, then seven at 80
	for i := 0; i < 3; i++ {
		history = append(history, types.GrowthSample{Score: 10, Time: time.Now()})
	}
	for i := 0; i < 7; i++ {
		history = append(history, types.GrowthSample{Score: 80, Time: time.Now()})
	}
	got := RollingAverage(history, 7, 0)
	if got != 80 {
		t.Fatalf("expected 80 got %v", got)
	}
}

func TestRollingAverage_ShortHistoryAveragesWhatExists(t *testing.T) {
	history := []types.GrowthSample{{Score: 40}, {Score: 60}}
	got := RollingAverage(history, 7, 0)
	if got != 50 {
		t.Fatalf("expected 50 got %v", got)
	}
}

func TestClassifyStatus_ThresholdIsStrict(t *testing.T) {
	if got := ClassifyStatus(70.0); got != StatusAtRisk {
		t.Fatalf("expected %q at exactly 70.0 got %q", StatusAtRisk, got)
	}
	if got := ClassifyStatus(70.1); got != StatusBalanced {
		t.Fatalf("expected %q above 70 got %q", StatusBalanced, got)
	}
}

func TestCompletionRate_EmptyPlanIsZero(t *testing.T) {
	if got := CompletionRate(nil); got != 0 {
		t.Fatalf("expected 0 got %v", got)
	}
}

func TestCompletionRate_CountsDoneTasks(t *testing.T) {
	tasks := []types.WeeklyTask{
		{ID: "v1", Done: true},
		{ID: "v2", Done: false},
		{ID: "v3", Done: true},
		{ID: "v4", Done: false},
	}
	if got := CompletionRate(tasks); got != 50 {
		t.Fatalf("expected 50 got %v", got)
	}
	if got := CompletedCount(tasks); got != 2 {
		t.Fatalf("expected 2 got %d", got)
	}
}
