package ojas

import (
	"github.com/ayushlabs/ayush-backend/internal/types"
)

const (
	// BaseScore is the vitality floor with zero completed rituals, and the
	// value the score is reset to on a weekly reset.
	BaseScore = 40
	// PointsPerTask is the contribution of each completed ritual.
	PointsPerTask = 8
	// MaxScore caps the derived score.
	MaxScore = 100

	// RollingWindow is how many trailing growth samples feed the weekly
	// average.
	RollingWindow = 7

	// BalancedThreshold: averages strictly above it classify as balanced.
	BalancedThreshold = 70.0

	StatusBalanced = "Prakriti Balanced"
	StatusAtRisk   = "Vitiation Risk"
)

// ScoreFromCompletion derives the ojas score from a completed-task count.
// 7 of 7 lands on 96; the cap only engages if the formula would exceed 100.
func ScoreFromCompletion(completedCount int) int {
	score := BaseScore + completedCount*PointsPerTask
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// RollingAverage is the mean score of the last `window` growth samples. An
// empty history falls back to the caller's current stored score, never zero.
func RollingAverage(history []types.GrowthSample, window int, currentScore int) float64 {
	if window <= 0 {
		window = RollingWindow
	}
	if len(history) == 0 {
		return float64(currentScore)
	}
	start := len(history) - window
	if start < 0 {
		start = 0
	}
	recent := history[start:]
	sum := 0
	for _, s := range recent {
		sum += s.Score
	}
	return float64(sum) / float64(len(recent))
}

// ClassifyStatus labels a rolling average. The threshold is strict.
func ClassifyStatus(avg float64) string {
	if avg > BalancedThreshold {
		return StatusBalanced
	}
	return StatusAtRisk
}

// CompletionRate is completed/total in percent; an empty plan rates 0.
func CompletionRate(tasks []types.WeeklyTask) float64 {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range tasks {
		if t.Done {
			completed++
		}
	}
	return float64(completed) / float64(len(tasks)) * 100
}

// CompletedCount counts done tasks in a plan.
func CompletedCount(tasks []types.WeeklyTask) int {
	n := 0
	for _, t := range tasks {
		if t.Done {
			n++
		}
	}
	return n
}
