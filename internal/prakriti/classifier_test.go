package prakriti

import (
	"errors"
	"testing"

	"github.com/ayushlabs/ayush-backend/internal/apierr"
)

func TestClassify_PercentagesFromCounts(t *testing.T) {
	profile, err := Classify([]int{0, 0, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Vata != 66.67 {
		t.Fatalf("expected vata=66.67 got %v", profile.Vata)
	}
	if profile.Pitta != 33.33 {
		t.Fatalf("expected pitta=33.33 got %v", profile.Pitta)
	}
	if profile.Kapha != 0 {
		t.Fatalf("expected kapha=0 got %v", profile.Kapha)
	}
	if profile.Dominant != DoshaVata {
		t.Fatalf("expected dominant=Vata got %q", profile.Dominant)
	}
}

func TestClassify_TieBreakPriority(t *testing.T) {
	cases := []struct {
		name    string
		answers []int
		want    string
	}{
		{"three way tie picks vata", []int{0, 1, 2}, DoshaVata},
		{"vata pitta tie picks vata", []int{0, 0, 1, 1}, DoshaVata},
		{"pitta kapha tie picks pitta", []int{1, 1, 2, 2}, DoshaPitta},
		{"kapha wins outright", []int{2, 2, 1}, DoshaKapha},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			profile, err := Classify(tc.answers)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if profile.Dominant != tc.want {
				t.Fatalf("expected dominant=%q got %q", tc.want, profile.Dominant)
			}
		})
	}
}

func TestClassify_EmptyAnswersIsInvalidInput(t *testing.T) {
	_, err := Classify(nil)
	if !errors.Is(err, apierr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput got %v", err)
	}
}

func TestClassify_OutOfRangeAnswerIsInvalidInput(t *testing.T) {
	_, err := Classify([]int{0, 3})
	if !errors.Is(err, apierr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput got %v", err)
	}
	_, err = Classify([]int{-1})
	if !errors.Is(err, apierr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput got %v", err)
	}
}

func TestClassify_SingleDoshaIsHundredPercent(t *testing.T) {
	profile, err := Classify([]int{1, 1, 1, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Pitta != 100 || profile.Vata != 0 || profile.Kapha != 0 {
		t.Fatalf("expected 0/100/0 got %v/%v/%v", profile.Vata, profile.Pitta, profile.Kapha)
	}
	if profile.Dominant != DoshaPitta {
		t.Fatalf("expected dominant=Pitta got %q", profile.Dominant)
	}
}
