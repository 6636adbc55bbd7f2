package prakriti

import (
	"fmt"
	"math"

	"github.com/ayushlabs/ayush-backend/internal/apierr"
	"github.com/ayushlabs/ayush-backend/internal/types"
)

// Answer codes accepted in a quiz answer vector.
const (
	AnswerVata  = 0
	AnswerPitta = 1
	AnswerKapha = 2
)

const (
	DoshaVata  = "Vata"
	DoshaPitta = "Pitta"
	DoshaKapha = "Kapha"
)

// Classify maps a quiz answer vector to a percentage breakdown over the
// three doshas plus the dominant dosha.
//
// The dominant pick is priority-ordered, not numeric-max: Vata wins any tie
// it is part of, then Pitta, then Kapha. Clients depend on this resolution
// being deterministic.
func Classify(answers []int) (types.PrakritiProfile, error) {
	if len(answers) == 0 {
		return types.PrakritiProfile{}, fmt.Errorf("%w: empty answer vector", apierr.ErrInvalidInput)
	}

	var v, p, k int
	for i, ans := range answers {
		switch ans {
		case AnswerVata:
			v++
		case AnswerPitta:
			p++
		case AnswerKapha:
			k++
		default:
			return types.PrakritiProfile{}, fmt.Errorf("%w: answer %d at index %d outside {0,1,2}", apierr.ErrInvalidInput, ans, i)
		}
	}

	total := float64(len(answers))
	dominant := DoshaKapha
	if v >= p && v >= k {
		dominant = DoshaVata
	} else if p >= k {
		dominant = DoshaPitta
	}

	return types.PrakritiProfile{
		Vata:     round2(float64(v) / total * 100),
		Pitta:    round2(float64(p) / total * 100),
		Kapha:    round2(float64(k) / total * 100),
		Dominant: dominant,
	}, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
