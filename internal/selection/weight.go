// Package selection picks the next question for a session, biased toward
// questions the learner gets wrong or has rarely seen.
package selection

import (
	"errors"
	"math"
	"math/rand/v2"
)

const (
	// AccuracyWeight scales the inaccuracy term.
	AccuracyWeight = 10.0
	// NoveltyWeight scales the 1/(attempts+1) term.
	NoveltyWeight = 3.0
	// NeutralAccuracy is assumed for questions never attempted.
	NeutralAccuracy = 0.5
	// MinWeight keeps every candidate selectable.
	MinWeight = 0.1
)

// ErrDegenerateWeights is returned when weights cannot define a distribution.
var ErrDegenerateWeights = errors.New("degenerate weights")

// Weight returns the selection weight for a question with the given history.
func Weight(attempts, correct int) float64 {
	attempts = max(attempts, 0)
	accuracy := NeutralAccuracy
	if attempts > 0 {
		accuracy = float64(correct) / float64(attempts)
	}
	w := (1-accuracy)*AccuracyWeight + NoveltyWeight/float64(attempts+1)
	if math.IsNaN(w) || w < MinWeight {
		return MinWeight
	}
	return w
}

// WeightedIndex draws an index with probability proportional to its weight.
func WeightedIndex(r *rand.Rand, weights []float64) (int, error) {
	if len(weights) == 0 {
		return 0, ErrDegenerateWeights
	}
	var total float64
	for _, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return 0, ErrDegenerateWeights
		}
		total += w
	}
	if total <= 0 || math.IsInf(total, 0) {
		return 0, ErrDegenerateWeights
	}

	target := r.Float64() * total
	for i, w := range weights {
		if target < w {
			return i, nil
		}
		target -= w
	}
	// Rounding can leave target just past the last bucket.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i, nil
		}
	}
	return 0, ErrDegenerateWeights
}
