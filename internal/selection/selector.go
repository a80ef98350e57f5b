package selection

import (
	"math/rand/v2"

	"github.com/abhisek/linuxplus/internal/history"
	"github.com/abhisek/linuxplus/internal/questionbank"
)

// StatSource looks up recorded history by prompt.
type StatSource interface {
	QuestionStat(prompt string) history.QuestionStat
}

// Filter narrows the candidate set.
type Filter struct {
	// Category limits candidates to one category; empty means all.
	Category string
	// Only, when non-nil, limits candidates to these prompts.
	Only map[string]struct{}
}

// Bank returns the part of the filter the question bank understands.
func (f Filter) Bank() questionbank.Filter {
	return questionbank.Filter{Category: f.Category}
}

// Candidates returns bank indices that match f and are not in answered, in
// bank order.
func Candidates(bank *questionbank.Bank, answered map[int]struct{}, f Filter) []int {
	all := bank.Indices(f.Bank())
	out := all[:0]
	for _, i := range all {
		if _, done := answered[i]; done {
			continue
		}
		if f.Only != nil {
			q, _ := bank.At(i)
			if _, ok := f.Only[q.Prompt]; !ok {
				continue
			}
		}
		out = append(out, i)
	}
	return out
}

// Selector draws questions. It owns its random source and is not safe for
// concurrent use.
type Selector struct {
	rng *rand.Rand
}

// NewSelector returns a selector seeded with seed. A zero seed picks a random
// one.
func NewSelector(seed uint64) *Selector {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Selector{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// SelectNext picks the next question among candidates and marks it in
// answered. It returns false once no candidates remain; it never repeats an
// index already in answered.
func (s *Selector) SelectNext(bank *questionbank.Bank, stats StatSource, answered map[int]struct{}, f Filter) (questionbank.QuestionRecord, int, bool) {
	cands := Candidates(bank, answered, f)
	if len(cands) == 0 {
		return questionbank.QuestionRecord{}, -1, false
	}

	weights := make([]float64, len(cands))
	for k, i := range cands {
		q, _ := bank.At(i)
		st := stats.QuestionStat(q.Prompt)
		weights[k] = Weight(st.Attempts, st.Correct)
	}

	k, err := WeightedIndex(s.rng, weights)
	if err != nil {
		k = s.rng.IntN(len(cands))
	}
	idx := cands[k]
	answered[idx] = struct{}{}

	q, _ := bank.At(idx)
	return q, idx, true
}
