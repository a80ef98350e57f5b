package history

import "sort"

// CategoryRow is one line of the statistics view.
type CategoryRow struct {
	Name     string
	Correct  int
	Attempts int
	Accuracy float64
}

// StatisticsView is a read-only projection of the store.
type StatisticsView struct {
	TotalAttempts int
	TotalCorrect  int
	Accuracy      float64

	// QuestionsSeen counts prompts with at least one attempt.
	QuestionsSeen int
	ReviewCount   int

	// Categories are sorted by name and include zero-attempt categories.
	Categories []CategoryRow
}

// Statistics builds the statistics view.
func (s *Store) Statistics() StatisticsView {
	v := StatisticsView{
		TotalAttempts: s.TotalAttempts,
		TotalCorrect:  s.TotalCorrect,
		Accuracy:      Accuracy(s.TotalCorrect, s.TotalAttempts),
		ReviewCount:   len(s.IncorrectReview),
		Categories:    make([]CategoryRow, 0, len(s.Categories)),
	}
	for _, q := range s.Questions {
		if q.Attempts > 0 {
			v.QuestionsSeen++
		}
	}
	for name, c := range s.Categories {
		v.Categories = append(v.Categories, CategoryRow{
			Name:     name,
			Correct:  c.Correct,
			Attempts: c.Attempts,
			Accuracy: c.Accuracy(),
		})
	}
	sort.Slice(v.Categories, func(i, j int) bool {
		return v.Categories[i].Name < v.Categories[j].Name
	})
	return v
}
