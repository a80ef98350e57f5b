package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Version is stamped into every file written by Save.
const Version = 1

// naiveLayout matches timestamps written without a zone offset.
const naiveLayout = "2006-01-02T15:04:05.999999999"

// LoadWarning reports a history file that could not be used as is. The store
// returned alongside it is still valid.
type LoadWarning struct {
	Path string
	// Reset names top-level keys that had the wrong type and were emptied,
	// and map entries that were dropped, as "questions[<prompt>]".
	Reset []string
	Err   error
}

func (w *LoadWarning) Error() string {
	if w.Err != nil {
		return fmt.Sprintf("history %s: %v; starting fresh", w.Path, w.Err)
	}
	return fmt.Sprintf("history %s: reset malformed keys: %s", w.Path, strings.Join(w.Reset, ", "))
}

func (w *LoadWarning) Unwrap() error { return w.Err }

type fileStore struct {
	Version         int                     `json:"version"`
	TotalAttempts   int                     `json:"total_attempts"`
	TotalCorrect    int                     `json:"total_correct"`
	Questions       map[string]fileQuestion `json:"questions"`
	Categories      map[string]fileCategory `json:"categories"`
	IncorrectReview []string                `json:"incorrect_review"`
}

type fileQuestion struct {
	Correct  int           `json:"correct"`
	Attempts int           `json:"attempts"`
	History  []fileAttempt `json:"history"`
}

type fileAttempt struct {
	Timestamp string `json:"timestamp"`
	Correct   bool   `json:"correct"`
}

type fileCategory struct {
	Correct  int `json:"correct"`
	Attempts int `json:"attempts"`
}

// Load reads the history file at path. A missing file yields an empty store
// and no error. A file that cannot be read or parsed yields an empty store
// and a *LoadWarning; keys of the wrong type are reset individually and also
// reported through a *LoadWarning. Load never returns a nil store.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return New(), &LoadWarning{Path: path, Err: err}
	}

	s, reset, err := decode(data)
	if err != nil {
		return New(), &LoadWarning{Path: path, Err: err}
	}
	if len(reset) > 0 {
		return s, &LoadWarning{Path: path, Reset: reset}
	}
	return s, nil
}

// decode parses a history document key by key so one malformed key does not
// discard the rest.
func decode(data []byte) (*Store, []string, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, nil, fmt.Errorf("parse: %w", err)
	}
	if top == nil {
		return nil, nil, errors.New("parse: document is null")
	}

	var (
		f     fileStore
		reset []string
	)
	field := func(key string, dst any) {
		raw, ok := top[key]
		if !ok || string(raw) == "null" {
			return
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			reset = append(reset, key)
		}
	}
	field("version", &f.Version)
	field("total_attempts", &f.TotalAttempts)
	field("total_correct", &f.TotalCorrect)

	var questions map[string]json.RawMessage
	field("questions", &questions)
	f.Questions = make(map[string]fileQuestion, len(questions))
	for prompt, raw := range questions {
		var q fileQuestion
		if err := json.Unmarshal(raw, &q); err != nil {
			reset = append(reset, fmt.Sprintf("questions[%s]", prompt))
			continue
		}
		f.Questions[prompt] = q
	}

	var categories map[string]json.RawMessage
	field("categories", &categories)
	f.Categories = make(map[string]fileCategory, len(categories))
	for name, raw := range categories {
		var c fileCategory
		if err := json.Unmarshal(raw, &c); err != nil {
			reset = append(reset, fmt.Sprintf("categories[%s]", name))
			continue
		}
		f.Categories[name] = c
	}

	var review []json.RawMessage
	field("incorrect_review", &review)
	for _, raw := range review {
		var p string
		if err := json.Unmarshal(raw, &p); err == nil {
			f.IncorrectReview = append(f.IncorrectReview, p)
		}
	}

	sort.Strings(reset)
	return migrate(f), reset, nil
}

// migrate normalizes any legacy or partial file into a Store. Counters are
// clamped so that attempts >= correct >= 0 holds everywhere. When the file
// has per-question entries the global totals are recomputed from them;
// otherwise the stored totals are kept.
func migrate(f fileStore) *Store {
	s := New()
	s.TotalAttempts, s.TotalCorrect = clampPair(f.TotalAttempts, f.TotalCorrect)

	for prompt, fq := range f.Questions {
		q := &QuestionStat{}
		q.Attempts, q.Correct = clampPair(fq.Attempts, fq.Correct)
		for _, fa := range fq.History {
			ts, err := parseTimestamp(fa.Timestamp)
			if err != nil {
				continue
			}
			q.History = append(q.History, Attempt{Timestamp: ts, Correct: fa.Correct})
		}
		s.Questions[prompt] = q
	}
	if len(s.Questions) > 0 {
		s.TotalAttempts, s.TotalCorrect = 0, 0
		for _, q := range s.Questions {
			s.TotalAttempts += q.Attempts
			s.TotalCorrect += q.Correct
		}
	}
	for name, fc := range f.Categories {
		c := &CategoryStat{}
		c.Attempts, c.Correct = clampPair(fc.Attempts, fc.Correct)
		s.Categories[name] = c
	}
	for _, p := range f.IncorrectReview {
		s.IncorrectReview[p] = struct{}{}
	}
	return s
}

func clampPair(attempts, correct int) (int, int) {
	attempts = max(attempts, 0)
	correct = min(max(correct, 0), attempts)
	return attempts, correct
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation(naiveLayout, s, time.Local)
}

func (s *Store) toFile() fileStore {
	f := fileStore{
		Version:         Version,
		TotalAttempts:   s.TotalAttempts,
		TotalCorrect:    s.TotalCorrect,
		Questions:       make(map[string]fileQuestion, len(s.Questions)),
		Categories:      make(map[string]fileCategory, len(s.Categories)),
		IncorrectReview: s.ReviewPrompts(),
	}
	for prompt, q := range s.Questions {
		fq := fileQuestion{Correct: q.Correct, Attempts: q.Attempts, History: make([]fileAttempt, 0, len(q.History))}
		for _, a := range q.History {
			fq.History = append(fq.History, fileAttempt{
				Timestamp: a.Timestamp.Format(time.RFC3339Nano),
				Correct:   a.Correct,
			})
		}
		f.Questions[prompt] = fq
	}
	for name, c := range s.Categories {
		f.Categories[name] = fileCategory{Correct: c.Correct, Attempts: c.Attempts}
	}
	return f
}

// WriteJSON writes the store in its file format.
func (s *Store) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.toFile()); err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	return nil
}

// Save writes the store to path atomically: a temp file in the same
// directory is written, synced and renamed over the target.
func (s *Store) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	ok := false
	defer func() {
		if !ok {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if err := s.WriteJSON(tmp); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close history: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace history: %w", err)
	}
	ok = true
	return nil
}
