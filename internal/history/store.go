// Package history persists scored quiz attempts as a single JSON blob and
// derives summary statistics from the attempt list.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"quiz-trainer/internal/domain"
	"quiz-trainer/internal/infra/blob"
)

// StorageKey is the fixed key the whole history blob lives under.
const StorageKey = "quiz-history"

// Store owns the persisted quiz history. Every operation re-reads the blob
// before mutating so the stored statistics can never drift from the attempt
// list. Single-user by design; concurrent writers are not guarded against.
type Store struct {
	kv    blob.Store
	key   string
	now   func() time.Time
	newID func() string
}

// NewStore builds a history store over the given blob store.
func NewStore(kv blob.Store) *Store {
	return NewStoreWithClock(kv, time.Now, uuid.NewString)
}

// NewStoreWithClock allows deterministic timestamps and ids in tests.
func NewStoreWithClock(kv blob.Store, now func() time.Time, newID func() string) *Store {
	return &Store{kv: kv, key: StorageKey, now: now, newID: newID}
}

// Load returns the stored history. A missing or unreadable blob degrades to
// an empty history; corruption is logged, never surfaced.
func (s *Store) Load(ctx context.Context) domain.QuizHistory {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, blob.ErrNotFound) {
			log.Printf("loading quiz history: %v", err)
		}
		return domain.QuizHistory{}
	}
	var history domain.QuizHistory
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		log.Printf("decoding quiz history: %v", err)
		return domain.QuizHistory{}
	}
	return history
}

// Save synthesizes a new attempt, prepends it (most-recent-first is a hard
// invariant), recomputes all statistics, and writes the blob back.
func (s *Store) Save(ctx context.Context, bankName, bankDisplayName string, totalQuestions, correctAnswers int, score float64, answerLog []domain.UserAnswer, timeSpent float64) (domain.QuizAttempt, error) {
	history := s.Load(ctx)

	attempt := domain.QuizAttempt{
		ID:              s.newID(),
		BankName:        bankName,
		BankDisplayName: bankDisplayName,
		DateTaken:       s.now().UTC().Format(time.RFC3339),
		TotalQuestions:  totalQuestions,
		CorrectAnswers:  correctAnswers,
		Score:           score,
		TimeSpent:       timeSpent,
		AnswerHistory:   answerLog,
	}
	history.Attempts = append([]domain.QuizAttempt{attempt}, history.Attempts...)
	recompute(&history)

	if err := s.write(ctx, history); err != nil {
		return domain.QuizAttempt{}, err
	}
	return attempt, nil
}

// GetByID returns the stored attempt with the given id.
func (s *Store) GetByID(ctx context.Context, id string) (domain.QuizAttempt, error) {
	for _, attempt := range s.Load(ctx).Attempts {
		if attempt.ID == id {
			return attempt, nil
		}
	}
	return domain.QuizAttempt{}, domain.ErrAttemptNotFound
}

// DeleteByID removes one attempt and recomputes statistics from what remains;
// deleting the last attempt resets every derived field to its zero state.
func (s *Store) DeleteByID(ctx context.Context, id string) error {
	history := s.Load(ctx)
	kept := history.Attempts[:0]
	found := false
	for _, attempt := range history.Attempts {
		if attempt.ID == id {
			found = true
			continue
		}
		kept = append(kept, attempt)
	}
	if !found {
		return domain.ErrAttemptNotFound
	}
	history.Attempts = kept
	recompute(&history)
	return s.write(ctx, history)
}

// ClearAll removes the entire stored blob.
func (s *Store) ClearAll(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.key); err != nil && !errors.Is(err, blob.ErrNotFound) {
		return err
	}
	return nil
}

// NotesForBank recalls per-question notes for a bank. The stored list is
// newest-first; the scan reverses it to oldest-first and keeps only the first
// non-empty note seen per question. The earliest attempt's note therefore
// wins, deliberately kept identical to the behavior history was written
// under, not "fixed" to latest-wins.
func (s *Store) NotesForBank(ctx context.Context, bankName string) (map[int]string, error) {
	notes := make(map[int]string)

	var bankAttempts []domain.QuizAttempt
	for _, attempt := range s.Load(ctx).Attempts {
		if attempt.BankName == bankName {
			bankAttempts = append(bankAttempts, attempt)
		}
	}
	for i := len(bankAttempts) - 1; i >= 0; i-- {
		for _, answer := range bankAttempts[i].AnswerHistory {
			if strings.TrimSpace(answer.Notes) == "" {
				continue
			}
			if _, ok := notes[answer.QuestionID]; !ok {
				notes[answer.QuestionID] = answer.Notes
			}
		}
	}
	return notes, nil
}

func (s *Store) write(ctx context.Context, history domain.QuizHistory) error {
	data, err := json.Marshal(history)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, s.key, string(data))
}

// recompute rebuilds every derived field from the attempt list. Statistics
// are never adjusted incrementally.
func recompute(h *domain.QuizHistory) {
	h.TotalAttempts = len(h.Attempts)
	if len(h.Attempts) == 0 {
		h.AverageScore = 0
		h.BestScore = 0
		h.FavoriteBank = ""
		return
	}

	sum := 0.0
	best := h.Attempts[0].Score
	for _, attempt := range h.Attempts {
		sum += attempt.Score
		if attempt.Score > best {
			best = attempt.Score
		}
	}
	h.AverageScore = sum / float64(len(h.Attempts))
	h.BestScore = best
	h.FavoriteBank = favoriteBank(h.Attempts)
}

// favoriteBank picks the most-played bank. Banks are counted in stored
// (newest-first) order and a later bank only displaces the leader with a
// strictly greater count, so ties go to the first bank encountered, which is
// the most recently added of the tied banks.
func favoriteBank(attempts []domain.QuizAttempt) string {
	counts := make(map[string]int)
	var order []string
	for _, attempt := range attempts {
		if _, seen := counts[attempt.BankName]; !seen {
			order = append(order, attempt.BankName)
		}
		counts[attempt.BankName]++
	}
	favorite := order[0]
	for _, bank := range order[1:] {
		if counts[bank] > counts[favorite] {
			favorite = bank
		}
	}
	return favorite
}
