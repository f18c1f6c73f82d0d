package quiz

import (
	"context"
	"log"
	"strings"
	"time"

	"quiz-trainer/internal/domain"
)

// State is the lifecycle phase of a session.
type State string

const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
)

// BankRepository loads bank content (from files, cache, or a backing store).
type BankRepository interface {
	GetBank(ctx context.Context, name string) (domain.Bank, error)
}

// HistoryRecorder persists completed attempts and recalls per-question notes.
// Implemented by the history store; nil disables persistence.
type HistoryRecorder interface {
	Save(ctx context.Context, bankName, bankDisplayName string, totalQuestions, correctAnswers int, score float64, answerLog []domain.UserAnswer, timeSpent float64) (domain.QuizAttempt, error)
	NotesForBank(ctx context.Context, bankName string) (map[int]string, error)
}

// Session drives a single user through a question list. It is strictly
// synchronous and single-user: every transition runs to completion before the
// next input, so no locking is needed.
type Session struct {
	banks   BankRepository
	history HistoryRecorder
	now     func() time.Time

	state     State
	bank      domain.Bank
	active    []domain.Question
	index     int
	selected  any
	answers   []domain.UserAnswer
	result    *domain.QuizResult
	retryMode bool
	notes     map[int]string
	noteDraft string
	startedAt time.Time
	attempt   *domain.QuizAttempt
}

// NewSession builds a session over the given bank repository. history may be
// nil, in which case completed attempts are not persisted.
func NewSession(banks BankRepository, history HistoryRecorder) *Session {
	return NewSessionWithClock(banks, history, time.Now)
}

// NewSessionWithClock allows deterministic timestamps in tests.
func NewSessionWithClock(banks BankRepository, history HistoryRecorder, now func() time.Time) *Session {
	return &Session{
		banks:   banks,
		history: history,
		now:     now,
		state:   StateNotStarted,
		notes:   make(map[int]string),
	}
}

// Start selects a bank and enters InProgress. An empty bank is rejected with
// ErrNoQuestions before any state changes, so scoring can never divide by
// zero. Previously saved notes for the bank are loaded for recall.
func (s *Session) Start(ctx context.Context, bankName string) error {
	bank, err := s.banks.GetBank(ctx, bankName)
	if err != nil {
		return err
	}
	if len(bank.Questions) == 0 {
		return domain.ErrNoQuestions
	}

	s.bank = bank
	s.active = bank.Questions
	s.index = 0
	s.selected = nil
	s.answers = nil
	s.result = nil
	s.retryMode = false
	s.attempt = nil
	s.notes = s.loadNotes(ctx, bankName)
	s.noteDraft = s.notes[bank.Questions[0].ID]
	s.startedAt = s.now()
	s.state = StateInProgress
	return nil
}

func (s *Session) loadNotes(ctx context.Context, bankName string) map[int]string {
	if s.history == nil {
		return make(map[int]string)
	}
	notes, err := s.history.NotesForBank(ctx, bankName)
	if err != nil {
		log.Printf("loading notes for bank %q: %v", bankName, err)
		return make(map[int]string)
	}
	return notes
}

// State returns the current lifecycle phase.
func (s *Session) State() State { return s.state }

// RetryMode reports whether the active list is a retry subset.
func (s *Session) RetryMode() bool { return s.retryMode }

// Bank returns the selected bank descriptor.
func (s *Session) Bank() domain.QuestionBank { return s.bank.QuestionBank }

// Current returns the question under the cursor.
func (s *Session) Current() (domain.Question, bool) {
	if s.state != StateInProgress || s.index >= len(s.active) {
		return domain.Question{}, false
	}
	return s.active[s.index], true
}

// CurrentType classifies the question under the cursor.
func (s *Session) CurrentType() domain.QuestionType {
	q, ok := s.Current()
	if !ok {
		return ""
	}
	return Classify(q)
}

// Progress returns the 1-based question number and the active list length.
func (s *Session) Progress() (int, int) {
	return s.index + 1, len(s.active)
}

// Selection returns the raw current selection; nil means nothing selected.
func (s *Session) Selection() any { return s.selected }

// Note returns the editable note text for the current question.
func (s *Session) Note() string { return s.noteDraft }

// SetNote replaces the editable note text for the current question.
func (s *Session) SetNote(text string) {
	if s.state != StateInProgress {
		return
	}
	s.noteDraft = text
}

// SelectOption applies an option index to the current selection. Single-answer
// variants replace the selection; multi-select toggles membership. Toggling
// the last selected index off collapses the selection to nil rather than an
// empty set, which keeps the answered-gate in Advance working.
func (s *Session) SelectOption(index int) {
	q, ok := s.Current()
	if !ok {
		return
	}
	switch Classify(q) {
	case domain.MultiSelect:
		current, _ := s.selected.([]int)
		toggled := make([]int, 0, len(current)+1)
		removed := false
		for _, idx := range current {
			if idx == index {
				removed = true
				continue
			}
			toggled = append(toggled, idx)
		}
		if !removed {
			toggled = append(toggled, index)
		}
		if len(toggled) == 0 {
			s.selected = nil
		} else {
			s.selected = toggled
		}
	case domain.MultipleChoice:
		s.selected = index
	}
}

// SetSelection installs a structured selection (yes/no slots, drag-drop
// placements, fill-in values) in the shape the variant expects.
func (s *Session) SetSelection(selection any) {
	if s.state != StateInProgress {
		return
	}
	s.selected = selection
}

// Advance resolves the current question and moves on. For multiple-choice,
// multi-select, and yes/no questions a nil selection blocks the advance (a
// guard, not an error). On the last question the session completes, the
// result is computed, and the attempt is handed to the history recorder;
// persistence failure is logged and the in-memory result stands.
// The return value reports whether the transition was applied.
func (s *Session) Advance(ctx context.Context) bool {
	q, ok := s.Current()
	if !ok {
		return false
	}
	tag := Classify(q)
	if s.selected == nil && requiresSelection(tag) {
		return false
	}

	note := strings.TrimSpace(s.noteDraft)
	if note != "" {
		s.notes[q.ID] = note
	}

	canonical := q.Canonical()
	s.answers = append(s.answers, domain.UserAnswer{
		QuestionID:         q.ID,
		SelectedOption:     s.selected,
		IsCorrect:          IsCorrect(tag, s.selected, canonical),
		Question:           q.Question,
		Options:            q.Options,
		CorrectAnswer:      canonical,
		SelectedAnswerText: AnswerText(s.selected, q.Options),
		CorrectAnswerText:  AnswerText(canonical, q.Options),
		Notes:              note,
	})

	if s.index == len(s.active)-1 {
		result := Summarize(s.answers)
		s.result = &result
		s.state = StateCompleted
		s.persist(ctx, result)
		return true
	}

	s.index++
	s.selected = nil
	s.noteDraft = s.notes[s.active[s.index].ID]
	return true
}

func (s *Session) persist(ctx context.Context, result domain.QuizResult) {
	if s.history == nil || s.bank.Name == "" {
		return
	}
	timeSpent := s.now().Sub(s.startedAt).Minutes()
	attempt, err := s.history.Save(ctx, s.bank.Name, s.bank.DisplayName,
		result.TotalQuestions, result.CorrectAnswers, result.Score,
		result.AnswerHistory, timeSpent)
	if err != nil {
		// The in-memory result is still shown; only the stored copy is lost.
		log.Printf("saving attempt for bank %q: %v", s.bank.Name, err)
		return
	}
	s.attempt = &attempt
}

// Result returns the computed result of a completed session.
func (s *Session) Result() (domain.QuizResult, bool) {
	if s.result == nil {
		return domain.QuizResult{}, false
	}
	return *s.result, true
}

// Attempt returns the persisted attempt for a completed session, if saving
// succeeded.
func (s *Session) Attempt() (domain.QuizAttempt, bool) {
	if s.attempt == nil {
		return domain.QuizAttempt{}, false
	}
	return *s.attempt, true
}

// Restart fully clears session state, including retry mode and notes.
func (s *Session) Restart() {
	s.state = StateNotStarted
	s.bank = domain.Bank{}
	s.active = nil
	s.index = 0
	s.selected = nil
	s.answers = nil
	s.result = nil
	s.retryMode = false
	s.attempt = nil
	s.notes = make(map[int]string)
	s.noteDraft = ""
}

// RetryWrongAnswers replays only the questions missed in the just-finished
// result, in their original relative order. A perfect result is a no-op.
func (s *Session) RetryWrongAnswers() bool {
	if s.state != StateCompleted || s.result == nil {
		return false
	}
	wrong := make(map[int]bool)
	for _, answer := range s.result.AnswerHistory {
		if !answer.IsCorrect {
			wrong[answer.QuestionID] = true
		}
	}
	if len(wrong) == 0 {
		return false
	}

	subset := make([]domain.Question, 0, len(wrong))
	for _, q := range s.active {
		if wrong[q.ID] {
			subset = append(subset, q)
		}
	}

	s.active = subset
	s.retryMode = true
	s.index = 0
	s.selected = nil
	s.answers = nil
	s.result = nil
	s.attempt = nil
	s.noteDraft = s.notes[subset[0].ID]
	s.startedAt = s.now()
	s.state = StateInProgress
	return true
}

// requiresSelection reports whether a variant's answered-gate blocks advancing
// without a selection. Matching and fill-in questions are review-style and
// may always advance.
func requiresSelection(tag domain.QuestionType) bool {
	switch tag {
	case domain.MultipleChoice, domain.MultiSelect, domain.YesNo:
		return true
	}
	return false
}
