package domain

// QuestionType is the inferred variant of a question. The bank data carries no
// explicit discriminator; the classifier reconstructs the tag from shape and
// every other component dispatches on the tag alone.
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	MultiSelect    QuestionType = "multi_select"
	Matching       QuestionType = "matching"
	FillInBlank    QuestionType = "fill_in_blank"
	YesNo          QuestionType = "yes_no"
	DragDrop       QuestionType = "drag_drop"
)

// Question is one quiz item as decoded from bank JSON. CorrectAnswer and
// CorrectAnswers hold whatever shape the bank supplied (number, list, object
// list, key/value map); exactly one of them is expected to be set.
type Question struct {
	ID           int      `json:"id"`
	Question     string   `json:"question"`
	Options      []string `json:"options,omitempty"`
	Types        []string `json:"types,omitempty"`
	Workloads    []string `json:"workloads,omitempty"`
	Scenarios    []string `json:"scenarios,omitempty"`
	Principles   []string `json:"principles,omitempty"`
	Requirements []string `json:"requirements,omitempty"`

	CorrectAnswer  any `json:"correctAnswer,omitempty"`
	CorrectAnswers any `json:"correctAnswers,omitempty"`
}

// Canonical returns the authoritative correct-answer payload, preferring the
// plural field used by the yes/no and drag-drop banks.
func (q Question) Canonical() any {
	if q.CorrectAnswers != nil {
		return q.CorrectAnswers
	}
	return q.CorrectAnswer
}

// YesNoSelection holds one "Yes"/"No" choice per statement, in statement order.
type YesNoSelection []string

// DragDropSelection maps a drop target to the item placed on it.
type DragDropSelection map[string]string

// UserAnswer is one resolved response. It snapshots the question so history
// can be rendered without re-joining to the bank, and is immutable once built.
type UserAnswer struct {
	QuestionID         int      `json:"questionId"`
	SelectedOption     any      `json:"selectedOption"`
	IsCorrect          bool     `json:"isCorrect"`
	Question           string   `json:"question"`
	Options            []string `json:"options,omitempty"`
	CorrectAnswer      any      `json:"correctAnswer"`
	SelectedAnswerText any      `json:"selectedAnswerText"`
	CorrectAnswerText  any      `json:"correctAnswerText"`
	Notes              string   `json:"notes,omitempty"`
}

// QuizResult summarizes a completed session.
type QuizResult struct {
	TotalQuestions int          `json:"totalQuestions"`
	CorrectAnswers int          `json:"correctAnswers"`
	Score          float64      `json:"score"`
	AnswerHistory  []UserAnswer `json:"answerHistory"`
}

// QuizAttempt is a persisted, scored traversal of a question list.
type QuizAttempt struct {
	ID              string       `json:"id"`
	BankName        string       `json:"bankName"`
	BankDisplayName string       `json:"bankDisplayName"`
	DateTaken       string       `json:"dateTaken"`
	TotalQuestions  int          `json:"totalQuestions"`
	CorrectAnswers  int          `json:"correctAnswers"`
	Score           float64      `json:"score"`
	TimeSpent       float64      `json:"timeSpent,omitempty"` // minutes
	AnswerHistory   []UserAnswer `json:"answerHistory"`
}

// QuizHistory is the persisted aggregate: attempts most-recent-first plus
// statistics recomputed in full on every mutation.
type QuizHistory struct {
	Attempts      []QuizAttempt `json:"attempts"`
	TotalAttempts int           `json:"totalAttempts"`
	AverageScore  float64       `json:"averageScore"`
	BestScore     float64       `json:"bestScore"`
	FavoriteBank  string        `json:"favoriteBank,omitempty"`
}

// QuestionBank describes one selectable bank.
type QuestionBank struct {
	Name        string `json:"name" yaml:"name"`
	DisplayName string `json:"displayName" yaml:"displayName"`
	FileName    string `json:"fileName" yaml:"fileName"`
}

// Bank pairs a descriptor with its materialized questions.
type Bank struct {
	QuestionBank
	Questions []Question
}
