package quiz

import "quiz-trainer/internal/domain"

// Summarize reduces a completed answer log into a scored result. The caller
// guarantees a non-empty log; sessions refuse to start on empty banks.
func Summarize(log []domain.UserAnswer) domain.QuizResult {
	correct := 0
	for _, answer := range log {
		if answer.IsCorrect {
			correct++
		}
	}
	return domain.QuizResult{
		TotalQuestions: len(log),
		CorrectAnswers: correct,
		Score:          float64(correct) / float64(len(log)) * 100,
		AnswerHistory:  log,
	}
}
