package domain

import "errors"

var (
	// ErrBankNotFound indicates the requested question bank is not configured.
	ErrBankNotFound = errors.New("question bank not found")
	// ErrNoQuestions is returned when a session is started on an empty bank.
	ErrNoQuestions = errors.New("question bank has no questions")
	// ErrAttemptNotFound indicates a history lookup by id missed.
	ErrAttemptNotFound = errors.New("quiz attempt not found")
)
