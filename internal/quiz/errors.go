package quiz

import (
	"errors"
	"fmt"
)

// Service errors.
var (
	ErrNetwork    = errors.New("network error")
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// Session contract errors. These are caller mistakes and never leave a
// session partially mutated.
var (
	ErrEmptyQuiz          = errors.New("quiz has no questions")
	ErrInvalidAnswerIndex = errors.New("invalid answer index")
	ErrAlreadyAnswered    = errors.New("question already answered")
	ErrNoMoreQuestions    = errors.New("no more questions")
	ErrSessionFinished    = errors.New("session finished")
	ErrNotStarted         = errors.New("session not started")
	ErrAlreadyStarted     = errors.New("session already started")
	ErrNotAnswered        = errors.New("current question not answered")
	ErrQuestionsRemaining = errors.New("questions remaining")
	ErrSubmissionInFlight = errors.New("submission in flight")
)

// APIError is returned when the quiz service answers with a non-2xx status.
// It unwraps to Kind, one of ErrNotFound, ErrValidation or ErrNetwork.
type APIError struct {
	Op         string
	StatusCode int
	Detail     string
	Kind       error
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v (status %d)", e.Op, e.Kind, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v (status %d): %s", e.Op, e.Kind, e.StatusCode, e.Detail)
}

func (e *APIError) Unwrap() error { return e.Kind }

// IsContractError reports whether err is a session contract violation
// rather than a service or transport failure.
func IsContractError(err error) bool {
	for _, target := range []error{
		ErrEmptyQuiz, ErrInvalidAnswerIndex, ErrAlreadyAnswered, ErrNoMoreQuestions,
		ErrSessionFinished, ErrNotStarted, ErrAlreadyStarted, ErrNotAnswered,
		ErrQuestionsRemaining, ErrSubmissionInFlight,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
