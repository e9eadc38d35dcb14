// Package quiz defines the core domain types shared by the quiz service,
// its client and the session controller. It has zero external dependencies.
package quiz

import (
	"fmt"
	"strings"
)

type Quiz struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

// Question is identified by its 0-based position within the quiz.
type Question struct {
	ID      int      `json:"id"`
	Text    string   `json:"text"`
	Answers []Answer `json:"answers"`
}

type Answer struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// SubmitResult is the service's judgment of a submitted answer.
// CorrectAnswer and CorrectAnswerIndex are only set when the service
// chose to reveal the correct answer.
type SubmitResult struct {
	IsCorrect          bool
	Message            string
	CorrectAnswer      string
	CorrectAnswerIndex *int
}

// AnswerTexts returns the answer texts of q in order.
func (q Question) AnswerTexts() []string {
	out := make([]string, len(q.Answers))
	for i, a := range q.Answers {
		out[i] = a.Text
	}
	return out
}

// ValidateQuestion checks the constraints every question must satisfy:
// non-blank text, at least two answers and an in-range correct index.
func ValidateQuestion(text string, answers []string, correctIndex int) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("question text is required: %w", ErrValidation)
	}
	if len(answers) < 2 {
		return fmt.Errorf("need at least 2 answers, got %d: %w", len(answers), ErrValidation)
	}
	if correctIndex < 0 || correctIndex >= len(answers) {
		return fmt.Errorf("correct answer index %d out of range: %w", correctIndex, ErrValidation)
	}
	return nil
}
