package quizserver

import (
	"context"
	"fmt"

	"github.com/playperu/quizmaster/internal/quiz"
)

var (
	ErrQuizNotFound     = fmt.Errorf("quiz %w", quiz.ErrNotFound)
	ErrQuestionNotFound = fmt.Errorf("question %w", quiz.ErrNotFound)
)

// NewQuestion is a question as authored, before it is stored.
type NewQuestion struct {
	Text         string
	Answers      []string
	CorrectIndex int
}

// StoredQuestion is a question with its answer key.
type StoredQuestion struct {
	Position     int
	Text         string
	Answers      []string
	CorrectIndex int
}

func (q StoredQuestion) toQuestion() quiz.Question {
	answers := make([]quiz.Answer, len(q.Answers))
	for i, a := range q.Answers {
		answers[i] = quiz.Answer{Text: a, IsCorrect: i == q.CorrectIndex}
	}
	return quiz.Question{ID: q.Position, Text: q.Text, Answers: answers}
}

type Store interface {
	ListQuizzes(ctx context.Context) ([]quiz.Quiz, error)
	GetQuiz(ctx context.Context, id int) (quiz.Quiz, error)
	CountQuizzes(ctx context.Context) (int, error)
	// CreateQuiz stores the quiz and any initial questions atomically.
	CreateQuiz(ctx context.Context, title, description string, questions ...NewQuestion) (quiz.Quiz, error)
	AddQuestion(ctx context.Context, quizID int, q NewQuestion) (quiz.Quiz, error)
	Question(ctx context.Context, quizID, position int) (StoredQuestion, error)
}
