package quizserver

import (
	"context"
	"log/slog"

	"github.com/playperu/quizmaster/internal/quiz"
)

const (
	defaultQuizTitle       = "Python Programming Quiz"
	defaultQuizDescription = "Test your knowledge of Python programming basics"
)

// DefaultQuestions returns the five questions of the built-in Python quiz.
func DefaultQuestions() []NewQuestion {
	return []NewQuestion{
		{
			Text:         "What is the correct way to create a variable named 'age' with the value 25?",
			Answers:      []string{"variable age = 25", "age = 25", "int age = 25", "age := 25"},
			CorrectIndex: 1,
		},
		{
			Text:         "Which of the following is a valid way to comment in Python?",
			Answers:      []string{"// This is a comment", "/* This is a comment */", "# This is a comment", "<!-- This is a comment -->"},
			CorrectIndex: 2,
		},
		{
			Text: "What does the len() function do in Python?",
			Answers: []string{
				"Returns the largest item in an iterable",
				"Returns the length of an object",
				"Returns the lowest item in an iterable",
				"Returns the last item in an iterable",
			},
			CorrectIndex: 1,
		},
		{
			Text:         "Which of the following is NOT a built-in data type in Python?",
			Answers:      []string{"list", "dictionary", "array", "tuple"},
			CorrectIndex: 2,
		},
		{
			Text:         "What is the output of print(2 ** 3)?",
			Answers:      []string{"6", "8", "5", "Error"},
			CorrectIndex: 1,
		},
	}
}

// SeedDefaultQuiz stores a new copy of the default quiz. Every call
// creates a fresh quiz with its own id.
func SeedDefaultQuiz(ctx context.Context, store Store) (quiz.Quiz, error) {
	return store.CreateQuiz(ctx, defaultQuizTitle, defaultQuizDescription, DefaultQuestions()...)
}

// SeedIfEmpty creates the default quiz when the store holds no quizzes.
// Idempotent: does nothing otherwise.
func SeedIfEmpty(ctx context.Context, logger *slog.Logger, store Store) error {
	n, err := store.CountQuizzes(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	q, err := SeedDefaultQuiz(ctx, store)
	if err != nil {
		return err
	}

	logger.Info("default quiz seeded", "quiz_id", q.ID, "questions", len(q.Questions))
	return nil
}
