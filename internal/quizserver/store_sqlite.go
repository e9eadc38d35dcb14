package quizserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/playperu/quizmaster/internal/quiz"
)

// SQLiteStore implements Store on the schema in internal/migrations.
// Answers are stored as a JSON array per question row.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *SQLiteStore) ListQuizzes(ctx context.Context) ([]quiz.Quiz, error) {
	quizzes, err := s.scanQuizzes(ctx)
	if err != nil {
		return nil, err
	}

	questions, err := scanQuestions(ctx, s.db, `
		SELECT quiz_id, position, text, answers, correct_index
		FROM questions
		ORDER BY quiz_id, position
	`)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]int, len(quizzes))
	for i, q := range quizzes {
		byID[q.ID] = i
	}
	for quizID, qs := range questions {
		i, ok := byID[quizID]
		if !ok {
			continue
		}
		for _, sq := range qs {
			quizzes[i].Questions = append(quizzes[i].Questions, sq.toQuestion())
		}
	}
	return quizzes, nil
}

func (s *SQLiteStore) scanQuizzes(ctx context.Context) ([]quiz.Quiz, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, description FROM quizzes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing quizzes: %w", err)
	}
	defer rows.Close()

	quizzes := []quiz.Quiz{}
	for rows.Next() {
		q := quiz.Quiz{Questions: []quiz.Question{}}
		if err := rows.Scan(&q.ID, &q.Title, &q.Description); err != nil {
			return nil, fmt.Errorf("scanning quiz: %w", err)
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}

// scanQuestions groups question rows by quiz id, keeping row order.
func scanQuestions(ctx context.Context, q queryer, query string, args ...any) (map[int][]StoredQuestion, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying questions: %w", err)
	}
	defer rows.Close()

	out := make(map[int][]StoredQuestion)
	for rows.Next() {
		var (
			quizID      int
			sq          StoredQuestion
			answersJSON string
		)
		if err := rows.Scan(&quizID, &sq.Position, &sq.Text, &answersJSON, &sq.CorrectIndex); err != nil {
			return nil, fmt.Errorf("scanning question: %w", err)
		}
		if err := json.Unmarshal([]byte(answersJSON), &sq.Answers); err != nil {
			return nil, fmt.Errorf("decoding answers of quiz %d question %d: %w", quizID, sq.Position, err)
		}
		out[quizID] = append(out[quizID], sq)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) GetQuiz(ctx context.Context, id int) (quiz.Quiz, error) {
	return getQuiz(ctx, s.db, id)
}

func getQuiz(ctx context.Context, q queryer, id int) (quiz.Quiz, error) {
	out := quiz.Quiz{Questions: []quiz.Question{}}
	err := q.QueryRowContext(ctx, `
		SELECT id, title, description FROM quizzes WHERE id = ?
	`, id).Scan(&out.ID, &out.Title, &out.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return quiz.Quiz{}, ErrQuizNotFound
	}
	if err != nil {
		return quiz.Quiz{}, fmt.Errorf("loading quiz %d: %w", id, err)
	}

	questions, err := scanQuestions(ctx, q, `
		SELECT quiz_id, position, text, answers, correct_index
		FROM questions
		WHERE quiz_id = ?
		ORDER BY position
	`, id)
	if err != nil {
		return quiz.Quiz{}, err
	}
	for _, sq := range questions[id] {
		out.Questions = append(out.Questions, sq.toQuestion())
	}
	return out, nil
}

func (s *SQLiteStore) CountQuizzes(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM quizzes`).Scan(&n)
	return n, err
}

func (s *SQLiteStore) CreateQuiz(ctx context.Context, title, description string, questions ...NewQuestion) (quiz.Quiz, error) {
	for _, q := range questions {
		if err := quiz.ValidateQuestion(q.Text, q.Answers, q.CorrectIndex); err != nil {
			return quiz.Quiz{}, err
		}
	}

	var out quiz.Quiz
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var id int
		err := tx.QueryRowContext(ctx, `
			INSERT INTO quizzes (title, description)
			VALUES (?, ?)
			RETURNING id
		`, title, description).Scan(&id)
		if err != nil {
			return fmt.Errorf("inserting quiz: %w", err)
		}
		for _, q := range questions {
			if err := insertQuestion(ctx, tx, id, q); err != nil {
				return err
			}
		}
		out, err = getQuiz(ctx, tx, id)
		return err
	})
	return out, err
}

func (s *SQLiteStore) AddQuestion(ctx context.Context, quizID int, q NewQuestion) (quiz.Quiz, error) {
	if err := quiz.ValidateQuestion(q.Text, q.Answers, q.CorrectIndex); err != nil {
		return quiz.Quiz{}, err
	}

	var out quiz.Quiz
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var exists bool
		err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM quizzes WHERE id = ?)`, quizID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("checking quiz %d: %w", quizID, err)
		}
		if !exists {
			return ErrQuizNotFound
		}
		if err := insertQuestion(ctx, tx, quizID, q); err != nil {
			return err
		}
		out, err = getQuiz(ctx, tx, quizID)
		return err
	})
	return out, err
}

// insertQuestion appends q after the quiz's last question.
func insertQuestion(ctx context.Context, tx *sql.Tx, quizID int, q NewQuestion) error {
	answers, err := json.Marshal(q.Answers)
	if err != nil {
		return fmt.Errorf("encoding answers: %w", err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO questions (quiz_id, position, text, answers, correct_index)
		VALUES (?, (SELECT COALESCE(MAX(position) + 1, 0) FROM questions WHERE quiz_id = ?), ?, ?, ?)
	`, quizID, quizID, q.Text, string(answers), q.CorrectIndex)
	if err != nil {
		return fmt.Errorf("inserting question into quiz %d: %w", quizID, err)
	}
	return nil
}

func (s *SQLiteStore) Question(ctx context.Context, quizID, position int) (StoredQuestion, error) {
	questions, err := scanQuestions(ctx, s.db, `
		SELECT quiz_id, position, text, answers, correct_index
		FROM questions
		WHERE quiz_id = ? AND position = ?
	`, quizID, position)
	if err != nil {
		return StoredQuestion{}, err
	}
	if qs := questions[quizID]; len(qs) == 1 {
		return qs[0], nil
	}

	var exists bool
	err = s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM quizzes WHERE id = ?)`, quizID).Scan(&exists)
	if err != nil {
		return StoredQuestion{}, fmt.Errorf("checking quiz %d: %w", quizID, err)
	}
	if !exists {
		return StoredQuestion{}, ErrQuizNotFound
	}
	return StoredQuestion{}, ErrQuestionNotFound
}

func (s *SQLiteStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
