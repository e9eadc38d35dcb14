package quizserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/quizmaster/internal/httpserver"
	"github.com/playperu/quizmaster/internal/quiz"
)

const (
	msgCorrect   = "Correct! Well done!"
	msgIncorrect = "Sorry, that's incorrect."
)

// DetailResponse is the body of every error response.
type DetailResponse struct {
	Detail string `json:"detail"`
}

type WelcomeResponse struct {
	Message string `json:"message"`
}

type CreateQuizRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type AddQuestionRequest struct {
	Text               string   `json:"text"`
	Answers            []string `json:"answers"`
	CorrectAnswerIndex *int     `json:"correct_answer_index"`
}

type SubmitAnswerRequest struct {
	AnswerIndex *int `json:"answer_index"`
}

type SubmitAnswerResponse struct {
	IsCorrect          bool   `json:"is_correct"`
	Message            string `json:"message"`
	CorrectAnswer      string `json:"correct_answer,omitempty"`
	CorrectAnswerIndex *int   `json:"correct_answer_index,omitempty"`
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	httpserver.WriteJSON(w, status, DetailResponse{Detail: detail})
}

// writeStoreError maps store errors to responses. Unknown errors are
// logged and hidden behind a 500.
func writeStoreError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, ErrQuizNotFound):
		writeDetail(w, http.StatusNotFound, "Quiz not found")
	case errors.Is(err, ErrQuestionNotFound):
		writeDetail(w, http.StatusNotFound, "Question not found")
	case errors.Is(err, quiz.ErrValidation):
		writeDetail(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error("quiz store failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "internal error")
	}
}

// intParam reads an integer path parameter, writing a 422 when it is
// not a number.
func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, name+" must be an integer")
		return 0, false
	}
	return v, true
}

func handleRoot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpserver.WriteJSON(w, http.StatusOK, WelcomeResponse{Message: "Welcome to QuizMaster API!"})
	}
}

func handleListQuizzes(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizzes, err := store.ListQuizzes(r.Context())
		if err != nil {
			writeStoreError(w, logger, err)
			return
		}
		httpserver.WriteJSON(w, http.StatusOK, quizzes)
	}
}

func handleGetQuiz(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := intParam(w, r, "quizID")
		if !ok {
			return
		}
		q, err := store.GetQuiz(r.Context(), id)
		if err != nil {
			writeStoreError(w, logger, err)
			return
		}
		httpserver.WriteJSON(w, http.StatusOK, q)
	}
}

func handleCreateQuiz(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateQuizRequest
		if err := httpserver.ReadJSON(r, &req); err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, "invalid request body")
			return
		}
		req.Title = strings.TrimSpace(req.Title)
		if req.Title == "" {
			writeDetail(w, http.StatusUnprocessableEntity, "title is required")
			return
		}

		q, err := store.CreateQuiz(r.Context(), req.Title, req.Description)
		if err != nil {
			writeStoreError(w, logger, err)
			return
		}
		logger.Info("quiz created", "quiz_id", q.ID)
		httpserver.WriteJSON(w, http.StatusCreated, q)
	}
}

func handleAddQuestion(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := intParam(w, r, "quizID")
		if !ok {
			return
		}
		var req AddQuestionRequest
		if err := httpserver.ReadJSON(r, &req); err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, "invalid request body")
			return
		}
		if req.CorrectAnswerIndex == nil {
			writeDetail(w, http.StatusUnprocessableEntity, "correct_answer_index is required")
			return
		}

		q, err := store.AddQuestion(r.Context(), id, NewQuestion{
			Text:         req.Text,
			Answers:      req.Answers,
			CorrectIndex: *req.CorrectAnswerIndex,
		})
		if err != nil {
			writeStoreError(w, logger, err)
			return
		}
		httpserver.WriteJSON(w, http.StatusOK, q)
	}
}

func handleGetQuestion(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizID, ok := intParam(w, r, "quizID")
		if !ok {
			return
		}
		pos, ok := intParam(w, r, "questionID")
		if !ok {
			return
		}
		sq, err := store.Question(r.Context(), quizID, pos)
		if err != nil {
			writeStoreError(w, logger, err)
			return
		}
		httpserver.WriteJSON(w, http.StatusOK, sq.toQuestion())
	}
}

func handleSubmitAnswer(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizID, ok := intParam(w, r, "quizID")
		if !ok {
			return
		}
		pos, ok := intParam(w, r, "questionID")
		if !ok {
			return
		}
		var req SubmitAnswerRequest
		if err := httpserver.ReadJSON(r, &req); err != nil || req.AnswerIndex == nil {
			writeDetail(w, http.StatusUnprocessableEntity, "answer_index is required")
			return
		}

		sq, err := store.Question(r.Context(), quizID, pos)
		if err != nil {
			writeStoreError(w, logger, err)
			return
		}
		idx := *req.AnswerIndex
		if idx < 0 || idx >= len(sq.Answers) {
			writeDetail(w, http.StatusBadRequest, "Invalid answer index")
			return
		}

		if idx == sq.CorrectIndex {
			httpserver.WriteJSON(w, http.StatusOK, SubmitAnswerResponse{IsCorrect: true, Message: msgCorrect})
			return
		}
		correct := sq.CorrectIndex
		httpserver.WriteJSON(w, http.StatusOK, SubmitAnswerResponse{
			IsCorrect:          false,
			Message:            msgIncorrect,
			CorrectAnswer:      sq.Answers[correct],
			CorrectAnswerIndex: &correct,
		})
	}
}

func handleInitDefaultQuiz(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := SeedDefaultQuiz(r.Context(), store)
		if err != nil {
			writeStoreError(w, logger, err)
			return
		}
		logger.Info("default quiz created", "quiz_id", q.ID)
		httpserver.WriteJSON(w, http.StatusOK, q)
	}
}
