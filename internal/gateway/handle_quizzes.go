package gateway

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/quizmaster/internal/httpserver"
	"github.com/playperu/quizmaster/internal/quiz"
	"github.com/playperu/quizmaster/internal/session"
)

type QuizSummary struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	QuestionCount int    `json:"question_count"`
}

// QuizDetail is a quiz with answer texts only.
type QuizDetail struct {
	ID          int                `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Questions   []session.Question `json:"questions"`
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

func summarize(q quiz.Quiz) QuizSummary {
	return QuizSummary{
		ID:            q.ID,
		Title:         q.Title,
		Description:   q.Description,
		QuestionCount: len(q.Questions),
	}
}

func detail(q quiz.Quiz) QuizDetail {
	out := QuizDetail{
		ID:          q.ID,
		Title:       q.Title,
		Description: q.Description,
		Questions:   make([]session.Question, len(q.Questions)),
	}
	for i, qq := range q.Questions {
		out.Questions[i] = session.Question{Text: qq.Text, Answers: qq.AnswerTexts()}
	}
	return out
}

func quizIDParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "quizID"))
	if err != nil {
		return 0, fmt.Errorf("quiz id must be an integer: %w", quiz.ErrValidation)
	}
	return id, nil
}

func (g *Gateway) handleListQuizzes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizzes := g.api.ListQuizzes(r.Context())
		out := make([]QuizSummary, len(quizzes))
		for i, q := range quizzes {
			out[i] = summarize(q)
		}
		httpserver.WriteJSON(w, http.StatusOK, out)
	}
}

func (g *Gateway) handleGetQuiz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := quizIDParam(r)
		if err != nil {
			g.writeError(w, r, err)
			return
		}
		q, err := g.api.GetQuiz(r.Context(), id)
		if err != nil {
			g.writeError(w, r, err)
			return
		}
		httpserver.WriteJSON(w, http.StatusOK, detail(q))
	}
}

func (g *Gateway) handleCreateQuiz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateQuizRequest
		if err := httpserver.ReadJSON(r, &req); err != nil {
			httpserver.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		q, err := g.api.CreateQuiz(r.Context(), strings.TrimSpace(req.Title), req.Description)
		if err != nil {
			g.writeError(w, r, err)
			return
		}
		httpserver.WriteJSON(w, http.StatusCreated, detail(q))
	}
}

func (g *Gateway) handleAddQuestion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := quizIDParam(r)
		if err != nil {
			g.writeError(w, r, err)
			return
		}
		var req AddQuestionRequest
		if err := httpserver.ReadJSON(r, &req); err != nil {
			httpserver.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.CorrectAnswerIndex == nil {
			httpserver.WriteError(w, http.StatusBadRequest, "correct_answer_index is required")
			return
		}
		q, err := g.api.AddQuestion(r.Context(), id, req.Text, req.Answers, *req.CorrectAnswerIndex)
		if err != nil {
			g.writeError(w, r, err)
			return
		}
		httpserver.WriteJSON(w, http.StatusOK, detail(q))
	}
}

func (g *Gateway) handleInitDefaultQuiz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := g.api.InitDefaultQuiz(r.Context())
		if err != nil {
			g.writeError(w, r, err)
			return
		}
		httpserver.WriteJSON(w, http.StatusOK, detail(q))
	}
}
