package gateway

import (
	"context"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/quizmaster/internal/httpserver"
	"github.com/playperu/quizmaster/internal/session"
)

type CreateSessionRequest struct {
	QuizID *int `json:"quiz_id"`
}

type AnswerRequest struct {
	AnswerIndex *int `json:"answer_index"`
}

// SessionResponse is a session view with its id.
type SessionResponse struct {
	ID string `json:"id"`
	session.View
}

type CompleteResponse struct {
	QuizID  int     `json:"quiz_id"`
	Score   int     `json:"score"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
	Passed  bool    `json:"passed"`
}

// sessionFromRequest resolves {sessionID}, writing a 404 when unknown.
func (g *Gateway) sessionFromRequest(w http.ResponseWriter, r *http.Request) (string, *session.Controller, bool) {
	id := chi.URLParam(r, "sessionID")
	ctrl, ok := g.sessions.Get(id)
	if !ok {
		httpserver.WriteError(w, http.StatusNotFound, "session not found")
		return "", nil, false
	}
	return id, ctrl, true
}

func (g *Gateway) handleCreateSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateSessionRequest
		if err := httpserver.ReadJSON(r, &req); err != nil || req.QuizID == nil {
			httpserver.WriteError(w, http.StatusBadRequest, "quiz_id is required")
			return
		}

		id := g.sessions.NewID()
		ctrl := session.New(g.api,
			session.WithLogger(g.logger.With("session_id", id)),
			session.WithListener(func(e session.Event) { g.broker.Publish(id, e) }),
		)
		if err := ctrl.StartQuiz(r.Context(), *req.QuizID); err != nil {
			g.writeError(w, r, err)
			return
		}
		g.sessions.Add(id, ctrl)

		g.logger.Info("session started", "session_id", id, "quiz_id", *req.QuizID)
		httpserver.WriteJSON(w, http.StatusCreated, SessionResponse{ID: id, View: ctrl.View()})
	}
}

func (g *Gateway) handleGetSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ctrl, ok := g.sessionFromRequest(w, r)
		if !ok {
			return
		}
		httpserver.WriteJSON(w, http.StatusOK, SessionResponse{ID: id, View: ctrl.View()})
	}
}

func (g *Gateway) handleAnswer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ctrl, ok := g.sessionFromRequest(w, r)
		if !ok {
			return
		}
		var req AnswerRequest
		if err := httpserver.ReadJSON(r, &req); err != nil || req.AnswerIndex == nil {
			httpserver.WriteError(w, http.StatusBadRequest, "answer_index is required")
			return
		}

		// Once sent, an answer may already be scored upstream, so a client
		// disconnect must not abort it. The quiz client timeout still applies.
		ctx := context.WithoutCancel(r.Context())
		if _, err := ctrl.SubmitCurrentAnswer(ctx, *req.AnswerIndex); err != nil {
			g.writeError(w, r, err)
			return
		}
		httpserver.WriteJSON(w, http.StatusOK, SessionResponse{ID: id, View: ctrl.View()})
	}
}

func (g *Gateway) handleAdvance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ctrl, ok := g.sessionFromRequest(w, r)
		if !ok {
			return
		}
		if err := ctrl.Advance(); err != nil {
			g.writeError(w, r, err)
			return
		}
		httpserver.WriteJSON(w, http.StatusOK, SessionResponse{ID: id, View: ctrl.View()})
	}
}

func (g *Gateway) handleComplete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ctrl, ok := g.sessionFromRequest(w, r)
		if !ok {
			return
		}
		res, err := ctrl.Complete()
		if err != nil {
			g.writeError(w, r, err)
			return
		}

		pct := math.Round(res.Percent()*10) / 10
		resp := CompleteResponse{
			QuizID:  res.QuizID,
			Score:   res.Score,
			Total:   res.Total,
			Percent: pct,
			Passed:  res.Percent() >= g.passPercent,
		}
		g.logger.Info("session completed", "session_id", id, "score", res.Score, "total", res.Total)
		httpserver.WriteJSON(w, http.StatusOK, resp)
	}
}

func (g *Gateway) handleDeleteSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		if !g.sessions.Remove(id) {
			httpserver.WriteError(w, http.StatusNotFound, "session not found")
			return
		}
		g.broker.Drop(id)
		w.WriteHeader(http.StatusNoContent)
	}
}
