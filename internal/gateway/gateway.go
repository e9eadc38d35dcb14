// Package gateway serves the browser-facing API. It owns one session
// controller per quiz attempt and proxies quiz management to the quiz
// service.
package gateway

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/playperu/quizmaster/internal/handler/health"
	"github.com/playperu/quizmaster/internal/httpserver"
	"github.com/playperu/quizmaster/internal/quiz"
)

// QuizAPI is the quiz service as seen by the gateway.
type QuizAPI interface {
	ListQuizzes(ctx context.Context) []quiz.Quiz
	GetQuiz(ctx context.Context, id int) (quiz.Quiz, error)
	CreateQuiz(ctx context.Context, title, description string) (quiz.Quiz, error)
	AddQuestion(ctx context.Context, quizID int, text string, answers []string, correctIndex int) (quiz.Quiz, error)
	SubmitAnswer(ctx context.Context, quizID, questionIndex, answerIndex int) (quiz.SubmitResult, error)
	InitDefaultQuiz(ctx context.Context) (quiz.Quiz, error)
}

type Gateway struct {
	api      QuizAPI
	logger   *slog.Logger
	sessions *Registry
	broker   *Broker

	passPercent float64
	sessionTTL  time.Duration
	spaDir      string
	checks      map[string]health.Checker
}

type Option func(*Gateway)

// WithPassPercent sets the score percentage needed to pass a quiz.
func WithPassPercent(p float64) Option {
	return func(g *Gateway) { g.passPercent = p }
}

// WithSessionTTL sets how long an untouched session is kept. Zero keeps
// sessions until they are deleted.
func WithSessionTTL(d time.Duration) Option {
	return func(g *Gateway) { g.sessionTTL = d }
}

// WithSPADir serves the single-page app from dir for unmatched routes.
func WithSPADir(dir string) Option {
	return func(g *Gateway) { g.spaDir = dir }
}

func WithHealthChecks(checks map[string]health.Checker) Option {
	return func(g *Gateway) { g.checks = checks }
}

func New(api QuizAPI, logger *slog.Logger, opts ...Option) *Gateway {
	g := &Gateway{
		api:         api,
		logger:      logger,
		sessions:    NewRegistry(),
		broker:      NewBroker(),
		passPercent: 60,
		sessionTTL:  2 * time.Hour,
		checks:      map[string]health.Checker{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

const minSweepInterval = time.Second

// Run evicts idle sessions until ctx is done.
func (g *Gateway) Run(ctx context.Context) error {
	if g.sessionTTL <= 0 {
		<-ctx.Done()
		return nil
	}
	interval := max(min(g.sessionTTL/4, time.Minute), minSweepInterval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			g.evictIdle()
		}
	}
}

func (g *Gateway) evictIdle() {
	for _, id := range g.sessions.Sweep(g.sessionTTL) {
		g.broker.Drop(id)
		g.logger.Info("session evicted", "session_id", id)
	}
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, quiz.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, quiz.ErrValidation), errors.Is(err, quiz.ErrInvalidAnswerIndex):
		return http.StatusBadRequest
	case errors.Is(err, quiz.ErrNetwork):
		return http.StatusBadGateway
	case errors.Is(err, quiz.ErrEmptyQuiz):
		return http.StatusUnprocessableEntity
	case quiz.IsContractError(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (g *Gateway) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		g.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "status", status, "error", err)
	}
	if status == http.StatusInternalServerError {
		httpserver.WriteError(w, status, "internal error")
		return
	}
	httpserver.WriteError(w, status, err.Error())
}
