package gateway

import (
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/playperu/quizmaster/internal/handler/health"
)

// Routes registers the gateway API on r.
func (g *Gateway) Routes(r chi.Router) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("QuizMaster Gateway API", "/openapi.json", "/docs"))
	r.Mount("/healthz", health.NewHandler(g.logger, g.checks).Routes())

	r.Route("/api", func(r chi.Router) {
		r.Get("/quizzes", g.handleListQuizzes())
		r.Post("/quizzes", g.handleCreateQuiz())
		r.Get("/quizzes/{quizID}", g.handleGetQuiz())
		r.Post("/quizzes/{quizID}/questions", g.handleAddQuestion())
		r.Post("/init-default-quiz", g.handleInitDefaultQuiz())

		r.Post("/sessions", g.handleCreateSession())
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", g.handleGetSession())
			r.Delete("/", g.handleDeleteSession())
			r.Post("/answer", g.handleAnswer())
			r.Post("/advance", g.handleAdvance())
			r.Post("/complete", g.handleComplete())
			r.Get("/events", g.handleEvents())
			r.Get("/ws", g.handleWS())
		})
	})

	if g.spaDir != "" {
		if info, err := os.Stat(g.spaDir); err == nil && info.IsDir() {
			g.logger.Info("serving SPA", "dir", g.spaDir)
			r.NotFound(handleSPA(g.spaDir))
		}
	}
}
