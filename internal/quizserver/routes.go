package quizserver

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/playperu/quizmaster/internal/handler/health"
)

// Routes returns a mount function registering the quiz API on a router.
func Routes(logger *slog.Logger, store Store, checks map[string]health.Checker) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/openapi.json", handleOpenAPI())
		r.Mount("/docs", v5emb.New("QuizMaster API", "/openapi.json", "/docs"))
		r.Mount("/healthz", health.NewHandler(logger, checks).Routes())

		r.Get("/", handleRoot())
		r.Post("/init-default-quiz", handleInitDefaultQuiz(logger, store))

		r.Route("/quizzes", func(r chi.Router) {
			r.Get("/", handleListQuizzes(logger, store))
			r.Post("/", handleCreateQuiz(logger, store))
			r.Get("/{quizID}", handleGetQuiz(logger, store))
			r.Post("/{quizID}/questions", handleAddQuestion(logger, store))
			r.Get("/{quizID}/questions/{questionID}", handleGetQuestion(logger, store))
			r.Post("/{quizID}/questions/{questionID}/submit", handleSubmitAnswer(logger, store))
		})
	}
}
