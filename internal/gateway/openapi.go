package gateway

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/playperu/quizmaster/internal/handler/health"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

type quizPath struct {
	QuizID int `path:"quizID"`
}

type sessionPath struct {
	SessionID string `path:"sessionID"`
}

type addQuestionInput struct {
	QuizID             int      `path:"quizID"`
	Text               string   `json:"text"`
	Answers            []string `json:"answers"`
	CorrectAnswerIndex int      `json:"correct_answer_index"`
}

type answerInput struct {
	SessionID   string `path:"sessionID"`
	AnswerIndex int    `json:"answer_index"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "QuizMaster Gateway API"
	r.Spec.Info.Version = "1.0.0"
	r.Spec.Info.WithDescription("Browser-facing API for taking quizzes.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Reports whether the quiz service is reachable.")
	getHealthz.AddRespStructure(map[string]health.Result{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(map[string]health.Result{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/quizzes
	listQuizzes, _ := r.NewOperationContext(http.MethodGet, "/api/quizzes")
	listQuizzes.SetSummary("List quizzes")
	listQuizzes.SetDescription("Returns quiz summaries. Empty when the quiz service is unavailable.")
	listQuizzes.AddRespStructure([]QuizSummary{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listQuizzes)

	// POST /api/quizzes
	createQuiz, _ := r.NewOperationContext(http.MethodPost, "/api/quizzes")
	createQuiz.SetSummary("Create quiz")
	createQuiz.AddReqStructure(CreateQuizRequest{})
	createQuiz.AddRespStructure(QuizDetail{}, openapi.WithHTTPStatus(http.StatusCreated))
	createQuiz.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	createQuiz.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadGateway))
	_ = r.AddOperation(createQuiz)

	// GET /api/quizzes/{quizID}
	getQuiz, _ := r.NewOperationContext(http.MethodGet, "/api/quizzes/{quizID}")
	getQuiz.SetSummary("Get quiz")
	getQuiz.SetDescription("Returns questions and answer texts without correctness.")
	getQuiz.AddReqStructure(quizPath{})
	getQuiz.AddRespStructure(QuizDetail{}, openapi.WithHTTPStatus(http.StatusOK))
	getQuiz.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getQuiz)

	// POST /api/quizzes/{quizID}/questions
	addQuestion, _ := r.NewOperationContext(http.MethodPost, "/api/quizzes/{quizID}/questions")
	addQuestion.SetSummary("Add question")
	addQuestion.AddReqStructure(addQuestionInput{})
	addQuestion.AddRespStructure(QuizDetail{}, openapi.WithHTTPStatus(http.StatusOK))
	addQuestion.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	addQuestion.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(addQuestion)

	// POST /api/init-default-quiz
	initDefault, _ := r.NewOperationContext(http.MethodPost, "/api/init-default-quiz")
	initDefault.SetSummary("Create default quiz")
	initDefault.AddRespStructure(QuizDetail{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(initDefault)

	// POST /api/sessions
	createSession, _ := r.NewOperationContext(http.MethodPost, "/api/sessions")
	createSession.SetSummary("Start session")
	createSession.SetDescription("Fetches the quiz fresh and starts a session on its first question.")
	createSession.AddReqStructure(CreateSessionRequest{})
	createSession.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	createSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	createSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnprocessableEntity))
	_ = r.AddOperation(createSession)

	// GET /api/sessions/{sessionID}
	getSession, _ := r.NewOperationContext(http.MethodGet, "/api/sessions/{sessionID}")
	getSession.SetSummary("Get session")
	getSession.AddReqStructure(sessionPath{})
	getSession.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getSession)

	// DELETE /api/sessions/{sessionID}
	deleteSession, _ := r.NewOperationContext(http.MethodDelete, "/api/sessions/{sessionID}")
	deleteSession.SetSummary("Discard session")
	deleteSession.AddReqStructure(sessionPath{})
	deleteSession.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	deleteSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(deleteSession)

	// POST /api/sessions/{sessionID}/answer
	answer, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{sessionID}/answer")
	answer.SetSummary("Submit answer")
	answer.SetDescription("Submits an answer for the current question. The view carries the feedback.")
	answer.AddReqStructure(answerInput{})
	answer.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	answer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	answer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	answer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadGateway))
	_ = r.AddOperation(answer)

	// POST /api/sessions/{sessionID}/advance
	advance, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{sessionID}/advance")
	advance.SetSummary("Next question")
	advance.AddReqStructure(sessionPath{})
	advance.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	advance.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(advance)

	// POST /api/sessions/{sessionID}/complete
	complete, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{sessionID}/complete")
	complete.SetSummary("Complete session")
	complete.SetDescription("Finishes the quiz after the last question and reports the score.")
	complete.AddReqStructure(sessionPath{})
	complete.AddRespStructure(CompleteResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	complete.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(complete)

	// GET /api/sessions/{sessionID}/events
	events, _ := r.NewOperationContext(http.MethodGet, "/api/sessions/{sessionID}/events")
	events.SetSummary("SSE event stream")
	events.SetDescription("Server-Sent Events stream of session transitions.")
	events.AddReqStructure(sessionPath{})
	events.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(events)

	// GET /api/sessions/{sessionID}/ws
	ws, _ := r.NewOperationContext(http.MethodGet, "/api/sessions/{sessionID}/ws")
	ws.SetSummary("WebSocket event stream")
	ws.SetDescription("Upgrades to a WebSocket that pushes session transitions as JSON messages.")
	ws.AddReqStructure(sessionPath{})
	ws.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(ws)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
