package quizserver

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/playperu/quizmaster/internal/handler/health"
	"github.com/playperu/quizmaster/internal/quiz"
)

type quizPath struct {
	QuizID int `path:"quizID"`
}

type questionPath struct {
	QuizID     int `path:"quizID"`
	QuestionID int `path:"questionID"`
}

type addQuestionInput struct {
	QuizID             int      `path:"quizID"`
	Text               string   `json:"text"`
	Answers            []string `json:"answers"`
	CorrectAnswerIndex int      `json:"correct_answer_index"`
}

type submitAnswerInput struct {
	QuizID      int `path:"quizID"`
	QuestionID  int `path:"questionID"`
	AnswerIndex int `json:"answer_index"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "QuizMaster API"
	r.Spec.Info.Version = "1.0.0"
	r.Spec.Info.WithDescription("REST API for the QuizMaster application")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.AddRespStructure(map[string]health.Result{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(map[string]health.Result{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /
	getRoot, _ := r.NewOperationContext(http.MethodGet, "/")
	getRoot.SetSummary("Welcome message")
	getRoot.AddRespStructure(WelcomeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getRoot)

	// GET /quizzes
	listQuizzes, _ := r.NewOperationContext(http.MethodGet, "/quizzes")
	listQuizzes.SetSummary("List quizzes")
	listQuizzes.AddRespStructure([]quiz.Quiz{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listQuizzes)

	// POST /quizzes
	createQuiz, _ := r.NewOperationContext(http.MethodPost, "/quizzes")
	createQuiz.SetSummary("Create quiz")
	createQuiz.SetDescription("Creates an empty quiz. Questions are added separately.")
	createQuiz.AddReqStructure(CreateQuizRequest{})
	createQuiz.AddRespStructure(quiz.Quiz{}, openapi.WithHTTPStatus(http.StatusCreated))
	createQuiz.AddRespStructure(DetailResponse{}, openapi.WithHTTPStatus(http.StatusUnprocessableEntity))
	_ = r.AddOperation(createQuiz)

	// GET /quizzes/{quizID}
	getQuiz, _ := r.NewOperationContext(http.MethodGet, "/quizzes/{quizID}")
	getQuiz.SetSummary("Get quiz")
	getQuiz.AddReqStructure(quizPath{})
	getQuiz.AddRespStructure(quiz.Quiz{}, openapi.WithHTTPStatus(http.StatusOK))
	getQuiz.AddRespStructure(DetailResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getQuiz)

	// POST /quizzes/{quizID}/questions
	addQuestion, _ := r.NewOperationContext(http.MethodPost, "/quizzes/{quizID}/questions")
	addQuestion.SetSummary("Add question")
	addQuestion.SetDescription("Appends a question. Requires at least two answers and an in-range correct index.")
	addQuestion.AddReqStructure(addQuestionInput{})
	addQuestion.AddRespStructure(quiz.Quiz{}, openapi.WithHTTPStatus(http.StatusOK))
	addQuestion.AddRespStructure(DetailResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	addQuestion.AddRespStructure(DetailResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(addQuestion)

	// GET /quizzes/{quizID}/questions/{questionID}
	getQuestion, _ := r.NewOperationContext(http.MethodGet, "/quizzes/{quizID}/questions/{questionID}")
	getQuestion.SetSummary("Get question")
	getQuestion.AddReqStructure(questionPath{})
	getQuestion.AddRespStructure(quiz.Question{}, openapi.WithHTTPStatus(http.StatusOK))
	getQuestion.AddRespStructure(DetailResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getQuestion)

	// POST /quizzes/{quizID}/questions/{questionID}/submit
	submit, _ := r.NewOperationContext(http.MethodPost, "/quizzes/{quizID}/questions/{questionID}/submit")
	submit.SetSummary("Submit answer")
	submit.SetDescription("Judges an answer. Incorrect answers reveal the correct one.")
	submit.AddReqStructure(submitAnswerInput{})
	submit.AddRespStructure(SubmitAnswerResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	submit.AddRespStructure(DetailResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	submit.AddRespStructure(DetailResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(submit)

	// POST /init-default-quiz
	initDefault, _ := r.NewOperationContext(http.MethodPost, "/init-default-quiz")
	initDefault.SetSummary("Create default quiz")
	initDefault.SetDescription("Creates a new copy of the five-question Python quiz.")
	initDefault.AddRespStructure(quiz.Quiz{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(initDefault)

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
