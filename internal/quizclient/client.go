// Package quizclient is a typed client for the quiz service REST API.
//
// A Client holds no mutable state and may be shared by any number of
// sessions. It never retries; retry policy belongs to the caller.
package quizclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/playperu/quizmaster/internal/quiz"
)

// ErrorReporter receives failures of operations that degrade to a safe
// default instead of returning an error.
type ErrorReporter interface {
	ReportError(ctx context.Context, op string, err error)
}

// ReporterFunc adapts a function to ErrorReporter.
type ReporterFunc func(ctx context.Context, op string, err error)

func (f ReporterFunc) ReportError(ctx context.Context, op string, err error) { f(ctx, op, err) }

type Client struct {
	base     *url.URL
	http     *http.Client
	reporter ErrorReporter
	logger   *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds every request made by the client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

func WithErrorReporter(r ErrorReporter) Option {
	return func(c *Client) { c.reporter = r }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New returns a client for the quiz service rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be an absolute http(s) url", baseURL)
	}

	c := &Client{
		base:   u,
		http:   &http.Client{Timeout: 10 * time.Second},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.reporter == nil {
		c.reporter = ReporterFunc(func(ctx context.Context, op string, err error) {
			c.logger.ErrorContext(ctx, "quiz api call failed", "op", op, "error", err)
		})
	}
	return c, nil
}

// ListQuizzes never fails: any error is reported and an empty list returned.
func (c *Client) ListQuizzes(ctx context.Context) []quiz.Quiz {
	var quizzes []quiz.Quiz
	if err := c.do(ctx, "list quizzes", http.MethodGet, "/quizzes", nil, &quizzes, classifyNetwork); err != nil {
		c.reporter.ReportError(ctx, "list quizzes", err)
		return []quiz.Quiz{}
	}
	if quizzes == nil {
		quizzes = []quiz.Quiz{}
	}
	return quizzes
}

func (c *Client) GetQuiz(ctx context.Context, id int) (quiz.Quiz, error) {
	var q quiz.Quiz
	err := c.do(ctx, "get quiz", http.MethodGet, "/quizzes/"+strconv.Itoa(id), nil, &q,
		func(int) error { return quiz.ErrNotFound })
	return q, err
}

type createQuizRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (c *Client) CreateQuiz(ctx context.Context, title, description string) (quiz.Quiz, error) {
	if strings.TrimSpace(title) == "" {
		return quiz.Quiz{}, fmt.Errorf("create quiz: title is required: %w", quiz.ErrValidation)
	}

	var q quiz.Quiz
	err := c.do(ctx, "create quiz", http.MethodPost, "/quizzes",
		createQuizRequest{Title: title, Description: description}, &q,
		func(int) error { return quiz.ErrValidation })
	return q, err
}

type addQuestionRequest struct {
	Text               string   `json:"text"`
	Answers            []string `json:"answers"`
	CorrectAnswerIndex int      `json:"correct_answer_index"`
}

// AddQuestion validates the question locally before sending it; an
// invalid question never reaches the service.
func (c *Client) AddQuestion(ctx context.Context, quizID int, text string, answers []string, correctIndex int) (quiz.Quiz, error) {
	if err := quiz.ValidateQuestion(text, answers, correctIndex); err != nil {
		return quiz.Quiz{}, fmt.Errorf("add question: %w", err)
	}

	var q quiz.Quiz
	err := c.do(ctx, "add question", http.MethodPost, fmt.Sprintf("/quizzes/%d/questions", quizID),
		addQuestionRequest{Text: text, Answers: answers, CorrectAnswerIndex: correctIndex}, &q,
		classifyNotFoundOrValidation)
	return q, err
}

type submitAnswerRequest struct {
	AnswerIndex int `json:"answer_index"`
}

// SubmitAnswer asks the service to judge answerIndex for the given question.
// The result is the only source of truth about correctness.
func (c *Client) SubmitAnswer(ctx context.Context, quizID, questionIndex, answerIndex int) (quiz.SubmitResult, error) {
	var resp submitAnswerResponse
	err := c.do(ctx, "submit answer", http.MethodPost,
		fmt.Sprintf("/quizzes/%d/questions/%d/submit", quizID, questionIndex),
		submitAnswerRequest{AnswerIndex: answerIndex}, &resp,
		classifyNotFoundOrValidation)
	if err != nil {
		return quiz.SubmitResult{}, err
	}
	return resp.result(), nil
}

func (c *Client) InitDefaultQuiz(ctx context.Context) (quiz.Quiz, error) {
	var q quiz.Quiz
	err := c.do(ctx, "init default quiz", http.MethodPost, "/init-default-quiz", nil, &q,
		func(int) error { return quiz.ErrValidation })
	return q, err
}

// Ping checks that the service root answers with a 2xx status.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, "ping", http.MethodGet, "/", nil, nil, classifyNetwork)
}

func classifyNetwork(int) error { return quiz.ErrNetwork }

func classifyNotFoundOrValidation(status int) error {
	switch {
	case status == http.StatusNotFound:
		return quiz.ErrNotFound
	case status >= 500:
		return quiz.ErrNetwork
	default:
		return quiz.ErrValidation
	}
}

// do performs one request/response exchange. Transport and decoding
// failures wrap quiz.ErrNetwork; non-2xx statuses become *quiz.APIError
// with the kind chosen by classify.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any, classify func(status int) error) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encoding request: %w", op, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, reqBody)
	if err != nil {
		return fmt.Errorf("%s: building request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, quiz.ErrNetwork, err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "quiz api call",
		"op", op,
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &quiz.APIError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Detail:     readDetail(resp.Body),
			Kind:       classify(resp.StatusCode),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decoding response: %w: %w", op, quiz.ErrNetwork, err)
	}
	return nil
}

// readDetail extracts the error message from a FastAPI-style {"detail": ...}
// or a {"error": ...} body.
func readDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}
	var body struct {
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return strings.TrimSpace(string(data))
	}
	if len(body.Detail) > 0 {
		var s string
		if err := json.Unmarshal(body.Detail, &s); err == nil {
			return s
		}
		return string(body.Detail)
	}
	return body.Error
}
