// Package session drives a single quiz attempt from the first question to
// completion. Correctness is decided only by the quiz service; answer
// correctness flags present in fetched quiz data are discarded on start.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/playperu/quizmaster/internal/quiz"
)

// Service is the part of the quiz client a session needs.
type Service interface {
	GetQuiz(ctx context.Context, id int) (quiz.Quiz, error)
	SubmitAnswer(ctx context.Context, quizID, questionIndex, answerIndex int) (quiz.SubmitResult, error)
}

type Controller struct {
	svc      Service
	logger   *slog.Logger
	listener func(Event)

	mu        sync.Mutex
	state     State
	quizID    int
	title     string
	questions []Question
	index     int
	score     int
	answered  []bool
	inFlight  bool
	feedback  *Feedback
}

type Option func(*Controller)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithListener registers fn to receive an Event after every transition.
// fn is called without the controller lock held.
func WithListener(fn func(Event)) Option {
	return func(c *Controller) { c.listener = fn }
}

func New(svc Service, opts ...Option) *Controller {
	c := &Controller{svc: svc, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StartQuiz fetches fresh quiz data and starts the session with it.
func (c *Controller) StartQuiz(ctx context.Context, quizID int) error {
	c.mu.Lock()
	if err := c.checkStartable(); err != nil {
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()

	q, err := c.svc.GetQuiz(ctx, quizID)
	if err != nil {
		return fmt.Errorf("fetching quiz %d: %w", quizID, err)
	}
	return c.Start(q)
}

// Start moves NotStarted to AwaitingAnswer(0).
func (c *Controller) Start(q quiz.Quiz) error {
	c.mu.Lock()
	if err := c.checkStartable(); err != nil {
		c.mu.Unlock()
		return err
	}
	if len(q.Questions) == 0 {
		c.mu.Unlock()
		return fmt.Errorf("starting quiz %d: %w", q.ID, quiz.ErrEmptyQuiz)
	}

	questions := make([]Question, len(q.Questions))
	for i, qq := range q.Questions {
		questions[i] = Question{Text: qq.Text, Answers: qq.AnswerTexts()}
	}

	c.quizID = q.ID
	c.title = q.Title
	c.questions = questions
	c.answered = make([]bool, len(questions))
	c.index = 0
	c.score = 0
	c.feedback = nil
	c.state = AwaitingAnswer
	view := c.viewLocked()
	c.mu.Unlock()

	c.logger.Info("quiz session started", "quiz_id", q.ID, "questions", len(questions))
	c.emit(EventStarted, view)
	return nil
}

func (c *Controller) checkStartable() error {
	switch c.state {
	case NotStarted:
		return nil
	case Completed:
		return quiz.ErrSessionFinished
	default:
		return quiz.ErrAlreadyStarted
	}
}

// SubmitCurrentAnswer submits answerIndex for the current question and
// moves AwaitingAnswer(i) to ShowingFeedback(i). On any error the session
// is left exactly as it was, so the call can be retried.
func (c *Controller) SubmitCurrentAnswer(ctx context.Context, answerIndex int) (Feedback, error) {
	c.mu.Lock()
	switch c.state {
	case NotStarted:
		c.mu.Unlock()
		return Feedback{}, quiz.ErrNotStarted
	case Completed:
		c.mu.Unlock()
		return Feedback{}, quiz.ErrSessionFinished
	}
	if c.inFlight {
		c.mu.Unlock()
		return Feedback{}, quiz.ErrSubmissionInFlight
	}
	i := c.index
	if c.answered[i] {
		c.mu.Unlock()
		return Feedback{}, fmt.Errorf("question %d: %w", i, quiz.ErrAlreadyAnswered)
	}
	answers := c.questions[i].Answers
	if answerIndex < 0 || answerIndex >= len(answers) {
		c.mu.Unlock()
		return Feedback{}, fmt.Errorf("answer %d of %d: %w", answerIndex, len(answers), quiz.ErrInvalidAnswerIndex)
	}
	c.inFlight = true
	quizID := c.quizID
	c.mu.Unlock()

	res, err := c.svc.SubmitAnswer(ctx, quizID, i, answerIndex)

	c.mu.Lock()
	c.inFlight = false
	if err != nil {
		c.mu.Unlock()
		c.logger.Warn("answer submission failed", "quiz_id", quizID, "question", i, "error", err)
		return Feedback{}, fmt.Errorf("submitting answer: %w", err)
	}

	fb := Feedback{
		QuestionIndex:      i,
		AnswerIndex:        answerIndex,
		IsCorrect:          res.IsCorrect,
		Message:            res.Message,
		CorrectAnswer:      res.CorrectAnswer,
		CorrectAnswerIndex: revealedIndex(res, answers),
	}
	if res.IsCorrect {
		c.score++
	}
	c.answered[i] = true
	c.feedback = &fb
	c.state = ShowingFeedback
	view := c.viewLocked()
	c.mu.Unlock()

	c.logger.Debug("answer judged", "quiz_id", quizID, "question", i, "correct", res.IsCorrect)
	c.emit(EventAnswered, view)
	return fb, nil
}

// revealedIndex resolves which answer the service said was correct.
// An index wins over text; unknown or out-of-range reveals give -1.
func revealedIndex(res quiz.SubmitResult, answers []string) int {
	if res.IsCorrect {
		return -1
	}
	if idx := res.CorrectAnswerIndex; idx != nil {
		if *idx >= 0 && *idx < len(answers) {
			return *idx
		}
		return -1
	}
	if res.CorrectAnswer == "" {
		return -1
	}
	for i, a := range answers {
		if a == res.CorrectAnswer {
			return i
		}
	}
	return -1
}

// Advance moves ShowingFeedback(i) to AwaitingAnswer(i+1). On the last
// question it fails with ErrNoMoreQuestions; call Complete instead.
func (c *Controller) Advance() error {
	c.mu.Lock()
	if err := c.checkFeedbackShown(); err != nil {
		c.mu.Unlock()
		return err
	}
	if c.index+1 >= len(c.questions) {
		c.mu.Unlock()
		return quiz.ErrNoMoreQuestions
	}
	c.index++
	c.feedback = nil
	c.state = AwaitingAnswer
	view := c.viewLocked()
	c.mu.Unlock()

	c.emit(EventAdvanced, view)
	return nil
}

// Complete moves ShowingFeedback(last) to Completed and returns the final score.
func (c *Controller) Complete() (Result, error) {
	c.mu.Lock()
	if err := c.checkFeedbackShown(); err != nil {
		c.mu.Unlock()
		return Result{}, err
	}
	if c.index+1 < len(c.questions) {
		c.mu.Unlock()
		return Result{}, fmt.Errorf("%d of %d answered: %w", c.index+1, len(c.questions), quiz.ErrQuestionsRemaining)
	}
	c.state = Completed
	res := Result{QuizID: c.quizID, Score: c.score, Total: len(c.questions)}
	view := c.viewLocked()
	c.mu.Unlock()

	c.logger.Info("quiz session completed", "quiz_id", res.QuizID, "score", res.Score, "total", res.Total)
	c.emit(EventCompleted, view)
	return res, nil
}

func (c *Controller) checkFeedbackShown() error {
	switch c.state {
	case NotStarted:
		return quiz.ErrNotStarted
	case Completed:
		return quiz.ErrSessionFinished
	case AwaitingAnswer:
		if c.inFlight {
			return quiz.ErrSubmissionInFlight
		}
		return quiz.ErrNotAnswered
	}
	return nil
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Controller) viewLocked() View {
	v := View{
		State:         c.state,
		QuizID:        c.quizID,
		QuizTitle:     c.title,
		QuestionIndex: c.index,
		Score:         c.score,
		Total:         len(c.questions),
	}
	if c.state == AwaitingAnswer || c.state == ShowingFeedback {
		q := c.questions[c.index]
		v.Question = &Question{Text: q.Text, Answers: append([]string(nil), q.Answers...)}
	}
	if c.feedback != nil {
		fb := *c.feedback
		v.Feedback = &fb
	}
	return v
}

func (c *Controller) emit(kind EventKind, v View) {
	if c.listener != nil {
		c.listener(Event{Kind: kind, View: v})
	}
}
