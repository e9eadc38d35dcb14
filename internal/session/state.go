package session

import "fmt"

type State int

const (
	NotStarted State = iota
	AwaitingAnswer
	ShowingFeedback
	Completed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case AwaitingAnswer:
		return "awaiting_answer"
	case ShowingFeedback:
		return "showing_feedback"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *State) UnmarshalText(b []byte) error {
	for _, st := range []State{NotStarted, AwaitingAnswer, ShowingFeedback, Completed} {
		if st.String() == string(b) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown session state %q", b)
}

// Question is what the renderer may see of a question: no correctness.
type Question struct {
	Text    string   `json:"text"`
	Answers []string `json:"answers"`
}

// Feedback describes the service's judgment of one submission.
// CorrectAnswerIndex is -1 when the service did not reveal it.
type Feedback struct {
	QuestionIndex      int    `json:"question_index"`
	AnswerIndex        int    `json:"answer_index"`
	IsCorrect          bool   `json:"is_correct"`
	Message            string `json:"message"`
	CorrectAnswer      string `json:"correct_answer,omitempty"`
	CorrectAnswerIndex int    `json:"correct_answer_index"`
}

// View is a snapshot of the session for rendering.
type View struct {
	State         State     `json:"state"`
	QuizID        int       `json:"quiz_id"`
	QuizTitle     string    `json:"quiz_title"`
	QuestionIndex int       `json:"question_index"`
	Question      *Question `json:"question,omitempty"`
	Score         int       `json:"score"`
	Total         int       `json:"total"`
	Feedback      *Feedback `json:"feedback,omitempty"`
}

type Result struct {
	QuizID int `json:"quiz_id"`
	Score  int `json:"score"`
	Total  int `json:"total"`
}

// Percent returns the score as a percentage of the question count.
func (r Result) Percent() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Score) * 100 / float64(r.Total)
}

type EventKind string

const (
	EventStarted   EventKind = "started"
	EventAnswered  EventKind = "answered"
	EventAdvanced  EventKind = "advanced"
	EventCompleted EventKind = "completed"
)

// Event is emitted after every successful transition.
type Event struct {
	Kind EventKind `json:"kind"`
	View View      `json:"view"`
}
