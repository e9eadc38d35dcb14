package quizclient

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/playperu/quizmaster/internal/quiz"
)

type submitAnswerResponse struct {
	IsCorrect          bool          `json:"is_correct"`
	Message            string        `json:"message"`
	CorrectAnswer      correctAnswer `json:"correct_answer"`
	CorrectAnswerIndex *int          `json:"correct_answer_index"`
}

func (r submitAnswerResponse) result() quiz.SubmitResult {
	res := quiz.SubmitResult{
		IsCorrect:          r.IsCorrect,
		Message:            r.Message,
		CorrectAnswer:      r.CorrectAnswer.Text,
		CorrectAnswerIndex: r.CorrectAnswerIndex,
	}
	if res.CorrectAnswerIndex == nil {
		res.CorrectAnswerIndex = r.CorrectAnswer.Index
	}
	return res
}

// correctAnswer accepts the revealed answer either as its text or as its
// index; servers differ on which one they send.
type correctAnswer struct {
	Text  string
	Index *int
}

func (c *correctAnswer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		return nil
	case len(data) > 0 && data[0] == '"':
		return json.Unmarshal(data, &c.Text)
	default:
		var idx int
		if err := json.Unmarshal(data, &idx); err != nil {
			return fmt.Errorf("correct_answer: expected string or integer: %w", err)
		}
		c.Index = &idx
		return nil
	}
}
