package session

import (
	"github.com/abhisek/quizzy/internal/question"
	"github.com/abhisek/quizzy/internal/summary"
)

// questionReadyMsg carries the next question or the reason there is none.
type questionReadyMsg struct {
	Question question.View
	Err      error
}

// explanationMsg carries an LLM explanation for a graded question.
type explanationMsg struct {
	QuestionID string
	Text       string
	Err        error
}

// sessionEndMsg is sent to trigger the session end flow.
type sessionEndMsg struct{}

// summaryReadyMsg carries the final score.
type summaryReadyMsg struct {
	Score *summary.Score
	Err   error
}
