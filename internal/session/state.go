package session

import (
	"errors"
	"time"

	"github.com/abhisek/quizzy/internal/question"
)

// State is the lifecycle state of a practice session.
type State int

const (
	StateActive    State = iota // Serving and grading questions
	StateCompleted              // Target reached and every question answered
	StateEnded                  // Stopped early by the learner
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateCompleted:
		return "completed"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further questions or answers are accepted.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateEnded
}

var (
	// ErrSessionComplete is returned when a question is requested after the
	// target count has been reached.
	ErrSessionComplete = errors.New("session has reached its question count")

	// ErrInactive is returned for any operation on a completed or ended
	// session.
	ErrInactive = errors.New("session is no longer active")

	// ErrAlreadyAnswered is returned when a question is answered twice.
	ErrAlreadyAnswered = errors.New("question already answered")

	// ErrNotCurrent is returned when the answered question is not the most
	// recently asked one.
	ErrNotCurrent = errors.New("question is not the current question")
)

// Answer is one graded submission.
type Answer struct {
	QuestionID string    `json:"question_id"`
	Text       string    `json:"answer"`
	Correct    bool      `json:"correct"`
	AnsweredAt time.Time `json:"answered_at"`
}

// Snapshot is a frozen copy of a session's progress. It shares no memory
// with the session it was taken from.
type Snapshot struct {
	ID         string
	Topic      question.Topic
	Difficulty question.Difficulty
	Target     int
	State      State

	// Asked lists question IDs in the order they were served.
	Asked []string

	// Answers holds graded submissions in the order questions were asked.
	// Questions served but never answered are absent.
	Answers []Answer

	CreatedAt time.Time

	// CompletedAt is zero while the session is active.
	CompletedAt time.Time
}

// Pending returns the ID of the question awaiting an answer, if any.
func (s Snapshot) Pending() (string, bool) {
	if len(s.Asked) == 0 {
		return "", false
	}
	last := s.Asked[len(s.Asked)-1]
	for _, a := range s.Answers {
		if a.QuestionID == last {
			return "", false
		}
	}
	return last, true
}
