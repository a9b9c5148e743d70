package practice

import (
	"time"

	"github.com/abhisek/quizzy/internal/question"
	"github.com/abhisek/quizzy/internal/session"
)

// Info is the externally visible status of a session.
type Info struct {
	ID          string              `json:"session_id"`
	Topic       question.Topic      `json:"topic"`
	Difficulty  question.Difficulty `json:"difficulty"`
	Target      int                 `json:"total_questions"`
	Asked       int                 `json:"questions_asked"`
	Answered    int                 `json:"questions_answered"`
	State       string              `json:"state"`
	CreatedAt   time.Time           `json:"created_at"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`

	// PendingQuestion is the ID of the served but unanswered question.
	PendingQuestion string `json:"pending_question_id,omitempty"`
}

// Active reports whether the session still accepts questions and answers.
func (i Info) Active() bool { return i.State == session.StateActive.String() }

func infoOf(sess *session.Session) Info {
	snap := sess.Snapshot()
	info := Info{
		ID:         snap.ID,
		Topic:      snap.Topic,
		Difficulty: snap.Difficulty,
		Target:     snap.Target,
		Asked:      len(snap.Asked),
		Answered:   len(snap.Answers),
		State:      snap.State.String(),
		CreatedAt:  snap.CreatedAt,
	}
	if !snap.CompletedAt.IsZero() {
		at := snap.CompletedAt
		info.CompletedAt = &at
	}
	if id, ok := snap.Pending(); ok {
		info.PendingQuestion = id
	}
	return info
}
