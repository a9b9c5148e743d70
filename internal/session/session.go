// Package session implements the practice session state machine.
//
// A Session is single-owner: exactly one caller drives it, so it carries no
// locking. Concurrent use of one Session is a caller bug with undefined
// behavior. Distinct sessions share only the read-only catalog and may run
// in parallel.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/quizzy/internal/catalog"
	"github.com/abhisek/quizzy/internal/grading"
	"github.com/abhisek/quizzy/internal/question"
	"github.com/abhisek/quizzy/internal/selection"
)

// Config holds everything needed to start a session.
type Config struct {
	ID         string
	Topic      question.Topic
	Difficulty question.Difficulty
	Target     int
	Catalog    *catalog.Catalog
	Picker     *selection.Picker

	// Now defaults to time.Now.
	Now func() time.Time
}

// Session is one bounded practice run over a single topic and difficulty.
type Session struct {
	id         string
	topic      question.Topic
	difficulty question.Difficulty
	target     int

	catalog *catalog.Catalog
	picker  *selection.Picker
	now     func() time.Time

	state       State
	asked       []string
	excluded    map[string]bool
	answers     map[string]Answer
	createdAt   time.Time
	completedAt time.Time
}

// New creates a session in the active state with nothing asked yet.
func New(cfg Config) (*Session, error) {
	if cfg.Catalog == nil || cfg.Picker == nil {
		return nil, errors.New("session: catalog and picker are required")
	}
	if cfg.Target < 1 {
		return nil, fmt.Errorf("session: target must be positive, got %d", cfg.Target)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Session{
		id:         cfg.ID,
		topic:      cfg.Topic,
		difficulty: cfg.Difficulty,
		target:     cfg.Target,
		catalog:    cfg.Catalog,
		picker:     cfg.Picker,
		now:        now,
		state:      StateActive,
		excluded:   make(map[string]bool, cfg.Target),
		answers:    make(map[string]Answer, cfg.Target),
		createdAt:  now(),
	}, nil
}

func (s *Session) ID() string                      { return s.id }
func (s *Session) Topic() question.Topic           { return s.topic }
func (s *Session) Difficulty() question.Difficulty { return s.difficulty }
func (s *Session) Target() int                     { return s.target }
func (s *Session) State() State                    { return s.state }
func (s *Session) CreatedAt() time.Time            { return s.createdAt }

// CompletedAt returns the completion time and whether the session has one.
func (s *Session) CompletedAt() (time.Time, bool) {
	return s.completedAt, !s.completedAt.IsZero()
}

// AskedCount returns how many questions have been served.
func (s *Session) AskedCount() int { return len(s.asked) }

// AnsweredCount returns how many questions have been graded.
func (s *Session) AnsweredCount() int { return len(s.answers) }

// NextQuestion selects an unasked question and records it as asked. On any
// error the session is unchanged.
func (s *Session) NextQuestion() (question.View, error) {
	if s.state.Terminal() {
		return question.View{}, ErrInactive
	}
	if len(s.asked) >= s.target {
		return question.View{}, ErrSessionComplete
	}

	rec, err := s.picker.Pick(s.catalog, s.topic, s.difficulty, s.excluded)
	if err != nil {
		return question.View{}, err
	}

	s.asked = append(s.asked, rec.ID)
	s.excluded[rec.ID] = true

	v := rec.View()
	v.Number = len(s.asked)
	v.Of = s.target
	return v, nil
}

// SubmitAnswer grades text against the most recently asked question and
// records the result. The session completes when the target has been
// reached and every asked question is answered. On any error the session
// is unchanged.
func (s *Session) SubmitAnswer(questionID, text string) (grading.Result, error) {
	if s.state.Terminal() {
		return grading.Result{}, ErrInactive
	}
	if _, done := s.answers[questionID]; done {
		return grading.Result{}, fmt.Errorf("%w: %q", ErrAlreadyAnswered, questionID)
	}
	if len(s.asked) == 0 || s.asked[len(s.asked)-1] != questionID {
		return grading.Result{}, fmt.Errorf("%w: %q", ErrNotCurrent, questionID)
	}

	rec, err := s.catalog.Get(questionID)
	if err != nil {
		return grading.Result{}, err
	}
	res, err := grading.Grade(rec, text)
	if err != nil {
		return grading.Result{}, err
	}

	now := s.now()
	s.answers[questionID] = Answer{
		QuestionID: questionID,
		Text:       res.Answer,
		Correct:    res.Correct,
		AnsweredAt: now,
	}

	if len(s.asked) == s.target && len(s.answers) == len(s.asked) {
		s.state = StateCompleted
		s.completedAt = s.stamp(now)
	}
	return res, nil
}

// End stops the session early. Answers recorded so far still count toward
// the summary.
func (s *Session) End() error {
	if s.state.Terminal() {
		return ErrInactive
	}
	s.state = StateEnded
	s.completedAt = s.stamp(s.now())
	return nil
}

// stamp clamps t so a completion time never precedes creation, even if the
// wall clock stepped backwards.
func (s *Session) stamp(t time.Time) time.Time {
	if t.Before(s.createdAt) {
		return s.createdAt
	}
	return t
}

// Snapshot returns a frozen copy of the session's progress.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		ID:          s.id,
		Topic:       s.topic,
		Difficulty:  s.difficulty,
		Target:      s.target,
		State:       s.state,
		Asked:       append([]string(nil), s.asked...),
		CreatedAt:   s.createdAt,
		CompletedAt: s.completedAt,
	}
	for _, id := range s.asked {
		if a, ok := s.answers[id]; ok {
			snap.Answers = append(snap.Answers, a)
		}
	}
	return snap
}
