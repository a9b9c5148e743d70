// Package practice exposes practice sessions to presentation layers. It
// owns the registry of live sessions and wires the catalog, picker and
// summary builder together.
package practice

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizzy/internal/catalog"
	"github.com/abhisek/quizzy/internal/question"
	"github.com/abhisek/quizzy/internal/selection"
	"github.com/abhisek/quizzy/internal/session"
	"github.com/abhisek/quizzy/internal/summary"
)

// Limits bounds the number of questions in a session.
type Limits struct {
	Default int
	Min     int
	Max     int
}

// DefaultLimits returns the stock session length bounds.
func DefaultLimits() Limits {
	return Limits{Default: 10, Min: 5, Max: 50}
}

// Options configures a Service. Only Catalog is required.
type Options struct {
	Catalog *catalog.Catalog
	Picker  *selection.Picker
	Limits  Limits
	Logger  *slog.Logger
	Now     func() time.Time
	NewID   func() string
}

// Service manages practice sessions over one catalog.
//
// A Service is safe for concurrent use. Calls that reach the same session
// are serialized; calls on different sessions run in parallel.
type Service struct {
	catalog *catalog.Catalog
	picker  *selection.Picker
	limits  Limits
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string

	mu       sync.RWMutex
	sessions map[string]*entry
}

// entry serializes access to one session. Lock order is s.mu before
// entry.mu.
type entry struct {
	mu   sync.Mutex
	sess *session.Session
}

// NewService creates a Service, filling unset options with defaults.
func NewService(opts Options) (*Service, error) {
	if opts.Catalog == nil {
		return nil, fmt.Errorf("practice: catalog is required")
	}
	if opts.Picker == nil {
		opts.Picker = selection.New()
	}
	if opts.Limits == (Limits{}) {
		opts.Limits = DefaultLimits()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &Service{
		catalog:  opts.Catalog,
		picker:   opts.Picker,
		limits:   opts.Limits,
		logger:   opts.Logger,
		now:      opts.Now,
		newID:    opts.NewID,
		sessions: make(map[string]*entry),
	}, nil
}

// Catalog returns the catalog sessions draw from.
func (s *Service) Catalog() *catalog.Catalog { return s.catalog }

// Limits returns the configured session length bounds.
func (s *Service) Limits() Limits { return s.limits }

// CreateSession starts a session. A target of 0 selects the default
// length.
//
// A pool smaller than target is only logged, so the returned Info may
// describe a session that cannot complete. NextQuestion reports
// selection.ErrExhaustedPool once the pool runs out.
func (s *Service) CreateSession(topic, difficulty string, target int) (Info, error) {
	t, ok := question.ParseTopic(topic)
	if !ok {
		return Info{}, invalid("topic", "%q is not one of %v", topic, question.AllTopics())
	}
	d, ok := question.ParseDifficulty(difficulty)
	if !ok {
		return Info{}, invalid("difficulty", "%q is not one of %v", difficulty, question.AllDifficulties())
	}
	if target == 0 {
		target = s.limits.Default
	}
	if target < s.limits.Min || target > s.limits.Max {
		return Info{}, invalid("total_questions", "%d is outside %d-%d", target, s.limits.Min, s.limits.Max)
	}

	pool := s.catalog.CountEligible(t, d)
	if pool == 0 {
		return Info{}, invalid("difficulty", "no %s questions at %s difficulty", t, d)
	}
	if pool < target {
		s.logger.Warn("eligible pool smaller than session length",
			"topic", t, "difficulty", d, "pool", pool, "target", target)
	}

	sess, err := session.New(session.Config{
		ID:         s.newID(),
		Topic:      t,
		Difficulty: d,
		Target:     target,
		Catalog:    s.catalog,
		Picker:     s.picker,
		Now:        s.now,
	})
	if err != nil {
		return Info{}, err
	}

	info := infoOf(sess)
	s.mu.Lock()
	s.sessions[sess.ID()] = &entry{sess: sess}
	s.mu.Unlock()

	s.logger.Info("session created", "session_id", sess.ID(), "topic", t, "difficulty", d, "target", target)
	return info, nil
}

// acquire finds a session and locks it. The caller must call the returned
// release func.
func (s *Service) acquire(id string) (*session.Session, func(), error) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrSessionNotFound, id)
	}
	e.mu.Lock()
	return e.sess, e.mu.Unlock, nil
}

// Session returns the status of a session.
func (s *Service) Session(id string) (Info, error) {
	sess, release, err := s.acquire(id)
	if err != nil {
		return Info{}, err
	}
	defer release()
	return infoOf(sess), nil
}

// NextQuestion serves the next unasked question of a session.
func (s *Service) NextQuestion(id string) (question.View, error) {
	sess, release, err := s.acquire(id)
	if err != nil {
		return question.View{}, err
	}
	defer release()
	v, err := sess.NextQuestion()
	if err != nil {
		return question.View{}, err
	}
	return v, nil
}

// Feedback is the result of grading one answer.
type Feedback struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation,omitempty"`

	// Completed is true when this answer finished the session.
	Completed bool `json:"session_completed"`
	Answered  int  `json:"answered"`
	Target    int  `json:"target"`
}

// SubmitAnswer grades an answer to the session's current question.
func (s *Service) SubmitAnswer(id, questionID, answer string) (Feedback, error) {
	sess, release, err := s.acquire(id)
	if err != nil {
		return Feedback{}, err
	}
	defer release()
	res, err := sess.SubmitAnswer(questionID, answer)
	if err != nil {
		return Feedback{}, err
	}
	rec, err := s.catalog.Get(questionID)
	if err != nil {
		return Feedback{}, err
	}

	fb := Feedback{
		Correct:       res.Correct,
		CorrectAnswer: rec.Answer,
		Explanation:   rec.Explanation,
		Completed:     sess.State() == session.StateCompleted,
		Answered:      sess.AnsweredCount(),
		Target:        sess.Target(),
	}
	if fb.Completed {
		s.logger.Info("session completed", "session_id", id, "answered", fb.Answered)
	}
	return fb, nil
}

// EndSession stops a session early.
func (s *Service) EndSession(id string) (Info, error) {
	sess, release, err := s.acquire(id)
	if err != nil {
		return Info{}, err
	}
	defer release()
	if err := sess.End(); err != nil {
		return Info{}, err
	}
	s.logger.Info("session ended", "session_id", id,
		"asked", sess.AskedCount(), "answered", sess.AnsweredCount())
	return infoOf(sess), nil
}

// Summary scores a session in any state.
func (s *Service) Summary(id string) (*summary.Score, error) {
	sess, release, err := s.acquire(id)
	if err != nil {
		return nil, err
	}
	snap := sess.Snapshot()
	release()
	return summary.Build(snap, s.catalog, s.now())
}

// Question returns a catalog record. Used by adapters that need the full
// question after grading, such as explanation lookups.
func (s *Service) Question(id string) (question.Record, error) {
	return s.catalog.Get(id)
}

// Prune forgets finished sessions that completed before cutoff and returns
// how many were dropped. Active sessions are never pruned.
func (s *Service) Prune(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, e := range s.sessions {
		e.mu.Lock()
		at, done := e.sess.CompletedAt()
		e.mu.Unlock()
		if done && at.Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	if n > 0 {
		s.logger.Debug("pruned sessions", "count", n, "remaining", len(s.sessions))
	}
	return n
}

// Len returns the number of tracked sessions.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sessions returns the status of every tracked session, newest first.
func (s *Service) Sessions() []Info {
	s.mu.RLock()
	out := make([]Info, 0, len(s.sessions))
	for _, e := range s.sessions {
		e.mu.Lock()
		out = append(out, infoOf(e.sess))
		e.mu.Unlock()
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Topics lists the topics that have at least one question.
func (s *Service) Topics() []question.Topic { return s.catalog.Topics() }

// Difficulties lists the difficulties that have at least one question.
func (s *Service) Difficulties() []question.Difficulty { return s.catalog.Difficulties() }

// Stats returns question counts by topic and difficulty.
func (s *Service) Stats() catalog.Stats { return s.catalog.Stats() }
