package explain

import (
	"context"
	"encoding/json"
	"sync"
)

// StubReply is a canned reply for Stub.
type StubReply struct {
	JSON json.RawMessage
	Err  error
}

// Stub is a deterministic Provider. It returns canned replies in FIFO
// order and records every prompt it receives.
type Stub struct {
	mu      sync.Mutex
	replies []StubReply
	Calls   []Prompt
}

// NewStub creates a Stub with the given replies.
func NewStub(replies ...StubReply) *Stub {
	return &Stub{replies: replies}
}

// Complete returns the next reply, or ErrProviderUnavailable once the
// queue is empty. Replies are checked against the prompt's schema like a
// real provider would.
func (s *Stub) Complete(_ context.Context, p Prompt) (*Completion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Calls = append(s.Calls, p)
	if len(s.replies) == 0 {
		return nil, &ErrProviderUnavailable{}
	}

	r := s.replies[0]
	s.replies = s.replies[1:]
	if r.Err != nil {
		return nil, r.Err
	}
	if err := checkReply(p.Schema, r.JSON); err != nil {
		return nil, err
	}
	return &Completion{JSON: r.JSON, Model: "stub"}, nil
}

func (s *Stub) Model() string { return "stub" }

// Add queues another reply.
func (s *Stub) Add(r StubReply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies = append(s.replies, r)
}

// CallCount returns how many times Complete was called.
func (s *Stub) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}
