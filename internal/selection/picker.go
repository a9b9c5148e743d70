// Package selection picks questions from a catalog without replacement.
package selection

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/abhisek/quizzy/internal/catalog"
	"github.com/abhisek/quizzy/internal/question"
)

// ErrExhaustedPool is returned when every eligible question has already
// been excluded. A session hitting this cannot reach its target count.
var ErrExhaustedPool = errors.New("no unasked questions left for this topic and difficulty")

// Picker chooses uniformly among eligible, non-excluded questions.
// A Picker is safe for concurrent use.
type Picker struct {
	intN func(n int) int
}

// New returns a Picker backed by the process-wide generator, which is
// seeded from system entropy.
func New() *Picker {
	return &Picker{intN: rand.IntN}
}

// NewSeeded returns a deterministic Picker. Intended for tests.
func NewSeeded(seed uint64) *Picker {
	var mu sync.Mutex
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return &Picker{intN: func(n int) int {
		mu.Lock()
		defer mu.Unlock()
		return r.IntN(n)
	}}
}

// Pick returns one question matching topic and difficulty whose ID is not
// in excluded. The catalog and excluded are not modified; recording the
// chosen ID is the caller's job.
func (p *Picker) Pick(c *catalog.Catalog, topic question.Topic, difficulty question.Difficulty, excluded map[string]bool) (question.Record, error) {
	candidates := Candidates(c, topic, difficulty, excluded)
	if len(candidates) == 0 {
		return question.Record{}, fmt.Errorf("%w (%s/%s, %d already asked)",
			ErrExhaustedPool, topic, difficulty, len(excluded))
	}
	return c.Get(candidates[p.intN(len(candidates))])
}

// Candidates returns the eligible IDs not present in excluded, in catalog
// order.
func Candidates(c *catalog.Catalog, topic question.Topic, difficulty question.Difficulty, excluded map[string]bool) []string {
	eligible := c.Eligible(topic, difficulty)
	out := eligible[:0]
	for _, id := range eligible {
		if !excluded[id] {
			out = append(out, id)
		}
	}
	return out
}
