package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/quizzy/internal/question"
)

// ErrNotFound is returned when a question ID is not in the catalog.
var ErrNotFound = errors.New("question not found")

// Error reports a malformed question set. No session can be started
// against a catalog that failed to build.
type Error struct {
	Problems []string
}

func (e *Error) Error() string {
	if len(e.Problems) == 1 {
		return "catalog: " + e.Problems[0]
	}
	return fmt.Sprintf("catalog: %d problems:\n  %s", len(e.Problems), strings.Join(e.Problems, "\n  "))
}

type key struct {
	topic      question.Topic
	difficulty question.Difficulty
}

// Catalog is an immutable, indexed set of questions. It is safe for
// concurrent reads and is never mutated after New returns.
type Catalog struct {
	records      []question.Record
	byID         map[string]int
	byTopic      map[question.Topic][]string
	byDifficulty map[question.Difficulty][]string
	byPair       map[key][]string
}

// New builds a catalog from records, preserving their order. It fails if
// records is empty, an ID repeats, or a record's answer is not one of its
// options.
func New(records []question.Record) (*Catalog, error) {
	if err := validate(records); err != nil {
		return nil, err
	}

	c := &Catalog{
		records:      make([]question.Record, len(records)),
		byID:         make(map[string]int, len(records)),
		byTopic:      make(map[question.Topic][]string),
		byDifficulty: make(map[question.Difficulty][]string),
		byPair:       make(map[key][]string),
	}
	copy(c.records, records)

	for i, r := range c.records {
		c.byID[r.ID] = i
		c.byTopic[r.Topic] = append(c.byTopic[r.Topic], r.ID)
		c.byDifficulty[r.Difficulty] = append(c.byDifficulty[r.Difficulty], r.ID)
		k := key{r.Topic, r.Difficulty}
		c.byPair[k] = append(c.byPair[k], r.ID)
	}
	return c, nil
}

// FromRaw validates loader rows and builds a catalog from them. Every row
// problem is reported in the returned *Error.
func FromRaw(rows []question.Raw) (*Catalog, error) {
	var problems []string
	records := make([]question.Record, 0, len(rows))
	for _, raw := range rows {
		rec, p := raw.Validate()
		if len(p) > 0 {
			problems = append(problems, p...)
			continue
		}
		records = append(records, rec)
	}
	if len(problems) > 0 {
		return nil, &Error{Problems: problems}
	}
	return New(records)
}

func validate(records []question.Record) error {
	if len(records) == 0 {
		return &Error{Problems: []string{"no questions supplied"}}
	}

	var errs []string
	seen := make(map[string]bool, len(records))
	for i, r := range records {
		if r.ID == "" {
			errs = append(errs, fmt.Sprintf("record %d has an empty ID", i+1))
		} else if seen[r.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %q", r.ID))
		}
		seen[r.ID] = true

		if r.Kind != question.KindMultipleChoice {
			errs = append(errs, fmt.Sprintf("question %q has unsupported kind %q", r.ID, r.Kind))
		}
		if !r.HasOption(r.Answer) {
			errs = append(errs, fmt.Sprintf("question %q answer %q is not one of its options", r.ID, r.Answer))
		}
	}

	if len(errs) > 0 {
		return &Error{Problems: errs}
	}
	return nil
}

// Len returns the number of questions.
func (c *Catalog) Len() int { return len(c.records) }

// Get returns the question with the given ID.
func (c *Catalog) Get(id string) (question.Record, error) {
	i, ok := c.byID[id]
	if !ok {
		return question.Record{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return c.records[i], nil
}

// Eligible returns the IDs of all questions matching topic and difficulty,
// in catalog order. The returned slice is a copy.
func (c *Catalog) Eligible(topic question.Topic, difficulty question.Difficulty) []string {
	ids := c.byPair[key{topic, difficulty}]
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// CountEligible returns the size of the eligible pool without copying it.
func (c *Catalog) CountEligible(topic question.Topic, difficulty question.Difficulty) int {
	return len(c.byPair[key{topic, difficulty}])
}

// ByTopic returns the IDs of all questions in topic.
func (c *Catalog) ByTopic(topic question.Topic) []string {
	return append([]string(nil), c.byTopic[topic]...)
}

// ByDifficulty returns the IDs of all questions at difficulty.
func (c *Catalog) ByDifficulty(difficulty question.Difficulty) []string {
	return append([]string(nil), c.byDifficulty[difficulty]...)
}

// Topics returns the topics that have at least one question, in display
// order.
func (c *Catalog) Topics() []question.Topic {
	var out []question.Topic
	for _, t := range question.AllTopics() {
		if len(c.byTopic[t]) > 0 {
			out = append(out, t)
		}
	}
	return out
}

// Difficulties returns the difficulties that have at least one question.
func (c *Catalog) Difficulties() []question.Difficulty {
	var out []question.Difficulty
	for _, d := range question.AllDifficulties() {
		if len(c.byDifficulty[d]) > 0 {
			out = append(out, d)
		}
	}
	return out
}
