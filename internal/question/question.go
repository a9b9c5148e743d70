package question

import "strings"

// Topic is a subject area a question belongs to.
type Topic string

const (
	TopicPhysics   Topic = "Physics"
	TopicChemistry Topic = "Chemistry"
	TopicMath      Topic = "Math"
)

// AllTopics returns all topics in display order.
func AllTopics() []Topic {
	return []Topic{TopicPhysics, TopicChemistry, TopicMath}
}

// ParseTopic resolves s to a known topic. Matching ignores surrounding
// whitespace and case, so "physics" and " Physics " both resolve.
func ParseTopic(s string) (Topic, bool) {
	s = strings.TrimSpace(s)
	for _, t := range AllTopics() {
		if strings.EqualFold(s, string(t)) {
			return t, true
		}
	}
	return "", false
}

// Difficulty is the difficulty level of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// AllDifficulties returns all difficulties from easiest to hardest.
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// ParseDifficulty resolves s to a known difficulty, ignoring case.
func ParseDifficulty(s string) (Difficulty, bool) {
	s = strings.TrimSpace(s)
	for _, d := range AllDifficulties() {
		if strings.EqualFold(s, string(d)) {
			return d, true
		}
	}
	return "", false
}

// Kind identifies how a question is answered. Grading dispatches on it.
type Kind string

const (
	// KindMultipleChoice means the learner picks one of OptionCount options.
	KindMultipleChoice Kind = "multiple_choice"
)

const (
	// OptionCount is the number of options on a multiple choice question.
	OptionCount = 4

	// MinTextLength is the minimum length of question text after trimming.
	MinTextLength = 10
)

// Record is one question in the catalog. Records are immutable once the
// catalog is built; per-session progress lives in the session, never here.
type Record struct {
	ID         string
	Topic      Topic
	Difficulty Difficulty
	Kind       Kind

	// Text is the question prompt shown to the learner.
	Text string

	// Options holds the answer options in dataset order.
	Options [OptionCount]string

	// Answer is the text of the correct option.
	Answer string

	// Explanation is an optional worked answer from the dataset.
	Explanation string
}

// HasOption reports whether s is exactly one of the record's options.
func (r Record) HasOption(s string) bool {
	for _, o := range r.Options {
		if o == s {
			return true
		}
	}
	return false
}

// View returns the learner-facing projection of r. It never carries the
// correct answer.
func (r Record) View() View {
	return View{
		ID:         r.ID,
		Topic:      r.Topic,
		Difficulty: r.Difficulty,
		Kind:       r.Kind,
		Text:       r.Text,
		Options:    r.Options[:],
	}
}

// View is a question as presented before grading.
type View struct {
	ID         string     `json:"id"`
	Topic      Topic      `json:"topic"`
	Difficulty Difficulty `json:"difficulty"`
	Kind       Kind       `json:"kind"`
	Text       string     `json:"question"`
	Options    []string   `json:"options"`

	// Number is the 1-based position of the question in its session.
	Number int `json:"number,omitempty"`
	// Of is the session's target question count.
	Of int `json:"of,omitempty"`
}

// Raw holds the loosely typed fields of one dataset row as supplied by a
// loader. The catalog validates and converts it into a Record.
type Raw struct {
	// Row is the 1-based data row number, used in error messages and
	// for the default ID.
	Row         int
	ID          string
	Topic       string
	Text        string
	Options     [OptionCount]string
	Answer      string
	Difficulty  string
	Explanation string
}
