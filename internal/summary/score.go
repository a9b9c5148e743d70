// Package summary derives scores and reviews from session snapshots.
// Nothing here mutates a session.
package summary

import (
	"fmt"
	"math"
	"time"

	"github.com/abhisek/quizzy/internal/catalog"
	"github.com/abhisek/quizzy/internal/question"
	"github.com/abhisek/quizzy/internal/session"
)

// Tally counts answers in one breakdown bucket.
type Tally struct {
	Total    int     `json:"total"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy_percentage"`
}

// Score is the aggregate result of a session.
type Score struct {
	SessionID  string              `json:"session_id"`
	Topic      question.Topic      `json:"topic"`
	Difficulty question.Difficulty `json:"difficulty"`
	State      string              `json:"state"`
	Target     int                 `json:"target_questions"`
	Asked      int                 `json:"questions_asked"`

	Total     int     `json:"total_questions"`
	Correct   int     `json:"correct_answers"`
	Incorrect int     `json:"incorrect_answers"`
	Accuracy  float64 `json:"accuracy_percentage"`

	ElapsedSeconds     int64   `json:"time_taken_seconds"`
	Elapsed            string  `json:"time_taken_formatted"`
	QuestionsPerMinute float64 `json:"questions_per_minute"`
	Grade              string  `json:"performance_grade"`

	ByTopic      map[question.Topic]Tally      `json:"topic_performance"`
	ByDifficulty map[question.Difficulty]Tally `json:"difficulty_performance"`

	Reviews         []Review `json:"reviews,omitempty"`
	Recommendations []string `json:"recommendations"`
}

// Build computes a Score from snap. now stands in for the completion time
// while the session is still active.
func Build(snap session.Snapshot, c *catalog.Catalog, now time.Time) (*Score, error) {
	s := &Score{
		SessionID:    snap.ID,
		Topic:        snap.Topic,
		Difficulty:   snap.Difficulty,
		State:        snap.State.String(),
		Target:       snap.Target,
		Asked:        len(snap.Asked),
		Total:        len(snap.Answers),
		ByTopic:      make(map[question.Topic]Tally),
		ByDifficulty: make(map[question.Difficulty]Tally),
	}

	for i, a := range snap.Answers {
		rec, err := c.Get(a.QuestionID)
		if err != nil {
			return nil, fmt.Errorf("summarize session %s: %w", snap.ID, err)
		}
		if a.Correct {
			s.Correct++
		}
		s.ByTopic[rec.Topic] = tally(s.ByTopic[rec.Topic], a.Correct)
		s.ByDifficulty[rec.Difficulty] = tally(s.ByDifficulty[rec.Difficulty], a.Correct)
		s.Reviews = append(s.Reviews, newReview(i+1, rec, a))
	}
	s.Incorrect = s.Total - s.Correct
	s.Accuracy = Accuracy(s.Correct, s.Total)

	end := snap.CompletedAt
	if end.IsZero() {
		end = now
	}
	s.ElapsedSeconds = int64(end.Sub(snap.CreatedAt) / time.Second)
	if s.ElapsedSeconds < 0 {
		s.ElapsedSeconds = 0
	}
	s.Elapsed = FormatDuration(s.ElapsedSeconds)
	s.QuestionsPerMinute = QuestionsPerMinute(s.Total, s.ElapsedSeconds)
	s.Grade = Grade(s.Accuracy)
	s.Recommendations = Recommend(s)
	return s, nil
}

func tally(t Tally, correct bool) Tally {
	t.Total++
	if correct {
		t.Correct++
	}
	t.Accuracy = Accuracy(t.Correct, t.Total)
	return t
}

// Accuracy returns correct/total as a percentage rounded to one decimal
// place, or 0 when total is 0.
func Accuracy(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return round(float64(correct)/float64(total)*100, 1)
}

// QuestionsPerMinute returns the answer rate rounded to two decimals, or 0
// when no time has elapsed.
func QuestionsPerMinute(answered int, elapsedSeconds int64) float64 {
	if elapsedSeconds <= 0 {
		return 0
	}
	return round(float64(answered)/(float64(elapsedSeconds)/60), 2)
}

// Grade maps an accuracy percentage to a letter grade.
func Grade(accuracy float64) string {
	switch {
	case accuracy >= 90:
		return "A"
	case accuracy >= 80:
		return "B"
	case accuracy >= 70:
		return "C"
	case accuracy >= 60:
		return "D"
	default:
		return "F"
	}
}

// FormatDuration renders whole seconds as "45s", "2m 5s" or "1h 3m".
func FormatDuration(seconds int64) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
	default:
		return fmt.Sprintf("%dh %dm", seconds/3600, (seconds%3600)/60)
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
