package summary

import (
	"github.com/abhisek/quizzy/internal/question"
	"github.com/abhisek/quizzy/internal/session"
)

// Review is one answered question shown back to the learner.
type Review struct {
	Number        int                 `json:"question_number"`
	QuestionID    string              `json:"question_id"`
	Text          string              `json:"question"`
	Options       []string            `json:"options"`
	UserAnswer    string              `json:"user_answer"`
	CorrectAnswer string              `json:"correct_answer"`
	Correct       bool                `json:"correct"`
	Explanation   string              `json:"explanation,omitempty"`
	Topic         question.Topic      `json:"topic"`
	Difficulty    question.Difficulty `json:"difficulty"`
}

func newReview(n int, rec question.Record, a session.Answer) Review {
	return Review{
		Number:        n,
		QuestionID:    rec.ID,
		Text:          rec.Text,
		Options:       rec.Options[:],
		UserAnswer:    a.Text,
		CorrectAnswer: rec.Answer,
		Correct:       a.Correct,
		Explanation:   rec.Explanation,
		Topic:         rec.Topic,
		Difficulty:    rec.Difficulty,
	}
}

// ReviewFilter selects which reviews to keep.
type ReviewFilter string

const (
	ReviewsAll       ReviewFilter = "all"
	ReviewsIncorrect ReviewFilter = "incorrect"
	ReviewsCorrect   ReviewFilter = "correct"
	ReviewsNone      ReviewFilter = "none"
)

// ParseReviewFilter resolves s, defaulting to ReviewsAll for "".
func ParseReviewFilter(s string) (ReviewFilter, bool) {
	switch f := ReviewFilter(s); f {
	case "":
		return ReviewsAll, true
	case ReviewsAll, ReviewsIncorrect, ReviewsCorrect, ReviewsNone:
		return f, true
	}
	return "", false
}

// FilterReviews returns the reviews matching f, preserving order.
func FilterReviews(reviews []Review, f ReviewFilter) []Review {
	switch f {
	case ReviewsAll:
		return reviews
	case ReviewsNone:
		return nil
	}
	var out []Review
	for _, r := range reviews {
		if r.Correct == (f == ReviewsCorrect) {
			out = append(out, r)
		}
	}
	return out
}
