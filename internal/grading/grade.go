// Package grading checks submitted answers against catalog questions.
package grading

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/quizzy/internal/question"
)

// ErrInvalidAnswer is returned when a submission is not one of the
// question's options. It is distinct from a valid but wrong answer.
var ErrInvalidAnswer = errors.New("answer is not one of the options")

// Result is the outcome of grading one submission.
type Result struct {
	Correct bool
	// Answer is the submission as compared, after trimming.
	Answer string
}

// Grade compares submitted against q's correct answer.
//
// Rules for multiple choice:
//   - leading and trailing whitespace is trimmed
//   - comparison is exact and case-sensitive
//   - a submission matching none of the options is ErrInvalidAnswer
func Grade(q question.Record, submitted string) (Result, error) {
	switch q.Kind {
	case question.KindMultipleChoice:
		return gradeMultipleChoice(q, submitted)
	default:
		return Result{}, fmt.Errorf("grading: unsupported question kind %q", q.Kind)
	}
}

func gradeMultipleChoice(q question.Record, submitted string) (Result, error) {
	answer := strings.TrimSpace(submitted)
	if !q.HasOption(answer) {
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidAnswer, answer)
	}
	return Result{Correct: answer == q.Answer, Answer: answer}, nil
}
