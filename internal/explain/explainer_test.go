package explain

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizzy/internal/question"
)

func sampleQuestion() question.Record {
	return question.Record{
		ID:         "chemistry_3",
		Topic:      question.TopicChemistry,
		Difficulty: question.DifficultyEasy,
		Kind:       question.KindMultipleChoice,
		Text:       "What is the chemical symbol for sodium?",
		Options:    [4]string{"So", "Na", "Sd", "N"},
		Answer:     "Na",
	}
}

func TestExplainer_Explain(t *testing.T) {
	stub := NewStub(StubReply{JSON: json.RawMessage(`{"explanation":"  Na comes from the Latin natrium. "}`)})
	e := NewExplainer(stub, time.Second)

	text, err := e.Explain(context.Background(), sampleQuestion(), "So")
	require.NoError(t, err)
	assert.Equal(t, "Na comes from the Latin natrium.", text)

	require.Len(t, stub.Calls, 1)
	p := stub.Calls[0]
	assert.Equal(t, "answer-explanation", p.Schema.Name)
	assert.Contains(t, p.User, "What is the chemical symbol for sodium?")
	assert.Contains(t, p.User, "B) Na")
	assert.Contains(t, p.User, "Correct answer: Na")
	assert.Contains(t, p.User, "Student answered: So")
}

func TestExplainer_Caches(t *testing.T) {
	stub := NewStub(
		StubReply{JSON: json.RawMessage(`{"explanation":"first"}`)},
		StubReply{JSON: json.RawMessage(`{"explanation":"second"}`)},
	)
	e := NewExplainer(stub, 0)
	q := sampleQuestion()

	a, err := e.Explain(context.Background(), q, "So")
	require.NoError(t, err)
	b, err := e.Explain(context.Background(), q, " So ")
	require.NoError(t, err)
	assert.Equal(t, "first", a)
	assert.Equal(t, a, b)
	assert.Equal(t, 1, stub.CallCount())

	c, err := e.Explain(context.Background(), q, "Sd")
	require.NoError(t, err)
	assert.Equal(t, "second", c)
	assert.Equal(t, 2, stub.CallCount())
}

func TestExplainer_CorrectAnswerOmitsStudentLine(t *testing.T) {
	stub := NewStub(StubReply{JSON: json.RawMessage(`{"explanation":"ok"}`)})
	e := NewExplainer(stub, 0)

	_, err := e.Explain(context.Background(), sampleQuestion(), "Na")
	require.NoError(t, err)
	assert.False(t, strings.Contains(stub.Calls[0].User, "Student answered"))
}

func TestExplainer_ProviderError(t *testing.T) {
	e := NewExplainer(NewStub(), 0)

	_, err := e.Explain(context.Background(), sampleQuestion(), "")
	var unavail *ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavail))
}

func TestExplainer_Disabled(t *testing.T) {
	var e *Explainer
	_, err := e.Explain(context.Background(), sampleQuestion(), "")
	assert.ErrorIs(t, err, ErrDisabled)

	_, err = NewExplainer(nil, 0).Explain(context.Background(), sampleQuestion(), "")
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestExplainer_Timeout(t *testing.T) {
	e := NewExplainer(slow{}, 5*time.Millisecond)
	_, err := e.Explain(context.Background(), sampleQuestion(), "")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

type slow struct{}

func (slow) Complete(ctx context.Context, _ Prompt) (*Completion, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slow) Model() string { return "slow" }
