package explain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/quizzy/internal/question"
)

const systemPrompt = `You are a patient science and math tutor. Explain in two to four sentences why the correct answer to a multiple-choice question is correct. If the student chose a different option, briefly say what misconception leads to it. Plain text only, no markdown.`

var explanationSchema = &Schema{
	Name:        "answer-explanation",
	Description: "A short explanation of a quiz answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
		},
		"required":             []string{"explanation"},
		"additionalProperties": false,
	},
}

type reply struct {
	Explanation string `json:"explanation"`
}

// Explainer asks a Provider for answer explanations and caches them by
// question and submitted answer. A nil *Explainer is valid and always
// returns ErrDisabled.
type Explainer struct {
	provider Provider
	timeout  time.Duration

	mu    sync.Mutex
	cache map[string]string
}

// NewExplainer creates an Explainer. A zero timeout means no bound beyond
// the caller's context.
func NewExplainer(p Provider, timeout time.Duration) *Explainer {
	return &Explainer{provider: p, timeout: timeout, cache: make(map[string]string)}
}

// Explain returns an explanation of q's answer. submitted is the student's
// answer and may be empty.
func (e *Explainer) Explain(ctx context.Context, q question.Record, submitted string) (string, error) {
	if e == nil || e.provider == nil {
		return "", ErrDisabled
	}

	submitted = strings.TrimSpace(submitted)
	if submitted == q.Answer {
		submitted = ""
	}
	key := q.ID + "\x00" + submitted

	e.mu.Lock()
	cached, ok := e.cache[key]
	e.mu.Unlock()
	if ok {
		return cached, nil
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	c, err := e.provider.Complete(ctx, Prompt{
		System:      systemPrompt,
		User:        userPrompt(q, submitted),
		Schema:      explanationSchema,
		MaxTokens:   400,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("explain %s: %w", q.ID, err)
	}

	var r reply
	if err := json.Unmarshal(c.JSON, &r); err != nil {
		return "", fmt.Errorf("explain %s: %w", q.ID, &ErrInvalidResponse{Content: c.JSON, Err: err})
	}
	text := strings.TrimSpace(r.Explanation)

	e.mu.Lock()
	e.cache[key] = text
	e.mu.Unlock()
	return text, nil
}

func userPrompt(q question.Record, submitted string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s (%s)\n", q.Topic, q.Difficulty)
	fmt.Fprintf(&b, "Question: %s\n", q.Text)
	for i, o := range q.Options {
		fmt.Fprintf(&b, "%c) %s\n", 'A'+i, o)
	}
	fmt.Fprintf(&b, "Correct answer: %s\n", q.Answer)
	if submitted != "" {
		fmt.Fprintf(&b, "Student answered: %s\n", submitted)
	}
	return b.String()
}
