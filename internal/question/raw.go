package question

import (
	"fmt"
	"strings"
)

// Validate checks r and converts it to a Record. It returns every problem
// found rather than stopping at the first one.
func (r Raw) Validate() (Record, []string) {
	var problems []string
	where := fmt.Sprintf("row %d", r.Row)

	topic, ok := ParseTopic(r.Topic)
	if !ok {
		if strings.TrimSpace(r.Topic) == "" {
			problems = append(problems, where+": topic is empty")
		} else {
			problems = append(problems, fmt.Sprintf("%s: unknown topic %q", where, r.Topic))
		}
	}

	difficulty, ok := ParseDifficulty(r.Difficulty)
	if !ok {
		if strings.TrimSpace(r.Difficulty) == "" {
			problems = append(problems, where+": difficulty is empty")
		} else {
			problems = append(problems, fmt.Sprintf("%s: unknown difficulty %q", where, r.Difficulty))
		}
	}

	text := strings.TrimSpace(r.Text)
	if len(text) < MinTextLength {
		problems = append(problems, fmt.Sprintf("%s: question text must be at least %d characters", where, MinTextLength))
	}

	var opts [OptionCount]string
	seen := make(map[string]bool, OptionCount)
	for i, o := range r.Options {
		o = strings.TrimSpace(o)
		if o == "" {
			problems = append(problems, fmt.Sprintf("%s: option %d is empty", where, i+1))
			continue
		}
		if seen[o] {
			problems = append(problems, fmt.Sprintf("%s: option %q is repeated", where, o))
		}
		seen[o] = true
		opts[i] = o
	}

	answer := strings.TrimSpace(r.Answer)
	if answer == "" {
		problems = append(problems, where+": answer is empty")
	} else if !seen[answer] {
		problems = append(problems, fmt.Sprintf("%s: answer %q is not one of the options", where, answer))
	}

	id := strings.TrimSpace(r.ID)
	if id == "" && topic != "" {
		id = fmt.Sprintf("%s_%d", strings.ToLower(string(topic)), r.Row)
	}

	if len(problems) > 0 {
		return Record{}, problems
	}
	return Record{
		ID:          id,
		Topic:       topic,
		Difficulty:  difficulty,
		Kind:        KindMultipleChoice,
		Text:        text,
		Options:     opts,
		Answer:      answer,
		Explanation: strings.TrimSpace(r.Explanation),
	}, nil
}
