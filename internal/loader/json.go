package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"

	"github.com/abhisek/quizzy/internal/question"
)

// SupportedMajor is the question bank schema major version this build reads.
const SupportedMajor = "v1"

const bankSchemaURL = "schema://question-bank.json"

var bankSchema = map[string]any{
	"type":     "object",
	"required": []any{"schema_version", "questions"},
	"properties": map[string]any{
		"schema_version": map[string]any{"type": "string"},
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"topic", "question", "options", "answer", "difficulty"},
				"properties": map[string]any{
					"id":       map[string]any{"type": "string"},
					"topic":    map[string]any{"type": "string"},
					"question": map[string]any{"type": "string", "minLength": question.MinTextLength},
					"options": map[string]any{
						"type":     "array",
						"items":    map[string]any{"type": "string", "minLength": 1},
						"minItems": question.OptionCount,
						"maxItems": question.OptionCount,
					},
					"answer":      map[string]any{"type": "string", "minLength": 1},
					"difficulty":  map[string]any{"type": "string"},
					"explanation": map[string]any{"type": "string"},
				},
			},
		},
	},
}

var compileBankSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// The compiler wants decoded JSON values, not Go literals.
	defBytes, err := json.Marshal(bankSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	var def any
	if err := json.Unmarshal(defBytes, &def); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(bankSchemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(bankSchemaURL)
})

type jsonBank struct {
	SchemaVersion string         `json:"schema_version"`
	Questions     []jsonQuestion `json:"questions"`
}

type jsonQuestion struct {
	ID          string   `json:"id"`
	Topic       string   `json:"topic"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Difficulty  string   `json:"difficulty"`
	Explanation string   `json:"explanation"`
}

// ReadJSON parses a JSON question bank, checking it against the bank
// schema and its schema_version against SupportedMajor.
func ReadJSON(r io.Reader) ([]question.Raw, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("json: read: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("json: invalid JSON: %w", err)
	}
	schema, err := compileBankSchema()
	if err != nil {
		return nil, fmt.Errorf("json: compile schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("json: schema validation failed: %w", err)
	}

	var bank jsonBank
	if err := json.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("json: decode: %w", err)
	}
	if !semver.IsValid(bank.SchemaVersion) {
		return nil, fmt.Errorf("json: schema_version %q is not a semantic version", bank.SchemaVersion)
	}
	if major := semver.Major(bank.SchemaVersion); major != SupportedMajor {
		return nil, fmt.Errorf("json: schema_version %s is not supported (want %s.x)", bank.SchemaVersion, SupportedMajor)
	}

	rows := make([]question.Raw, 0, len(bank.Questions))
	for i, q := range bank.Questions {
		raw := question.Raw{
			Row:         i + 1,
			ID:          q.ID,
			Topic:       q.Topic,
			Text:        q.Question,
			Answer:      q.Answer,
			Difficulty:  q.Difficulty,
			Explanation: q.Explanation,
		}
		copy(raw.Options[:], q.Options)
		rows = append(rows, raw)
	}
	return rows, nil
}
