package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/quizzy/internal/question"
)

var requiredColumns = []string{
	"topic", "question", "option1", "option2", "option3", "option4", "answer", "difficulty",
}

// ReadCSV parses a question bank with a header row. Columns may appear in
// any order; id and explanation are optional. Rows are not validated here.
func ReadCSV(r io.Reader) ([]question.Raw, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("csv: file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		index[h] = i
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("csv: missing required columns: %s", strings.Join(missing, ", "))
	}

	field := func(rec []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var rows []question.Raw
	for n := 1; ; n++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv row %d: %w", n, err)
		}
		if blank(rec) {
			n--
			continue
		}
		rows = append(rows, question.Raw{
			Row:         n,
			ID:          field(rec, "id"),
			Topic:       field(rec, "topic"),
			Text:        field(rec, "question"),
			Options:     [question.OptionCount]string{field(rec, "option1"), field(rec, "option2"), field(rec, "option3"), field(rec, "option4")},
			Answer:      field(rec, "answer"),
			Difficulty:  field(rec, "difficulty"),
			Explanation: field(rec, "explanation"),
		})
	}
	return rows, nil
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
