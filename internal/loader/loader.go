// Package loader reads question banks from CSV, JSON or SQLite sources and
// turns them into a catalog.
package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/quizzy/internal/catalog"
	"github.com/abhisek/quizzy/internal/question"
	"github.com/abhisek/quizzy/internal/store"
)

// Format names a question bank encoding.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
	FormatSQLite Format = "sqlite"
)

// ErrNoQuestions is returned when a source yields no usable rows.
var ErrNoQuestions = errors.New("no valid questions found")

// Options controls Load.
type Options struct {
	Path string

	// Format is inferred from the file extension when empty.
	Format Format

	// Table is the SQLite table to read. Defaults to store.DefaultTable.
	Table string

	// SkipInvalid drops rows that fail validation with a warning instead
	// of failing the whole load.
	SkipInvalid bool

	Logger *slog.Logger
}

// DetectFormat infers a format from a file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("cannot infer question bank format from %q", path)
	}
}

// ReadRows returns the unvalidated rows of the source described by opts.
func ReadRows(ctx context.Context, opts Options) ([]question.Raw, error) {
	format := opts.Format
	if format == "" {
		f, err := DetectFormat(opts.Path)
		if err != nil {
			return nil, err
		}
		format = f
	}

	switch format {
	case FormatCSV, FormatJSON:
		f, err := os.Open(opts.Path)
		if err != nil {
			return nil, fmt.Errorf("open question bank: %w", err)
		}
		defer f.Close()
		if format == FormatCSV {
			return ReadCSV(f)
		}
		return ReadJSON(f)
	case FormatSQLite:
		if _, err := os.Stat(opts.Path); err != nil {
			return nil, fmt.Errorf("open question bank: %w", err)
		}
		st, err := store.OpenReadOnly(opts.Path, opts.Table)
		if err != nil {
			return nil, err
		}
		defer st.Close()
		return st.Questions(ctx)
	default:
		return nil, fmt.Errorf("unknown question bank format %q", format)
	}
}

// Load reads the source described by opts and builds a catalog from it.
func Load(ctx context.Context, opts Options) (*catalog.Catalog, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	rows, err := ReadRows(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("read question bank", "path", opts.Path, "rows", len(rows))

	if opts.SkipInvalid {
		rows = keepValid(rows, logger)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", opts.Path, ErrNoQuestions)
	}

	c, err := catalog.FromRaw(rows)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded question bank", "path", opts.Path, "questions", c.Len())
	return c, nil
}

func keepValid(rows []question.Raw, logger *slog.Logger) []question.Raw {
	out := rows[:0]
	for _, r := range rows {
		if _, problems := r.Validate(); len(problems) > 0 {
			logger.Warn("skipping invalid question", "row", r.Row, "problems", strings.Join(problems, "; "))
			continue
		}
		out = append(out, r)
	}
	return out
}

// Records validates rows and returns the valid records, for callers that
// store questions rather than quiz on them.
func Records(rows []question.Raw) ([]question.Record, []string) {
	var (
		out      []question.Record
		problems []string
	)
	for _, r := range rows {
		rec, p := r.Validate()
		if len(p) > 0 {
			problems = append(problems, p...)
			continue
		}
		out = append(out, rec)
	}
	return out, problems
}
