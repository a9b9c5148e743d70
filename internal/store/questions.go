package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/quizzy/internal/question"
)

var columns = []string{
	"id", "topic", "question",
	"option1", "option2", "option3", "option4",
	"answer", "difficulty", "explanation",
}

// Questions reads every row of the questions table in insertion order.
// Rows are returned unvalidated; row numbers are 1-based.
func (s *Store) Questions(ctx context.Context) ([]question.Raw, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(columns...).
		From(entsql.Table(s.table)).
		OrderBy("rowid").
		Query()

	rows := &entsql.Rows{}
	if err := s.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table, err)
	}
	defer rows.Close()

	var out []question.Raw
	for rows.Next() {
		r := question.Raw{Row: len(out) + 1}
		if err := rows.Scan(
			&r.ID, &r.Topic, &r.Text,
			&r.Options[0], &r.Options[1], &r.Options[2], &r.Options[3],
			&r.Answer, &r.Difficulty, &r.Explanation,
		); err != nil {
			return nil, fmt.Errorf("scan %s row %d: %w", s.table, len(out)+1, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", s.table, err)
	}
	return out, nil
}

// SaveQuestions upserts records in a single transaction and returns how
// many were written.
func (s *Store) SaveQuestions(ctx context.Context, records []question.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}

	for _, r := range records {
		query, args := entsql.Dialect(dialect.SQLite).
			Insert(s.table).
			Columns(columns...).
			Values(
				r.ID, string(r.Topic), r.Text,
				r.Options[0], r.Options[1], r.Options[2], r.Options[3],
				r.Answer, string(r.Difficulty), r.Explanation,
			).
			OnConflict(
				entsql.ConflictColumns("id"),
				entsql.ResolveWithNewValues(),
			).
			Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("save question %q: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(records), nil
}

// CountQuestions returns the number of stored questions.
func (s *Store) CountQuestions(ctx context.Context) (int, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(entsql.Count("*")).
		From(entsql.Table(s.table)).
		Query()

	rows := &entsql.Rows{}
	if err := s.drv.Query(ctx, query, args, rows); err != nil {
		return 0, fmt.Errorf("count %s: %w", s.table, err)
	}
	defer rows.Close()

	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, err
		}
	}
	return n, rows.Err()
}
