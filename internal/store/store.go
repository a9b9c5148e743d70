package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// DefaultTable is the table question banks are stored in.
const DefaultTable = "questions"

// Store is a SQLite-backed question bank.
type Store struct {
	db    *sql.DB
	drv   *entsql.Driver
	table string
}

// Open connects to the SQLite database at dsn and applies pragmas. The
// questions table is not created; call EnsureSchema before writing.
func Open(dsn string) (*Store, error) {
	return OpenTable(dsn, DefaultTable)
}

// OpenTable is Open with a custom table name.
func OpenTable(dsn, table string) (*Store, error) {
	if table == "" {
		table = DefaultTable
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	return &Store{
		db:    db,
		drv:   entsql.OpenDB(dialect.SQLite, db),
		table: table,
	}, nil
}

// OpenReadOnly opens an existing database file for reading. No journal
// pragmas run, so the file on disk is left exactly as it was found.
func OpenReadOnly(path, table string) (*Store, error) {
	if table == "" {
		table = DefaultTable
	}
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	return &Store{
		db:    db,
		drv:   entsql.OpenDB(dialect.SQLite, db),
		table: table,
	}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// EnsureSchema creates the questions table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	query, args := entsql.Dialect(dialect.SQLite).
		CreateTable(s.table).
		IfNotExists().
		Columns(
			entsql.Column("id").Type("TEXT").Attr("NOT NULL"),
			entsql.Column("topic").Type("TEXT").Attr("NOT NULL"),
			entsql.Column("question").Type("TEXT").Attr("NOT NULL"),
			entsql.Column("option1").Type("TEXT").Attr("NOT NULL"),
			entsql.Column("option2").Type("TEXT").Attr("NOT NULL"),
			entsql.Column("option3").Type("TEXT").Attr("NOT NULL"),
			entsql.Column("option4").Type("TEXT").Attr("NOT NULL"),
			entsql.Column("answer").Type("TEXT").Attr("NOT NULL"),
			entsql.Column("difficulty").Type("TEXT").Attr("NOT NULL"),
			entsql.Column("explanation").Type("TEXT").Attr("NOT NULL DEFAULT ''"),
		).
		PrimaryKey("id").
		Query()
	if err := s.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("create table %s: %w", s.table, err)
	}
	return nil
}

// applyPragmas configures SQLite for single-user access.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the question database path in priority order:
// 1. QUIZZY_DB environment variable
// 2. $XDG_DATA_HOME/quizzy/questions.db
// 3. ~/.local/share/quizzy/questions.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("QUIZZY_DB"); p != "" {
		return p, ensureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "quizzy", "questions.db")
	return p, ensureDir(p)
}

// ensureDir creates the parent directory of path if it doesn't exist.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
