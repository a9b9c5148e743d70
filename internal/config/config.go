// Package config assembles runtime configuration from defaults, a TOML
// file and QUIZZY_* environment variables.
package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"time"
)

// Config is the resolved application configuration.
type Config struct {
	Questions QuestionsConfig
	Session   SessionConfig
	Server    ServerConfig
	Log       LogConfig
	Explain   ExplainConfig
}

// QuestionsConfig locates the question bank.
type QuestionsConfig struct {
	Path string
	// Format is csv, json or sqlite; empty means infer from Path.
	Format string
	// Table is the SQLite table holding questions.
	Table       string
	SkipInvalid bool
}

// SessionConfig bounds session length.
type SessionConfig struct {
	DefaultQuestions int
	MinQuestions     int
	MaxQuestions     int

	// Retention is how long finished sessions stay queryable on the server.
	Retention time.Duration
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // text or json
	File   string // empty means stderr
}

// ExplainConfig toggles LLM explanations. Provider credentials come from
// the environment, see explain.ConfigFromEnv.
type ExplainConfig struct {
	Enabled bool
	Timeout time.Duration
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
	formats    = []string{"", "csv", "json", "sqlite"}
)

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Questions: QuestionsConfig{
			Path:        DefaultQuestionsPath(),
			Table:       "questions",
			SkipInvalid: true,
		},
		Session: SessionConfig{
			DefaultQuestions: 10,
			MinQuestions:     5,
			MaxQuestions:     50,
			Retention:        time.Hour,
		},
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8000,
			AllowedOrigins: []string{"*"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Explain: ExplainConfig{
			Timeout: 10 * time.Second,
		},
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Questions.Path == "" {
		return fmt.Errorf("questions.path is required")
	}
	if !slices.Contains(formats, c.Questions.Format) {
		return fmt.Errorf("questions.format %q must be one of csv, json, sqlite", c.Questions.Format)
	}

	s := c.Session
	if s.MinQuestions < 1 {
		return fmt.Errorf("session.min_questions must be at least 1, got %d", s.MinQuestions)
	}
	if s.MaxQuestions < s.MinQuestions {
		return fmt.Errorf("session.max_questions (%d) is below session.min_questions (%d)", s.MaxQuestions, s.MinQuestions)
	}
	if s.DefaultQuestions < s.MinQuestions || s.DefaultQuestions > s.MaxQuestions {
		return fmt.Errorf("session.default_questions (%d) must be within %d-%d", s.DefaultQuestions, s.MinQuestions, s.MaxQuestions)
	}
	if s.Retention < 0 {
		return fmt.Errorf("session.retention must not be negative")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is outside 1-65535", c.Server.Port)
	}
	if !slices.Contains(logLevels, c.Log.Level) {
		return fmt.Errorf("log.level %q must be one of %v", c.Log.Level, logLevels)
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		return fmt.Errorf("log.format %q must be one of %v", c.Log.Format, logFormats)
	}
	if c.Explain.Timeout <= 0 {
		return fmt.Errorf("explain.timeout must be positive")
	}
	return nil
}

// Load resolves configuration from defaults, the TOML file at path (a
// missing file is fine) and the environment, then validates it. An empty
// path selects DefaultConfigPath.
func Load(path string, getenv func(string) string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	cfg := Default()

	fc, err := LoadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg.applyFile(fc, filepath.Dir(path))

	if err := cfg.applyEnv(getenv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
