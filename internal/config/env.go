package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EnvPrefix prefixes every environment variable read by this package.
const EnvPrefix = "QUIZZY_"

// applyEnv overlays QUIZZY_* variables. getenv is usually os.Getenv.
func (c *Config) applyEnv(getenv func(string) string) error {
	if getenv == nil {
		return nil
	}
	env := func(name string) string { return strings.TrimSpace(getenv(EnvPrefix + name)) }

	if v := env("QUESTIONS"); v != "" {
		c.Questions.Path = v
	}
	if v := env("QUESTIONS_FORMAT"); v != "" {
		c.Questions.Format = strings.ToLower(v)
	}
	if v := env("QUESTIONS_TABLE"); v != "" {
		c.Questions.Table = v
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"DEFAULT_QUESTIONS", &c.Session.DefaultQuestions},
		{"MIN_QUESTIONS", &c.Session.MinQuestions},
		{"MAX_QUESTIONS", &c.Session.MaxQuestions},
		{"PORT", &c.Server.Port},
	}
	for _, e := range ints {
		if v := env(e.name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s%s: %q is not an integer", EnvPrefix, e.name, v)
			}
			*e.dst = n
		}
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{"SKIP_INVALID", &c.Questions.SkipInvalid},
		{"EXPLAIN", &c.Explain.Enabled},
	}
	for _, e := range bools {
		if v := env(e.name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s%s: %q is not a boolean", EnvPrefix, e.name, v)
			}
			*e.dst = b
		}
	}

	durations := []struct {
		name string
		dst  *time.Duration
	}{
		{"SESSION_RETENTION", &c.Session.Retention},
		{"EXPLAIN_TIMEOUT", &c.Explain.Timeout},
	}
	for _, e := range durations {
		if v := env(e.name); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, e.name, err)
			}
			*e.dst = d
		}
	}

	if v := env("HOST"); v != "" {
		c.Server.Host = v
	}
	if v := env("ALLOWED_ORIGINS"); v != "" {
		c.Server.AllowedOrigins = splitList(v)
	}
	if v := env("LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := env("LOG_FORMAT"); v != "" {
		c.Log.Format = strings.ToLower(v)
	}
	if v := env("LOG_FILE"); v != "" {
		c.Log.File = v
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
