package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Server.Addr() != "0.0.0.0:8000" {
		t.Errorf("Addr() = %q, want 0.0.0.0:8000", cfg.Server.Addr())
	}
	if cfg.Session.DefaultQuestions != 10 || cfg.Session.MinQuestions != 5 || cfg.Session.MaxQuestions != 50 {
		t.Errorf("session bounds = %+v", cfg.Session)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"), envMap(nil))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("Port = %d, want 8000", cfg.Server.Port)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
[questions]
path = "bank.json"
skip_invalid = false

[session]
default_questions = 20
retention = "30m"

[server]
port = 9090
allowed_origins = ["http://localhost:3000"]

[log]
level = "debug"
format = "json"

[explain]
enabled = true
timeout = "5s"
`)
	cfg, err := Load(path, envMap(nil))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := filepath.Join(filepath.Dir(path), "bank.json"); cfg.Questions.Path != want {
		t.Errorf("Questions.Path = %q, want %q", cfg.Questions.Path, want)
	}
	if cfg.Questions.SkipInvalid {
		t.Error("SkipInvalid = true, want false")
	}
	if cfg.Session.DefaultQuestions != 20 {
		t.Errorf("DefaultQuestions = %d, want 20", cfg.Session.DefaultQuestions)
	}
	if cfg.Session.Retention != 30*time.Minute {
		t.Errorf("Retention = %v, want 30m", cfg.Session.Retention)
	}
	if cfg.Server.Port != 9090 || len(cfg.Server.AllowedOrigins) != 1 {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if !cfg.Explain.Enabled || cfg.Explain.Timeout != 5*time.Second {
		t.Errorf("Explain = %+v", cfg.Explain)
	}
	if cfg.Session.MinQuestions != 5 {
		t.Errorf("unset MinQuestions = %d, want default 5", cfg.Session.MinQuestions)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "[server]\nport = 9090\n")
	cfg, err := Load(path, envMap(map[string]string{
		"QUIZZY_PORT":            "7000",
		"QUIZZY_QUESTIONS":       "/srv/bank.db",
		"QUIZZY_LOG_LEVEL":       "WARN",
		"QUIZZY_EXPLAIN":         "true",
		"QUIZZY_ALLOWED_ORIGINS": "https://a.example, https://b.example",
	}))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("Port = %d, want 7000", cfg.Server.Port)
	}
	if cfg.Questions.Path != "/srv/bank.db" {
		t.Errorf("Questions.Path = %q", cfg.Questions.Path)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
	if !cfg.Explain.Enabled {
		t.Error("Explain.Enabled = false, want true")
	}
	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("AllowedOrigins = %v", cfg.Server.AllowedOrigins)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
		want string
	}{
		{"bad toml", "[server\nport=1", nil, "decode config"},
		{"unknown key", "[server]\nprt = 1\n", nil, "unknown key"},
		{"bad port env", "", map[string]string{"QUIZZY_PORT": "eighty"}, "not an integer"},
		{"port range", "[server]\nport = 70000\n", nil, "server.port"},
		{"bad level", "[log]\nlevel = \"loud\"\n", nil, "log.level"},
		{"default above max", "[session]\ndefault_questions = 60\n", nil, "default_questions"},
		{"min zero", "[session]\nmin_questions = 0\n", nil, "min_questions"},
		{"bad format", "[questions]\nformat = \"xml\"\n", nil, "questions.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file)
			_, err := Load(path, envMap(tt.env))
			if err == nil {
				t.Fatal("Load succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestXDGPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	if got := DefaultConfigPath(); got != "/tmp/cfg/quizzy/config.toml" {
		t.Errorf("DefaultConfigPath() = %q", got)
	}
	if got := DefaultQuestionsPath(); got != "/tmp/data/quizzy/questions.csv" {
		t.Errorf("DefaultQuestionsPath() = %q", got)
	}
}
