package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig mirrors the TOML file. Pointer fields distinguish unset keys
// from zero values.
type FileConfig struct {
	Questions struct {
		Path        *string `toml:"path"`
		Format      *string `toml:"format"`
		Table       *string `toml:"table"`
		SkipInvalid *bool   `toml:"skip_invalid"`
	} `toml:"questions"`

	Session struct {
		DefaultQuestions *int           `toml:"default_questions"`
		MinQuestions     *int           `toml:"min_questions"`
		MaxQuestions     *int           `toml:"max_questions"`
		Retention        *time.Duration `toml:"retention"`
	} `toml:"session"`

	Server struct {
		Host           *string  `toml:"host"`
		Port           *int     `toml:"port"`
		AllowedOrigins []string `toml:"allowed_origins"`
	} `toml:"server"`

	Log struct {
		Level  *string `toml:"level"`
		Format *string `toml:"format"`
		File   *string `toml:"file"`
	} `toml:"log"`

	Explain struct {
		Enabled *bool          `toml:"enabled"`
		Timeout *time.Duration `toml:"timeout"`
	} `toml:"explain"`
}

// LoadFile reads a TOML config from path. A missing file is not an error.
func LoadFile(path string) (FileConfig, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("stat config: %w", err)
	}
	var fc FileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return FileConfig{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return fc, nil
}

// applyFile overlays set keys. Relative paths resolve against baseDir.
func (c *Config) applyFile(fc FileConfig, baseDir string) {
	set(&c.Questions.Path, fc.Questions.Path)
	if fc.Questions.Path != nil && !filepath.IsAbs(c.Questions.Path) {
		c.Questions.Path = filepath.Join(baseDir, c.Questions.Path)
	}
	set(&c.Questions.Format, fc.Questions.Format)
	set(&c.Questions.Table, fc.Questions.Table)
	set(&c.Questions.SkipInvalid, fc.Questions.SkipInvalid)

	set(&c.Session.DefaultQuestions, fc.Session.DefaultQuestions)
	set(&c.Session.MinQuestions, fc.Session.MinQuestions)
	set(&c.Session.MaxQuestions, fc.Session.MaxQuestions)
	set(&c.Session.Retention, fc.Session.Retention)

	set(&c.Server.Host, fc.Server.Host)
	set(&c.Server.Port, fc.Server.Port)
	if fc.Server.AllowedOrigins != nil {
		c.Server.AllowedOrigins = fc.Server.AllowedOrigins
	}

	set(&c.Log.Level, fc.Log.Level)
	set(&c.Log.Format, fc.Log.Format)
	set(&c.Log.File, fc.Log.File)

	set(&c.Explain.Enabled, fc.Explain.Enabled)
	set(&c.Explain.Timeout, fc.Explain.Timeout)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
