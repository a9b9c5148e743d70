package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizzy/internal/catalog"
	"github.com/abhisek/quizzy/internal/config"
	"github.com/abhisek/quizzy/internal/explain"
	"github.com/abhisek/quizzy/internal/loader"
	"github.com/abhisek/quizzy/internal/logging"
	"github.com/abhisek/quizzy/internal/practice"
)

// env holds what every command needs: configuration, a logger and the
// question catalog.
type env struct {
	cfg     config.Config
	logger  *slog.Logger
	catalog *catalog.Catalog
	closer  io.Closer
}

func (e *env) Close() error {
	return e.closer.Close()
}

// loadConfig resolves configuration with --config and --questions applied
// on top of the file and environment.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, os.Getenv)
	if err != nil {
		return config.Config{}, err
	}
	if q, _ := cmd.Flags().GetString("questions"); q != "" {
		cfg.Questions.Path = q
		cfg.Questions.Format = ""
	}
	return cfg, nil
}

// setup loads config, opens the logger and loads the question bank.
// logOut is where logs go when no log file is configured.
func setup(cmd *cobra.Command, logOut io.Writer) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, closer, err := logging.New(cfg.Log, logOut)
	if err != nil {
		return nil, err
	}

	cat, err := loader.Load(cmd.Context(), loader.Options{
		Path:        cfg.Questions.Path,
		Format:      loader.Format(cfg.Questions.Format),
		Table:       cfg.Questions.Table,
		SkipInvalid: cfg.Questions.SkipInvalid,
		Logger:      logger,
	})
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("load questions: %w", err)
	}

	return &env{cfg: cfg, logger: logger, catalog: cat, closer: closer}, nil
}

// service builds the practice service over the loaded catalog.
func (e *env) service() (*practice.Service, error) {
	return practice.NewService(practice.Options{
		Catalog: e.catalog,
		Limits: practice.Limits{
			Default: e.cfg.Session.DefaultQuestions,
			Min:     e.cfg.Session.MinQuestions,
			Max:     e.cfg.Session.MaxQuestions,
		},
		Logger: e.logger,
	})
}

// explainer returns nil when explanations are turned off or no provider
// credentials are present. force ignores the explain.enabled setting.
func (e *env) explainer(ctx context.Context, force bool) (*explain.Explainer, error) {
	if !e.cfg.Explain.Enabled && !force {
		return nil, nil
	}
	ecfg := explain.ConfigFromEnv(os.Getenv)
	ecfg.Timeout = e.cfg.Explain.Timeout

	provider, err := explain.NewProvider(ctx, ecfg, e.logger)
	if err != nil {
		if errors.Is(err, explain.ErrDisabled) {
			return nil, nil
		}
		return nil, err
	}
	return explain.NewExplainer(provider, ecfg.Timeout), nil
}
