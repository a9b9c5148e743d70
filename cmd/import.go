package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizzy/internal/loader"
	"github.com/abhisek/quizzy/internal/logging"
	"github.com/abhisek/quizzy/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <source> [database]",
	Short: "Copy a CSV or JSON question bank into a SQLite database",
	Long: `Copy a CSV or JSON question bank into a SQLite database.

Without a database argument the bank is written to $QUIZZY_DB, or
$XDG_DATA_HOME/quizzy/questions.db when that is unset.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, closer, err := logging.New(cfg.Log, os.Stderr)
		if err != nil {
			return err
		}
		defer closer.Close()

		ctx := cmd.Context()
		rows, err := loader.ReadRows(ctx, loader.Options{Path: args[0]})
		if err != nil {
			return err
		}
		records, problems := loader.Records(rows)
		for _, p := range problems {
			logger.Warn("skipping invalid question", "problem", p)
		}
		if len(problems) > 0 && !cfg.Questions.SkipInvalid {
			return fmt.Errorf("%d invalid rows:\n%s", len(problems), strings.Join(problems, "\n"))
		}

		dbPath, err := databasePath(args)
		if err != nil {
			return err
		}
		table, _ := cmd.Flags().GetString("table")
		st, err := store.OpenTable(dbPath, table)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.EnsureSchema(ctx); err != nil {
			return err
		}
		n, err := st.SaveQuestions(ctx, records)
		if err != nil {
			return err
		}
		total, err := st.CountQuestions(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d questions into %s (%d total)\n", n, dbPath, total)
		return nil
	},
}

func databasePath(args []string) (string, error) {
	if len(args) > 1 {
		return args[1], nil
	}
	return store.DefaultDBPath()
}

func init() {
	importCmd.Flags().String("table", store.DefaultTable, "SQLite table to write")
}
