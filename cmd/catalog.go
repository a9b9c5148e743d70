package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizzy/internal/screens/stats"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List topics in the question bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, os.Stderr)
		if err != nil {
			return err
		}
		defer e.Close()

		for _, t := range e.catalog.Topics() {
			fmt.Fprintln(cmd.OutOrStdout(), t)
		}
		return nil
	},
}

var difficultiesCmd = &cobra.Command{
	Use:   "difficulties",
	Short: "List difficulty levels in the question bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, os.Stderr)
		if err != nil {
			return err
		}
		defer e.Close()

		for _, d := range e.catalog.Difficulties() {
			fmt.Fprintln(cmd.OutOrStdout(), d)
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show question counts by topic and difficulty",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, os.Stderr)
		if err != nil {
			return err
		}
		defer e.Close()

		st := e.catalog.Stats()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd.OutOrStdout(), st)
		}
		fmt.Fprintln(cmd.OutOrStdout(), stats.Matrix(st))
		return nil
	},
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	statsCmd.Flags().Bool("json", false, "Print stats as JSON")
}
