package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:   "explain <question-id>",
	Short: "Ask the configured LLM to explain a question's answer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, os.Stderr)
		if err != nil {
			return err
		}
		defer e.Close()

		rec, err := e.catalog.Get(args[0])
		if err != nil {
			return err
		}

		explainer, err := e.explainer(cmd.Context(), true)
		if err != nil {
			return err
		}
		if explainer == nil {
			return fmt.Errorf("no LLM provider configured: set QUIZZY_LLM_PROVIDER or an API key")
		}

		answer, _ := cmd.Flags().GetString("answer")
		text, err := explainer.Explain(cmd.Context(), rec, answer)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, rec.Text)
		for i, opt := range rec.Options {
			fmt.Fprintf(out, "  %c) %s\n", 'A'+i, opt)
		}
		fmt.Fprintf(out, "\nAnswer: %s\n\n%s\n", rec.Answer, text)
		return nil
	},
}

func init() {
	explainCmd.Flags().String("answer", "", "A wrong answer to address in the explanation")
}
