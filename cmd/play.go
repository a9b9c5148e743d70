package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizzy/internal/app"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the terminal UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp loads the question bank and launches the TUI. Logs go to the
// configured file only since stderr belongs to the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := setup(cmd, io.Discard)
	if err != nil {
		return err
	}
	defer e.Close()

	svc, err := e.service()
	if err != nil {
		return err
	}

	explainer, err := e.explainer(cmd.Context(), false)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI explanations will be unavailable.")
	}

	noSplash, _ := cmd.Flags().GetBool("no-splash")
	return app.Run(app.Options{Service: svc, Explainer: explainer, Splash: !noSplash})
}
