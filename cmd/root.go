package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quizzy",
	Short: "Multiple-choice practice for physics, chemistry and math",
	Long: "Quizzy serves randomized multiple-choice practice sessions from a question bank,\n" +
		"grades answers and summarizes how you did. Run it without arguments for the terminal UI.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/quizzy/config.toml)")
	rootCmd.PersistentFlags().String("questions", "", "Path to question bank (overrides QUIZZY_QUESTIONS)")

	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")
	playCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(difficultiesCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(versionCmd)
}
