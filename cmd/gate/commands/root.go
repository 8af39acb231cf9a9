// Package commands provides the CLI commands for the permission gate.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/FortiumPartners/ensemble-sub005/internal/logging"
)

// Version information set at build time
var Version = "0.1.0"

// Global flags
var (
	logLevel   string
	projectDir string
	printLogs  bool
)

var rootCmd = &cobra.Command{
	Use:   "gate",
	Short: "Command permission gate for autonomous coding agents",
	Long: `gate decides whether a shell command or MCP tool invocation may run
without human confirmation, based on the allow/deny pattern lists in
.claude/settings.json files.

Run 'gate hook' as a PreToolUse hook, or 'gate check <command>' to inspect
how a command normalizes and what verdict it gets.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(logLevel, printLogs)
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "INFO", "Log level (DEBUG|INFO|WARN|ERROR)")
	rootCmd.PersistentFlags().StringVar(&projectDir, "project", "", "Project directory (defaults to the working directory)")
	rootCmd.PersistentFlags().BoolVar(&printLogs, "print-logs", false, "Human-readable console logs on stderr")

	rootCmd.AddCommand(hookCmd)
	rootCmd.AddCommand(checkCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
