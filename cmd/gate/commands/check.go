package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FortiumPartners/ensemble-sub005/internal/permission"
	"github.com/FortiumPartners/ensemble-sub005/internal/settings"
)

var checkCmd = &cobra.Command{
	Use:   "check <command...>",
	Short: "Evaluate one command and print its normalization and verdict",
	Long: `Evaluate a command string the way the hook would, printing each
normalized unit and the resulting verdict.

Exit codes: 0 allow (or nothing to authorize), 1 deny, 2 ask.

Examples:
  gate check 'git add . && git commit -m "msg"'
  gate check npm test`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := settings.LoadDefault(projectDir)
		gate := permission.NewGate(s.Allow, s.Deny)

		d := gate.EvaluateCommand(strings.Join(args, " "))
		for _, c := range d.Commands {
			fmt.Printf("  %-20s %s\n", c.Executable, c.Args)
		}
		fmt.Printf("verdict: %s\n", d.Verdict)
		if d.Reason != "" {
			fmt.Printf("reason:  %s\n", d.Reason)
		}
		if d.Suggestion != "" {
			fmt.Printf("hint:    closest allow pattern is %s\n", d.Suggestion)
		}

		switch d.Verdict {
		case permission.VerdictDeny:
			os.Exit(1)
		case permission.VerdictAsk:
			os.Exit(2)
		}
	},
}
