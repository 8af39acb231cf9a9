package commands

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FortiumPartners/ensemble-sub005/internal/logging"
	"github.com/FortiumPartners/ensemble-sub005/internal/permission"
	"github.com/FortiumPartners/ensemble-sub005/internal/settings"
)

// hookInput is the PreToolUse payload the agent pipes to the hook.
type hookInput struct {
	ToolName  string `json:"tool_name"`
	ToolInput struct {
		Command string `json:"command"`
	} `json:"tool_input"`
	CWD string `json:"cwd"`
}

// hookOutput is the PreToolUse answer. An empty PermissionDecision means
// the hook has no opinion and the agent's own permission flow proceeds.
type hookOutput struct {
	HookSpecificOutput hookSpecificOutput `json:"hookSpecificOutput"`
}

type hookSpecificOutput struct {
	HookEventName            string `json:"hookEventName"`
	PermissionDecision       string `json:"permissionDecision,omitempty"`
	PermissionDecisionReason string `json:"permissionDecisionReason,omitempty"`
}

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Run as a PreToolUse hook (JSON on stdin, JSON on stdout)",
	Long: `Reads one PreToolUse event from stdin, evaluates the Bash command or
MCP tool name against the permission settings, and writes the hook answer
to stdout.

A hook must never block the agent by crashing: unreadable input produces a
no-opinion answer and a zero exit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHook(cmd.InOrStdin(), cmd.OutOrStdout(), projectDir)
	},
}

// runHook evaluates one hook event. It always answers and never returns a
// verdict-bearing error; failures degrade to no opinion.
func runHook(in io.Reader, out io.Writer, project string) error {
	answer := hookSpecificOutput{HookEventName: "PreToolUse"}
	defer func() {
		json.NewEncoder(out).Encode(hookOutput{HookSpecificOutput: answer})
	}()

	data, err := io.ReadAll(in)
	if err != nil {
		logging.Warn().Err(err).Msg("hook: cannot read stdin")
		return nil
	}
	var input hookInput
	if err := json.Unmarshal(data, &input); err != nil {
		logging.Warn().Err(err).Msg("hook: malformed input")
		return nil
	}

	if project == "" {
		project = input.CWD
	}
	s := settings.LoadDefault(project)
	gate := permission.NewGate(s.Allow, s.Deny)

	var d permission.Decision
	switch {
	case input.ToolName == "Bash":
		d = gate.EvaluateCommand(input.ToolInput.Command)
	case strings.HasPrefix(input.ToolName, "mcp__"):
		d = gate.EvaluateTool(input.ToolName)
	default:
		return nil // not ours to judge
	}

	switch d.Verdict {
	case permission.VerdictAllow:
		answer.PermissionDecision = "allow"
	case permission.VerdictDeny:
		answer.PermissionDecision = "deny"
		answer.PermissionDecisionReason = d.Reason
	case permission.VerdictAsk:
		answer.PermissionDecision = "ask"
		answer.PermissionDecisionReason = d.Reason
		if d.Suggestion != "" {
			answer.PermissionDecisionReason += " (closest allow pattern: " + d.Suggestion + ")"
		}
	case permission.VerdictNone:
		// nothing to authorize; leave the decision fields empty
	}
	return nil
}
