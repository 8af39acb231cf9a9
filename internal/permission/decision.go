package permission

import (
	"fmt"

	"github.com/agnivade/levenshtein"
	"github.com/oklog/ulid/v2"

	"github.com/FortiumPartners/ensemble-sub005/internal/logging"
	"github.com/FortiumPartners/ensemble-sub005/internal/shell"
)

// Verdict is the gate's answer for one request. There is intentionally no
// default variant: every path through the gate assigns one explicitly, and
// nothing downstream may interpret absence as allow.
type Verdict string

const (
	VerdictAllow Verdict = "allow"
	VerdictDeny  Verdict = "deny"
	VerdictAsk   Verdict = "ask"
	// VerdictNone means the input carries nothing to authorize (pure
	// assignments, export, whitespace). It is not an allow; it tells the
	// caller no opinion is needed.
	VerdictNone Verdict = "none"
)

// Decision is the outcome of evaluating one command string or tool name.
type Decision struct {
	ID         string          // audit identifier, unique per evaluation
	Verdict    Verdict
	Reason     string          // human-readable grounds for the verdict
	Commands   []shell.Command // normalized units, when the input parsed
	Suggestion string          // closest allow pattern on a near-miss ask
}

// compiledPattern pairs the load-time compiled form with the raw string it
// came from, for reasons and suggestions.
type compiledPattern struct {
	raw     string
	pattern Pattern
}

// Gate evaluates commands and tool invocations against compiled allow and
// deny lists. A Gate is immutable after construction and safe for
// concurrent use; construct one per loaded settings snapshot.
type Gate struct {
	allow []compiledPattern
	deny  []compiledPattern
}

// NewGate compiles the pattern lists. Strings fitting neither dialect are
// kept but compile to never-true patterns, preserving list positions for
// auditing.
func NewGate(allow, deny []string) *Gate {
	return &Gate{
		allow: compile(allow),
		deny:  compile(deny),
	}
}

func compile(raw []string) []compiledPattern {
	out := make([]compiledPattern, 0, len(raw))
	for _, r := range raw {
		out = append(out, compiledPattern{raw: r, pattern: ParsePattern(r)})
	}
	return out
}

// EvaluateCommand decides whether a raw shell command string may run.
// Unsafe constructs resolve to ask: fail closed, never an automatic deny
// or allow. Deny is checked for every normalized unit before the allowlist
// is consulted at all.
func (g *Gate) EvaluateCommand(raw string) Decision {
	d := Decision{ID: ulid.Make().String()}

	cmds, err := shell.Parse(raw)
	if err != nil {
		d.Verdict = VerdictAsk
		d.Reason = err.Error()
		g.log(d)
		return d
	}
	d.Commands = cmds

	if len(cmds) == 0 {
		d.Verdict = VerdictNone
		d.Reason = "nothing to authorize"
		g.log(d)
		return d
	}

	for _, cmd := range cmds {
		if pat, hit := firstShellMatch(g.deny, cmd.String()); hit {
			d.Verdict = VerdictDeny
			d.Reason = fmt.Sprintf("%q matches deny pattern %q", cmd.String(), pat)
			g.log(d)
			return d
		}
	}

	for _, cmd := range cmds {
		if _, hit := firstShellMatch(g.allow, cmd.String()); !hit {
			d.Verdict = VerdictAsk
			d.Reason = fmt.Sprintf("no allow pattern matches %q", cmd.String())
			d.Suggestion = g.suggest(cmd.String())
			g.log(d)
			return d
		}
	}

	d.Verdict = VerdictAllow
	g.log(d)
	return d
}

// EvaluateTool decides whether an MCP tool invocation may run, using the
// same verdict ladder over the MCP pattern dialect.
func (g *Gate) EvaluateTool(toolName string) Decision {
	d := Decision{ID: ulid.Make().String()}

	if ParseMCPToolName(toolName) == nil {
		d.Verdict = VerdictAsk
		d.Reason = fmt.Sprintf("%q is not an MCP tool name", toolName)
		g.log(d)
		return d
	}

	if pat, hit := firstMCPMatch(g.deny, toolName); hit {
		d.Verdict = VerdictDeny
		d.Reason = fmt.Sprintf("%q matches deny pattern %q", toolName, pat)
		g.log(d)
		return d
	}
	if _, hit := firstMCPMatch(g.allow, toolName); hit {
		d.Verdict = VerdictAllow
		g.log(d)
		return d
	}

	d.Verdict = VerdictAsk
	d.Reason = fmt.Sprintf("no allow pattern matches %q", toolName)
	g.log(d)
	return d
}

func firstShellMatch(patterns []compiledPattern, subject string) (string, bool) {
	for _, cp := range patterns {
		if sp, ok := cp.pattern.(ShellPattern); ok && sp.Matches(subject) {
			return cp.raw, true
		}
	}
	return "", false
}

func firstMCPMatch(patterns []compiledPattern, toolName string) (string, bool) {
	for _, cp := range patterns {
		if mp, ok := cp.pattern.(MCPPattern); ok && mp.Matches(toolName) {
			return cp.raw, true
		}
	}
	return "", false
}

// suggestMaxDistance bounds how far a near-miss suggestion may be from the
// command; beyond it a hint would be noise.
const suggestMaxDistance = 5

// suggest returns the allowlist pattern whose content is closest to the
// command by edit distance, when close enough to plausibly be a typo or a
// missing :*. Advisory only; never affects the verdict.
func (g *Gate) suggest(subject string) string {
	best := ""
	bestDist := suggestMaxDistance + 1
	for _, cp := range g.allow {
		sp, ok := cp.pattern.(ShellPattern)
		if !ok {
			continue
		}
		if d := levenshtein.ComputeDistance(subject, sp.Content); d < bestDist {
			best = cp.raw
			bestDist = d
		}
	}
	return best
}

func (g *Gate) log(d Decision) {
	logging.Debug().
		Str("id", d.ID).
		Str("verdict", string(d.Verdict)).
		Str("reason", d.Reason).
		Int("commands", len(d.Commands)).
		Msg("permission decision")
}
