package shell

import "strings"

// Command is the canonical {executable, args} unit all pattern matching
// operates on. Executable is never an operator, an environment assignment,
// or a shell-state builtin; Args is the remaining tokens rejoined with
// single spaces.
type Command struct {
	Executable string `json:"executable"`
	Args       string `json:"args"`
}

// String renders the command the way patterns are matched against it:
// the executable alone, or executable and args joined by one space.
func (c Command) String() string {
	if c.Args == "" {
		return c.Executable
	}
	return c.Executable + " " + c.Args
}

// maxUnwrapDepth caps bash -c / sh -c unwrapping. Legitimate tooling nests a
// level or two; anything deeper is adversarial or broken, and the gate
// refuses to decompose it rather than risk stack exhaustion.
const maxUnwrapDepth = 5

// skipBuiltins mutate shell state and carry no executable surface; a segment
// led by one of them normalizes to nothing.
var skipBuiltins = map[string]bool{
	"export":  true,
	"set":     true,
	"unset":   true,
	"local":   true,
	"declare": true,
	"typeset": true,
}

// wrappers run another command without changing its security-relevant
// identity and are stripped, along with their known flag arguments,
// before matching.
var wrappers = map[string]bool{
	"timeout": true,
	"time":    true,
	"nice":    true,
	"nohup":   true,
	"env":     true,
}

// NormalizeSegment reduces one segment to its normalized commands. Most
// segments yield zero or one command; only a bash -c payload carrying its
// own operator chain can yield several. An empty result is not an error;
// the segment simply has nothing to authorize.
func NormalizeSegment(tokens []string) ([]Command, error) {
	return normalizeSegment(tokens, 0)
}

func normalizeSegment(tokens []string, depth int) ([]Command, error) {
	// Background markers first. A trailing & is stripped; a & in the middle
	// of a segment separates commands the way the shell runs them, and every
	// side must surface for matching, otherwise "safe-cmd & evil-cmd" would
	// hide the second command inside the first one's args.
	parts := splitBackground(tokens)
	if len(parts) == 0 {
		return nil, nil
	}
	if len(parts) > 1 {
		var out []Command
		for _, part := range parts {
			cmds, err := normalizeSegment(part, depth)
			if err != nil {
				return nil, err
			}
			out = append(out, cmds...)
		}
		return out, nil
	}

	rest := parts[0]
	for {
		for len(rest) > 0 && isEnvAssign(rest[0]) {
			rest = rest[1:]
		}
		if len(rest) == 0 {
			return nil, nil
		}
		if skipBuiltins[rest[0]] {
			return nil, nil
		}
		if wrappers[rest[0]] {
			rest = consumeWrapper(rest)
			continue
		}
		break
	}

	if (rest[0] == "bash" || rest[0] == "sh") && len(rest) >= 2 && rest[1] == "-c" {
		return unwrapShellPayload(rest, depth)
	}

	stripped := stripRedirections(rest)
	if len(stripped) == 0 {
		return nil, nil
	}
	if len(stripped) != len(rest) {
		// stripping can expose a new leading token (e.g. "> log FOO=1 cmd");
		// re-apply the front rules so the executable invariant holds
		return normalizeSegment(stripped, depth)
	}
	return []Command{{Executable: stripped[0], Args: strings.Join(stripped[1:], " ")}}, nil
}

// splitBackground partitions a segment at & tokens, dropping empty parts.
func splitBackground(tokens []string) [][]string {
	var parts [][]string
	var current []string
	for _, tok := range tokens {
		if tok == "&" {
			if len(current) > 0 {
				parts = append(parts, current)
				current = nil
			}
			continue
		}
		current = append(current, tok)
	}
	if len(current) > 0 {
		parts = append(parts, current)
	}
	return parts
}

// unwrapShellPayload recursively normalizes the string argument of a
// bash -c / sh -c invocation. The payload is re-scanned for unsafe
// constructs before anything else, so a substitution smuggled into an inner
// string is rejected the same as at top level.
func unwrapShellPayload(rest []string, depth int) ([]Command, error) {
	if depth >= maxUnwrapDepth {
		return nil, &UnsafeError{
			Construct: "shell nesting beyond safe depth",
			Fragment:  rest[0] + " -c",
		}
	}
	if len(rest) < 3 || rest[2] == "" {
		return nil, nil
	}
	inner := rest[2]
	if err := Scan(inner); err != nil {
		return nil, err
	}
	var out []Command
	for _, seg := range Split(Tokenize(inner)) {
		cmds, err := normalizeSegment(seg, depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, cmds...)
	}
	return out, nil
}

// stripRedirections removes redirection operators and their target tokens
// wherever they occur. 2>&1 is self-contained and consumes no target.
func stripRedirections(tokens []string) []string {
	var kept []string
	for i := 0; i < len(tokens); i++ {
		switch tokens[i] {
		case "2>&1":
			// no target
		case ">", ">>", "<", "2>":
			i++ // drop the target with the operator
		default:
			kept = append(kept, tokens[i])
		}
	}
	return kept
}

// consumeWrapper drops a wrapper command and its known flag arguments,
// returning the wrapped remainder.
func consumeWrapper(tokens []string) []string {
	name := tokens[0]
	rest := tokens[1:]
	switch name {
	case "timeout":
		for len(rest) > 0 && strings.HasPrefix(rest[0], "-") {
			rest = rest[1:]
		}
		if len(rest) > 0 && isDurationLike(rest[0]) {
			rest = rest[1:]
		}
	case "nice":
		if len(rest) > 0 && rest[0] == "-n" {
			rest = rest[1:]
			if len(rest) > 0 {
				rest = rest[1:]
			}
		} else if len(rest) > 0 && strings.HasPrefix(rest[0], "-") && isNumeric(rest[0][1:]) {
			rest = rest[1:]
		}
	case "time", "env":
		for len(rest) > 0 && strings.HasPrefix(rest[0], "-") {
			rest = rest[1:]
		}
		// env KEY=value assignments fall to the caller's assignment pass
	case "nohup":
	}
	return rest
}

// isEnvAssign reports whether tok has the KEY=value shape of a shell
// environment assignment: [A-Za-z_][A-Za-z0-9_]* followed by '='.
func isEnvAssign(tok string) bool {
	eq := strings.IndexByte(tok, '=')
	if eq < 1 {
		return false
	}
	for i := 0; i < eq; i++ {
		c := tok[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isDurationLike accepts timeout's DURATION argument: digits with an
// optional fraction and s/m/h/d suffix.
func isDurationLike(s string) bool {
	if s == "" {
		return false
	}
	switch s[len(s)-1] {
	case 's', 'm', 'h', 'd':
		s = s[:len(s)-1]
	}
	if s == "" {
		return false
	}
	dots := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			dots++
			if dots > 1 {
				return false
			}
			continue
		}
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
