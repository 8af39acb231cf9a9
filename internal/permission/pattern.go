package permission

import "strings"

// Pattern is a compiled allow/deny pattern, resolved from its string form
// once at load time. ShellPattern subjects are normalized command strings;
// MCPPattern subjects are tool names. A pattern string matching neither
// dialect compiles to nil and never matches anything.
type Pattern interface {
	// Matches tests the subject byte-exactly; no normalization of any kind.
	Matches(subject string) bool
	String() string
}

// ShellPattern matches normalized command strings. With Prefix set it
// matches the content exactly or any string continuing past a space
// boundary; otherwise only the exact content.
type ShellPattern struct {
	Content string
	Prefix  bool
}

func (p ShellPattern) Matches(command string) bool {
	if command == p.Content {
		return true
	}
	return p.Prefix && strings.HasPrefix(command, p.Content+" ")
}

func (p ShellPattern) String() string {
	if p.Prefix {
		return "Bash(" + p.Content + ":*)"
	}
	return "Bash(" + p.Content + ")"
}

// MCPPattern matches MCP tool names within one server. Wildcard covers both
// mcp__server__* and the bare mcp__server form.
type MCPPattern struct {
	Server   string
	Tool     string
	Wildcard bool
}

func (p MCPPattern) Matches(toolName string) bool {
	name := ParseMCPToolName(toolName)
	if name == nil || name.Server != p.Server {
		return false
	}
	if p.Wildcard {
		return true
	}
	return name.HasTool && name.Tool == p.Tool
}

func (p MCPPattern) String() string {
	if p.Wildcard {
		return "mcp__" + p.Server + "__*"
	}
	return "mcp__" + p.Server + "__" + p.Tool
}

// ParsePattern compiles a pattern string into its dialect, or nil when the
// string fits neither. A nil result is not an error; such patterns are
// simply never true.
func ParsePattern(raw string) Pattern {
	if content, ok := cutBashPattern(raw); ok {
		if prefix, found := strings.CutSuffix(content, ":*"); found {
			return ShellPattern{Content: prefix, Prefix: true}
		}
		return ShellPattern{Content: content}
	}
	if name := ParseMCPToolName(raw); name != nil {
		if !name.HasTool || name.Tool == "*" {
			return MCPPattern{Server: name.Server, Wildcard: true}
		}
		return MCPPattern{Server: name.Server, Tool: name.Tool}
	}
	return nil
}

// cutBashPattern strips the Bash(...) wrapper, returning the inner content.
func cutBashPattern(pattern string) (string, bool) {
	rest, ok := strings.CutPrefix(pattern, "Bash(")
	if !ok {
		return "", false
	}
	return strings.CutSuffix(rest, ")")
}

// MatchesPattern tests a normalized command string against one shell pattern
// string. Prefix patterns (:*) honor the word boundary: "npm test" matches
// Bash(npm test:*) but "npm testing" does not.
func MatchesPattern(command, pattern string) bool {
	content, ok := cutBashPattern(pattern)
	if !ok {
		return false
	}
	if prefix, found := strings.CutSuffix(content, ":*"); found {
		return command == prefix || strings.HasPrefix(command, prefix+" ")
	}
	return command == content
}
