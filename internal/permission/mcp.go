package permission

import "strings"

// MCPToolName is a parsed mcp__<server>__<tool> identifier. The tool part
// may itself contain __; the server never does. HasTool is false for the
// bare mcp__<server> form.
type MCPToolName struct {
	Server  string
	Tool    string
	HasTool bool
}

// ParseMCPToolName splits an MCP tool identifier into server and tool.
// It returns nil for anything not starting with mcp__ or with an empty
// server segment.
func ParseMCPToolName(name string) *MCPToolName {
	rest, ok := strings.CutPrefix(name, "mcp__")
	if !ok {
		return nil
	}
	server, tool, found := strings.Cut(rest, "__")
	if server == "" {
		return nil
	}
	if !found {
		return &MCPToolName{Server: server}
	}
	return &MCPToolName{Server: server, Tool: tool, HasTool: true}
}

// MatchesMCPPattern tests a tool name against one MCP pattern string:
// exact mcp__server__tool, wildcard mcp__server__*, or bare mcp__server
// (equivalent to the wildcard). Comparison is case-sensitive and exact on
// the parsed server and tool parts.
func MatchesMCPPattern(toolName, pattern string) bool {
	name := ParseMCPToolName(toolName)
	pat := ParseMCPToolName(pattern)
	if name == nil || pat == nil || name.Server != pat.Server {
		return false
	}
	if !pat.HasTool || pat.Tool == "*" {
		return true
	}
	return name.HasTool && name.Tool == pat.Tool
}
