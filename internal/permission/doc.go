// Package permission decides whether a command or MCP tool invocation may
// run without human confirmation.
//
// Two pattern dialects are supported. Shell patterns have the shape
// Bash(<prefix>:*) for word-boundary prefix matches or Bash(<content>) for
// exact matches, and are tested against normalized command strings produced
// by the shell package. MCP patterns address tool names of the shape
// mcp__<server>__<tool>: exact, mcp__<server>__* server wildcard, or bare
// mcp__<server> which is equivalent to the wildcard.
//
// All matching is byte-exact and case-sensitive. There is deliberately no
// Unicode folding or confusable-character normalization: a Cyrillic lookalike
// executable must never match an ASCII pattern, and a normalization table
// would itself be an attack surface.
//
// The Gate combines parsing, the deny list, and the allow list into a single
// Decision. Deny always wins; anything unmatched or unparseable resolves to
// ask. There is no default-allow path anywhere in the package.
package permission
