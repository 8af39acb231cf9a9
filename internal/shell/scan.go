package shell

import (
	"errors"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// UnsafeError reports a construct the normalizer cannot safely decompose.
// Callers must treat it as fail-closed: defer to a human, never auto-allow.
type UnsafeError struct {
	Construct string // e.g. "command substitution"
	Fragment  string // the offending introducer, when known
}

func (e *UnsafeError) Error() string {
	if e.Fragment == "" {
		return fmt.Sprintf("unsafe shell construct: %s", e.Construct)
	}
	return fmt.Sprintf("unsafe shell construct: %s (%q)", e.Construct, e.Fragment)
}

// IsUnsafe reports whether err is (or wraps) an UnsafeError.
func IsUnsafe(err error) bool {
	var ue *UnsafeError
	return errors.As(err, &ue)
}

// unsafeIntroducers are scanned as raw substrings, ignoring quoting. A $(
// inside single quotes is rejected too: scanning the raw string means nothing
// can hide a substitution inside a bash -c payload or behind quoting tricks.
var unsafeIntroducers = []struct {
	needle    string
	construct string
}{
	{"$(", "command substitution"},
	{"<(", "process substitution"},
	{">(", "process substitution"},
	{"<<", "heredoc"},
}

// Scan rejects command strings containing constructs that cannot be safely
// decomposed: command substitution, matched backticks, heredoc/here-string
// introducers, and process substitution. Presence anywhere in the string,
// top level, quoted, or inside a wrapper payload, is an unconditional
// rejection. A nil return means only that these constructs are absent, not
// that the command is safe to run.
func Scan(command string) error {
	for _, in := range unsafeIntroducers {
		if strings.Contains(command, in.needle) {
			return &UnsafeError{Construct: in.construct, Fragment: in.needle}
		}
	}
	if first := strings.IndexByte(command, '`'); first >= 0 {
		if strings.IndexByte(command[first+1:], '`') >= 0 {
			return &UnsafeError{Construct: "backtick substitution", Fragment: "`"}
		}
	}
	return scanSyntaxTree(command)
}

// scanSyntaxTree re-checks the command with a real bash parser. The substring
// scan above is authoritative; this pass can only add rejections for
// substitution nodes, so determinism is preserved. Strings the parser cannot
// read at all are left to the substring scan's verdict.
func scanSyntaxTree(command string) error {
	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
	file, err := parser.Parse(strings.NewReader(command), "")
	if err != nil {
		return nil
	}

	var found *UnsafeError
	syntax.Walk(file, func(node syntax.Node) bool {
		switch node.(type) {
		case *syntax.CmdSubst:
			found = &UnsafeError{Construct: "command substitution"}
		case *syntax.ProcSubst:
			found = &UnsafeError{Construct: "process substitution"}
		}
		return found == nil
	})
	if found != nil {
		return found
	}
	return nil
}
