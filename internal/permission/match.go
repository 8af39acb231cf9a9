package permission

import (
	"github.com/FortiumPartners/ensemble-sub005/internal/shell"
)

// MatchesAny reports whether the normalized command matches any pattern in
// the list. The subject string is the executable alone when args are empty,
// otherwise executable and args joined by one space.
func MatchesAny(cmd shell.Command, patterns []string) bool {
	subject := cmd.String()
	for _, p := range patterns {
		if MatchesPattern(subject, p) {
			return true
		}
	}
	return false
}

// IsDenied reports whether the command matches any deny pattern. Callers
// must evaluate the deny list before consulting the allowlist: deny takes
// precedence regardless of any allow match.
func IsDenied(cmd shell.Command, denylist []string) bool {
	return MatchesAny(cmd, denylist)
}
