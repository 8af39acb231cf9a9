// Package shell decomposes raw command lines into normalized commands for
// permission matching. It is not a shell: it understands exactly enough of
// POSIX quoting and operator syntax to split a command line into its
// sub-commands, and it rejects anything it cannot safely decompose
// (command substitution, heredocs, process substitution) rather than
// guessing at semantics.
//
// The pipeline is Scan -> Tokenize -> Split -> NormalizeSegment, wrapped by
// Parse. Every step is deterministic and side-effect free; identical input
// always yields identical output, which the decision layer relies on for
// auditability.
package shell
