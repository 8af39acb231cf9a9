package shell

import "strings"

// lexState tracks the tokenizer's quoting context.
type lexState int

const (
	stateNormal lexState = iota
	stateSingle
	stateDouble
	stateEscape
)

// Tokenize converts a raw command string into shell-aware tokens. Quotes are
// stripped and escapes applied; control and redirection operators are emitted
// as standalone tokens even without surrounding whitespace. Empty or
// whitespace-only input yields no tokens.
//
// Quoting follows POSIX closely enough for decomposition: single quotes copy
// everything literally, double quotes unescape only \" and \\, and a bare
// backslash escapes the next character. Unclosed quotes do not fail; whatever
// accumulated is flushed as a final token. Rejecting malformed quoting is not
// this layer's job; safety comes from Scan and from conservative matching.
func Tokenize(command string) []string {
	var (
		tokens  []string
		buf     strings.Builder
		pending bool // token in progress even while buf is empty (e.g. '')
		state   = stateNormal
		prior   = stateNormal
	)

	flush := func() {
		if pending || buf.Len() > 0 {
			tokens = append(tokens, buf.String())
			buf.Reset()
			pending = false
		}
	}

	runes := []rune(command)
	for i := 0; i < len(runes); i++ {
		c := runes[i]

		switch state {
		case stateSingle:
			if c == '\'' {
				state = stateNormal
			} else {
				buf.WriteRune(c)
			}

		case stateDouble:
			switch c {
			case '"':
				state = stateNormal
			case '\\':
				prior = stateDouble
				state = stateEscape
			default:
				buf.WriteRune(c)
			}

		case stateEscape:
			if prior == stateDouble && c != '"' && c != '\\' {
				// inside double quotes only \" and \\ unescape
				buf.WriteRune('\\')
			}
			buf.WriteRune(c)
			state = prior

		default: // stateNormal
			switch c {
			case '\'':
				state = stateSingle
				pending = true
			case '"':
				state = stateDouble
				pending = true
			case '\\':
				prior = stateNormal
				state = stateEscape
			case ' ', '\t', '\n', '\r':
				flush()
			case ';':
				flush()
				tokens = append(tokens, ";")
			case '&':
				flush()
				if i+1 < len(runes) && runes[i+1] == '&' {
					tokens = append(tokens, "&&")
					i++
				} else {
					tokens = append(tokens, "&")
				}
			case '|':
				flush()
				if i+1 < len(runes) && runes[i+1] == '|' {
					tokens = append(tokens, "||")
					i++
				} else {
					tokens = append(tokens, "|")
				}
			case '<':
				flush()
				tokens = append(tokens, "<")
			case '>':
				if !pending && buf.String() == "2" {
					// stderr redirection: the "2" is the operator's, not a word
					buf.Reset()
					if i+2 < len(runes) && runes[i+1] == '&' && runes[i+2] == '1' {
						tokens = append(tokens, "2>&1")
						i += 2
					} else {
						tokens = append(tokens, "2>")
					}
				} else {
					flush()
					if i+1 < len(runes) && runes[i+1] == '>' {
						tokens = append(tokens, ">>")
						i++
					} else {
						tokens = append(tokens, ">")
					}
				}
			default:
				buf.WriteRune(c)
			}
		}
	}

	// dangling escape: keep the backslash literally
	if state == stateEscape {
		buf.WriteRune('\\')
	}
	flush()

	return tokens
}
