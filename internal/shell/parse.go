package shell

// Parse decomposes a raw command line into its normalized commands:
// scan for unsafe constructs, tokenize, split at control operators, and
// normalize each segment. Segments with no executable surface (pure
// assignments, export, whitespace) are omitted; an empty result with a nil
// error means there is nothing to authorize, which is not the same as an
// allow.
func Parse(command string) ([]Command, error) {
	if err := Scan(command); err != nil {
		return nil, err
	}
	var out []Command
	for _, segment := range Split(Tokenize(command)) {
		cmds, err := NormalizeSegment(segment)
		if err != nil {
			return nil, err
		}
		out = append(out, cmds...)
	}
	return out, nil
}
