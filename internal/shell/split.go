package shell

// controlOperators are the token values Split partitions at. Background &
// is not among them: NormalizeSegment partitions at it, so a trailing & can
// be dropped while a mid-segment & still separates both jobs.
var controlOperators = map[string]bool{
	"&&": true,
	"||": true,
	";":  true,
	"|":  true,
}

// Split partitions a token stream into command segments at control
// operators. Leading or trailing operators produce no empty segments.
func Split(tokens []string) [][]string {
	var segments [][]string
	var current []string
	for _, tok := range tokens {
		if controlOperators[tok] {
			if len(current) > 0 {
				segments = append(segments, current)
				current = nil
			}
			continue
		}
		current = append(current, tok)
	}
	if len(current) > 0 {
		segments = append(segments, current)
	}
	return segments
}
