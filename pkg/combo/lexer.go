package combo

import "strings"

// Segment is one lexical unit of a combo line: either a hold marker or a
// group of keys pressed together.
type Segment struct {
	Hold bool
	Keys []Key // recognized keys in order of appearance, duplicates kept
}

// IsEmpty reports whether the segment contributes nothing to the output.
func (s Segment) IsEmpty() bool {
	return !s.Hold && len(s.Keys) == 0
}

// Lex splits one combo line into segments. Characters that are neither keys
// nor the hold marker are dropped.
func Lex(line string) []Segment {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	// Hold markers always stand alone, even inside a key run
	spaced := strings.ReplaceAll(line, string(HoldMarker), " "+string(HoldMarker)+" ")

	tokens := strings.Fields(spaced)
	segments := make([]Segment, 0, len(tokens))
	for _, tok := range tokens {
		if tok == string(HoldMarker) {
			segments = append(segments, Segment{Hold: true})
			continue
		}
		segments = append(segments, Segment{Keys: filterKeys(tok)})
	}
	return segments
}

func filterKeys(s string) []Key {
	var keys []Key
	for _, r := range s {
		if IsKey(r) {
			keys = append(keys, Key(r))
		}
	}
	return keys
}
