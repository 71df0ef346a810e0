package combo

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var (
	tuplePattern  = regexp.MustCompile(`\((\d+),(-?\d+),(\d+)\)`)
	strictPattern = regexp.MustCompile(`^(?:\(\d+,-?\d+,\d+\))+$`)
)

// ErrMalformed is returned for a line holding no valid command tuple.
var ErrMalformed = errors.New("malformed command line")

// ParseLine extracts every (id,angle,duration) tuple in s, in order. Text
// between tuples is ignored unless strict is set, in which case the trimmed
// line must consist of contiguous tuples only.
func ParseLine(s string, strict bool) (CommandLine, error) {
	s = strings.TrimSpace(s)
	if strict && !strictPattern.MatchString(s) {
		return nil, ErrMalformed
	}

	matches := tuplePattern.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return nil, ErrMalformed
	}

	line := make(CommandLine, 0, len(matches))
	for _, m := range matches {
		var nums [3]int
		for i := range nums {
			n, err := strconv.Atoi(m[i+1])
			if err != nil {
				// Only reachable on integer overflow
				return nil, ErrMalformed
			}
			nums[i] = n
		}
		line = append(line, Command{ID: nums[0], Angle: nums[1], Duration: nums[2]})
	}
	return line, nil
}
