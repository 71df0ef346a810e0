package combo

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		line   string
		strict bool
		want   CommandLine
		err    error
	}{
		{"(0,2,5)", false, CommandLine{{0, 2, 5}}, nil},
		{"(0,2,5)(11,-2,5)", false, CommandLine{{0, 2, 5}, {11, -2, 5}}, nil},
		{"  (3,0,1)  ", true, CommandLine{{3, 0, 1}}, nil},
		{"go (1,2,5) now", false, CommandLine{{1, 2, 5}}, nil},
		{"go (1,2,5) now", true, nil, ErrMalformed},
		{"(1,2,5) (2,2,5)", true, nil, ErrMalformed},
		{"(1, 2, 5)", false, nil, ErrMalformed},
		{"(-1,2,5)", false, nil, ErrMalformed},
		{"hello", false, nil, ErrMalformed},
		{"", false, nil, ErrMalformed},
	}

	for _, tt := range tests {
		got, err := ParseLine(tt.line, tt.strict)
		if !errors.Is(err, tt.err) {
			t.Errorf("ParseLine(%q, %v) error = %v, want %v", tt.line, tt.strict, err, tt.err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseLine(%q, %v) = %v, want %v", tt.line, tt.strict, got, tt.want)
		}
	}
}

func TestParseLine_RoundTrip(t *testing.T) {
	lines := []string{"AS", "A~S", "OIUWKJHDSA", "AAA ~ SS", "D~~H"}

	for _, combo := range lines {
		for _, cl := range CompileLine(combo) {
			got, err := ParseLine(cl.String(), true)
			if err != nil {
				t.Fatalf("ParseLine(%q): %v", cl.String(), err)
			}
			if !reflect.DeepEqual(got, cl) {
				t.Errorf("round-trip of %q = %v, want %v", cl.String(), got, cl)
			}
		}
	}
}
