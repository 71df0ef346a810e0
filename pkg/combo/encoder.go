package combo

import (
	"bufio"
	"io"
)

// Encoder writes batches in command file format: one command line per text
// line, each batch followed by a blank line.
type Encoder struct {
	w *bufio.Writer
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

// Encode writes one batch. Empty batches write nothing, not even the separator.
func (e *Encoder) Encode(b Batch) error {
	if len(b) == 0 {
		return nil
	}
	if _, err := e.w.WriteString(b.String()); err != nil {
		return err
	}
	_, err := e.w.WriteString("\n\n")
	return err
}

// Flush writes any buffered data to the underlying writer.
func (e *Encoder) Flush() error {
	return e.w.Flush()
}
