// Package link provides a line-oriented serial connection to the servo controller.
package link

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"go.bug.st/serial"
)

// DefaultAckTimeout bounds the wait for a reply after each written line.
const DefaultAckTimeout = time.Second

// Port is the subset of serial.Port used by Link.
type Port interface {
	io.ReadWriteCloser
	SetReadTimeout(t time.Duration) error
}

// Config holds serial connection settings.
type Config struct {
	Port       string
	BaudRate   int
	AckTimeout time.Duration
}

// Link writes command lines and reads optional replies.
type Link struct {
	port    Port
	name    string
	timeout time.Duration
	pending []byte
	buf     []byte
}

// Open opens the serial port described by cfg.
func Open(cfg Config) (*Link, error) {
	port, err := serial.Open(cfg.Port, &serial.Mode{
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Port, err)
	}

	l := New(port, cfg.AckTimeout)
	l.name = cfg.Port
	return l, nil
}

// New wraps an already open port. A non-positive timeout selects DefaultAckTimeout.
func New(port Port, timeout time.Duration) *Link {
	if timeout <= 0 {
		timeout = DefaultAckTimeout
	}
	return &Link{
		port:    port,
		timeout: timeout,
		buf:     make([]byte, 256),
	}
}

// Name returns the device name, empty for links created with New.
func (l *Link) Name() string {
	return l.name
}

// WriteLine writes line followed by a newline.
func (l *Link) WriteLine(line string) error {
	data := make([]byte, 0, len(line)+1)
	data = append(data, line...)
	data = append(data, '\n')

	for len(data) > 0 {
		n, err := l.port.Write(data)
		if err != nil {
			return fmt.Errorf("write line: %w", err)
		}
		data = data[n:]
	}
	return nil
}

// ReadLine waits up to the ack timeout for one newline-terminated reply and
// returns it trimmed. On timeout it returns whatever partial text arrived,
// usually "", and a nil error.
func (l *Link) ReadLine() (string, error) {
	deadline := time.Now().Add(l.timeout)
	for {
		if i := bytes.IndexByte(l.pending, '\n'); i >= 0 {
			line := string(l.pending[:i])
			l.pending = append(l.pending[:0], l.pending[i+1:]...)
			return strings.TrimSpace(line), nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}
		if err := l.port.SetReadTimeout(remaining); err != nil {
			return "", fmt.Errorf("set read timeout: %w", err)
		}

		n, err := l.port.Read(l.buf)
		if err != nil {
			return "", fmt.Errorf("read line: %w", err)
		}
		if n == 0 {
			// Timed out
			break
		}
		l.pending = append(l.pending, l.buf[:n]...)
	}

	line := strings.TrimSpace(string(l.pending))
	l.pending = l.pending[:0]
	return line, nil
}

// Close closes the underlying port.
func (l *Link) Close() error {
	return l.port.Close()
}
