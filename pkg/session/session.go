// Package session replays command lines over a serial link.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gwillem/servocombo/pkg/combo"
)

// ErrOpen is returned when the link cannot be opened. No line has been sent.
var ErrOpen = errors.New("open link")

// State is the connection state of a session.
type State int

const (
	Idle State = iota
	Connected
	Sending
	AwaitingAck
	Closed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Connected:
		return "connected"
	case Sending:
		return "sending"
	case AwaitingAck:
		return "awaiting_ack"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Transport carries command lines to the device.
type Transport interface {
	WriteLine(line string) error
	ReadLine() (string, error)
	Close() error
}

// Dialer opens the transport for a session.
type Dialer func() (Transport, error)

// EventKind classifies session events.
type EventKind int

const (
	EventState EventKind = iota
	EventSent
	EventAck
	EventSkipped
)

// Event reports progress to an observer.
type Event struct {
	Kind    EventKind
	State   State
	LineNum int
	Text    string // command line or reply
}

// Report summarizes a finished session.
type Report struct {
	Sent    int
	Skipped int
	Acked   int
}

// Config holds configuration for the controller.
type Config struct {
	Strict   bool        // require lines made only of contiguous tuples
	Logger   zerolog.Logger
	Observer func(Event) // optional, called synchronously
}

// Controller drives command lines through a transport, one at a time.
type Controller struct {
	dial     Dialer
	strict   bool
	log      zerolog.Logger
	observer func(Event)
	state    State
}

// NewController creates an idle controller. The transport is opened by Replay.
func NewController(dial Dialer, cfg Config) *Controller {
	return &Controller{
		dial:     dial,
		strict:   cfg.Strict,
		log:      cfg.Logger,
		observer: cfg.Observer,
		state:    Idle,
	}
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

func (c *Controller) setState(s State) {
	c.state = s
	c.emit(Event{Kind: EventState, State: s})
}

func (c *Controller) emit(e Event) {
	if c.observer != nil {
		c.observer(e)
	}
}

// Replay opens the transport, sends every valid line of src in order and
// closes the transport. Malformed lines are logged and skipped. A missing
// reply is not an error. The returned report is valid even when err is set.
func (c *Controller) Replay(ctx context.Context, src io.Reader) (Report, error) {
	var report Report

	link, err := c.dial()
	if err != nil {
		c.setState(Closed)
		return report, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	c.setState(Connected)
	defer func() {
		if err := link.Close(); err != nil {
			c.log.Warn().Stack().Err(err).Msg("close link")
		}
		c.setState(Closed)
	}()

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), combo.MaxLineLength)
	lineNum := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if _, err := combo.ParseLine(line, c.strict); err != nil {
			c.log.Warn().Int("line", lineNum).Str("text", line).Msg("malformed command line, skipped")
			report.Skipped++
			c.emit(Event{Kind: EventSkipped, LineNum: lineNum, Text: line})
			continue
		}

		if err := c.send(link, lineNum, line, &report); err != nil {
			return report, err
		}
	}
	if err := scanner.Err(); err != nil {
		return report, fmt.Errorf("read command file: %w", err)
	}

	c.log.Info().
		Int("sent", report.Sent).
		Int("skipped", report.Skipped).
		Int("acked", report.Acked).
		Msg("session finished")
	return report, nil
}

func (c *Controller) send(t Transport, lineNum int, line string, report *Report) error {
	c.setState(Sending)
	if err := t.WriteLine(line); err != nil {
		return fmt.Errorf("line %d: %w", lineNum, err)
	}
	report.Sent++
	c.log.Info().Int("line", lineNum).Str("text", line).Msg("sent")
	c.emit(Event{Kind: EventSent, LineNum: lineNum, Text: line})

	c.setState(AwaitingAck)
	reply, err := t.ReadLine()
	if err != nil {
		return fmt.Errorf("line %d: %w", lineNum, err)
	}
	if reply == "" {
		c.log.Debug().Int("line", lineNum).Msg("no reply")
		return nil
	}
	report.Acked++
	c.log.Info().Int("line", lineNum).Str("reply", reply).Msg("device reply")
	c.emit(Event{Kind: EventAck, LineNum: lineNum, Text: reply})
	return nil
}
