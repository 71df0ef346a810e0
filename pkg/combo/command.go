package combo

import (
	"strconv"
	"strings"
)

// Angles understood by the firmware.
const (
	AnglePress   = 2
	AngleRelease = -2
	AngleHold    = 0
)

// Durations in firmware timing units.
const (
	DurationMove = 5
	DurationHold = 1
)

// HoldActuator is the sentinel actuator addressed by a hold pulse.
const HoldActuator = 0

// Command is one (id,angle,duration) triple.
type Command struct {
	ID       int
	Angle    int
	Duration int
}

// Press returns the engage command for an actuator.
func Press(id int) Command {
	return Command{ID: id, Angle: AnglePress, Duration: DurationMove}
}

// Release returns the disengage command for an actuator.
func Release(id int) Command {
	return Command{ID: id, Angle: AngleRelease, Duration: DurationMove}
}

// Hold returns the synchronization pulse.
func Hold() Command {
	return Command{ID: HoldActuator, Angle: AngleHold, Duration: DurationHold}
}

// String renders the command as "(id,angle,duration)".
func (c Command) String() string {
	var sb strings.Builder
	c.appendTo(&sb)
	return sb.String()
}

func (c Command) appendTo(sb *strings.Builder) {
	sb.WriteByte('(')
	sb.WriteString(strconv.Itoa(c.ID))
	sb.WriteByte(',')
	sb.WriteString(strconv.Itoa(c.Angle))
	sb.WriteByte(',')
	sb.WriteString(strconv.Itoa(c.Duration))
	sb.WriteByte(')')
}

// CommandLine is a batch of commands sent as a single line.
type CommandLine []Command

// String concatenates the commands with no separator.
func (l CommandLine) String() string {
	var sb strings.Builder
	for _, c := range l {
		c.appendTo(&sb)
	}
	return sb.String()
}

// Batch holds the command lines compiled from one combo line.
type Batch []CommandLine

// String joins the command lines with newlines.
func (b Batch) String() string {
	lines := make([]string, len(b))
	for i, l := range b {
		lines[i] = l.String()
	}
	return strings.Join(lines, "\n")
}
