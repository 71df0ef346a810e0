package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/gwillem/servocombo/pkg/config"
	"github.com/gwillem/servocombo/pkg/logger"
	"github.com/gwillem/servocombo/pkg/session"
)

const (
	tuiLogFile = "servocombo.log"
	maxLines   = 12 // number of transmitted lines to show
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	sentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	ackStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	skipStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// Messages from the session
type eventMsg session.Event
type doneMsg struct {
	report session.Report
	err    error
}

type sendModel struct {
	port     string
	state    session.State
	report   session.Report
	lines    []string // last N rendered events
	cancel   context.CancelFunc
	done     bool
	quitting bool
}

func (m *sendModel) addLine(s string) {
	m.lines = append(m.lines, s)
	if len(m.lines) > maxLines {
		m.lines = m.lines[len(m.lines)-maxLines:]
	}
}

func (m sendModel) Init() tea.Cmd {
	return nil
}

func (m sendModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		}

	case eventMsg:
		e := session.Event(msg)
		switch e.Kind {
		case session.EventState:
			m.state = e.State
		case session.EventSent:
			m.report.Sent++
			m.addLine(sentStyle.Render(fmt.Sprintf("%4d → %s", e.LineNum, e.Text)))
		case session.EventAck:
			m.report.Acked++
			m.addLine(ackStyle.Render(fmt.Sprintf("%4d ← %s", e.LineNum, e.Text)))
		case session.EventSkipped:
			m.report.Skipped++
			m.addLine(skipStyle.Render(fmt.Sprintf("%4d ✗ %s", e.LineNum, e.Text)))
		}
		return m, nil

	case doneMsg:
		m.done = true
		m.report = msg.report
		return m, tea.Quit
	}

	return m, nil
}

func (m sendModel) View() string {
	if m.quitting {
		return "Transmission stopped.\n"
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("servocombo send"))
	sb.WriteString(statusStyle.Render(fmt.Sprintf("  %s  [%s]", m.port, m.state)))
	sb.WriteString("\n\n")

	body := strings.Join(m.lines, "\n")
	if body == "" {
		body = statusStyle.Render("Waiting for first line...")
	}
	sb.WriteString(boxStyle.Render(body))
	sb.WriteString("\n")
	sb.WriteString(statusStyle.Render(fmt.Sprintf(
		"sent %d  skipped %d  replies %d   press 'q' to stop",
		m.report.Sent, m.report.Skipped, m.report.Acked,
	)))
	sb.WriteString("\n")
	return sb.String()
}

// tuiLogger writes JSON logs to a file so they don't disturb the view.
func tuiLogger(path string) (zerolog.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	log := logger.New(logger.Options{Level: opts.LogLevel, Format: "json", Writer: f})
	return log, f, nil
}

// replayTUI runs the session in the background while a bubbletea program
// renders its events.
func replayTUI(ctx context.Context, cfg *config.Config, dial session.Dialer, src io.Reader, log zerolog.Logger) (session.Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(sendModel{port: cfg.Port, cancel: cancel})

	ctrl := session.NewController(dial, session.Config{
		Strict:   cfg.Strict,
		Logger:   log,
		Observer: func(e session.Event) { p.Send(eventMsg(e)) },
	})

	result := make(chan doneMsg, 1)
	go func() {
		report, err := ctrl.Replay(ctx, src)
		done := doneMsg{report: report, err: err}
		result <- done
		p.Send(done)
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-result
		return session.Report{}, fmt.Errorf("run view: %w", err)
	}

	// The session finishes its current line before honouring cancel
	done := <-result
	return done.report, done.err
}
