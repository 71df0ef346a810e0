package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/gwillem/servocombo/pkg/session"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func printReport(r session.Report) {
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━━━━━━━━"))
	fmt.Println(successStyle.Render(fmt.Sprintf("Sent %d line(s)", r.Sent)))
	if r.Skipped > 0 {
		fmt.Println(warnStyle.Render(fmt.Sprintf("Skipped %d malformed line(s)", r.Skipped)))
	}
	fmt.Println(dimStyle.Render(fmt.Sprintf("%d reply line(s) from device", r.Acked)))
}
