package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/quatton/qrender/pkg/qrender"
)

var (
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorBlue  = lipgloss.Color("75")
	colorDim   = lipgloss.Color("240")

	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	styleLink    = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconArrow   = "→"
)

// printNotification writes a notification as a single styled line.
func printNotification(w io.Writer, n qrender.Notification) {
	if n.Severity == qrender.SeverityError {
		fmt.Fprintf(w, "%s %s\n", styleError.Render(iconError), n.Message)
		return
	}
	fmt.Fprintf(w, "%s %s\n", styleSuccess.Render(iconSuccess), n.Message)
}

// printResult prints the notification for res plus details worth keeping.
func printResult(w io.Writer, res qrender.Result) {
	printNotification(w, qrender.Report(res))

	if res.LogPath != "" {
		fmt.Fprintf(w, "  %s log %s\n", styleDim.Render(iconArrow), styleLink.Render(res.LogPath))
	}
	if res.PID > 0 {
		fmt.Fprintf(w, "  %s pid %d\n", styleDim.Render(iconArrow), res.PID)
	}
	fmt.Fprintf(w, "  %s job %s\n", styleDim.Render(iconArrow), styleDim.Render(res.JobID))

	if hint := hintFor(res); res.Failed() && hint != "" {
		fmt.Fprintf(w, "  %s %s\n", styleDim.Render(iconArrow), hint)
	}
}
