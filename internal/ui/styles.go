package ui

import "fmt"

// ANSI256 color codes.
const (
	colorAccent  = 74  // blue
	colorMuted   = 245 // medium gray
	colorOK      = 114 // green
	colorWarn    = 179 // yellow
	colorFail    = 167 // red
	colorPending = 250 // light gray
)

var noColor bool

// RenderAccent returns s in the accent (blue) color.
func RenderAccent(s string) string {
	return colorize(s, colorAccent)
}

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string {
	return colorize(s, colorMuted)
}

// RenderStatus returns a BRD, task, or health status string colored by
// state: green for ok/ready/done, yellow for generating/in_progress, red for
// failed/blocked, light gray otherwise.
func RenderStatus(status string) string {
	switch status {
	case "ok", "ready", "done", "approved":
		return colorize(status, colorOK)
	case "generating", "in_progress":
		return colorize(status, colorWarn)
	case "failed", "blocked":
		return colorize(status, colorFail)
	default:
		return colorize(status, colorPending)
	}
}

// RenderCommand returns s styled as a command name (light gray).
func RenderCommand(s string) string {
	return colorize(s, colorPending)
}

// RenderWarning returns s in the warning (yellow) color.
func RenderWarning(s string) string {
	return colorize(s, colorWarn)
}

func colorize(s string, color int) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", color, s)
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}
