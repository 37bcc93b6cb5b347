package style

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

// Status classifies a one-line message printed at the end of a command.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
	StatusWarning Status = "warning"
	StatusInfo    Status = "info"
	StatusAborted Status = "aborted"
)

// StatusStyle returns the pterm style for a status
func StatusStyle(status Status) *pterm.Style {
	switch status {
	case StatusSuccess:
		return pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	case StatusError:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	case StatusWarning:
		return pterm.NewStyle(pterm.FgYellow)
	case StatusInfo:
		return pterm.NewStyle(pterm.FgCyan)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// StatusPrefix is the short marker shown before a status line.
func StatusPrefix(status Status) string {
	switch status {
	case StatusSuccess:
		return "✓"
	case StatusError:
		return "✗"
	case StatusWarning:
		return "!"
	case StatusAborted:
		return "○"
	default:
		return "•"
	}
}

// RenderStatus formats msg as a status line.
func RenderStatus(status Status, msg string) string {
	return StatusStyle(status).Sprint(StatusPrefix(status)) + " " + msg
}

// PrintStatus writes a status line followed by a newline.
func PrintStatus(w io.Writer, status Status, format string, args ...interface{}) {
	_, _ = fmt.Fprintln(w, RenderStatus(status, fmt.Sprintf(format, args...)))
}
