package ui

import (
	"fmt"
	"io"

	"github.com/arthur-debert/ezconfig/pkg/changes"
	"github.com/arthur-debert/ezconfig/pkg/style"
)

// terminalRenderer prints colored status lines and the bordered change table.
type terminalRenderer struct {
	out io.Writer
}

func (r *terminalRenderer) RenderDiff(report DiffReport) error {
	switch {
	case !report.Baseline:
		style.PrintStatus(r.out, style.StatusInfo, "%s", MsgNoBaseline)
	case !report.HasChanges():
		style.PrintStatus(r.out, style.StatusInfo, MsgNoDifferences, report.Destination)
	default:
		if _, err := fmt.Fprintf(r.out, MsgDifferences+"\n\n%s\n", report.Destination, changes.Render(report.set)); err != nil {
			return err
		}
		if report.Details != "" {
			_, err := fmt.Fprintf(r.out, "\n%s\n", report.Details)
			return err
		}
	}
	return nil
}

func (r *terminalRenderer) RenderMessage(msg string) error {
	style.PrintStatus(r.out, style.StatusInfo, "%s", msg)
	return nil
}
