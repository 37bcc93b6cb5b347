package ui

import (
	"fmt"
	"io"

	"github.com/arthur-debert/ezconfig/pkg/changes"
)

// textRenderer prints the report without colors, with an ASCII table.
type textRenderer struct {
	out io.Writer
}

func (r *textRenderer) RenderDiff(report DiffReport) error {
	var err error
	switch {
	case !report.Baseline:
		_, err = fmt.Fprintln(r.out, MsgNoBaseline)
	case !report.HasChanges():
		_, err = fmt.Fprintf(r.out, MsgNoDifferences+"\n", report.Destination)
	default:
		_, err = fmt.Fprintf(r.out, MsgDifferences+"\n\n%s\n", report.Destination, changes.RenderPlain(report.set))
		if err == nil && report.Details != "" {
			_, err = fmt.Fprintf(r.out, "\n%s\n", report.Details)
		}
	}
	return err
}

func (r *textRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.out, msg)
	return err
}
