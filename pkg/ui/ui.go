// Package ui renders command reports as rich terminal output, plain text or
// JSON.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/ezconfig/pkg/changes"
	"github.com/arthur-debert/ezconfig/pkg/errors"
	"github.com/arthur-debert/ezconfig/pkg/reconcile"
)

const (
	MsgNoBaseline    = reconcile.NoBaseline
	MsgNoDifferences = "The active configuration is identical to the configuration in %s."
	MsgDifferences   = "Differences of the active config to %s:"
)

// Renderer is implemented once per Format.
type Renderer interface {
	// RenderDiff renders a previewed change set
	RenderDiff(report DiffReport) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// DiffReport is what a diff shows, independent of the format.
type DiffReport struct {
	Destination string      `json:"destination"`
	Baseline    bool        `json:"baseline"`
	Summary     string      `json:"summary"`
	Changes     []ChangeRow `json:"changes"`
	Details     string      `json:"details,omitempty"`

	set *changes.ChangeSet
}

// ChangeRow is one entry of a change set.
type ChangeRow struct {
	Collection string       `json:"collection"`
	Name       string       `json:"name"`
	Kind       changes.Kind `json:"kind"`
	OldName    string       `json:"old_name,omitempty"`
	NewName    string       `json:"new_name,omitempty"`
}

// NewDiffReport builds a report. A target without documents has no baseline
// and cs is ignored.
func NewDiffReport(destination string, cs *changes.ChangeSet, baseline bool, details string) DiffReport {
	report := DiffReport{
		Destination: destination,
		Baseline:    baseline,
		Summary:     "no changes",
		Changes:     []ChangeRow{},
		Details:     details,
	}
	if !baseline || cs == nil {
		return report
	}
	report.set = cs
	report.Summary = cs.Summary()
	for _, e := range cs.Entries {
		report.Changes = append(report.Changes, ChangeRow{
			Collection: e.Collection,
			Name:       e.Name,
			Kind:       e.Kind,
			OldName:    e.OldName,
			NewName:    e.NewName,
		})
	}
	return report
}

// HasChanges reports whether the report lists any change.
func (r DiffReport) HasChanges() bool {
	return len(r.Changes) > 0
}

// NewRenderer creates a renderer for format. FormatAuto inspects output when
// it is a file and falls back to the terminal renderer otherwise.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatTerminal, output)
	case FormatTerminal:
		return &terminalRenderer{out: output}, nil
	case FormatText:
		return &textRenderer{out: output}, nil
	case FormatJSON:
		return newJSONRenderer(output), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
