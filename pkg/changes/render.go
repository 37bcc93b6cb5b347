package changes

import (
	"io"
	"strings"

	"github.com/arthur-debert/ezconfig/pkg/document"
	"github.com/arthur-debert/ezconfig/pkg/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/pmezard/go-difflib/difflib"
)

// Table headers of the change table.
var Headers = []string{"Collection", "Config", "Operation"}

// Rows returns the change table rows in ChangeSet order.
func (c *ChangeSet) Rows() [][]string {
	rows := make([][]string, 0, len(c.Entries))
	for _, e := range c.Entries {
		rows = append(rows, []string{e.Collection, e.Name, string(e.Kind)})
	}
	return rows
}

// Render returns the styled change table for a terminal.
func Render(c *ChangeSet) string {
	rows := c.Rows()
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(style.BorderStyle).
		Headers(Headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			cell := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.HeaderStyle.Padding(0, 1)
			}
			if col == 2 && row >= 0 && row < len(rows) {
				return style.KindStyle(rows[row][2]).Padding(0, 1)
			}
			return cell
		})
	return t.String()
}

// RenderPlain returns the change table without any escape codes, bordered
// with ASCII characters, for commit messages and logs.
func RenderPlain(c *ChangeSet) string {
	r := style.PlainRenderer(io.Discard)
	cell := r.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.ASCIIBorder()).
		BorderStyle(r.NewStyle()).
		Headers(Headers...).
		Rows(c.Rows()...).
		StyleFunc(func(row, col int) lipgloss.Style {
			return cell
		})
	return t.String()
}

// UnifiedDiff returns a unified diff from the target version of the entry to
// the live version. It is empty when the two encodings are identical.
func UnifiedDiff(e Entry) (string, error) {
	from, to := e.Name, e.Name
	if e.Kind == Rename {
		from, to = e.OldName, e.NewName
	}
	diff := difflib.UnifiedDiff{
		A:        lines(e.Target),
		B:        lines(e.Live),
		FromFile: "target/" + document.Filename(from),
		ToFile:   "live/" + document.Filename(to),
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}

// RenderDetails returns the unified diff of every entry, separated by blank lines.
func RenderDetails(c *ChangeSet) (string, error) {
	var parts []string
	for _, e := range c.Entries {
		d, err := UnifiedDiff(e)
		if err != nil {
			return "", err
		}
		if d != "" {
			parts = append(parts, strings.TrimRight(d, "\n"))
		}
	}
	return strings.Join(parts, "\n\n"), nil
}

func lines(doc *document.Document) []string {
	if doc == nil || len(doc.Data) == 0 {
		return nil
	}
	return difflib.SplitLines(string(doc.Data))
}
