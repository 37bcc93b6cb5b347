package style

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true).
			MarginBottom(1)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	CodeStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	PathStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Italic(true)

	BorderStyle = lipgloss.NewStyle().
			Foreground(BorderColor)
)

// Change kind styles
var (
	CreateStyle = lipgloss.NewStyle().Foreground(CreateColor)
	UpdateStyle = lipgloss.NewStyle().Foreground(UpdateColor)
	DeleteStyle = lipgloss.NewStyle().Foreground(DeleteColor)
	RenameStyle = lipgloss.NewStyle().Foreground(RenameColor)
)

// KindStyle returns the style for a change kind name.
func KindStyle(kind string) lipgloss.Style {
	switch kind {
	case "create":
		return CreateStyle
	case "update":
		return UpdateStyle
	case "delete":
		return DeleteStyle
	case "rename":
		return RenameStyle
	default:
		return lipgloss.NewStyle()
	}
}

// Operation indicator styles
var (
	SuccessIndicator = SuccessStyle.Render("✓")
	ErrorIndicator   = ErrorStyle.Render("✗")
	WarningIndicator = WarningStyle.Render("!")
	InfoIndicator    = InfoStyle.Render("•")
)

// PlainRenderer returns a lipgloss renderer that never emits escape codes,
// whatever w is. Output rendered with it is safe for commit messages.
func PlainRenderer(w io.Writer) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.Ascii)
	return r
}

// Indent pads every line of s by two spaces per level.
func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}

func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}
