package style

import (
	"regexp"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// MarkupParser renders [tag]text[/tag] markup used in command messages.
// Unknown tags are left untouched; tags nest.
type MarkupParser struct {
	styles   map[string]lipgloss.Style
	patterns map[string]*regexp.Regexp
}

// NewMarkupParser creates a new markup parser with default styles
func NewMarkupParser() *MarkupParser {
	p := &MarkupParser{
		patterns: make(map[string]*regexp.Regexp),
		styles: map[string]lipgloss.Style{
			"title":     TitleStyle,
			"header":    HeaderStyle,
			"success":   SuccessStyle,
			"error":     ErrorStyle,
			"warning":   WarningStyle,
			"info":      InfoStyle,
			"code":      CodeStyle,
			"path":      PathStyle,
			"muted":     MutedStyle,
			"bold":      lipgloss.NewStyle().Bold(true),
			"italic":    lipgloss.NewStyle().Italic(true),
			"underline": lipgloss.NewStyle().Underline(true),

			// Change kinds
			"create": CreateStyle,
			"update": UpdateStyle,
			"delete": DeleteStyle,
			"rename": RenameStyle,
		},
	}
	for tag := range p.styles {
		p.patterns[tag] = tagRegexp(tag)
	}
	return p
}

func tagRegexp(tag string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)\[` + regexp.QuoteMeta(tag) + `\](.*?)\[/` + regexp.QuoteMeta(tag) + `\]`)
}

// Render expands markup. Tags of different names nest.
func (p *MarkupParser) Render(text string) string {
	return p.expand(text, func(tag, content string) string {
		return p.styles[tag].Render(content)
	})
}

// Strip removes known tags without styling.
func (p *MarkupParser) Strip(text string) string {
	return p.expand(text, func(_, content string) string {
		return content
	})
}

func (p *MarkupParser) expand(text string, apply func(tag, content string) string) string {
	for _, tag := range p.tags() {
		re := p.patterns[tag]
		text = re.ReplaceAllStringFunc(text, func(match string) string {
			content := re.FindStringSubmatch(match)[1]
			return apply(tag, p.expand(content, apply))
		})
	}
	return text
}

func (p *MarkupParser) tags() []string {
	tags := make([]string, 0, len(p.styles))
	for tag := range p.styles {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// AddStyle allows adding custom styles
func (p *MarkupParser) AddStyle(tag string, style lipgloss.Style) {
	p.styles[tag] = style
	p.patterns[tag] = tagRegexp(tag)
}

var defaultParser = NewMarkupParser()

// Render is a convenience function using the default parser
func Render(text string) string {
	return defaultParser.Render(text)
}

// Strip is a convenience function using the default parser
func Strip(text string) string {
	return defaultParser.Strip(text)
}
