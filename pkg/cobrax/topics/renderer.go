package topics

// Renderer formats topic content for display.
type Renderer interface {
	// Render takes raw content and its file extension
	Render(content string, ext string) string
}

// PlainRenderer returns content unchanged.
type PlainRenderer struct{}

func (r *PlainRenderer) Render(content string, ext string) string {
	return content
}
