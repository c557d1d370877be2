package render

// Differ turns two texts into a display-ready comparison.
type Differ interface {
	Diff(before, after string) string
	// Available reports whether Diff produces a real comparison.
	Available() bool
}

// Renderer turns lightweight markup into display-ready rich text.
type Renderer interface {
	Render(text string) string
	// Available reports whether Render produces markup instead of the literal text.
	Available() bool
}

// NewDiffer returns the HTML differ, or the raw-text fallback when disabled.
func NewDiffer(enabled bool) Differ {
	if !enabled {
		return NewRawDiffer()
	}
	return NewHTMLDiffer()
}

// NewRenderer returns the Markdown renderer, or the raw-text fallback when disabled.
func NewRenderer(enabled bool) Renderer {
	if !enabled {
		return NewRawRenderer()
	}
	return NewMarkdownRenderer()
}
