package render

import (
	"bytes"

	"github.com/rs/zerolog/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// MarkdownRenderer converts release notes to HTML. Raw HTML in the input is
// not passed through (goldmark's default).
type MarkdownRenderer struct {
	md goldmark.Markdown
}

func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

func (r *MarkdownRenderer) Render(text string) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		log.Warn().Err(err).Msg("markdown render failed, falling back to raw text")
		return text
	}
	return buf.String()
}

func (r *MarkdownRenderer) Available() bool {
	return true
}
