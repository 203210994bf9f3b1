package mdbridge

import (
	markdown "github.com/teekennedy/goldmark-markdown"
	"github.com/yuin/goldmark/renderer"
)

// NewMarkdownRenderer returns a renderer.Renderer wired to
// goldmark-markdown's default renderer -- the same renderer the teacher
// repo drives in its own render step (transform.go's
// renderModifiedASTToMarkdownWithTransforms).
func NewMarkdownRenderer() renderer.Renderer {
	return markdown.NewRenderer()
}
