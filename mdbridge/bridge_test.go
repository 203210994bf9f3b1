package mdbridge

import (
	"bytes"
	"strings"
	"testing"

	"github.com/brandonbloom/mdcore"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

func newHTMLRenderer() renderer.Renderer {
	return renderer.NewRenderer(renderer.WithNodeRenderers(
		util.Prioritized(html.NewRenderer(), 1000),
		util.Prioritized(extension.NewTableHTMLRenderer(), 500),
		util.Prioritized(extension.NewFootnoteHTMLRenderer(), 500),
		util.Prioritized(extension.NewStrikethroughHTMLRenderer(), 500),
	))
}

func convertSource(t *testing.T, src string, feat mdcore.Feature) (gast.Node, []byte) {
	t.Helper()
	doc := mdcore.NewDocument(mdcore.Options{Features: feat, MaxDepth: mdcore.DefaultMaxDepth})
	root, _, err := doc.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", src, err)
	}
	return Convert(root)
}

func TestConvertParagraphRendersToHTML(t *testing.T) {
	gdoc, source := convertSource(t, "Hello *world*.\n", mdcore.FeatureStrike)
	var buf bytes.Buffer
	if err := newHTMLRenderer().Render(&buf, source, gdoc); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<em>world</em>") {
		t.Errorf("rendered HTML = %q, want it to contain <em>world</em>", out)
	}
}

func TestConvertFencedCodeBlockCarriesLines(t *testing.T) {
	gdoc, source := convertSource(t, "```go\nfunc f() {}\n```\n", mdcore.FeatureFenced)
	var buf bytes.Buffer
	if err := newHTMLRenderer().Render(&buf, source, gdoc); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "func f() {}") {
		t.Errorf("rendered HTML missing code block content: %q", buf.String())
	}
}

func TestConvertTableRendersRowsAndAlignment(t *testing.T) {
	src := "| a | b |\n|:--|--:|\n| 1 | 2 |\n"
	gdoc, source := convertSource(t, src, mdcore.FeatureTables)
	var buf bytes.Buffer
	if err := newHTMLRenderer().Render(&buf, source, gdoc); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<table>") || !strings.Contains(out, "<th") {
		t.Errorf("rendered HTML missing table structure: %q", out)
	}
}

func TestConvertHighlightSplicesChildrenDirectly(t *testing.T) {
	gdoc, source := convertSource(t, "==marked==\n", mdcore.FeatureHilite)
	var buf bytes.Buffer
	if err := newHTMLRenderer().Render(&buf, source, gdoc); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "marked") {
		t.Errorf("expected highlighted text to survive conversion: %q", buf.String())
	}
}

func TestConvertFootnoteRefAndDef(t *testing.T) {
	src := "A note.[^1]\n\n[^1]: The footnote.\n"
	gdoc, source := convertSource(t, src, mdcore.FeatureFootnotes)
	var buf bytes.Buffer
	if err := newHTMLRenderer().Render(&buf, source, gdoc); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "footnote") {
		t.Errorf("rendered HTML missing footnote content: %q", out)
	}
}
