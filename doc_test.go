package mdcore

import "testing"

func allFeatures() Feature {
	return FeatureTables | FeatureFenced | FeatureFootnotes | FeatureAutolink |
		FeatureStrike | FeatureHilite | FeatureSuper | FeatureMath |
		FeatureNoIntraEmphasis | FeatureMetadata | FeatureCommonMark | FeatureDefList
}

func parseDoc(t *testing.T, src string, feat Feature) *Node {
	t.Helper()
	doc := NewDocument(Options{Features: feat, MaxDepth: DefaultMaxDepth})
	root, _, err := doc.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", src, err)
	}
	return root
}

func findFirst(n *Node, t NodeType) *Node {
	if n.Type == t {
		return n
	}
	for _, c := range n.Children {
		if found := findFirst(c, t); found != nil {
			return found
		}
	}
	return nil
}

func TestParseReturnsRootAlways(t *testing.T) {
	tests := []string{"", "hello", "# Title\n\nBody.\n", "***\n"}
	for _, src := range tests {
		root := parseDoc(t, src, allFeatures())
		if root.Type != NodeRoot {
			t.Errorf("Parse(%q) root type = %v, want ROOT", src, root.Type)
		}
	}
}

func TestParseSimpleParagraph(t *testing.T) {
	root := parseDoc(t, "Hello *world*.\n", FeatureStrike)
	p := findFirst(root, NodeParagraph)
	if p == nil {
		t.Fatal("expected a PARAGRAPH node")
	}
	em := findFirst(p, NodeEmphasis)
	if em == nil {
		t.Fatal("expected an EMPHASIS node for *world*")
	}
}

func TestDepthExceededIsRecoverable(t *testing.T) {
	var src string
	for i := 0; i < 50; i++ {
		src += "> "
	}
	src += "deep\n"
	doc := NewDocument(Options{MaxDepth: 8})
	root, count, err := doc.Parse([]byte(src))
	if err == nil {
		t.Fatal("expected a DepthExceeded error for deeply nested blockquotes")
	}
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if perr.Kind != DepthExceeded {
		t.Errorf("ParseError.Kind = %v, want DepthExceeded", perr.Kind)
	}
	if root == nil || root.Type != NodeRoot {
		t.Error("a valid ROOT node must still be returned on DepthExceeded")
	}
	if count == 0 {
		t.Error("node count should reflect the partial tree built before the error")
	}
}

func TestMalformedMarkdownNeverErrors(t *testing.T) {
	inputs := []string{
		"[unterminated",
		"```no close fence",
		"*unterminated emphasis",
		"[^ref]: dangling footnote with no use\n",
		"| a | b\n|---|\n",
	}
	for _, src := range inputs {
		doc := NewDocument(Options{Features: allFeatures(), MaxDepth: DefaultMaxDepth})
		_, _, err := doc.Parse([]byte(src))
		if err != nil {
			t.Errorf("Parse(%q) returned error %v, want nil (malformed input must degrade gracefully)", src, err)
		}
	}
}

func TestMetadataDefaultsAndOverrides(t *testing.T) {
	src := "title: Explicit\n\nBody\n"
	doc := NewDocument(Options{
		Features:  FeatureMetadata,
		Defaults:  []MetaEntry{{Key: "author", Value: "Fallback"}, {Key: "title", Value: "Ignored"}},
		Overrides: []MetaEntry{{Key: "status", Value: "final"}},
	})
	root, _, err := doc.Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	var keys []string
	for _, c := range root.Children {
		if c.Type == NodeDocHeader {
			for _, m := range c.Children {
				if m.Type == NodeMeta {
					keys = append(keys, m.Key)
				}
			}
		}
	}
	want := map[string]bool{"title": true, "author": true, "status": true}
	for _, k := range keys {
		delete(want, k)
	}
	if len(want) != 0 {
		t.Errorf("missing metadata keys: %v (got %v)", want, keys)
	}
}
