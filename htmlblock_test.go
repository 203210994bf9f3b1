package mdcore

import "testing"

func TestBlockHTMLRecognizedTag(t *testing.T) {
	src := "<div>\nSome HTML content.\n</div>\n\nAfter.\n"
	root := parseDoc(t, src, 0)
	h := findFirst(root, NodeBlockHTML)
	if h == nil {
		t.Fatal("expected a BLOCK_HTML node")
	}
}

func TestBlockHTMLUnknownTagNotRecognized(t *testing.T) {
	root := parseDoc(t, "<bogus>\ntext\n</bogus>\n", 0)
	if findFirst(root, NodeBlockHTML) != nil {
		t.Error("an unlisted tag name must not be treated as an HTML block")
	}
}

func TestBlockHTMLComment(t *testing.T) {
	root := parseDoc(t, "<!-- a comment -->\n\nAfter.\n", 0)
	if findFirst(root, NodeBlockHTML) == nil {
		t.Error("expected an HTML comment to produce a BLOCK_HTML node")
	}
}

func TestBlockHTMLSelfClosingHR(t *testing.T) {
	root := parseDoc(t, "<hr/>\n", 0)
	if findFirst(root, NodeBlockHTML) == nil {
		t.Error("expected a self-closing <hr/> to produce a BLOCK_HTML node")
	}
}

func TestScanOpeningTagName(t *testing.T) {
	tests := []struct {
		input        string
		wantName     string
		wantSelf     bool
		wantOK       bool
	}{
		{"<div>", "div", false, true},
		{"<hr/>", "hr", true, true},
		{"not a tag", "", false, false},
	}
	for _, tt := range tests {
		name, self, ok := scanOpeningTagName([]byte(tt.input))
		if ok != tt.wantOK || name != tt.wantName || self != tt.wantSelf {
			t.Errorf("scanOpeningTagName(%q) = (%q, %v, %v), want (%q, %v, %v)",
				tt.input, name, self, ok, tt.wantName, tt.wantSelf, tt.wantOK)
		}
	}
}
