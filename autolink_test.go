package mdcore

import "testing"

func TestBareSchemeAutolink(t *testing.T) {
	root := parseDoc(t, "Visit http://example.com now\n", FeatureAutolink)
	a := findFirst(root, NodeLinkAuto)
	if a == nil {
		t.Fatal("expected a LINK_AUTO node")
	}
	if string(a.Link) != "http://example.com" {
		t.Errorf("Link = %q, want %q", a.Link, "http://example.com")
	}
	if a.AutoKind != AutoLinkNormal {
		t.Errorf("AutoKind = %v, want AutoLinkNormal", a.AutoKind)
	}
}

func TestBareEmailAutolink(t *testing.T) {
	root := parseDoc(t, "Contact me@example.com today\n", FeatureAutolink)
	a := findFirst(root, NodeLinkAuto)
	if a == nil {
		t.Fatal("expected a LINK_AUTO node")
	}
	if string(a.Link) != "me@example.com" {
		t.Errorf("Link = %q, want %q", a.Link, "me@example.com")
	}
	if a.AutoKind != AutoLinkEmail {
		t.Errorf("AutoKind = %v, want AutoLinkEmail", a.AutoKind)
	}
}

func TestBareWWWAutolink(t *testing.T) {
	root := parseDoc(t, "See www.example.com here\n", FeatureAutolink)
	a := findFirst(root, NodeLinkAuto)
	if a == nil {
		t.Fatal("expected a LINK_AUTO node")
	}
	if string(a.Link) != "www.example.com" {
		t.Errorf("Link = %q, want %q", a.Link, "www.example.com")
	}
}

func TestAutolinkTrailingPunctuationTrimmed(t *testing.T) {
	root := parseDoc(t, "Visit http://example.com.\n", FeatureAutolink)
	a := findFirst(root, NodeLinkAuto)
	if a == nil {
		t.Fatal("expected a LINK_AUTO node")
	}
	if string(a.Link) != "http://example.com" {
		t.Errorf("Link = %q, want trailing period trimmed: %q", a.Link, "http://example.com")
	}
}

func TestAngleBracketAutolink(t *testing.T) {
	root := parseDoc(t, "<http://example.com>\n", 0)
	a := findFirst(root, NodeLinkAuto)
	if a == nil {
		t.Fatal("expected a LINK_AUTO node")
	}
	if string(a.Link) != "http://example.com" {
		t.Errorf("Link = %q, want %q", a.Link, "http://example.com")
	}
}

func TestAngleBracketFallsBackToRawHTML(t *testing.T) {
	root := parseDoc(t, "<span>text</span>\n", 0)
	if findFirst(root, NodeRawHTML) == nil {
		t.Error("expected a non-autolink angle-bracket tag to fall back to RAW_HTML")
	}
}

func TestNoAutolinkInsideLinkText(t *testing.T) {
	root := parseDoc(t, "[see http://example.com here](/page)\n", FeatureAutolink)
	link := findFirst(root, NodeLink)
	if link == nil {
		t.Fatal("expected a LINK node")
	}
	if findFirst(link, NodeLinkAuto) != nil {
		t.Error("an autolink must not fire inside an already-open link's text")
	}
}

func TestSuperscriptParenForm(t *testing.T) {
	root := parseDoc(t, "x^(2+2)\n", FeatureSuper)
	if findFirst(root, NodeSuperscript) == nil {
		t.Fatal("expected a SUPERSCRIPT node for ^(...) form")
	}
}

func TestSuperscriptWordForm(t *testing.T) {
	root := parseDoc(t, "x^2\n", FeatureSuper)
	if findFirst(root, NodeSuperscript) == nil {
		t.Fatal("expected a SUPERSCRIPT node for ^word form")
	}
}

func TestInlineMath(t *testing.T) {
	root := parseDoc(t, "$x^2$\n", FeatureMath)
	m := findFirst(root, NodeMathBlock)
	if m == nil {
		t.Fatal("expected a MATH_BLOCK node")
	}
	if string(m.Text) != "x^2" {
		t.Errorf("Text = %q, want %q", m.Text, "x^2")
	}
}

func TestDisplayMath(t *testing.T) {
	root := parseDoc(t, "$$x^2$$\n", FeatureMath)
	m := findFirst(root, NodeMathBlock)
	if m == nil {
		t.Fatal("expected a MATH_BLOCK node")
	}
	if string(m.Text) != "x^2" {
		t.Errorf("Text = %q, want %q", m.Text, "x^2")
	}
}
