package mdcore

import "testing"

func TestEmphasisSingle(t *testing.T) {
	root := parseDoc(t, "*word*\n", 0)
	em := findFirst(root, NodeEmphasis)
	if em == nil {
		t.Fatal("expected an EMPHASIS node")
	}
}

func TestEmphasisDouble(t *testing.T) {
	root := parseDoc(t, "**word**\n", 0)
	em := findFirst(root, NodeDoubleEmphasis)
	if em == nil {
		t.Fatal("expected a DOUBLE_EMPHASIS node")
	}
}

func TestEmphasisTriple(t *testing.T) {
	root := parseDoc(t, "***word***\n", 0)
	em := findFirst(root, NodeTripleEmphasis)
	if em == nil {
		t.Fatal("expected a TRIPLE_EMPHASIS node")
	}
}

func TestStrikethrough(t *testing.T) {
	root := parseDoc(t, "~~gone~~\n", FeatureStrike)
	if findFirst(root, NodeStrikethrough) == nil {
		t.Fatal("expected a STRIKETHROUGH node")
	}
}

func TestHighlight(t *testing.T) {
	root := parseDoc(t, "==marked==\n", FeatureHilite)
	if findFirst(root, NodeHighlight) == nil {
		t.Fatal("expected a HIGHLIGHT node")
	}
}

func TestNoIntraWordEmphasisSuppressesUnderscore(t *testing.T) {
	root := parseDoc(t, "snake_case_word\n", FeatureNoIntraEmphasis)
	if findFirst(root, NodeEmphasis) != nil {
		t.Error("intra-word underscores must not open emphasis when FeatureNoIntraEmphasis is set")
	}
}

func TestIntraWordEmphasisAllowedByDefault(t *testing.T) {
	root := parseDoc(t, "snake_case_word\n", 0)
	if findFirst(root, NodeEmphasis) == nil {
		t.Error("without FeatureNoIntraEmphasis, intra-word underscores should open emphasis")
	}
}

func TestEmphasisClosingNotPrecededByWhitespace(t *testing.T) {
	root := parseDoc(t, "*foo bar *baz\n", 0)
	if findFirst(root, NodeEmphasis) != nil {
		t.Error("a closer preceded by whitespace must not close emphasis")
	}
}

func TestCodespanBasic(t *testing.T) {
	root := parseDoc(t, "`code`\n", 0)
	cs := findFirst(root, NodeCodespan)
	if cs == nil {
		t.Fatal("expected a CODESPAN node")
	}
	if string(cs.Text) != "code" {
		t.Errorf("Text = %q, want %q", cs.Text, "code")
	}
}

func TestCodespanStripsOneLeadingTrailingSpace(t *testing.T) {
	root := parseDoc(t, "`` `code` ``\n", 0)
	cs := findFirst(root, NodeCodespan)
	if cs == nil {
		t.Fatal("expected a CODESPAN node")
	}
	if string(cs.Text) != "`code`" {
		t.Errorf("Text = %q, want %q", cs.Text, "`code`")
	}
}

func TestCodespanDoubleBacktickAllowsEmbeddedBacktick(t *testing.T) {
	root := parseDoc(t, "``a`b``\n", 0)
	cs := findFirst(root, NodeCodespan)
	if cs == nil {
		t.Fatal("expected a CODESPAN node")
	}
	if string(cs.Text) != "a`b" {
		t.Errorf("Text = %q, want %q", cs.Text, "a`b")
	}
}

func TestFindBacktickRun(t *testing.T) {
	data := []byte("a`` b``` c````")
	if got := findBacktickRun(data, 0, 2); got != 1 {
		t.Errorf("findBacktickRun(n=2) = %d, want 1", got)
	}
	if got := findBacktickRun(data, 0, 3); got != 5 {
		t.Errorf("findBacktickRun(n=3) = %d, want 5", got)
	}
}
