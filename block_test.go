package mdcore

import "testing"

func TestBlockATXHeader(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantLevel int
		wantNode  bool
	}{
		{"h1", "# Title\n", 0, true},
		{"h3", "### Sub\n", 2, true},
		{"trailing hashes stripped", "## Title ##\n", 1, true},
		{"too many hashes", "####### nope\n", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parseDoc(t, tt.input, 0)
			h := findFirst(root, NodeHeader)
			if !tt.wantNode {
				if h != nil {
					t.Fatalf("did not expect a HEADER node for %q", tt.input)
				}
				return
			}
			if h == nil {
				t.Fatalf("expected a HEADER node for %q", tt.input)
			}
			if h.Level != tt.wantLevel {
				t.Errorf("Level = %d, want %d", h.Level, tt.wantLevel)
			}
		})
	}
}

func TestBlockATXHeaderCommonMarkRequiresSpace(t *testing.T) {
	root := parseDoc(t, "#NoSpace\n", FeatureCommonMark)
	if findFirst(root, NodeHeader) != nil {
		t.Error("CommonMark mode must require a space after '#'")
	}
}

func TestBlockHRule(t *testing.T) {
	tests := []string{"***\n", "---\n", "___\n", "* * *\n"}
	for _, src := range tests {
		root := parseDoc(t, src, 0)
		if findFirst(root, NodeHRule) == nil {
			t.Errorf("expected HRULE for %q", src)
		}
	}
}

func TestBlockQuoteNesting(t *testing.T) {
	root := parseDoc(t, "> outer\n> > inner\n", 0)
	outer := findFirst(root, NodeBlockQuote)
	if outer == nil {
		t.Fatal("expected outer BLOCKQUOTE")
	}
	if findFirst(outer, NodeBlockQuote) == nil {
		t.Error("expected a nested BLOCKQUOTE inside the outer one")
	}
}

func TestBlockIndentedCode(t *testing.T) {
	root := parseDoc(t, "    code here\n", 0)
	code := findFirst(root, NodeBlockCode)
	if code == nil {
		t.Fatal("expected a BLOCK_CODE node")
	}
	if string(code.Text) != "code here\n" {
		t.Errorf("Text = %q, want %q", code.Text, "code here\n")
	}
}

func TestBlockFencedCode(t *testing.T) {
	src := "```go\nfunc f() {}\n```\n"
	root := parseDoc(t, src, FeatureFenced)
	code := findFirst(root, NodeBlockCode)
	if code == nil {
		t.Fatal("expected a BLOCK_CODE node")
	}
	if code.Lang != "go" {
		t.Errorf("Lang = %q, want %q", code.Lang, "go")
	}
	if string(code.Text) != "func f() {}\n" {
		t.Errorf("Text = %q, want %q", code.Text, "func f() {}\n")
	}
}

func TestBlockSetextHeader(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantLevel int
	}{
		{"level 1", "Title\n=====\n", 0},
		{"level 2", "Title\n-----\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parseDoc(t, tt.input, 0)
			h := findFirst(root, NodeHeader)
			if h == nil {
				t.Fatalf("expected a HEADER node for %q", tt.input)
			}
			if h.Level != tt.wantLevel {
				t.Errorf("Level = %d, want %d", h.Level, tt.wantLevel)
			}
		})
	}
}

func TestBlockParagraphStopsAtBlankLine(t *testing.T) {
	root := parseDoc(t, "First para.\n\nSecond para.\n", 0)
	var paras []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		if n.Type == NodeParagraph {
			paras = append(paras, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	if len(paras) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(paras))
	}
}
