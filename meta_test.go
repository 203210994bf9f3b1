package mdcore

import "testing"

func TestNormalizeMetaKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Title", "title"},
		{"my key", "mykey"},
		{"a.b", "a?b"},
		{"already-normal_key", "already-normal_key"},
	}
	for _, tt := range tests {
		if got := normalizeMetaKey(tt.input); got != tt.want {
			t.Errorf("normalizeMetaKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLooksLikeMetadataBlock(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"title: Foo\n\nBody\n", true},
		{"# Not Metadata\n", false},
		{"no colon on first line\nkey: val\n", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := looksLikeMetadataBlock([]byte(tt.input)); got != tt.want {
			t.Errorf("looksLikeMetadataBlock(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseMetadataMultilineContinuation(t *testing.T) {
	src := "title: A Long\n  Title\n\nBody\n"
	entries, consumed := parseMetadata([]byte(src))
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].key != "title" {
		t.Errorf("key = %q, want %q", entries[0].key, "title")
	}
	if entries[0].value != "A Long\n  Title" {
		t.Errorf("value = %q, want %q", entries[0].value, "A Long\n  Title")
	}
	if consumed >= len(src) {
		t.Error("consumed should stop before the body text")
	}
}

func TestParseMetadataStopsAtUnindentedColonLine(t *testing.T) {
	src := "title: Foo\nauthor: Bar\n\n"
	entries, _ := parseMetadata([]byte(src))
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[1].key != "author" || entries[1].value != "Bar" {
		t.Errorf("second entry = %+v, want key=author value=Bar", entries[1])
	}
}

func TestCanonicalizeMetaOrderMovesTitleFirst(t *testing.T) {
	entries := []metaEntry{{key: "author", value: "A"}, {key: "title", value: "T"}}
	out := canonicalizeMetaOrder(entries)
	if out[0].key != "title" {
		t.Errorf("expected title to be moved first, got %q", out[0].key)
	}
}
