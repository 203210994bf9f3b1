package mdcore

import (
	"strings"
)

// metaEntry is the internal representation of a parsed metadata entry
// (spec.md §3): a normalized key buffer and its value. It survives as a
// META AST node whose child is a NORMAL_TEXT carrying the value.
type metaEntry struct {
	key   string
	value string
}

// looksLikeMetadataBlock reports whether the cleaned buffer begins with a
// metadata block, per spec.md §4.5: the first byte (after BOM, already
// stripped by preprocess) is alphanumeric, and the first logical line
// contains a ':' before its newline.
func looksLikeMetadataBlock(data []byte) bool {
	if len(data) == 0 || !isAlnum(data[0]) {
		return false
	}
	for i := 0; i < len(data); i++ {
		if data[i] == '\n' {
			return false
		}
		if data[i] == ':' {
			return true
		}
	}
	return false
}

// parseMetadata extracts the leading key/value block, per spec.md §4.5
// (C5). It returns the parsed entries in document order and the number of
// bytes consumed (the block extends through the first blank line).
//
// Key normalization keeps alphanumerics plus '-'/'_' (lowercased), drops
// whitespace, and replaces anything else with '?'. A value's continuation
// lines are any line that isn't itself a new unindented "key:" line; the
// value ends at a blank line or at such a line. Trailing spaces are
// trimmed only from single-line values.
func parseMetadata(data []byte) (entries []metaEntry, consumed int) {
	pos := 0
	for pos < len(data) {
		lineEnd := pos
		for lineEnd < len(data) && data[lineEnd] != '\n' {
			lineEnd++
		}
		line := data[pos:lineEnd]

		if len(strings.TrimSpace(string(line))) == 0 {
			pos = lineEnd
			if pos < len(data) {
				pos++
			}
			break
		}

		colon := indexByte(line, ':')
		if colon < 0 || hasLeadingSpace(line) {
			// Malformed entry line with no key: stop the block here
			// rather than consuming unrelated content.
			break
		}

		key := normalizeMetaKey(string(line[:colon]))
		valStart := colon + 1
		for valStart < len(line) && line[valStart] == ' ' {
			valStart++
		}
		var valueLines []string
		valueLines = append(valueLines, string(line[valStart:]))

		next := lineEnd
		if next < len(data) {
			next++
		}
		consumedSoFar := next

		for next < len(data) {
			nl := next
			for nl < len(data) && data[nl] != '\n' {
				nl++
			}
			cl := data[next:nl]
			if len(strings.TrimSpace(string(cl))) == 0 {
				break
			}
			if c := indexByte(cl, ':'); c >= 0 && !hasLeadingSpace(cl) {
				break
			}
			valueLines = append(valueLines, string(cl))
			next = nl
			if next < len(data) {
				next++
			}
			consumedSoFar = next
		}

		value := strings.Join(valueLines, "\n")
		if len(valueLines) == 1 {
			value = strings.TrimRight(value, " \t")
		}
		entries = append(entries, metaEntry{key: key, value: value})

		pos = consumedSoFar
	}
	return entries, pos
}

func normalizeMetaKey(raw string) string {
	var b strings.Builder
	for _, c := range []byte(raw) {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c - 'A' + 'a')
		case c == '-' || c == '_':
			b.WriteByte(c)
		case c == ' ' || c == '\t':
			// dropped
		default:
			b.WriteByte('?')
		}
	}
	return b.String()
}

func hasLeadingSpace(line []byte) bool {
	return len(line) > 0 && (line[0] == ' ' || line[0] == '\t')
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}

func isAlnum(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// canonicalizeMetaOrder moves the "title" entry, if present, to the head
// of the list, per spec.md §4.5.
func canonicalizeMetaOrder(entries []metaEntry) []metaEntry {
	idx := -1
	for i, e := range entries {
		if e.key == "title" {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return entries
	}
	out := make([]metaEntry, 0, len(entries))
	out = append(out, entries[idx])
	out = append(out, entries[:idx]...)
	out = append(out, entries[idx+1:]...)
	return out
}
