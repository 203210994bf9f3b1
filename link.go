package mdcore

import "bytes"

// handleBracket implements spec.md §4.7's `[` dispatch: footnote
// references (`[^id]`), metadata references (`[%key]`), and ordinary
// link forms all start here.
func (p *parser) handleBracket(parent *Node, data []byte, i int) int {
	if i+1 < len(data) && data[i+1] == '^' && p.feat.Has(FeatureFootnotes) {
		return p.handleFootnoteRef(parent, data, i)
	}
	if i+1 < len(data) && data[i+1] == '%' {
		return p.handleMetaRef(parent, data, i)
	}
	return p.handleLinkOrImage(parent, data, i, false)
}

// handleImage implements the `![...]` image form, optionally followed by
// a `{width=... height=...}` attribute block when FeatureImgExt is set,
// per spec.md §4.7.
func (p *parser) handleImage(parent *Node, data []byte, i int) int {
	if i+1 >= len(data) || data[i+1] != '[' {
		return 0
	}
	n := p.handleLinkOrImage(parent, data, i+1, true)
	if n == 0 {
		return 0
	}
	total := n + 1

	if p.feat.Has(FeatureImgExt) {
		if extra, attrs := parseImageAttrBlock(data, i+total); attrs != nil {
			img := parent.Children[len(parent.Children)-1]
			if img.Type == NodeImage {
				img.AttrWidth = attrs.width
				img.AttrHeight = attrs.height
			}
			total += extra
		}
	}
	return total
}

type imageAttrs struct {
	width  string
	height string
}

// parseImageAttrBlock recognizes `{width=... height=...}` immediately
// following an image's closing paren/bracket, in either order, per
// spec.md §4.7's image handler. It returns the bytes consumed and the
// parsed attributes, or (0, nil) if no attribute block is present.
func parseImageAttrBlock(data []byte, at int) (int, *imageAttrs) {
	if at >= len(data) || data[at] != '{' {
		return 0, nil
	}
	j := at + 1
	attrs := &imageAttrs{}
	for {
		for j < len(data) && data[j] == ' ' {
			j++
		}
		if j < len(data) && data[j] == '}' {
			j++
			return j - at, attrs
		}
		var key string
		switch {
		case hasPrefixAt(data, j, "width="):
			key = "width"
			j += len("width=")
		case hasPrefixAt(data, j, "height="):
			key = "height"
			j += len("height=")
		default:
			return 0, nil
		}
		start := j
		for j < len(data) && data[j] != ' ' && data[j] != '}' {
			j++
		}
		val := string(data[start:j])
		if key == "width" {
			attrs.width = val
		} else {
			attrs.height = val
		}
	}
}

func hasPrefixAt(data []byte, at int, s string) bool {
	if at+len(s) > len(data) {
		return false
	}
	return string(data[at:at+len(s)]) == s
}

// handleLinkOrImage implements spec.md §4.7's link handler for all three
// forms: inline `[text](url "title" =WxH)`, full/collapsed reference
// `[text][id]`, and shortcut reference `[text]`. bracketPos is the index
// of the opening `[`; the returned consumed count is measured from
// bracketPos.
func (p *parser) handleLinkOrImage(parent *Node, data []byte, bracketPos int, isImage bool) int {
	depth := 1
	j := bracketPos + 1
	for j < len(data) && depth > 0 {
		if data[j] == '\\' && j+1 < len(data) {
			j += 2
			continue
		}
		if data[j] == '[' {
			depth++
		} else if data[j] == ']' {
			depth--
		}
		j++
	}
	if depth != 0 {
		return 0
	}
	content := data[bracketPos+1 : j-1]
	after := j

	if after < len(data) && data[after] == '(' {
		url, title, dims, tailLen, ok := parseInlineLinkTail(data, after)
		if !ok {
			return 0
		}
		p.emitLinkNode(parent, content, url, title, dims, isImage)
		return (after + tailLen) - bracketPos
	}

	if after < len(data) && data[after] == '[' {
		k := after + 1
		for k < len(data) && data[k] != ']' && data[k] != '\n' {
			k++
		}
		if k >= len(data) || data[k] != ']' {
			return 0
		}
		id := data[after+1 : k]
		key := collapseWhitespace(id)
		if key == "" {
			key = collapseWhitespace(content)
		}
		ref := findRef(p.refs, key)
		if ref == nil {
			return 0
		}
		p.emitLinkNode(parent, content, []byte(ref.link), []byte(ref.title), "", isImage)
		return (k + 1) - bracketPos
	}

	key := collapseWhitespace(content)
	ref := findRef(p.refs, key)
	if ref == nil {
		return 0
	}
	p.emitLinkNode(parent, content, []byte(ref.link), []byte(ref.title), "", isImage)
	return after - bracketPos
}

func (p *parser) emitLinkNode(parent *Node, content, url, title []byte, dims string, isImage bool) {
	if isImage {
		n := p.ps.push(NodeImage)
		if n == nil {
			return
		}
		n.Alt = append([]byte(nil), content...)
		n.Link = unescapeURL(url)
		n.Title = append([]byte(nil), title...)
		n.Dims = dims
		p.ps.pop(n)
		return
	}
	n := p.ps.push(NodeLink)
	if n == nil {
		return
	}
	n.Link = unescapeURL(url)
	n.Title = append([]byte(nil), title...)
	prevInLink := p.inLink
	p.inLink = true
	p.parseInline(n, content)
	p.inLink = prevInLink
	p.ps.pop(n)
}

// parseInlineLinkTail parses the `(url "title" =WxH)` tail of an inline
// link/image starting at data[openParen] == '('. Title and dims may
// appear in either order or be omitted. Returns the consumed length
// measured from openParen (inclusive of the closing paren).
func parseInlineLinkTail(data []byte, openParen int) (url, title []byte, dims string, consumed int, ok bool) {
	i := openParen + 1
	i = skipSpaces(data, i)

	if i < len(data) && data[i] == '<' {
		i++
		start := i
		for i < len(data) && data[i] != '>' && data[i] != '\n' {
			i++
		}
		if i >= len(data) || data[i] != '>' {
			return nil, nil, "", 0, false
		}
		url = data[start:i]
		i++
	} else {
		start := i
		depth := 0
		for i < len(data) {
			c := data[i]
			if c == '\\' && i+1 < len(data) {
				i += 2
				continue
			}
			if c == '(' {
				depth++
				i++
				continue
			}
			if c == ')' {
				if depth == 0 {
					break
				}
				depth--
				i++
				continue
			}
			if c == ' ' || c == '\n' || c == '=' {
				break
			}
			i++
		}
		url = data[start:i]
	}

	for {
		i = skipSpaces(data, i)
		if i < len(data) && (data[i] == '"' || data[i] == '\'') {
			q := data[i]
			i++
			start := i
			for i < len(data) && data[i] != q {
				i++
			}
			if i >= len(data) {
				return nil, nil, "", 0, false
			}
			title = data[start:i]
			i++
			continue
		}
		if i < len(data) && data[i] == '=' {
			i++
			start := i
			for i < len(data) && data[i] != ' ' && data[i] != ')' {
				i++
			}
			dims = string(data[start:i])
			continue
		}
		break
	}

	i = skipSpaces(data, i)
	if i >= len(data) || data[i] != ')' {
		return nil, nil, "", 0, false
	}
	i++
	return url, title, dims, i - openParen, true
}

func skipSpaces(data []byte, i int) int {
	for i < len(data) && (data[i] == ' ' || data[i] == '\n') {
		i++
	}
	return i
}

// unescapeURL resolves `\X` escapes within a link destination.
func unescapeURL(b []byte) []byte {
	if bytes.IndexByte(b, '\\') < 0 {
		return append([]byte(nil), b...)
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] == '\\' && i+1 < len(b) && bytes.IndexByte([]byte(escapeableBytes), b[i+1]) >= 0 {
			out = append(out, b[i+1])
			i++
			continue
		}
		out = append(out, b[i])
	}
	return out
}

// handleFootnoteRef implements `[^id]`. A second reference to an
// already-used id falls back to literal text, per spec.md §9's Open
// Question resolution.
func (p *parser) handleFootnoteRef(parent *Node, data []byte, i int) int {
	j := i + 2
	start := j
	for j < len(data) && data[j] != ']' && data[j] != '\n' {
		j++
	}
	if j >= len(data) || data[j] != ']' {
		return 0
	}
	id := string(data[start:j])
	end := (j + 1) - i

	fn := findFootnote(p.footnotes, id)
	if fn == nil {
		return 0
	}
	if fn.used {
		p.emitText(parent, data[i:j+1])
		return end
	}
	fn.used = true
	p.nextOrd++
	fn.ordinal = p.nextOrd

	n := p.ps.push(NodeFootnoteRef)
	if n == nil {
		return end
	}
	n.Ordinal = fn.ordinal
	p.ps.pop(n)
	return end
}

// handleMetaRef implements `[%key]`, substituting the document's
// metadata value for key as plain text.
func (p *parser) handleMetaRef(parent *Node, data []byte, i int) int {
	j := i + 2
	start := j
	for j < len(data) && data[j] != ']' && data[j] != '\n' {
		j++
	}
	if j >= len(data) || data[j] != ']' {
		return 0
	}
	key := normalizeMetaKey(string(data[start:j]))
	for _, e := range p.meta {
		if e.key == key {
			p.emitText(parent, []byte(e.value))
			return (j + 1) - i
		}
	}
	return 0
}
