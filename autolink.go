package mdcore

import "bytes"

// handleBareAutolink implements spec.md §6's external autolink-detector
// contract for the three bare (non-angle-bracket) trigger characters:
// ':' after a scheme word followed by "//", '@' inside what looks like
// an email address, and a leading "www." run. The scheme/user part that
// was already flushed as plain text before the trigger byte is
// reclaimed via trimLastText.
func (p *parser) handleBareAutolink(parent *Node, data []byte, i int) int {
	switch data[i] {
	case ':':
		return p.detectSchemeAutolink(parent, data, i)
	case '@':
		return p.detectEmailAutolink(parent, data, i)
	case 'w':
		return p.detectWWWAutolink(parent, data, i)
	}
	return 0
}

func (p *parser) detectSchemeAutolink(parent *Node, data []byte, i int) int {
	if i+2 >= len(data) || data[i+1] != '/' || data[i+2] != '/' {
		return 0
	}
	schemeStart := i
	for schemeStart > 0 && isAlpha(data[schemeStart-1]) {
		schemeStart--
	}
	if schemeStart == i {
		return 0
	}
	end := i + 3
	for end < len(data) && !isSpace(data[end]) && data[end] != '<' && data[end] != '>' {
		end++
	}
	end = trimTrailingLinkPunct(data, i+3, end)
	if end <= i+3 {
		return 0
	}
	rewind := i - schemeStart
	p.emitAutolink(parent, data[schemeStart:end], AutoLinkNormal, rewind)
	return end - i
}

func (p *parser) detectEmailAutolink(parent *Node, data []byte, i int) int {
	start := i
	for start > 0 && isEmailLocalChar(data[start-1]) {
		start--
	}
	if start == i {
		return 0
	}
	end := i + 1
	for end < len(data) && isEmailDomainChar(data[end]) {
		end++
	}
	if end == i+1 || !bytes.ContainsRune(data[i+1:end], '.') {
		return 0
	}
	rewind := i - start
	p.emitAutolink(parent, data[start:end], AutoLinkEmail, rewind)
	return end - i
}

func (p *parser) detectWWWAutolink(parent *Node, data []byte, i int) int {
	if !bytes.HasPrefix(data[i:], []byte("www.")) {
		return 0
	}
	end := i + 4
	for end < len(data) && !isSpace(data[end]) && data[end] != '<' && data[end] != '>' {
		end++
	}
	end = trimTrailingLinkPunct(data, i+4, end)
	if end <= i+4 {
		return 0
	}
	p.emitAutolink(parent, data[i:end], AutoLinkNormal, 0)
	return end - i
}

func (p *parser) emitAutolink(parent *Node, text []byte, kind AutoLinkKind, rewind int) {
	if rewind > 0 {
		trimLastText(parent, rewind)
	}
	n := p.ps.push(NodeLinkAuto)
	if n == nil {
		return
	}
	n.AutoKind = kind
	n.Link = append([]byte(nil), text...)
	n.Text = append([]byte(nil), text...)
	p.ps.pop(n)
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isEmailLocalChar(c byte) bool {
	return isAlnum(c) || c == '.' || c == '_' || c == '-' || c == '+'
}

func isEmailDomainChar(c byte) bool {
	return isAlnum(c) || c == '.' || c == '-'
}

func trimTrailingLinkPunct(data []byte, start, end int) int {
	for end > start && isTrailingLinkPunct(data[end-1]) {
		end--
	}
	return end
}

func isTrailingLinkPunct(c byte) bool {
	switch c {
	case '.', ',', ';', ':', '!', '?', ')':
		return true
	}
	return false
}

// handleAngle implements spec.md §4.7's `<...>` dispatch: an autolink
// form (`<scheme://...>` or `<user@host>`) when the bracketed content
// looks like one, otherwise a raw inline HTML tag.
func (p *parser) handleAngle(parent *Node, data []byte, i int) int {
	j := i + 1
	end := j
	for end < len(data) && data[end] != '>' && data[end] != '\n' && data[end] != ' ' {
		end++
	}
	if end < len(data) && data[end] == '>' {
		inner := data[j:end]
		if looksLikeAutolinkURL(inner) {
			p.emitAutolink(parent, inner, AutoLinkNormal, 0)
			return (end + 1) - i
		}
		if looksLikeAutolinkEmail(inner) {
			p.emitAutolink(parent, inner, AutoLinkEmail, 0)
			return (end + 1) - i
		}
	}

	if tagLen, ok := scanInlineTag(data[i:]); ok {
		n := p.ps.push(NodeRawHTML)
		if n == nil {
			return tagLen
		}
		n.Text = append([]byte(nil), data[i:i+tagLen]...)
		p.ps.pop(n)
		return tagLen
	}
	return 0
}

func looksLikeAutolinkURL(s []byte) bool {
	colon := bytes.IndexByte(s, ':')
	if colon <= 0 {
		return false
	}
	for _, c := range s[:colon] {
		if !isAlpha(c) && !(c >= '0' && c <= '9') && c != '+' && c != '-' {
			return false
		}
	}
	return bytes.IndexByte(s, ' ') < 0
}

func looksLikeAutolinkEmail(s []byte) bool {
	at := bytes.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	return bytes.IndexByte(s, '.') > at && bytes.IndexByte(s, ' ') < 0
}

// scanInlineTag reports the length of a raw inline HTML tag
// (`<tag ...>` or `</tag>`) starting at data[0] == '<'.
func scanInlineTag(data []byte) (int, bool) {
	if len(data) < 3 || data[0] != '<' {
		return 0, false
	}
	i := 1
	if data[i] == '/' {
		i++
	}
	start := i
	for i < len(data) && isAlnum(data[i]) {
		i++
	}
	if i == start {
		return 0, false
	}
	for i < len(data) && data[i] != '>' && data[i] != '\n' {
		i++
	}
	if i >= len(data) || data[i] != '>' {
		return 0, false
	}
	return i + 1, true
}

// handleSuperscript implements `^word` and `^(content)`.
func (p *parser) handleSuperscript(parent *Node, data []byte, i int) int {
	j := i + 1
	if j < len(data) && data[j] == '(' {
		depth := 1
		k := j + 1
		for k < len(data) && depth > 0 {
			if data[k] == '(' {
				depth++
			} else if data[k] == ')' {
				depth--
			}
			k++
		}
		if depth != 0 {
			return 0
		}
		inner := data[j+1 : k-1]
		n := p.ps.push(NodeSuperscript)
		if n == nil {
			return k - i
		}
		p.parseInline(n, inner)
		p.ps.pop(n)
		return k - i
	}

	k := j
	for k < len(data) && !isSpace(data[k]) && data[k] != '^' {
		k++
	}
	if k == j {
		return 0
	}
	n := p.ps.push(NodeSuperscript)
	if n == nil {
		return k - i
	}
	p.parseInline(n, data[j:k])
	p.ps.pop(n)
	return k - i
}

// handleMath implements `$...$` inline and `$$...$$` display math.
func (p *parser) handleMath(parent *Node, data []byte, i int) int {
	if i+1 < len(data) && data[i+1] == '$' {
		close := bytes.Index(data[i+2:], []byte("$$"))
		if close < 0 {
			return 0
		}
		end := i + 2 + close
		n := p.ps.push(NodeMathBlock)
		total := (end + 2) - i
		if n == nil {
			return total
		}
		n.Text = append([]byte(nil), data[i+2:end]...)
		p.ps.pop(n)
		return total
	}

	j := i + 1
	for j < len(data) && data[j] != '$' && data[j] != '\n' {
		j++
	}
	if j >= len(data) || data[j] != '$' || j == i+1 {
		return 0
	}
	n := p.ps.push(NodeMathBlock)
	total := (j + 1) - i
	if n == nil {
		return total
	}
	n.Text = append([]byte(nil), data[i+1:j]...)
	p.ps.pop(n)
	return total
}
