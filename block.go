package mdcore

import "bytes"

// parseBlock is the block-parser loop described in spec.md §4.6 (C6): at
// each offset it tries each block-type predicate in priority order and
// dispatches to whichever matches first, falling back to paragraph.
func (p *parser) parseBlock(data []byte) {
	for len(data) > 0 {
		if p.ps.lastErr != nil {
			return
		}
		if n := p.blockATXHeader(data); n > 0 {
			data = data[n:]
			continue
		}
		if n := p.blockHTML(data); n > 0 {
			data = data[n:]
			continue
		}
		if n := p.blockBlank(data); n > 0 {
			data = data[n:]
			continue
		}
		if n := p.blockHRule(data); n > 0 {
			data = data[n:]
			continue
		}
		if p.feat.Has(FeatureFenced) {
			if n := p.blockFenced(data); n > 0 {
				data = data[n:]
				continue
			}
		}
		if p.feat.Has(FeatureTables) {
			if n := p.blockTable(data); n > 0 {
				data = data[n:]
				continue
			}
		}
		if n := p.blockQuote(data); n > 0 {
			data = data[n:]
			continue
		}
		if !p.feat.Has(FeatureNoCodeIndent) {
			if n := p.blockIndentedCode(data); n > 0 {
				data = data[n:]
				continue
			}
		}
		if n := p.blockUnorderedList(data); n > 0 {
			data = data[n:]
			continue
		}
		if p.feat.Has(FeatureDefList) {
			if n := p.blockDefList(data); n > 0 {
				data = data[n:]
				continue
			}
		}
		if n := p.blockOrderedList(data); n > 0 {
			data = data[n:]
			continue
		}
		n := p.blockParagraph(data)
		if n <= 0 {
			// Safety net: never loop without progress. A construct
			// predicate returning 0 always falls through to here, and
			// blockParagraph always consumes at least one line of
			// non-empty data, so this path is not reached in practice.
			end, next := lineSpan(data, 0)
			_ = end
			n = next
			if n == 0 {
				n = len(data)
			}
		}
		data = data[n:]
	}
}

// blockBlank consumes a single blank line, per spec.md §4.6 predicate 3.
func (p *parser) blockBlank(data []byte) int {
	end, next := lineSpan(data, 0)
	if !isBlankLine(data[:end]) {
		return 0
	}
	return next
}

// blockATXHeader recognizes `#`-`######` prefixed headers, per spec.md
// §4.6 predicate 1. In CommonMark mode a following space is required.
func (p *parser) blockATXHeader(data []byte) int {
	level := 0
	for level < len(data) && data[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0
	}
	end, next := lineSpan(data, 0)
	i := level
	if i < end && data[i] != ' ' {
		if p.feat.Has(FeatureCommonMark) {
			return 0
		}
		// Classic Markdown tolerates "#Title" with SPACE_HEADERS off.
	}
	for i < end && data[i] == ' ' {
		i++
	}
	j := end
	for j > i && (data[j-1] == ' ' || data[j-1] == '#') {
		j--
	}
	if j < i {
		j = i
	}

	h := p.ps.push(NodeHeader)
	if h == nil {
		return next
	}
	h.Level = level - 1
	p.parseInline(h, data[i:j])
	p.ps.pop(h)
	return next
}

// blockHRule recognizes a horizontal rule: >=3 of '*', '-', or '_',
// possibly separated by spaces, alone on a line (spec.md §4.6 predicate 4).
func (p *parser) blockHRule(data []byte) int {
	end, next := lineSpan(data, 0)
	line := data[:end]
	i := 0
	for i < len(line) && line[i] == ' ' {
		i++
	}
	if i >= len(line) {
		return 0
	}
	marker := line[i]
	if marker != '*' && marker != '-' && marker != '_' {
		return 0
	}
	count := 0
	for ; i < len(line); i++ {
		switch line[i] {
		case marker:
			count++
		case ' ':
			// allowed between markers
		default:
			return 0
		}
	}
	if count < 3 {
		return 0
	}
	if p.ps.push(NodeHRule) == nil {
		return next
	}
	p.ps.pop(p.ps.cursor)
	return next
}

// blockQuote recognizes a blockquote: '>' (optionally up to 3 leading
// spaces) starts it; it continues while each line either starts with '>'
// or is a non-blank continuation between quoted lines (spec.md §4.6
// predicate 7).
func (p *parser) blockQuote(data []byte) int {
	end, _ := lineSpan(data, 0)
	line := data[:end]
	i := 0
	for i < 3 && i < len(line) && line[i] == ' ' {
		i++
	}
	if i >= len(line) || line[i] != '>' {
		return 0
	}

	var body bytes.Buffer
	pos := 0
	prevWasQuoted := false
	for pos < len(data) {
		lend, lnext := lineSpan(data, pos)
		ln := data[pos:lend]
		j := 0
		for j < 3 && j < len(ln) && ln[j] == ' ' {
			j++
		}
		if j < len(ln) && ln[j] == '>' {
			j++
			if j < len(ln) && ln[j] == ' ' {
				j++
			}
			body.Write(ln[j:])
			body.WriteByte('\n')
			prevWasQuoted = true
			pos = lnext
			continue
		}
		if isBlankLine(ln) {
			break
		}
		if prevWasQuoted {
			body.Write(ln)
			body.WriteByte('\n')
			pos = lnext
			continue
		}
		break
	}

	bq := p.ps.push(NodeBlockQuote)
	if bq == nil {
		return pos
	}
	p.parseBlock(body.Bytes())
	p.ps.pop(bq)
	return pos
}

// blockIndentedCode recognizes a run of lines indented by exactly four
// spaces, joined with newlines (spec.md §4.6 predicate 8).
func (p *parser) blockIndentedCode(data []byte) int {
	end, _ := lineSpan(data, 0)
	if len(data[:end]) < 4 || !(data[0] == ' ' && data[1] == ' ' && data[2] == ' ' && data[3] == ' ') {
		return 0
	}

	var body bytes.Buffer
	pos := 0
	for pos < len(data) {
		lend, lnext := lineSpan(data, pos)
		ln := data[pos:lend]
		if isBlankLine(ln) {
			// A blank line continues the block only if content follows
			// that is itself indented.
			peekEnd, peekNext := lineSpan(data, lnext)
			if peekNext <= len(data) && peekEnd-lnext >= 4 && lnext < len(data) &&
				data[lnext] == ' ' && data[lnext+1] == ' ' && data[lnext+2] == ' ' && data[lnext+3] == ' ' {
				body.WriteByte('\n')
				pos = lnext
				continue
			}
			break
		}
		if len(ln) < 4 || ln[0] != ' ' || ln[1] != ' ' || ln[2] != ' ' || ln[3] != ' ' {
			break
		}
		body.Write(ln[4:])
		body.WriteByte('\n')
		pos = lnext
	}

	n := p.ps.push(NodeBlockCode)
	if n == nil {
		return pos
	}
	n.Text = body.Bytes()
	p.ps.pop(n)
	return pos
}

// blockFenced recognizes a fenced code block: >=3 backticks or tildes,
// an optional language identifier on the opening line, closing with the
// same character repeated at least as many times with nothing else on
// the line but whitespace (spec.md §4.6 predicate 5).
func (p *parser) blockFenced(data []byte) int {
	end, next := lineSpan(data, 0)
	line := data[:end]
	i := 0
	for i < 3 && i < len(line) && line[i] == ' ' {
		i++
	}
	if i >= len(line) {
		return 0
	}
	fenceChar := line[i]
	if fenceChar != '`' && fenceChar != '~' {
		return 0
	}
	fenceLen := 0
	for i < len(line) && line[i] == fenceChar {
		fenceLen++
		i++
	}
	if fenceLen < 3 {
		return 0
	}
	lang := string(bytes.TrimSpace(line[i:]))

	var body bytes.Buffer
	pos := next
	closed := false
	for pos < len(data) {
		lend, lnext := lineSpan(data, pos)
		ln := data[pos:lend]
		j := 0
		for j < 3 && j < len(ln) && ln[j] == ' ' {
			j++
		}
		k := j
		for k < len(ln) && ln[k] == fenceChar {
			k++
		}
		if k-j >= fenceLen && len(bytes.TrimSpace(ln[k:])) == 0 {
			closed = true
			pos = lnext
			break
		}
		body.Write(ln)
		body.WriteByte('\n')
		pos = lnext
	}
	_ = closed

	n := p.ps.push(NodeBlockCode)
	if n == nil {
		return pos
	}
	n.Lang = lang
	n.Text = body.Bytes()
	p.ps.pop(n)
	return pos
}

// blockParagraph consumes lines as a paragraph until a stronger
// construct starts: a blank line, a setext underline, an ATX header, an
// hrule, a quote prefix, or (after exactly one line) a definition-list
// prefix, per spec.md §4.6 predicate 12 and the paragraph rule in §4.6.
// If the terminator is a setext underline, the last line becomes a
// level-1 or level-2 HEADER and the remaining lines stay a paragraph.
func (p *parser) blockParagraph(data []byte) int {
	pos := 0
	lineCount := 0
	var setextLevel int
	underlineAt := -1
	stopAt := -1

	for pos < len(data) {
		lend, lnext := lineSpan(data, pos)
		ln := data[pos:lend]

		if lineCount > 0 {
			if isBlankLine(ln) {
				stopAt = pos
				break
			}
			if lvl := setextLevelOf(ln); lvl > 0 {
				setextLevel = lvl
				underlineAt = pos
				stopAt = lnext
				break
			}
			if isATXHeaderLine(ln) || isHRuleLine(ln) || isQuotePrefixed(ln) {
				stopAt = pos
				break
			}
			if p.feat.Has(FeatureDefList) && lineCount == 1 && isDefListPrefix(ln) {
				stopAt = pos
				break
			}
		}
		// A setext underline as the very first line (lineCount == 0) is
		// not a header -- it has nothing above it -- so it falls through
		// and becomes ordinary paragraph text.

		lineCount++
		pos = lnext
	}
	if stopAt < 0 {
		stopAt = pos
	}

	text := data[:stopAt]
	if setextLevel > 0 {
		// The underline itself is excluded from text (stopAt points past
		// it); the last newline-delimited line above it is the title.
		text = data[:underlineAt]
		lastStart := lastLineStart(text)
		title := text[lastStart:]
		above := text[:lastStart]

		if len(bytes.TrimRight(above, "\n")) > 0 {
			para := p.ps.push(NodeParagraph)
			if para != nil {
				para.Lines = countNonEmptyLines(above)
				p.parseInline(para, bytes.TrimRight(above, "\n"))
				p.ps.pop(para)
			}
		}
		h := p.ps.push(NodeHeader)
		if h != nil {
			h.Level = setextLevel - 1
			p.parseInline(h, bytes.TrimRight(title, "\n"))
			p.ps.pop(h)
		}
		return stopAt
	}

	trimmed := bytes.TrimRight(text, "\n")
	if len(trimmed) > 0 {
		para := p.ps.push(NodeParagraph)
		if para != nil {
			para.Lines = countNonEmptyLines(text)
			para.BEOLN = stopAt < len(data) && isBlankLine(data[stopAt:minEnd(data, stopAt)])
			p.parseInline(para, trimmed)
			p.ps.pop(para)
		}
	}
	if stopAt == 0 {
		// Guarantee forward progress even on a pathological first line.
		_, next := lineSpan(data, 0)
		return next
	}
	return stopAt
}

func minEnd(data []byte, pos int) int {
	end, _ := lineSpan(data, pos)
	return end
}

func lastLineStart(text []byte) int {
	trimmed := bytes.TrimRight(text, "\n")
	idx := bytes.LastIndexByte(trimmed, '\n')
	if idx < 0 {
		return 0
	}
	return idx + 1
}

func countNonEmptyLines(data []byte) int {
	n := 0
	for _, ln := range countLines(data) {
		if len(ln) > 0 {
			n++
		}
	}
	if n == 0 {
		n = 1
	}
	return n
}

// setextLevelOf reports 2 for a '-' underline, 1 for a '=' underline, or 0
// if ln is not a setext underline line.
func setextLevelOf(ln []byte) int {
	t := bytes.TrimRight(ln, " ")
	if len(t) == 0 {
		return 0
	}
	c := t[0]
	if c != '=' && c != '-' {
		return 0
	}
	for _, b := range t {
		if b != c {
			return 0
		}
	}
	if c == '=' {
		return 1
	}
	return 2
}

func isHRuleLine(ln []byte) bool {
	i := 0
	for i < len(ln) && ln[i] == ' ' {
		i++
	}
	if i >= len(ln) {
		return false
	}
	marker := ln[i]
	if marker != '*' && marker != '-' && marker != '_' {
		return false
	}
	count := 0
	for ; i < len(ln); i++ {
		switch ln[i] {
		case marker:
			count++
		case ' ':
		default:
			return false
		}
	}
	return count >= 3
}

func isATXHeaderLine(ln []byte) bool {
	level := 0
	for level < len(ln) && level < 6 && ln[level] == '#' {
		level++
	}
	return level > 0 && level <= 6
}

func isQuotePrefixed(ln []byte) bool {
	i := 0
	for i < 3 && i < len(ln) && ln[i] == ' ' {
		i++
	}
	return i < len(ln) && ln[i] == '>'
}
