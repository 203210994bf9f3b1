package mdcore

import "bytes"

// listMarker describes a matched bullet or ordinal marker at the start of
// a line, per spec.md §4.6 predicates 9 and 11.
type listMarker struct {
	indent int // leading spaces before the marker
	width  int // bytes from line start through the mandatory space after the marker
	number string
}

func matchUnorderedMarker(line []byte) (listMarker, bool) {
	i := 0
	for i < 3 && i < len(line) && line[i] == ' ' {
		i++
	}
	if i >= len(line) {
		return listMarker{}, false
	}
	c := line[i]
	if c != '*' && c != '+' && c != '-' {
		return listMarker{}, false
	}
	indent := i
	i++
	if i >= len(line) || line[i] != ' ' {
		return listMarker{}, false
	}
	i++
	return listMarker{indent: indent, width: i}, true
}

func matchOrderedMarker(line []byte, commonMark bool) (listMarker, bool) {
	i := 0
	for i < 3 && i < len(line) && line[i] == ' ' {
		i++
	}
	indent := i
	digitsStart := i
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	digits := i - digitsStart
	if digits == 0 || (commonMark && digits > 9) {
		return listMarker{}, false
	}
	if i >= len(line) {
		return listMarker{}, false
	}
	if line[i] != '.' && !(commonMark && line[i] == ')') {
		return listMarker{}, false
	}
	i++
	if i >= len(line) || line[i] != ' ' {
		return listMarker{}, false
	}
	i++
	return listMarker{indent: indent, width: i, number: string(line[digitsStart : digitsStart+digits])}, true
}

// listItemBody holds one item's extracted content before it is emitted.
type listItemBody struct {
	number string
	body   []byte
	loose  bool
}

// collectList runs the shared recursive sub-parser spec.md §4.6 describes
// for lists and list items: it strips each item's marker and one indent
// step, accumulates continuation lines (including lazily-indented
// paragraph continuations), and tracks whether any item saw an internal
// blank line or a blank line before the next item (which makes the whole
// list "loose"/block-mode).
func (p *parser) collectList(data []byte, ordered bool) (items []listItemBody, consumed int, loose bool) {
	pos := 0
	for pos < len(data) {
		lend, lnext := lineSpan(data, pos)
		line := data[pos:lend]

		var m listMarker
		var ok bool
		if ordered {
			m, ok = matchOrderedMarker(line, p.feat.Has(FeatureCommonMark))
		} else {
			m, ok = matchUnorderedMarker(line)
		}
		if !ok {
			break
		}
		itemIndent := m.width

		var body bytes.Buffer
		body.Write(line[itemIndent:])
		body.WriteByte('\n')
		ipos := lnext
		itemLoose := false

		for ipos < len(data) {
			lend2, lnext2 := lineSpan(data, ipos)
			l2 := data[ipos:lend2]

			if isBlankLine(l2) {
				peekEnd, peekNext := lineSpan(data, lnext2)
				if lnext2 < len(data) && leadingSpaces(data[lnext2:peekEnd]) >= itemIndent {
					body.WriteByte('\n')
					itemLoose = true
					ipos = lnext2
					_ = peekNext
					continue
				}
				// A blank line followed by another item of this list
				// keeps the list going and makes it loose.
				var nextIsItem bool
				if ordered {
					_, nextIsItem = matchOrderedMarker(data[lnext2:peekEnd], p.feat.Has(FeatureCommonMark))
				} else {
					_, nextIsItem = matchUnorderedMarker(data[lnext2:peekEnd])
				}
				if nextIsItem {
					itemLoose = true
					ipos = lnext2
				}
				break
			}

			ind2 := leadingSpaces(l2)
			if ind2 >= itemIndent {
				body.Write(l2[itemIndent:])
				body.WriteByte('\n')
				ipos = lnext2
				continue
			}

			if ordered {
				if _, ok2 := matchOrderedMarker(l2, p.feat.Has(FeatureCommonMark)); ok2 && ind2 <= m.indent+3 {
					break
				}
			} else {
				if _, ok2 := matchUnorderedMarker(l2); ok2 && ind2 <= m.indent+3 {
					break
				}
			}
			if isATXHeaderLine(l2) || isHRuleLine(l2) || isQuotePrefixed(l2) {
				break
			}

			// Lazy continuation: an under-indented, non-blank line that
			// doesn't start a new construct is folded into the item.
			body.Write(l2)
			body.WriteByte('\n')
			ipos = lnext2
		}

		items = append(items, listItemBody{number: m.number, body: body.Bytes(), loose: itemLoose})
		if itemLoose {
			loose = true
		}
		pos = ipos
	}
	return items, pos, loose
}

// blockUnorderedList implements spec.md §4.6 predicate 9.
func (p *parser) blockUnorderedList(data []byte) int {
	if _, ok := matchUnorderedMarker(data); !ok {
		return 0
	}
	items, consumed, loose := p.collectList(data, false)
	if len(items) == 0 {
		return 0
	}
	p.emitList(items, loose, ListUnordered, "")
	return consumed
}

// blockOrderedList implements spec.md §4.6 predicate 11.
func (p *parser) blockOrderedList(data []byte) int {
	m, ok := matchOrderedMarker(data, p.feat.Has(FeatureCommonMark))
	if !ok {
		return 0
	}
	items, consumed, loose := p.collectList(data, true)
	if len(items) == 0 {
		return 0
	}
	p.emitList(items, loose, ListOrdered, m.number)
	return consumed
}

func (p *parser) emitList(items []listItemBody, loose bool, kind ListFlag, start string) {
	flags := kind
	if loose {
		flags |= ListBlockMode
	}
	list := p.ps.push(NodeList)
	if list == nil {
		return
	}
	list.ListFlags = flags
	list.Start = start

	for i, it := range items {
		item := p.ps.push(NodeListItem)
		if item == nil {
			return
		}
		item.ListFlags = flags
		item.Ordinal = i + 1

		trimmed := bytes.TrimRight(it.body, "\n")
		if loose {
			p.parseBlock(it.body)
		} else if split := nestedBlockStart(it.body); split > 0 {
			p.parseInline(item, bytes.TrimRight(it.body[:split], "\n"))
			p.parseBlock(it.body[split:])
		} else {
			p.parseInline(item, trimmed)
		}
		p.ps.pop(item)
	}
	p.ps.pop(list)
}

// nestedBlockStart returns the byte offset of the first line beyond the
// first in a tight list item that starts its own block construct (a
// nested list or a blockquote), or -1 if there is none. The lines before
// that offset are parsed inline and the rest is block-parsed, even though
// the outer list itself stayed tight.
func nestedBlockStart(body []byte) int {
	pos := 0
	for i, ln := range countLines(body) {
		if i > 0 {
			if _, ok := matchUnorderedMarker(ln); ok {
				return pos
			}
			if _, ok := matchOrderedMarker(ln, false); ok {
				return pos
			}
			if isQuotePrefixed(ln) {
				return pos
			}
		}
		pos += len(ln) + 1
	}
	return -1
}

// isDefListPrefix reports whether ln begins a definition-list item
// (`: `), per spec.md §4.6 predicate 10.
func isDefListPrefix(ln []byte) bool {
	return len(ln) >= 2 && ln[0] == ':' && ln[1] == ' '
}

// blockDefList implements spec.md §4.6 predicate 10: a `: ` line starts a
// definition list item, but only when the immediately preceding sibling
// is a one-line PARAGRAPH, which is re-parented as the DEFINITION_TITLE.
func (p *parser) blockDefList(data []byte) int {
	if !isDefListPrefix(data) {
		return 0
	}
	cursor := p.ps.cursor
	if cursor == nil || len(cursor.Children) == 0 {
		return 0
	}
	last := cursor.Children[len(cursor.Children)-1]
	if last.Type != NodeParagraph || last.Lines != 1 {
		return 0
	}

	pos := 0
	var itemBodies [][]byte
	for pos < len(data) {
		lend, lnext := lineSpan(data, pos)
		line := data[pos:lend]
		if !isDefListPrefix(line) {
			break
		}
		var body bytes.Buffer
		body.Write(line[2:])
		body.WriteByte('\n')
		ipos := lnext
		for ipos < len(data) {
			lend2, lnext2 := lineSpan(data, ipos)
			l2 := data[ipos:lend2]
			if isBlankLine(l2) || isDefListPrefix(l2) {
				break
			}
			ind2 := leadingSpaces(l2)
			if ind2 == 0 {
				break
			}
			body.Write(bytes.TrimLeft(l2, " "))
			body.WriteByte('\n')
			ipos = lnext2
		}
		itemBodies = append(itemBodies, body.Bytes())
		pos = ipos
	}
	if len(itemBodies) == 0 {
		return 0
	}

	// Detach the trailing one-line paragraph from its current parent and
	// re-parent it as this DEFINITION's title ("move-last-child-of-
	// cursor-parent into new-node", per spec.md §9's Design Note).
	cursor.Children = cursor.Children[:len(cursor.Children)-1]

	def := p.ps.push(NodeDefinition)
	if def == nil {
		return pos
	}
	last.Parent = def
	last.Type = NodeDefinitionTitle
	def.Children = append(def.Children, last)

	for _, b := range itemBodies {
		dd := p.ps.push(NodeDefinitionData)
		if dd == nil {
			break
		}
		p.parseInline(dd, bytes.TrimRight(b, "\n"))
		p.ps.pop(dd)
	}
	p.ps.pop(def)
	return pos
}
