package mdcore

// handleEmphasis implements spec.md §4.7's emphasis/strikethrough/
// highlight handler. It measures the run length of the delimiter
// character at i, picks the widest usable run (capped at 3 for `*`/`_`,
// fixed at 2 for `~`/`=`), and scans forward for a matching closer that
// isn't preceded by whitespace, skipping over codespans and bracketed
// link text along the way.
func (p *parser) handleEmphasis(parent *Node, data []byte, i int) int {
	c := data[i]

	runLen := 0
	for i+runLen < len(data) && data[i+runLen] == c {
		runLen++
	}

	if c == '~' || c == '=' {
		if runLen < 2 {
			return 0
		}
		return p.closeEmphasis(parent, data, i, c, 2, false)
	}

	noIntra := c == '_' && p.feat.Has(FeatureNoIntraEmphasis)
	if noIntra && i > 0 && isAlnum(data[i-1]) {
		return 0
	}

	useLen := runLen
	if useLen > 3 {
		useLen = 3
	}
	for ; useLen > 0; useLen-- {
		if n := p.closeEmphasis(parent, data, i, c, useLen, noIntra); n > 0 {
			return n
		}
	}
	return 0
}

func (p *parser) closeEmphasis(parent *Node, data []byte, i int, c byte, useLen int, noIntra bool) int {
	closeStart, ok := findEmphasisCloser(data, i+useLen, c, useLen, noIntra)
	if !ok {
		return 0
	}
	inner := data[i+useLen : closeStart]
	if len(inner) == 0 {
		return 0
	}

	var t NodeType
	switch {
	case c == '~':
		t = NodeStrikethrough
	case c == '=':
		t = NodeHighlight
	case useLen == 1:
		t = NodeEmphasis
	case useLen == 2:
		t = NodeDoubleEmphasis
	default:
		t = NodeTripleEmphasis
	}

	end := closeStart + useLen
	n := p.ps.push(t)
	if n == nil {
		return end - i
	}
	p.parseInline(n, inner)
	p.ps.pop(n)
	return end - i
}

// findEmphasisCloser scans data[start:] for a run of c at least useLen
// long that isn't preceded by whitespace, treating codespans and
// bracketed link text as opaque so delimiters inside them never match.
// When noIntra is set (FeatureNoIntraEmphasis, '_' only), a candidate
// closer flanked by alphanumerics on both sides is rejected too -- the
// intraword-suppression rule applies per delimiter occurrence, not just
// at the opening side (spec.md §4.7).
func findEmphasisCloser(data []byte, start int, c byte, useLen int, noIntra bool) (int, bool) {
	j := start
	for j < len(data) {
		switch {
		case data[j] == '\\' && j+1 < len(data):
			j += 2
		case data[j] == '`':
			n := 0
			k := j
			for k < len(data) && data[k] == '`' {
				n++
				k++
			}
			if close := findBacktickRun(data, k, n); close >= 0 {
				j = close + n
			} else {
				j = k
			}
		case data[j] == '[':
			depth := 1
			k := j + 1
			for k < len(data) && depth > 0 {
				if data[k] == '[' {
					depth++
				} else if data[k] == ']' {
					depth--
				}
				k++
			}
			j = k
		case data[j] == c:
			n := 0
			k := j
			for k < len(data) && data[k] == c {
				n++
				k++
			}
			if n >= useLen && j > start && data[j-1] != ' ' && data[j-1] != '\n' {
				intraword := noIntra && isAlnum(data[j-1]) && k < len(data) && isAlnum(data[k])
				if !intraword {
					return j, true
				}
			}
			j = k
		default:
			j++
		}
	}
	return 0, false
}
