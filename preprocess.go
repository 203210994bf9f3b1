package mdcore

const tabStop = 4

// preprocess produces the "clean" buffer block parsing operates on, per
// spec.md §4.3 (C3): strip a leading UTF-8 BOM, expand tabs to the next
// multiple-of-4 column (continuation bytes don't advance the column),
// normalize CRLF/CR to LF, and ensure a trailing newline. Grounded on the
// tab-expansion algorithm in _examples/ragodev-blackfriday/markdown.go's
// expandTabs, adapted to also fold in newline normalization in one pass.
func preprocess(src []byte) []byte {
	src = stripBOM(src)

	out := newByteBuffer(len(src) + 16)
	column := 0
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == '\t':
			spaces := tabStop - column%tabStop
			for k := 0; k < spaces; k++ {
				out.putByte(' ')
			}
			column += spaces
			i++
		case c == '\r':
			out.putByte('\n')
			column = 0
			i++
			if i < len(src) && src[i] == '\n' {
				i++
			}
		case c == '\n':
			out.putByte('\n')
			column = 0
			i++
		default:
			out.putByte(c)
			if c&0xC0 != 0x80 {
				// not a UTF-8 continuation byte: advances the column.
				column++
			}
			i++
		}
	}

	clean := out.bytes()
	if len(clean) == 0 || clean[len(clean)-1] != '\n' {
		clean = append(clean, '\n')
	}
	return clean
}

func stripBOM(src []byte) []byte {
	if len(src) >= 3 && src[0] == 0xEF && src[1] == 0xBB && src[2] == 0xBF {
		return src[3:]
	}
	return src
}
