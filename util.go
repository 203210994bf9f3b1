package mdcore

// isSpace matches spec.md §1's deliberately narrow non-goal: only byte
// 0x20 and 0x0A are "space" for this dialect (no Unicode whitespace).
func isSpace(c byte) bool {
	return c == ' ' || c == '\n'
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

// lineSpan returns [start, end) for the line beginning at start (end is
// the offset of the line's '\n', or len(data) if the buffer doesn't end
// with one), and next, the offset just past that newline.
func lineSpan(data []byte, start int) (end, next int) {
	end = start
	for end < len(data) && data[end] != '\n' {
		end++
	}
	next = end
	if next < len(data) {
		next++
	}
	return end, next
}

func isBlankLine(line []byte) bool {
	for _, c := range line {
		if c != ' ' && c != '\t' {
			return false
		}
	}
	return true
}

func leadingSpaces(line []byte) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}

// countLines splits data into lines (without their terminating '\n'),
// tolerating a missing trailing newline on the last line.
func countLines(data []byte) [][]byte {
	var lines [][]byte
	pos := 0
	for pos < len(data) {
		end, next := lineSpan(data, pos)
		lines = append(lines, data[pos:end])
		pos = next
	}
	return lines
}
