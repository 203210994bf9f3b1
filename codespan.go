package mdcore

// handleCodespan implements spec.md §4.7's codespan handler: a run of N
// backticks opens a codespan closed only by another run of exactly N
// backticks. A single leading and trailing space, when both present,
// are stripped so a codespan can itself start or end with a backtick.
func (p *parser) handleCodespan(parent *Node, data []byte, i int) int {
	n := 0
	k := i
	for k < len(data) && data[k] == '`' {
		n++
		k++
	}
	closeStart := findBacktickRun(data, k, n)
	if closeStart < 0 {
		return 0
	}
	content := data[k:closeStart]
	if len(content) >= 2 && content[0] == ' ' && content[len(content)-1] == ' ' {
		content = content[1 : len(content)-1]
	}
	cs := p.ps.push(NodeCodespan)
	end := (closeStart + n) - i
	if cs == nil {
		return end
	}
	cs.Text = append([]byte(nil), content...)
	p.ps.pop(cs)
	return end
}

// findBacktickRun finds the next run of exactly n backticks at or after
// from, returning its start index, or -1 if none exists.
func findBacktickRun(data []byte, from, n int) int {
	j := from
	for j < len(data) {
		if data[j] != '`' {
			j++
			continue
		}
		start := j
		c := 0
		for j < len(data) && data[j] == '`' {
			c++
			j++
		}
		if c == n {
			return start
		}
	}
	return -1
}
