package mdcore

import "bytes"

// blockTable recognizes a pipe-separated header line followed by a
// delimiter line of '-' runs with optional leading/trailing ':' for
// alignment, per spec.md §4.6 predicate 6. Cell count is fixed by the
// header row.
func (p *parser) blockTable(data []byte) int {
	hend, hnext := lineSpan(data, 0)
	header := data[:hend]
	if !bytes.ContainsRune(header, '|') {
		return 0
	}

	dend, dnext := lineSpan(data, hnext)
	delim := data[hnext:dend]
	aligns, ok := parseTableDelimiter(delim)
	if !ok {
		return 0
	}

	headerCells := splitTableRow(header)
	if len(aligns) != len(headerCells) {
		if len(aligns) > len(headerCells) {
			aligns = aligns[:len(headerCells)]
		} else {
			for len(aligns) < len(headerCells) {
				aligns = append(aligns, 0)
			}
		}
	}
	columns := len(headerCells)

	var rows [][][]byte
	pos := dnext
	for pos < len(data) {
		lend, lnext := lineSpan(data, pos)
		line := data[pos:lend]
		if isBlankLine(line) || !bytes.ContainsRune(line, '|') {
			break
		}
		rows = append(rows, splitTableRow(line))
		pos = lnext
	}

	table := p.ps.push(NodeTableBlock)
	if table == nil {
		return pos
	}
	table.Columns = columns

	thead := p.ps.push(NodeTableHeader)
	if thead != nil {
		hrow := p.ps.push(NodeTableRow)
		if hrow != nil {
			p.emitTableCells(headerCells, aligns, true)
			p.ps.pop(hrow)
		}
		p.ps.pop(thead)
	}

	tbody := p.ps.push(NodeTableBody)
	if tbody != nil {
		for _, r := range rows {
			row := p.ps.push(NodeTableRow)
			if row == nil {
				continue
			}
			p.emitTableCells(r, aligns, false)
			p.ps.pop(row)
		}
		p.ps.pop(tbody)
	}
	p.ps.pop(table)
	return pos
}

func (p *parser) emitTableCells(cells [][]byte, aligns []CellAlign, isHeader bool) {
	for col := 0; col < len(aligns); col++ {
		cell := p.ps.push(NodeTableCell)
		if cell == nil {
			return
		}
		cell.Col = col
		align := aligns[col]
		if isHeader {
			align |= AlignHeader
		}
		cell.Align = align
		if col < len(cells) {
			p.parseInline(cell, bytes.TrimSpace(cells[col]))
		}
		p.ps.pop(cell)
	}
}

// splitTableRow splits a pipe-delimited row into cells, trimming one
// optional leading and trailing unescaped '|'.
func splitTableRow(line []byte) [][]byte {
	line = bytes.TrimSpace(line)
	line = bytes.TrimPrefix(line, []byte("|"))
	line = bytes.TrimSuffix(line, []byte("|"))

	var cells [][]byte
	start := 0
	for i := 0; i < len(line); i++ {
		if line[i] == '\\' && i+1 < len(line) {
			i++
			continue
		}
		if line[i] == '|' {
			cells = append(cells, line[start:i])
			start = i + 1
		}
	}
	cells = append(cells, line[start:])
	return cells
}

// parseTableDelimiter parses the `|---|:---|---:|` style delimiter row,
// returning one CellAlign per column and whether the line is actually a
// valid delimiter row.
func parseTableDelimiter(line []byte) ([]CellAlign, bool) {
	cells := splitTableRow(line)
	if len(cells) == 0 {
		return nil, false
	}
	aligns := make([]CellAlign, len(cells))
	for i, c := range cells {
		c = bytes.TrimSpace(c)
		if len(c) == 0 {
			return nil, false
		}
		left := c[0] == ':'
		right := c[len(c)-1] == ':'
		trimmed := bytes.Trim(c, ":")
		if len(trimmed) == 0 {
			return nil, false
		}
		for _, b := range trimmed {
			if b != '-' {
				return nil, false
			}
		}
		var a CellAlign
		if left {
			a |= AlignLeft
		}
		if right {
			a |= AlignRight
		}
		aligns[i] = a
	}
	return aligns, true
}
