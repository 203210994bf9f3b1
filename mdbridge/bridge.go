// Package mdbridge re-expresses an mdcore AST as a goldmark/ast tree, so
// goldmark's own html.Renderer and github.com/teekennedy/goldmark-markdown's
// renderer can serve as this project's external rendering collaborator
// (mdcore itself never depends on goldmark for parsing -- see spec.md §1).
//
// The two node models don't line up one-for-one: goldmark has no native
// equivalent for a handful of mdcore's extensions (highlight, superscript,
// math, definition lists, smart-auto-link-kind preservation). Convert
// renders those by falling back to their inline children or to plain
// text, documented node-by-node below, rather than dropping the content.
package mdbridge

import (
	"bytes"
	"strconv"

	"github.com/brandonbloom/mdcore"
	gast "github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Convert walks root (an mdcore ROOT node) and returns an equivalent
// goldmark document plus the synthetic source buffer that the returned
// tree's line-segment-bearing nodes (code blocks, HTML blocks) point
// into. Both are needed by goldmark-markdown's Renderer.Render and by
// goldmark's own renderer.
func Convert(root *mdcore.Node) (doc gast.Node, source []byte) {
	c := &converter{source: &bytes.Buffer{}}
	gdoc := gast.NewDocument()
	for _, child := range root.Children {
		c.appendBlockChildren(gdoc, child)
	}
	return gdoc, c.source.Bytes()
}

// converter accumulates a shared source buffer so raw-content block nodes
// (code, HTML) can carry real line segments into it, the way goldmark's
// own parser does.
type converter struct {
	source *bytes.Buffer
}

// appendSegment writes text into the shared source buffer and returns the
// text.Segment spanning it.
func (c *converter) appendSegment(text_ []byte) text.Segment {
	start := c.source.Len()
	c.source.Write(text_)
	return text.NewSegment(start, c.source.Len())
}

// appendBlockChildren converts n and appends the result(s) to parent.
// DOC_HEADER and DOC_FOOTER carry no rendering of their own in goldmark's
// model, so their children (if any) are spliced in directly; META nodes
// are dropped.
func (c *converter) appendBlockChildren(parent gast.Node, n *mdcore.Node) {
	switch n.Type {
	case mdcore.NodeDocHeader, mdcore.NodeDocFooter:
		for _, child := range n.Children {
			c.appendBlockChildren(parent, child)
		}
		return
	case mdcore.NodeMeta:
		return
	case mdcore.NodeFootnotesBlock:
		list := extast.NewFootnoteList()
		for _, def := range n.Children {
			list.AppendChild(list, c.convertFootnoteDef(def))
		}
		parent.AppendChild(parent, list)
		return
	}
	if gn := c.convertBlock(n); gn != nil {
		parent.AppendChild(parent, gn)
	}
}

func (c *converter) convertBlock(n *mdcore.Node) gast.Node {
	switch n.Type {
	case mdcore.NodeParagraph:
		p := gast.NewParagraph()
		c.appendInlineChildren(p, n)
		return p

	case mdcore.NodeHeader:
		h := gast.NewHeading(n.Level + 1)
		c.appendInlineChildren(h, n)
		return h

	case mdcore.NodeHRule:
		return gast.NewThematicBreak()

	case mdcore.NodeBlockQuote:
		bq := gast.NewBlockquote()
		for _, child := range n.Children {
			c.appendBlockChildren(bq, child)
		}
		return bq

	case mdcore.NodeBlockCode:
		seg := c.appendSegment(n.Text)
		if n.Lang != "" {
			info := gast.NewText()
			infoSeg := c.appendSegment([]byte(n.Lang))
			info.Segment = infoSeg
			fcb := gast.NewFencedCodeBlock(info)
			fcb.Lines().Append(seg)
			return fcb
		}
		cb := gast.NewCodeBlock()
		cb.Lines().Append(seg)
		return cb

	case mdcore.NodeBlockHTML:
		hb := gast.NewHTMLBlock(gast.HTMLBlockType6)
		seg := c.appendSegment(append(n.Text, '\n'))
		hb.Lines().Append(seg)
		return hb

	case mdcore.NodeList:
		return c.convertList(n)

	case mdcore.NodeDefinition:
		// goldmark has no definition-list node; fall back to a blockquote
		// holding the title paragraph followed by a bullet list of the
		// data items, which at least keeps the pairing visible.
		bq := gast.NewBlockquote()
		for _, child := range n.Children {
			if child.Type == mdcore.NodeDefinitionTitle {
				p := gast.NewParagraph()
				c.appendInlineChildren(p, child)
				bq.AppendChild(bq, p)
			}
		}
		dl := gast.NewList('-')
		dl.IsTight = true
		for _, child := range n.Children {
			if child.Type == mdcore.NodeDefinitionData {
				li := gast.NewListItem(2)
				p := gast.NewParagraph()
				c.appendInlineChildren(p, child)
				li.AppendChild(li, p)
				dl.AppendChild(dl, li)
			}
		}
		bq.AppendChild(bq, dl)
		return bq

	case mdcore.NodeTableBlock:
		return c.convertTable(n)
	}
	return nil
}

func (c *converter) convertList(n *mdcore.Node) gast.Node {
	marker := byte('-')
	list := gast.NewList(marker)
	if n.ListFlags&mdcore.ListOrdered != 0 {
		list.Marker = '.'
		start := 1
		if n.Start != "" {
			if v, err := strconv.Atoi(n.Start); err == nil {
				start = v
			}
		}
		list.Start = start
	}
	list.IsTight = n.ListFlags&mdcore.ListBlockMode == 0
	for _, item := range n.Children {
		li := gast.NewListItem(2)
		// A tight item's content was parsed as inline directly on the
		// LISTITEM node rather than as block children; each run of inline
		// children is wrapped in a synthetic paragraph so goldmark's
		// renderer has somewhere to put the text.
		var para gast.Node
		for _, child := range item.Children {
			if gn := c.convertBlock(child); gn != nil {
				li.AppendChild(li, gn)
				para = nil
				continue
			}
			if para == nil {
				para = gast.NewParagraph()
				li.AppendChild(li, para)
			}
			c.appendInlineChildren(para, &mdcore.Node{Children: []*mdcore.Node{child}})
		}
		list.AppendChild(list, li)
	}
	return list
}

func (c *converter) convertTable(n *mdcore.Node) gast.Node {
	aligns := make([]extast.Alignment, n.Columns)
	table := extast.NewTable()
	table.Alignments = aligns
	for _, section := range n.Children {
		switch section.Type {
		case mdcore.NodeTableHeader:
			for _, row := range section.Children {
				headerRow := extast.NewTableRow(c.rowAlignments(row, aligns))
				c.appendTableCells(headerRow, row)
				header := extast.NewTableHeader(headerRow)
				table.AppendChild(table, header)
			}
		case mdcore.NodeTableBody:
			for _, row := range section.Children {
				tr := extast.NewTableRow(c.rowAlignments(row, aligns))
				c.appendTableCells(tr, row)
				table.AppendChild(table, tr)
			}
		}
	}
	return table
}

func (c *converter) rowAlignments(row *mdcore.Node, fallback []extast.Alignment) []extast.Alignment {
	aligns := make([]extast.Alignment, len(row.Children))
	for i, cell := range row.Children {
		aligns[i] = cellAlignment(cell.Align)
	}
	if len(aligns) == 0 {
		return fallback
	}
	return aligns
}

func cellAlignment(a mdcore.CellAlign) extast.Alignment {
	left := a&mdcore.AlignLeft != 0
	right := a&mdcore.AlignRight != 0
	switch {
	case left && right:
		return extast.AlignCenter
	case left:
		return extast.AlignLeft
	case right:
		return extast.AlignRight
	}
	return extast.AlignNone
}

func (c *converter) appendTableCells(row gast.Node, n *mdcore.Node) {
	for _, cell := range n.Children {
		tc := extast.NewTableCell()
		tc.Alignment = cellAlignment(cell.Align)
		c.appendInlineChildren(tc, cell)
		row.AppendChild(row, tc)
	}
}

func (c *converter) convertFootnoteDef(n *mdcore.Node) gast.Node {
	fn := extast.NewFootnote([]byte(strconv.Itoa(n.Ordinal)))
	fn.Index = n.Ordinal
	for _, child := range n.Children {
		c.appendBlockChildren(fn, child)
	}
	return fn
}

// appendInlineChildren converts every child of n and appends it to
// parent; used wherever n's content was parsed with parseInline (so n's
// children are all inline node types).
func (c *converter) appendInlineChildren(parent gast.Node, n *mdcore.Node) {
	for _, child := range n.Children {
		if child.Type == mdcore.NodeHighlight || child.Type == mdcore.NodeSuperscript {
			c.appendInlineChildren(parent, child)
			continue
		}
		if gn := c.convertInline(child); gn != nil {
			parent.AppendChild(parent, gn)
		}
	}
}

// convertInline converts a single inline node to its goldmark
// equivalent. NodeHighlight and NodeSuperscript have no native goldmark
// node, so appendInlineChildren splices their children straight into the
// caller's parent instead of calling this function for them.
func (c *converter) convertInline(n *mdcore.Node) gast.Node {
	switch n.Type {
	case mdcore.NodeNormalText:
		return gast.NewString(append([]byte(nil), n.Text...))

	case mdcore.NodeEntity:
		return gast.NewString(append([]byte(nil), n.Text...))

	case mdcore.NodeCodespan:
		cs := gast.NewCodeSpan()
		cs.AppendChild(cs, gast.NewString(append([]byte(nil), n.Text...)))
		return cs

	case mdcore.NodeRawHTML:
		return gast.NewString(append([]byte(nil), n.Text...))

	case mdcore.NodeMathBlock:
		// No native math node in goldmark's model; keep it visible as a
		// codespan rather than dropping it.
		cs := gast.NewCodeSpan()
		cs.AppendChild(cs, gast.NewString(append([]byte(nil), n.Text...)))
		return cs

	case mdcore.NodeLink:
		link := gast.NewLink()
		link.Destination = append([]byte(nil), n.Link...)
		link.Title = append([]byte(nil), n.Title...)
		c.appendInlineChildren(link, n)
		return link

	case mdcore.NodeImage:
		link := gast.NewLink()
		link.Destination = append([]byte(nil), n.Link...)
		link.Title = append([]byte(nil), n.Title...)
		img := gast.NewImage(link)
		img.AppendChild(img, gast.NewString(append([]byte(nil), n.Alt...)))
		return img

	case mdcore.NodeLinkAuto:
		link := gast.NewLink()
		link.Destination = append([]byte(nil), n.Link...)
		link.AppendChild(link, gast.NewString(append([]byte(nil), n.Text...)))
		return link

	case mdcore.NodeEmphasis:
		e := gast.NewEmphasis(1)
		c.appendInlineChildren(e, n)
		return e

	case mdcore.NodeDoubleEmphasis:
		e := gast.NewEmphasis(2)
		c.appendInlineChildren(e, n)
		return e

	case mdcore.NodeTripleEmphasis:
		// goldmark's Emphasis.Level only models 1 or 2; nest them to keep
		// both bold and italic in the rendered output.
		outer := gast.NewEmphasis(2)
		inner := gast.NewEmphasis(1)
		c.appendInlineChildren(inner, n)
		outer.AppendChild(outer, inner)
		return outer

	case mdcore.NodeStrikethrough:
		s := extast.NewStrikethrough()
		c.appendInlineChildren(s, n)
		return s

	case mdcore.NodeLineBreak:
		return gast.NewString([]byte("\n"))

	case mdcore.NodeFootnoteRef:
		return extast.NewFootnoteLink(n.Ordinal)
	}
	return nil
}
