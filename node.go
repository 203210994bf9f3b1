package mdcore

// NodeType tags the variant a Node carries. There are roughly thirty-five
// variants, matching spec.md §3's glossary of AST node kinds.
type NodeType int

const (
	NodeRoot NodeType = iota + 1
	NodeDocHeader
	NodeDocFooter
	NodeNormalText
	NodeCodespan
	NodeEntity
	NodeRawHTML
	NodeBlockHTML
	NodeMathBlock
	NodeLink
	NodeImage
	NodeLinkAuto
	NodeBlockCode
	NodeHeader
	NodeHRule
	NodeBlockQuote
	NodeList
	NodeListItem
	NodeDefinition
	NodeDefinitionTitle
	NodeDefinitionData
	NodeParagraph
	NodeTableBlock
	NodeTableHeader
	NodeTableBody
	NodeTableRow
	NodeTableCell
	NodeFootnoteRef
	NodeFootnoteDef
	NodeFootnotesBlock
	NodeMeta
	NodeEmphasis
	NodeDoubleEmphasis
	NodeTripleEmphasis
	NodeStrikethrough
	NodeHighlight
	NodeSuperscript
	NodeLineBreak
)

func (t NodeType) String() string {
	if s, ok := nodeTypeNames[t]; ok {
		return s
	}
	return "UNKNOWN"
}

var nodeTypeNames = map[NodeType]string{
	NodeRoot:            "ROOT",
	NodeDocHeader:       "DOC_HEADER",
	NodeDocFooter:       "DOC_FOOTER",
	NodeNormalText:      "NORMAL_TEXT",
	NodeCodespan:        "CODESPAN",
	NodeEntity:          "ENTITY",
	NodeRawHTML:         "RAW_HTML",
	NodeBlockHTML:       "BLOCKHTML",
	NodeMathBlock:       "MATH_BLOCK",
	NodeLink:            "LINK",
	NodeImage:           "IMAGE",
	NodeLinkAuto:        "LINK_AUTO",
	NodeBlockCode:       "BLOCKCODE",
	NodeHeader:          "HEADER",
	NodeHRule:           "HRULE",
	NodeBlockQuote:      "BLOCKQUOTE",
	NodeList:            "LIST",
	NodeListItem:        "LISTITEM",
	NodeDefinition:      "DEFINITION",
	NodeDefinitionTitle: "DEFINITION_TITLE",
	NodeDefinitionData:  "DEFINITION_DATA",
	NodeParagraph:       "PARAGRAPH",
	NodeTableBlock:      "TABLE_BLOCK",
	NodeTableHeader:     "TABLE_HEADER",
	NodeTableBody:       "TABLE_BODY",
	NodeTableRow:        "TABLE_ROW",
	NodeTableCell:       "TABLE_CELL",
	NodeFootnoteRef:     "FOOTNOTE_REF",
	NodeFootnoteDef:     "FOOTNOTE_DEF",
	NodeFootnotesBlock:  "FOOTNOTES_BLOCK",
	NodeMeta:            "META",
	NodeEmphasis:        "EMPHASIS",
	NodeDoubleEmphasis:  "DOUBLE_EMPHASIS",
	NodeTripleEmphasis:  "TRIPLE_EMPHASIS",
	NodeStrikethrough:   "STRIKETHROUGH",
	NodeHighlight:       "HIGHLIGHT",
	NodeSuperscript:     "SUPERSCRIPT",
	NodeLineBreak:       "LINEBREAK",
}

// AutoLinkKind classifies a LINK_AUTO node's match, per spec.md §3.
type AutoLinkKind int

const (
	AutoLinkNone AutoLinkKind = iota
	AutoLinkNormal
	AutoLinkEmail
)

// ListFlag is a flag-set describing a LIST or LISTITEM node, per spec.md §3.
type ListFlag int

const (
	ListOrdered ListFlag = 1 << iota
	ListUnordered
	ListDefinition
	ListBlockMode // "loose": internal blank lines were seen (spec.md glossary)
)

// CellAlign flags a TABLE_CELL's alignment, per spec.md §3.
type CellAlign int

const (
	AlignLeft CellAlign = 1 << iota
	AlignRight
	AlignHeader
)

// Node is a tagged AST node. Following the Design Note in spec.md §9 ("a
// safe reimplementation should use an arena of nodes keyed by integer
// index"), and the sibling-field style used by a from-scratch Go Markdown
// parser in the example pack (zombiezen-go-commonmark's Block, which packs
// every block kind's extra data into a handful of kind-specific fields on
// one struct rather than a Go union type), a Node carries every variant's
// payload directly as typed fields. Fields not meaningful for a given
// Type are simply left at their zero value.
type Node struct {
	ID       int
	Type     NodeType
	Parent   *Node
	Children []*Node

	// Text-bearing variants: NORMAL_TEXT, CODESPAN, ENTITY, RAW_HTML,
	// BLOCKHTML, MATH_BLOCK, and the text buffer of BLOCKCODE.
	Text []byte

	// LINK / IMAGE / LINK_AUTO.
	Link  []byte
	Title []byte
	Alt   []byte
	Dims  string

	// IMAGE (feature ImgExt).
	AttrWidth  string
	AttrHeight string

	// LINK_AUTO.
	AutoKind AutoLinkKind

	// BLOCKCODE.
	Lang string

	// HEADER. Level is 0..5 (stored as "level-1", matching spec.md §3).
	Level int

	// LIST / LISTITEM.
	ListFlags ListFlag
	Start     string // optional start number, <=9 bytes

	// LISTITEM ordinal, and FOOTNOTE_REF/FOOTNOTE_DEF ordinal ("num").
	Ordinal int

	// PARAGRAPH.
	Lines int
	BEOLN bool // trailing-blank-line flag

	// TABLE_BLOCK column count; TABLE_CELL column index + alignment.
	Columns int
	Col     int
	Align   CellAlign

	// META normalized key; the value lives in a NodeNormalText child.
	Key string

	depth int
}

// document-facing lifecycle: push/pop/arena, matching spec.md §4.2 (C2).
// These live on *parseState (the driver's mutable working state) rather
// than on Document, since depth/cursor/counter are per-parse, not per-doc.

type parseState struct {
	arena   []*Node
	cursor  *Node
	nextID  int
	depth   int
	maxDep  int // 0 = unlimited
	lastErr *ParseError
}

func newParseState(maxDepth int) *parseState {
	return &parseState{maxDep: maxDepth}
}

func (ps *parseState) newNode(t NodeType) *Node {
	n := &Node{ID: ps.nextID, Type: t}
	ps.nextID++
	ps.arena = append(ps.arena, n)
	return n
}

// push allocates a node of the given type, links it as the last child of
// the cursor, and moves the cursor to it. It returns nil (and records a
// DepthExceeded error) if doing so would exceed the configured maximum
// depth, per spec.md §4.2 and the recoverable-error Design Note in §9.
func (ps *parseState) push(t NodeType) *Node {
	if ps.maxDep > 0 && ps.depth+1 > ps.maxDep {
		if ps.lastErr == nil {
			ps.lastErr = &ParseError{Kind: DepthExceeded, Detail: "nesting too deep while pushing " + t.String()}
		}
		return nil
	}
	n := ps.newNode(t)
	n.Parent = ps.cursor
	if ps.cursor != nil {
		ps.cursor.Children = append(ps.cursor.Children, n)
		n.depth = ps.cursor.depth + 1
	}
	ps.cursor = n
	ps.depth++
	return n
}

// pop asserts cursor identity and moves the cursor to its parent.
func (ps *parseState) pop(expected *Node) {
	if ps.cursor != expected {
		panic("mdcore: push/pop imbalance")
	}
	ps.cursor = ps.cursor.Parent
	ps.depth--
}

// Depth reports the node's distance from the root (root is 0).
func (n *Node) Depth() int {
	return n.depth
}
