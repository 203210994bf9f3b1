// Package mdcore implements the core of a Markdown-with-extensions
// parser: a two-pass, depth-limited recursive-descent parser that turns a
// byte buffer into a typed AST. See SPEC_FULL.md for the full design.
//
// The only entry points a caller needs are NewDocument, (*Document).Parse,
// and (*Node).Release.
package mdcore

// Document holds parser configuration, per spec.md §3 (C8, "Document
// state"); the feature jump table and the rest of the working state are
// built afresh by each Parse call. A Document is not safe
// for concurrent use, but distinct Documents share no mutable state and
// may run in parallel, per spec.md §5.
type Document struct {
	opts Options
}

// NewDocument allocates a Document, per spec.md §6's doc_new(opts). It
// copies opts; later mutation of the caller's Options has no effect.
func NewDocument(opts Options) *Document {
	d := &Document{opts: opts}
	return d
}

// Parse runs the full pipeline described in spec.md §4.8 (C8): preprocess,
// optional metadata, reference/footnote collection, block parse, optional
// footnotes block, and returns the ROOT node plus the total node count.
//
// A non-nil error is only ever a *ParseError with Kind == DepthExceeded
// (spec.md §7, §9's Design Note: depth overflow is surfaced as a
// recoverable error rather than terminating the process). Malformed
// Markdown never produces an error: spec.md §7 guarantees a valid tree is
// always returned, in the worst case a single long NORMAL_TEXT.
func (d *Document) Parse(src []byte) (root *Node, nodeCount int, err error) {
	clean := preprocess(src)

	p := newParser(d.opts)

	rootNode := p.ps.push(NodeRoot)
	docHeader := p.ps.push(NodeDocHeader)

	rest := clean
	if d.opts.Features.Has(FeatureMetadata) && looksLikeMetadataBlock(clean) {
		entries, n := parseMetadata(clean)
		p.meta = append(p.meta, entries...)
		rest = clean[n:]
	}

	refs, footnotes, body := collectReferences(rest, d.opts.Features)
	p.refs = refs
	p.footnotes = footnotes

	p.meta = canonicalizeMetaOrder(p.meta)
	p.emitMeta()

	p.ps.pop(docHeader)

	p.parseBlock(body)

	if d.opts.Features.Has(FeatureFootnotes) && p.hasUsedFootnotes() {
		fnBlock := p.ps.push(NodeFootnotesBlock)
		if fnBlock != nil {
			p.emitUsedFootnotes(fnBlock)
			p.ps.pop(fnBlock)
		}
	}

	docFooter := p.ps.push(NodeDocFooter)
	if docFooter != nil {
		p.ps.pop(docFooter)
	}

	p.ps.pop(rootNode)

	if p.ps.lastErr != nil {
		return rootNode, len(p.ps.arena), p.ps.lastErr
	}
	return rootNode, len(p.ps.arena), nil
}

func (p *parser) hasUsedFootnotes() bool {
	for _, f := range p.footnotes {
		if f.used {
			return true
		}
	}
	return false
}

func (p *parser) emitUsedFootnotes(parent *Node) {
	used := make([]*footnoteEntry, 0, len(p.footnotes))
	for _, f := range p.footnotes {
		if f.used {
			used = append(used, f)
		}
	}
	// Ordinal order, per spec.md §4.8 ("used definitions in ordinal order").
	for i := 1; i <= len(used); i++ {
		for _, f := range used {
			if f.ordinal == i {
				def := p.ps.push(NodeFootnoteDef)
				if def == nil {
					return
				}
				def.Ordinal = f.ordinal
				p.parseBlock([]byte(f.contents + "\n"))
				p.ps.pop(def)
				break
			}
		}
	}
}

func (p *parser) emitMeta() {
	for _, e := range p.meta {
		n := p.ps.push(NodeMeta)
		if n == nil {
			return
		}
		n.Key = e.key
		val := p.ps.push(NodeNormalText)
		if val != nil {
			val.Text = []byte(e.value)
			p.ps.pop(val)
		}
		p.ps.pop(n)
	}
	for _, e := range p.opts.Defaults {
		if hasMetaKey(p.meta, e.Key) {
			continue
		}
		n := p.ps.push(NodeMeta)
		if n == nil {
			return
		}
		n.Key = e.Key
		val := p.ps.push(NodeNormalText)
		if val != nil {
			val.Text = []byte(e.Value)
			p.ps.pop(val)
		}
		p.ps.pop(n)
	}
	for _, e := range p.opts.Overrides {
		n := p.ps.push(NodeMeta)
		if n == nil {
			return
		}
		n.Key = e.Key
		val := p.ps.push(NodeNormalText)
		if val != nil {
			val.Text = []byte(e.Value)
			p.ps.pop(val)
		}
		p.ps.pop(n)
	}
}

func hasMetaKey(entries []metaEntry, key string) bool {
	for _, e := range entries {
		if e.key == key {
			return true
		}
	}
	return false
}
