package mdcore

// parser is the per-Parse working state (C8's "document state" minus the
// fields that live on Options): the node arena/cursor (ps), the feature
// set, the reference/footnote/metadata lists gathered by the first pass,
// the active-character jump table driving inline dispatch (C7), and the
// in-link-body flag that suppresses nested autolinks while parsing a
// link's bracketed text.
//
// spec.md §9 notes a `cur_par` counter in the original C driver that is
// updated but never read; per that Design Note it is dead state and is
// not replicated here.
type parser struct {
	ps        *parseState
	feat      Feature
	opts      Options
	refs      []*refEntry
	footnotes []*footnoteEntry
	meta      []metaEntry
	jump      [256]bool
	inLink    bool
	nextOrd   int
}

func newParser(opts Options) *parser {
	p := &parser{
		ps:   newParseState(opts.MaxDepth),
		feat: opts.Features,
		opts: opts,
	}
	p.buildJumpTable()
	return p
}

// buildJumpTable marks which bytes are "active characters" for the inline
// dispatcher, per spec.md §4.7. A zero (unset) entry means "treat the
// byte as plain text," which is also the contract a handler's zero return
// value falls back to.
func (p *parser) buildJumpTable() {
	p.jump['*'] = true
	p.jump['_'] = true
	if p.feat.Has(FeatureStrike) {
		p.jump['~'] = true
	}
	if p.feat.Has(FeatureHilite) {
		p.jump['='] = true
	}
	p.jump['`'] = true
	p.jump['\n'] = true
	p.jump['['] = true
	p.jump['!'] = true
	p.jump['<'] = true
	p.jump['\\'] = true
	p.jump['&'] = true
	if p.feat.Has(FeatureAutolink) {
		p.jump[':'] = true
		p.jump['@'] = true
		p.jump['w'] = true
	}
	if p.feat.Has(FeatureSuper) {
		p.jump['^'] = true
	}
	if p.feat.Has(FeatureMath) {
		p.jump['$'] = true
	}
}
