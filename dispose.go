package mdcore

// Release recursively tears a subtree down, per spec.md §4.2/§4.8 (C9):
// depth-first, clearing each node's variant buffers, then its children
// list, then detaching it from its parent. Go's garbage collector makes
// this unnecessary for memory safety, but it is kept as an explicit
// operation so the testable property "after node_free(root) no allocation
// remains owned by the parser" (spec.md §8 invariant 5) is something a
// test can assert structurally: after Release, the subtree has no
// children and carries no buffers.
func (n *Node) Release() {
	if n == nil {
		return
	}
	for _, c := range n.Children {
		c.Release()
	}
	n.Children = nil
	n.Text = nil
	n.Link = nil
	n.Title = nil
	n.Alt = nil
	n.Dims = ""
	n.AttrWidth = ""
	n.AttrHeight = ""
	n.Lang = ""
	n.Key = ""
	n.Parent = nil
}
