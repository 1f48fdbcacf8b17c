package docxdiff

// Wrapper tags for tracked changes. A wrapper holds the runs the change
// applies to; stripping promotes those runs to the wrapper's parent.
const (
	tagInserted   = "ins"
	tagDeleted    = "del"
	tagMoveSource = "moveFrom"
	tagMoveTarget = "moveTo"
)

func isRevisionWrapper(tag string) bool {
	switch tag {
	case tagInserted, tagDeleted, tagMoveSource, tagMoveTarget:
		return true
	}
	return false
}

// StripRevisions returns a copy of the tree with every tracked-change
// wrapper collapsed into its plain content: insertion and move-target
// wrappers are accepted, deletion and move-source wrappers are reverted.
// Deleted text leaves are renamed back to ordinary text leaves so the
// recovered document reads as plain content. All other nodes are rebuilt
// with the rule applied recursively, preserving order and untouched
// siblings. The input tree is not modified.
func StripRevisions(n *Node) *Node {
	out := NewNode(n.Tag)
	for name, value := range n.Attrs {
		out.Attrs[name] = value
	}
	for _, c := range n.Children {
		out.Children = appendStripped(out.Children, c)
	}
	return out
}

// appendStripped appends the stripped form of one child to dst. A wrapper's
// content is promoted in its place; wrappers may nest (inserted content can
// itself carry a deletion), so promotion recurses until a non-wrapper node
// surfaces.
func appendStripped(dst []Child, c Child) []Child {
	switch child := c.(type) {
	case *Node:
		if isRevisionWrapper(child.Tag) {
			for _, inner := range child.Children {
				dst = appendStripped(dst, inner)
			}
			return dst
		}
		return append(dst, restoreDeletedText(StripRevisions(child)))
	case Text:
		return append(dst, child)
	}
	return dst
}

// restoreDeletedText renames delText leaves to t, in place, so text
// extraction sees the content a deletion wrapper was holding.
func restoreDeletedText(n *Node) *Node {
	if n.Tag == "delText" {
		n.Tag = "t"
	}
	for _, c := range n.Children {
		if child, ok := c.(*Node); ok {
			restoreDeletedText(child)
		}
	}
	return n
}

// HasTrackedChanges reports whether the tree contains any tracked-change
// wrapper node. This is a structural check over the same wrapper set the
// stripper collapses, so paragraph text that merely mentions the markup
// keywords cannot trigger it.
func HasTrackedChanges(n *Node) bool {
	if isRevisionWrapper(n.Tag) {
		return true
	}
	for _, c := range n.Children {
		if child, ok := c.(*Node); ok && HasTrackedChanges(child) {
			return true
		}
	}
	return false
}
