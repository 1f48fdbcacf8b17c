package docxdiff

import (
	"strconv"
	"strings"
	"time"
)

// revisionTimeFormat is the W3C datetime form package readers expect on
// tracked-change attributes.
const revisionTimeFormat = "2006-01-02T15:04:05Z"

// revisionIDSource hands out document-wide monotonically increasing
// revision ids, starting at 1. A single source is threaded through one
// invocation so ids never repeat across paragraphs.
type revisionIDSource struct {
	next int
}

func newRevisionIDSource() *revisionIDSource {
	return &revisionIDSource{next: 1}
}

func (s *revisionIDSource) allocate() int {
	id := s.next
	s.next++
	return id
}

// newTextLeaf builds a text leaf, marking boundary whitespace as
// significant so package readers do not trim it.
func newTextLeaf(tag, text string) *Node {
	leaf := NewNode(tag).Append(Text(text))
	if text != strings.TrimSpace(text) {
		leaf.SetAttr("space", "preserve")
	}
	return leaf
}

// newPlainRun builds an ordinary run holding the given text.
func newPlainRun(text string) *Node {
	return NewNode("r").Append(newTextLeaf("t", text))
}

// newRevisionWrapper builds an ins/del/move wrapper stamped with an id,
// author, and timestamp. Deletion wrappers hold their text in delText
// leaves rather than t.
func newRevisionWrapper(tag, text, author string, id int, stamp time.Time) *Node {
	textTag := "t"
	if tag == tagDeleted || tag == tagMoveSource {
		textTag = "delText"
	}
	run := NewNode("r").Append(newTextLeaf(textTag, text))
	return NewNode(tag).
		SetAttr("id", strconv.Itoa(id)).
		SetAttr("author", author).
		SetAttr("date", stamp.Format(revisionTimeFormat)).
		Append(run)
}

// SynthesizeRuns converts an edit script into the ordered run children of
// a rewritten paragraph. Maximal groups of consecutive same-kind tokens
// coalesce into one run each: equal groups become plain runs, delete
// groups become deletion wrappers, insert groups become insertion
// wrappers. The differ's tie-break already orders a replace as delete then
// insert, and grouping preserves that. A zero-change script still yields a
// single plain run carrying all text.
func SynthesizeRuns(script []Edit, author string, ids *revisionIDSource, stamp time.Time) []Child {
	var runs []Child

	flush := func(op EditOp, text string) {
		switch op {
		case OpEqual:
			runs = append(runs, newPlainRun(text))
		case OpDelete:
			runs = append(runs, newRevisionWrapper(tagDeleted, text, author, ids.allocate(), stamp))
		case OpInsert:
			runs = append(runs, newRevisionWrapper(tagInserted, text, author, ids.allocate(), stamp))
		}
	}

	var group strings.Builder
	groupOp := OpEqual
	for i, edit := range script {
		if i == 0 || edit.Op != groupOp {
			if i > 0 {
				flush(groupOp, group.String())
				group.Reset()
			}
			groupOp = edit.Op
		}
		group.WriteString(edit.Token)
	}
	if len(script) > 0 {
		flush(groupOp, group.String())
	}

	return runs
}
