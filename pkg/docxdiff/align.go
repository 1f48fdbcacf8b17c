package docxdiff

import (
	"strings"
	"time"
)

// DiffStats summarizes the tracked changes written into the output
// document.
type DiffStats struct {
	ParagraphsTotal    int
	ParagraphsChanged  int
	ParagraphsInserted int
	ParagraphsDeleted  int
	InsertionRuns      int
	DeletionRuns       int
}

func (s *DiffStats) countRuns(children []Child) {
	for _, c := range children {
		node, ok := c.(*Node)
		if !ok {
			continue
		}
		switch node.Tag {
		case tagInserted:
			s.InsertionRuns++
		case tagDeleted:
			s.DeletionRuns++
		}
	}
}

// AlignParagraphs aligns the paragraphs of two stripped documents strictly
// by position and returns the rewritten body children. At each index: both
// present diffs the pair's text token by token; a base-only position emits
// the paragraph wholly wrapped as a deletion; a revised-only position
// wholly as an insertion. No move detection or structural matching is
// attempted.
func AlignParagraphs(basePs, revisedPs []*Node, author string, opts *Options, ids *revisionIDSource, stamp time.Time, warn *warningCollector) ([]Child, DiffStats) {
	logger := GetLogger()

	count := len(basePs)
	if len(revisedPs) > count {
		count = len(revisedPs)
	}

	stats := DiffStats{ParagraphsTotal: count}
	out := make([]Child, 0, count)

	for i := 0; i < count; i++ {
		switch {
		case i < len(basePs) && i < len(revisedPs):
			para, changed := diffParagraphPair(i, basePs[i], revisedPs[i], author, opts, ids, stamp, warn, &stats)
			if changed {
				stats.ParagraphsChanged++
			}
			out = append(out, para)
		case i < len(revisedPs):
			logger.WithField("paragraph", i).Debug("revised-only paragraph marked inserted")
			para := rebuildParagraph(revisedPs[i],
				[]Child{newRevisionWrapper(tagInserted, ParagraphText(revisedPs[i]), author, ids.allocate(), stamp)})
			stats.ParagraphsInserted++
			stats.InsertionRuns++
			out = append(out, para)
		default:
			logger.WithField("paragraph", i).Debug("base-only paragraph marked deleted")
			para := rebuildParagraph(basePs[i],
				[]Child{newRevisionWrapper(tagDeleted, ParagraphText(basePs[i]), author, ids.allocate(), stamp)})
			stats.ParagraphsDeleted++
			stats.DeletionRuns++
			out = append(out, para)
		}
	}

	return out, stats
}

// diffParagraphPair rewrites one aligned pair. The returned flag reports
// whether any tracked markup was emitted.
func diffParagraphPair(index int, base, revised *Node, author string, opts *Options, ids *revisionIDSource, stamp time.Time, warn *warningCollector, stats *DiffStats) (*Node, bool) {
	logger := GetLogger()

	baseText := ParagraphText(base)
	revisedText := ParagraphText(revised)
	logger.DebugParagraphPair(index, baseText, revisedText)

	// With list diffing off, numbered paragraphs keep their alignment slot
	// but are not compared.
	if !opts.IncludeLists && (isListParagraph(base) || isListParagraph(revised)) {
		return revised, false
	}

	// Pure-reformatting pairs pass through untouched rather than producing
	// noisy whitespace diffs.
	if opts.SuppressWhitespaceOnly && baseText != revisedText &&
		whitespaceInsensitiveEqual(baseText, revisedText) {
		return revised, false
	}

	baseTokens := TokenizeText(baseText, opts.Granularity)
	revisedTokens := TokenizeText(revisedText, opts.Granularity)

	tokenCap := opts.Limits.MaxTokensPerParagraph
	if len(baseTokens) > tokenCap || len(revisedTokens) > tokenCap {
		// Over the cap the quadratic differ is off the table; treat the
		// paragraph as one opaque replace-or-keep unit.
		if baseText == revisedText {
			return rebuildParagraph(revised, []Child{newPlainRun(revisedText)}), false
		}
		warn.Addf("paragraph %d exceeds %d tokens; diffed as a whole-paragraph replace", index, tokenCap)
		runs := []Child{
			newRevisionWrapper(tagDeleted, baseText, author, ids.allocate(), stamp),
			newRevisionWrapper(tagInserted, revisedText, author, ids.allocate(), stamp),
		}
		stats.countRuns(runs)
		return rebuildParagraph(revised, runs), true
	}

	script := DiffTokens(baseTokens, revisedTokens)
	runs := SynthesizeRuns(script, author, ids, stamp)
	stats.countRuns(runs)

	changed := false
	for _, edit := range script {
		if edit.Op != OpEqual {
			changed = true
			break
		}
	}
	return rebuildParagraph(revised, runs), changed
}

// isListParagraph reports whether a paragraph carries numbering
// properties, which is what makes it render as a list item.
func isListParagraph(p *Node) bool {
	props := p.First("pPr")
	return props != nil && props.First("numPr") != nil
}

// whitespaceInsensitiveEqual reports whether two texts are identical once
// every whitespace run is collapsed and surrounding whitespace trimmed.
func whitespaceInsensitiveEqual(a, b string) bool {
	return strings.Join(strings.Fields(a), " ") == strings.Join(strings.Fields(b), " ")
}

// rebuildParagraph builds a fresh paragraph from synthesized runs,
// carrying over the original's paragraph properties (which includes any
// section properties) untouched.
func rebuildParagraph(orig *Node, runs []Child) *Node {
	p := NewNode("p")
	if props := orig.First("pPr"); props != nil {
		p.Children = append(p.Children, props)
	}
	p.Children = append(p.Children, runs...)
	return p
}
