package docxdiff

import "strings"

// CollectParagraphs returns the ordered paragraph nodes of a document
// body. Body-level paragraphs are always included; table cells and text
// box content are descended into only when the corresponding option flag
// is set. Paragraphs are returned in document order.
func CollectParagraphs(root *Node, opts *Options) []*Node {
	body := root.First("body")
	if body == nil {
		return nil
	}
	var paras []*Node
	collectParagraphs(body, opts, &paras)
	return paras
}

func collectParagraphs(n *Node, opts *Options, into *[]*Node) {
	for _, c := range n.Children {
		child, ok := c.(*Node)
		if !ok {
			continue
		}
		switch child.Tag {
		case "p":
			*into = append(*into, child)
			if opts.IncludeTextBoxes {
				collectTextBoxParagraphs(child, opts, into)
			}
		case "tbl":
			if opts.IncludeTables {
				collectParagraphs(child, opts, into)
			}
		case "tr", "tc":
			collectParagraphs(child, opts, into)
		}
	}
}

// collectTextBoxParagraphs looks below a paragraph for txbxContent nodes,
// which hold the paragraphs of an anchored text box.
func collectTextBoxParagraphs(n *Node, opts *Options, into *[]*Node) {
	for _, c := range n.Children {
		child, ok := c.(*Node)
		if !ok {
			continue
		}
		if child.Tag == "txbxContent" {
			collectParagraphs(child, opts, into)
			continue
		}
		collectTextBoxParagraphs(child, opts, into)
	}
}

// ParagraphText returns the concatenated text of a paragraph's runs, in
// run order. Tracked-change wrappers must already have been stripped;
// only plain runs are read.
func ParagraphText(p *Node) string {
	var sb strings.Builder
	for _, r := range p.ElementsByTag("r") {
		for _, t := range r.ElementsByTag("t") {
			sb.WriteString(t.InnerText())
		}
	}
	return sb.String()
}
