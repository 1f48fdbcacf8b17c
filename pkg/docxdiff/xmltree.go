package docxdiff

import (
	"encoding/xml"
	"io"
	"sort"
	"strings"
)

// Child is a typed child of a Node: either a nested element (*Node) or
// inline text (Text). Keeping the two shapes as a closed set lets callers
// switch exhaustively instead of probing for keys.
type Child interface {
	isChild()
}

// Node is an element in a parsed document part: a local tag name (namespace
// prefixes are stripped on parse), its attributes, and an ordered sequence
// of children. A tag that occurs once under its parent is simply a
// one-element subsequence of Children; the codec never distinguishes
// single from repeated occurrence.
type Node struct {
	Tag      string
	Attrs    map[string]string
	Children []Child
}

func (*Node) isChild() {}

// Text is inline character data inside an element.
type Text string

func (Text) isChild() {}

// NewNode creates an element node with the given tag.
func NewNode(tag string) *Node {
	return &Node{Tag: tag, Attrs: make(map[string]string)}
}

// Append adds children to the node and returns it for chaining.
func (n *Node) Append(children ...Child) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// SetAttr sets an attribute value and returns the node for chaining.
func (n *Node) SetAttr(name, value string) *Node {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[name] = value
	return n
}

// Attr returns the value of an attribute, or "" when absent.
func (n *Node) Attr(name string) string {
	return n.Attrs[name]
}

// Elements returns the element children of the node, in order.
func (n *Node) Elements() []*Node {
	var elems []*Node
	for _, c := range n.Children {
		if e, ok := c.(*Node); ok {
			elems = append(elems, e)
		}
	}
	return elems
}

// ElementsByTag returns the element children with the given tag, in order.
func (n *Node) ElementsByTag(tag string) []*Node {
	var elems []*Node
	for _, c := range n.Children {
		if e, ok := c.(*Node); ok && e.Tag == tag {
			elems = append(elems, e)
		}
	}
	return elems
}

// First returns the first element child with the given tag, or nil.
func (n *Node) First(tag string) *Node {
	for _, c := range n.Children {
		if e, ok := c.(*Node); ok && e.Tag == tag {
			return e
		}
	}
	return nil
}

// InnerText returns the concatenated inline text of the node's direct
// children.
func (n *Node) InnerText() string {
	var sb strings.Builder
	for _, c := range n.Children {
		if t, ok := c.(Text); ok {
			sb.WriteString(string(t))
		}
	}
	return sb.String()
}

// ParsePart parses a textual XML part into an element tree.
//
// Namespace prefixes on tags and attributes are stripped, so a document
// authored with any consistent prefix parses identically. Attribute values
// stay strings; ids that look numeric are not coerced. Whitespace-only
// character data between element children is discarded as formatting;
// character data inside a leaf element is preserved verbatim. The root
// element's attributes are dropped: the serializer owns the root's
// namespace declarations.
func ParsePart(data []byte) (*Node, error) {
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	var root *Node
	var stack []*Node

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, NewParsePartError("", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			node := NewNode(t.Name.Local)
			if len(stack) == 0 {
				root = node
			} else {
				for _, attr := range t.Attr {
					if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
						continue
					}
					node.Attrs[attr.Name.Local] = attr.Value
				}
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) > 0 {
				finishNode(stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, Text(string(t)))
			}
		}
	}

	if root == nil {
		return nil, NewParsePartError("no root element", nil)
	}
	if len(stack) > 0 {
		return nil, NewParsePartError("unbalanced markup", nil)
	}
	return root, nil
}

// finishNode drops whitespace-only text children from elements that also
// contain element children. That text is indentation between siblings, not
// content; leaf text is kept exactly as written.
func finishNode(n *Node) {
	hasElement := false
	for _, c := range n.Children {
		if _, ok := c.(*Node); ok {
			hasElement = true
			break
		}
	}
	if !hasElement {
		return
	}
	kept := n.Children[:0]
	for _, c := range n.Children {
		if t, ok := c.(Text); ok && strings.TrimSpace(string(t)) == "" {
			continue
		}
		kept = append(kept, c)
	}
	n.Children = kept
}

const (
	xmlHeader    = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
	wmlNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
)

// SerializePart serializes an element tree back to part text, prefixing
// every tag and attribute with the wordprocessing namespace prefix and
// declaring that namespace on the root. Serialization is the left inverse
// of ParsePart for trees the codec produced; it does not reproduce the
// whitespace formatting of third-party input.
func SerializePart(root *Node) []byte {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	writeNode(&sb, root, true)
	return []byte(sb.String())
}

func writeNode(sb *strings.Builder, n *Node, isRoot bool) {
	sb.WriteString("<")
	sb.WriteString(qualifyTag(n.Tag))
	if isRoot {
		sb.WriteString(` xmlns:w="` + wmlNamespace + `"`)
	} else {
		names := make([]string, 0, len(n.Attrs))
		for name := range n.Attrs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			sb.WriteString(" ")
			sb.WriteString(qualifyAttr(name))
			sb.WriteString(`="`)
			sb.WriteString(escapeAttr(n.Attrs[name]))
			sb.WriteString(`"`)
		}
	}
	if len(n.Children) == 0 {
		sb.WriteString("/>")
		return
	}
	sb.WriteString(">")
	for _, c := range n.Children {
		switch child := c.(type) {
		case *Node:
			writeNode(sb, child, false)
		case Text:
			sb.WriteString(escapeText(string(child)))
		}
	}
	sb.WriteString("</")
	sb.WriteString(qualifyTag(n.Tag))
	sb.WriteString(">")
}

func qualifyTag(tag string) string {
	return "w:" + tag
}

// qualifyAttr maps stored attribute names back to their serialized form.
// "space" is the predeclared xml:space attribute; everything else in a
// wordprocessing part carries the w prefix.
func qualifyAttr(name string) string {
	if name == "space" {
		return "xml:space"
	}
	return "w:" + name
}

func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func escapeAttr(s string) string {
	s = escapeText(s)
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}
