package mdinline

import (
	"strconv"
	"strings"
)

// Node is an element of the parsed tree.
//
// Text nodes carry their content in Text and have no children. The other kinds
// own their Children exclusively.
type Node struct {
	Kind     NodeKind
	Text     string
	Children []Node
}

type nodeKind uint8

// NodeKind is the exported alias of nodeKind.
type NodeKind = nodeKind

const (
	nodeText nodeKind = iota
	nodeBold
	nodeItalic
	nodeStrikethrough
	nodeSpoiler
)

const (
	// NodeText is a leaf holding literal text.
	NodeText NodeKind = nodeText
	// NodeBold wraps content between ** delimiters.
	NodeBold NodeKind = nodeBold
	// NodeItalic wraps content between * delimiters.
	NodeItalic NodeKind = nodeItalic
	// NodeStrikethrough wraps content between ~~ delimiters.
	NodeStrikethrough NodeKind = nodeStrikethrough
	// NodeSpoiler wraps content between || delimiters.
	NodeSpoiler NodeKind = nodeSpoiler
)

// nodeTypeNames are the wire names used in the serialized "type" field.
var nodeTypeNames = [...]string{
	nodeText:          "text",
	nodeBold:          "bold",
	nodeItalic:        "italic",
	nodeStrikethrough: "strikethrough",
	nodeSpoiler:       "spoiler",
}

func (k nodeKind) String() string {
	if int(k) < len(nodeTypeNames) {
		return nodeTypeNames[k]
	}
	return "NodeKind(" + strconv.Itoa(int(k)) + ")"
}

// ParseNodeKind maps a serialized type name back to its kind.
func ParseNodeKind(name string) (NodeKind, bool) {
	for i, n := range nodeTypeNames {
		if n == name {
			return nodeKind(i), true
		}
	}
	return 0, false
}

// TextNode returns a text leaf.
func TextNode(text string) Node {
	return Node{Kind: nodeText, Text: text}
}

// Bold returns a bold node owning children.
func Bold(children ...Node) Node { return Node{Kind: nodeBold, Children: children} }

// Italic returns an italic node owning children.
func Italic(children ...Node) Node { return Node{Kind: nodeItalic, Children: children} }

// Strikethrough returns a strikethrough node owning children.
func Strikethrough(children ...Node) Node {
	return Node{Kind: nodeStrikethrough, Children: children}
}

// Spoiler returns a spoiler node owning children.
func Spoiler(children ...Node) Node { return Node{Kind: nodeSpoiler, Children: children} }

// IsLeaf reports whether n is a text node.
func (n Node) IsLeaf() bool { return n.Kind == nodeText }

// PlainText concatenates the text leaves under n, dropping all markup.
func (n Node) PlainText() string {
	var b strings.Builder
	n.appendPlain(&b)
	return b.String()
}

func (n Node) appendPlain(b *strings.Builder) {
	if n.Kind == nodeText {
		b.WriteString(n.Text)
		return
	}
	for _, c := range n.Children {
		c.appendPlain(b)
	}
}

// String renders n in a compact debug form such as bold[text("a")].
func (n Node) String() string {
	var b strings.Builder
	n.appendDebug(&b)
	return b.String()
}

func (n Node) appendDebug(b *strings.Builder) {
	b.WriteString(n.Kind.String())
	if n.Kind == nodeText {
		b.WriteByte('(')
		b.WriteString(strconv.Quote(n.Text))
		b.WriteByte(')')
		return
	}
	b.WriteByte('[')
	for i, c := range n.Children {
		if i > 0 {
			b.WriteString(", ")
		}
		c.appendDebug(b)
	}
	b.WriteByte(']')
}

// VisitFunc is called for each node by Walk. Returning false skips the
// node's children.
type VisitFunc func(n Node, depth int) (descend bool, err error)

// Walk visits nodes depth-first in document order.
func Walk(nodes []Node, visit VisitFunc) error {
	return walk(nodes, visit, 0)
}

func walk(nodes []Node, visit VisitFunc, depth int) error {
	for _, n := range nodes {
		descend, err := visit(n, depth)
		if err != nil {
			return err
		}
		if descend && len(n.Children) > 0 {
			if err := walk(n.Children, visit, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}
