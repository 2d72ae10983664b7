package ast

import (
	"sort"
	"strings"
)

// Node types produced by the parsers. The Type field is open for renderer
// extensions, but the parsers only ever emit one of these.
const (
	TypeText       = "text"
	TypeParagraph  = "paragraph"
	TypeStrong     = "strong"
	TypeEmphasis   = "em"
	TypeDiv        = "div"
	TypeDetails    = "details"
	TypeBlockquote = "blockquote"
	TypeCode       = "code"
	TypeDeleted    = "del"
	TypeSpan       = "span"
	TypeUList      = "ul"
	TypeOList      = "ol"
	TypeListItem   = "li"
	TypeImage      = "img"
	TypeRuby       = "ruby"
	TypeError      = "error"
)

// Heading returns the node type for a heading of the given level (1–5).
func Heading(level int) string {
	if level < 1 {
		level = 1
	} else if level > 5 {
		level = 5
	}
	return "h" + string(rune('0'+level))
}

// Node is the parse-tree unit. A node either holds literal text or child
// nodes, never both. Builders fully populate a node before handing it out;
// afterwards it is treated as immutable.
type Node struct {
	Type     string
	Text     string
	Children []*Node
	attrs    map[string]string
}

// NewElement creates an element node of the given type.
func NewElement(typ string, children ...*Node) *Node {
	if typ == "" {
		tracer().Errorf("refusing to create node without a type")
		typ = TypeText
	}
	return &Node{Type: typ, Children: children}
}

// NewText creates a leaf node holding literal text.
func NewText(text string) *Node {
	return &Node{Type: TypeText, Text: text}
}

// NewError creates an error node. Error nodes always carry their message as
// an attribute, in the natural language of the input.
func NewError(message string) *Node {
	n := &Node{Type: TypeError}
	n.SetAttr("message", message)
	n.Children = []*Node{NewText(message)}
	return n
}

// IsError is true for nodes produced in place of unparsable input.
func (n *Node) IsError() bool {
	return n != nil && n.Type == TypeError
}

// SetAttr sets an attribute. Keys are unique; a second set overwrites.
func (n *Node) SetAttr(key, value string) *Node {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[key] = value
	return n
}

// Attr returns the value of an attribute, or "" if unset.
func (n *Node) Attr(key string) string {
	return n.attrs[key]
}

// HasAttr tells whether an attribute is set, distinguishing "" from unset.
func (n *Node) HasAttr(key string) bool {
	_, ok := n.attrs[key]
	return ok
}

// AttrNames returns the attribute keys in sorted order. Attribute order is
// not semantically relevant; sorting keeps debug output stable.
func (n *Node) AttrNames() []string {
	if len(n.attrs) == 0 {
		return nil
	}
	names := make([]string, 0, len(n.attrs))
	for k := range n.attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// AppendChild appends a child node. Nil children are dropped.
func (n *Node) AppendChild(child *Node) *Node {
	if child != nil {
		n.Children = append(n.Children, child)
	}
	return n
}

// WrapIn returns a new node of the given type holding n as its only child.
// Used for compound-keyword nesting, where an inner node is successively
// wrapped outward along the fixed priority order.
func (n *Node) WrapIn(typ string) *Node {
	return NewElement(typ, n)
}

// InnerText concatenates the literal text of n and all its descendants.
func (n *Node) InnerText() string {
	if n == nil {
		return ""
	}
	if len(n.Children) == 0 {
		return n.Text
	}
	var sb strings.Builder
	sb.WriteString(n.Text)
	for _, c := range n.Children {
		sb.WriteString(c.InnerText())
	}
	return sb.String()
}

// Walk calls visitor for n and every descendant, depth-first, parents before
// children. Walking stops early if visitor returns false.
func (n *Node) Walk(visitor func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !visitor(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(visitor) {
			return false
		}
	}
	return true
}

// String returns an indented one-node-per-line debug form of the subtree.
func (n *Node) String() string {
	var sb strings.Builder
	n.dump(&sb, 0)
	return sb.String()
}

func (n *Node) dump(sb *strings.Builder, depth int) {
	if n == nil {
		return
	}
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(n.Type)
	for _, k := range n.AttrNames() {
		sb.WriteString(" ")
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(n.attrs[k])
	}
	if n.Text != "" {
		sb.WriteString(" ")
		sb.WriteString("\"")
		sb.WriteString(n.Text)
		sb.WriteString("\"")
	}
	sb.WriteString("\n")
	for _, c := range n.Children {
		c.dump(sb, depth+1)
	}
}
