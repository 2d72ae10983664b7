package ast

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestNodeBuild(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kumihan.ast")
	defer teardown()
	//
	n := NewElement(TypeParagraph, NewText("hello"))
	assert.Equal(t, TypeParagraph, n.Type)
	assert.Len(t, n.Children, 1)
	assert.Equal(t, "hello", n.InnerText())
	assert.False(t, n.IsError())
}

func TestNodeAttrs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kumihan.ast")
	defer teardown()
	//
	n := NewElement(TypeDiv)
	n.SetAttr("class", "box")
	n.SetAttr("style", "background-color:#ffffee")
	assert.Equal(t, "box", n.Attr("class"))
	assert.True(t, n.HasAttr("style"))
	assert.False(t, n.HasAttr("id"))
	assert.Equal(t, []string{"class", "style"}, n.AttrNames())
}

func TestErrorNode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kumihan.ast")
	defer teardown()
	//
	n := NewError("未知のキーワード: 太文字")
	assert.True(t, n.IsError())
	assert.Equal(t, "未知のキーワード: 太文字", n.Attr("message"))
	assert.Equal(t, "未知のキーワード: 太文字", n.InnerText())
}

func TestWrapIn(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kumihan.ast")
	defer teardown()
	//
	inner := NewText("X")
	tree := inner.WrapIn(TypeEmphasis).WrapIn(TypeStrong).WrapIn(TypeDiv)
	assert.Equal(t, TypeDiv, tree.Type)
	assert.Equal(t, TypeStrong, tree.Children[0].Type)
	assert.Equal(t, TypeEmphasis, tree.Children[0].Children[0].Type)
	assert.Equal(t, "X", tree.InnerText())
}

func TestWalkStopsEarly(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kumihan.ast")
	defer teardown()
	//
	tree := NewElement(TypeUList,
		NewElement(TypeListItem, NewText("a")),
		NewElement(TypeListItem, NewText("b")),
	)
	count := 0
	tree.Walk(func(n *Node) bool {
		count++
		return n.Type != TypeListItem
	})
	assert.Equal(t, 2, count) // ul and first li, then stop
}

func TestHeadingClamps(t *testing.T) {
	assert.Equal(t, "h2", Heading(2))
	assert.Equal(t, "h1", Heading(0))
	assert.Equal(t, "h5", Heading(9))
}
