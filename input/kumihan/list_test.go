package kumihan

import (
	"testing"

	"github.com/npillmayer/kumihan/engine/ast"
	"github.com/npillmayer/kumihan/engine/keywords"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestClassifyListLine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kumihan.parse")
	defer teardown()
	//
	assert.Equal(t, UnorderedList, ClassifyListLine("- a"))
	assert.Equal(t, UnorderedList, ClassifyListLine("・a"))
	assert.Equal(t, UnorderedList, ClassifyListLine("* a"))
	assert.Equal(t, OrderedList, ClassifyListLine("1. a"))
	assert.Equal(t, OrderedList, ClassifyListLine("42. a"))
	assert.Equal(t, NoList, ClassifyListLine("1km"))
	assert.Equal(t, NoList, ClassifyListLine("-"))
	assert.Equal(t, NoList, ClassifyListLine("12."))
	assert.Equal(t, NoList, ClassifyListLine("text"))
}

func TestUnorderedListRun(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kumihan.parse")
	defer teardown()
	//
	lines := []string{"- a", "- b", "- c", "", "- d"}
	list, next := parseUnorderedList(lines, 0, keywords.Default())
	assert.Equal(t, 3, next) // blank line ends the run
	assert.Equal(t, ast.TypeUList, list.Type)
	assert.Len(t, list.Children, 3)
	for i, want := range []string{"a", "b", "c"} {
		assert.Equal(t, ast.TypeListItem, list.Children[i].Type)
		assert.Equal(t, want, list.Children[i].InnerText())
	}
}

// Mixed hyphen/middle-dot/star bullets merge into one list run. This is
// observed Kumihan behavior, kept on purpose; see DESIGN.md.
func TestMixedBulletsMergeQuirk(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kumihan.parse")
	defer teardown()
	//
	lines := []string{"- a", "・b", "* c"}
	list, next := parseUnorderedList(lines, 0, keywords.Default())
	assert.Equal(t, 3, next)
	assert.Len(t, list.Children, 3)
}

func TestOrderedListIgnoresNumbers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kumihan.parse")
	defer teardown()
	//
	lines := []string{"3. x", "1. y", "99. z"}
	list, next := parseOrderedList(lines, 0, keywords.Default())
	assert.Equal(t, 3, next)
	assert.Equal(t, ast.TypeOList, list.Type)
	assert.Equal(t, "x", list.Children[0].InnerText())
	assert.Equal(t, "y", list.Children[1].InnerText())
	assert.Equal(t, "z", list.Children[2].InnerText())
}

func TestListItemInlineMarker(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kumihan.parse")
	defer teardown()
	//
	lines := []string{"- ;;;太字;;; 重要"}
	list, _ := parseUnorderedList(lines, 0, keywords.Default())
	item := list.Children[0]
	assert.Len(t, item.Children, 1)
	assert.Equal(t, ast.TypeStrong, item.Children[0].Type)
	assert.Equal(t, "重要", item.Children[0].InnerText())
}

func TestListItemRuby(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kumihan.parse")
	defer teardown()
	//
	lines := []string{"- ｜組版《くみはん》の話"}
	list, _ := parseUnorderedList(lines, 0, keywords.Default())
	item := list.Children[0]
	assert.Equal(t, ast.TypeRuby, item.Children[0].Type)
	assert.Equal(t, "組版", item.Children[0].InnerText())
	assert.Equal(t, "くみはん", item.Children[0].Attr("rt"))
	assert.Equal(t, "の話", item.Children[1].Text)
}
