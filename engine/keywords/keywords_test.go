package keywords

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"

	"github.com/npillmayer/kumihan/engine/ast"
)

func TestDefaultTableLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kumihan.keywords")
	defer teardown()
	//
	table := Default()
	def, ok := table.Lookup("太字")
	assert.True(t, ok)
	assert.Equal(t, "strong", def.Tag)
	assert.Equal(t, PrioStrong, def.Priority)
	//
	def, ok = table.Lookup("ハイライト")
	assert.True(t, ok)
	assert.Equal(t, "div", def.Tag)
	assert.Equal(t, "highlight", def.Class)
	assert.True(t, def.Color)
	//
	_, ok = table.Lookup("存在しない")
	assert.False(t, ok)
}

func TestHeadingsKnown(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kumihan.keywords")
	defer teardown()
	//
	table := Default()
	for level, name := range []string{"見出し1", "見出し2", "見出し3", "見出し4", "見出し5"} {
		assert.True(t, table.Known(name), name)
		def, _ := table.Lookup(name)
		assert.Equal(t, ast.Heading(level+1), def.Tag)
		assert.Equal(t, PrioHeading, def.Priority)
	}
}

func TestSuggest(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kumihan.keywords")
	defer teardown()
	//
	table := Default()
	sugg := table.Suggest("太文字") // one insertion away from 太字
	assert.NotEmpty(t, sugg)
	assert.Equal(t, "太字", sugg[0])
	//
	sugg = table.Suggest("まったく違うもの")
	assert.Empty(t, sugg)
}

func TestSuggestRanking(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kumihan.keywords")
	defer teardown()
	//
	table := NewTable()
	table.Define("あい", Definition{Tag: "b"})
	table.Define("あいう", Definition{Tag: "i"})
	table.Define("あいうえ", Definition{Tag: "u"})
	sugg := table.Suggest("あいう")
	// exact-distance ranking, then definition order
	assert.Equal(t, []string{"あいう", "あい", "あいうえ"}, sugg)
}

func TestSortForNesting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kumihan.keywords")
	defer teardown()
	//
	table := Default()
	a := table.SortForNesting([]string{"イタリック", "太字", "枠線"})
	b := table.SortForNesting([]string{"枠線", "太字", "イタリック"})
	c := table.SortForNesting([]string{"太字", "枠線", "イタリック"})
	want := []string{"枠線", "太字", "イタリック"}
	assert.Equal(t, want, a)
	assert.Equal(t, want, b)
	assert.Equal(t, want, c)
}

func TestRedefineKeepsRank(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kumihan.keywords")
	defer teardown()
	//
	table := NewTable()
	table.Define("甲", Definition{Tag: "b"})
	table.Define("乙", Definition{Tag: "i"})
	table.Define("甲", Definition{Tag: "u"})
	assert.Equal(t, []string{"甲", "乙"}, table.Keys())
	def, _ := table.Lookup("甲")
	assert.Equal(t, "u", def.Tag)
}
