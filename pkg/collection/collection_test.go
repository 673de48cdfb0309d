package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type item struct {
	Kind  string
	Price float64
}

func TestFilterAndGroupBy(t *testing.T) {
	items := []item{
		{"fruit", 10},
		{"soap", 45},
		{"fruit", 20},
	}

	fruit := Filter(items, func(i item) bool { return i.Kind == "fruit" })
	assert.Len(t, fruit, 2)

	grouped := GroupBy(items, func(i item) string { return i.Kind })
	assert.Len(t, grouped["fruit"], 2)
	assert.Len(t, grouped["soap"], 1)
}

func TestSum(t *testing.T) {
	items := []item{{"a", 30}, {"b", 50}, {"c", 45}}
	assert.Equal(t, 125.0, Sum(items, func(i item) float64 { return i.Price }))
	assert.Zero(t, Sum(nil, func(i item) float64 { return i.Price }))
}

func TestSortByLeavesInputAlone(t *testing.T) {
	items := []item{{"b", 2}, {"a", 1}}
	sorted := SortBy(items, func(x, y item) bool { return x.Kind < y.Kind })
	assert.Equal(t, "a", sorted[0].Kind)
	assert.Equal(t, "b", items[0].Kind)
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Unique([]string{"a", "b", "a", "c", "b"}))
}
