package collection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coconina/storefront/pkg/collection"
)

func TestFilterKeepsOrder(t *testing.T) {
	got := collection.Filter([]int{5, 2, 8, 3, 6}, func(n int) bool { return n%2 == 0 })
	assert.Equal(t, []int{2, 8, 6}, got)
}

func TestFilterNoMatchIsEmptyNotNil(t *testing.T) {
	got := collection.Filter([]string{"a"}, func(string) bool { return false })
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFirst(t *testing.T) {
	v, ok := collection.First([]string{"x", "yy", "zz"}, func(s string) bool { return len(s) == 2 })
	assert.True(t, ok)
	assert.Equal(t, "yy", v)

	_, ok = collection.First([]string{"x"}, func(s string) bool { return s == "q" })
	assert.False(t, ok)
}

func TestMapAndCountBy(t *testing.T) {
	words := []string{"ring", "band", "hoop", "drop", "cascade"}
	assert.Equal(t, []int{4, 4, 4, 4, 7}, collection.Map(words, func(s string) int { return len(s) }))
	assert.Equal(t, map[int]int{4: 4, 7: 1}, collection.CountBy(words, func(s string) int { return len(s) }))
}
