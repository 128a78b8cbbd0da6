package server

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arlochr/spellserve/pkg/spell"
)

func cachedResult(word string) spell.Result {
	return spell.Result{Suggestions: []spell.Suggestion{{Word: word, Distance: 1}}}
}

func TestResultCacheGetPut(t *testing.T) {
	rc := newResultCache(4)

	_, ok := rc.Get("teh/2")
	assert.False(t, ok)

	rc.Put("teh/2", cachedResult("the"))
	res, ok := rc.Get("teh/2")
	assert.True(t, ok)
	assert.Equal(t, "the", res.Suggestions[0].Word)
	assert.Equal(t, 1, rc.Len())
	assert.Equal(t, int64(1), rc.Hits())
}

func TestResultCacheEvictsLeastRecent(t *testing.T) {
	rc := newResultCache(2)

	rc.Put("a/1", cachedResult("a"))
	rc.Put("b/1", cachedResult("b"))

	// Touch a so b becomes the coldest entry
	_, ok := rc.Get("a/1")
	assert.True(t, ok)

	rc.Put("c/1", cachedResult("c"))
	assert.Equal(t, 2, rc.Len())

	_, ok = rc.Get("b/1")
	assert.False(t, ok)
	_, ok = rc.Get("a/1")
	assert.True(t, ok)
	_, ok = rc.Get("c/1")
	assert.True(t, ok)
}

func TestResultCacheOverwriteDoesNotEvict(t *testing.T) {
	rc := newResultCache(2)

	rc.Put("a/1", cachedResult("a"))
	rc.Put("b/1", cachedResult("b"))
	rc.Put("a/1", cachedResult("a2"))

	assert.Equal(t, 2, rc.Len())
	res, ok := rc.Get("a/1")
	assert.True(t, ok)
	assert.Equal(t, "a2", res.Suggestions[0].Word)
}

func TestResultCacheDisabled(t *testing.T) {
	rc := newResultCache(0)

	rc.Put("a/1", cachedResult("a"))
	_, ok := rc.Get("a/1")
	assert.False(t, ok)
	assert.Equal(t, 0, rc.Len())
}
