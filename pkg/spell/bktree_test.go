package spell

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeInsertAndContains(t *testing.T) {
	words := []string{"hello", "world", "hella", "hell", "help"}
	tree := BuildTree(words)

	for _, w := range words {
		assert.True(t, tree.Contains(w), "inserted word %q not found", w)
	}
	assert.False(t, tree.Contains("helicopter"))
	assert.False(t, tree.Contains(""))
	assert.Equal(t, len(words), tree.Len())
	assert.GreaterOrEqual(t, tree.Depth(), 1)
}

func TestTreeEmpty(t *testing.T) {
	tree := NewTree()
	assert.False(t, tree.Contains("anything"))
	assert.Empty(t, tree.Query("anything", 3))
	assert.Zero(t, tree.Len())
	assert.Zero(t, tree.Depth())
}

func TestTreeDuplicateInsertIsNoop(t *testing.T) {
	once := BuildTree([]string{"cat", "cut", "cast"})
	twice := BuildTree([]string{"cat", "cut", "cast", "cat", "cut", "cast"})

	assert.Equal(t, once.Len(), twice.Len())
	for _, w := range []string{"cat", "cut", "cast", "cost"} {
		assert.Equal(t, once.Contains(w), twice.Contains(w))
		assert.Equal(t, once.Query(w, 2), twice.Query(w, 2))
	}
}

func TestTreeQueryWithinRadius(t *testing.T) {
	tree := BuildTree([]string{"hello", "world", "hella", "hell", "help"})

	got := tree.Query("hell", 1)
	require.Len(t, got, 4)
	var words []string
	for _, m := range got {
		assert.LessOrEqual(t, m.Distance, 1)
		assert.Equal(t, Distance("hell", m.Word), m.Distance, "reported distance off for %q", m.Word)
		words = append(words, m.Word)
	}
	assert.ElementsMatch(t, []string{"hello", "hella", "hell", "help"}, words)
}

func TestTreeQueryZeroRadius(t *testing.T) {
	corpus := []string{"cat", "cats", "bat", "hat", "cut"}
	tree := BuildTree(corpus)

	got := tree.Query("cat", 0)
	require.Len(t, got, 1)
	assert.Equal(t, Suggestion{Word: "cat", Distance: 0}, got[0])

	assert.Empty(t, tree.Query("cot", 0))

	// Radius zero agrees with Contains for members and strangers alike.
	for _, w := range append(corpus, "dog", "", "catapult") {
		assert.Equal(t, tree.Contains(w), len(tree.Query(w, 0)) == 1, "mismatch for %q", w)
	}
}

func TestTreeQueryNegativeRadius(t *testing.T) {
	tree := BuildTree([]string{"cat", "cut"})
	assert.Empty(t, tree.Query("cat", -1))
}

func TestTreeQueryMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	corpus := randomWordSet(rng, 300)
	tree := BuildTree(corpus)

	queries := []string{corpus[0], corpus[150], "zzzzz", "a", "spelling", corpus[42] + "x"}
	for _, q := range queries {
		for radius := 0; radius <= 3; radius++ {
			var expected []string
			for _, w := range corpus {
				if Distance(q, w) <= radius {
					expected = append(expected, w)
				}
			}
			var got []string
			for _, m := range tree.Query(q, radius) {
				assert.Equal(t, Distance(q, m.Word), m.Distance)
				got = append(got, m.Word)
			}
			assert.ElementsMatch(t, expected, got, "query %q radius %d", q, radius)
		}
	}
}

func TestTreeDiscoveryOrderIsStable(t *testing.T) {
	words := []string{"book", "back", "boon", "cook", "cake", "cape", "cart"}
	first := BuildTree(words)
	second := BuildTree(words)

	for _, q := range []string{"bouk", "caqe", "boot"} {
		assert.Equal(t, first.Query(q, 2), second.Query(q, 2), "order drifted for %q", q)
	}
}

func BenchmarkTreeQuery(b *testing.B) {
	rng := rand.New(rand.NewSource(9))
	tree := BuildTree(randomWordSet(rng, 20000))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Query("benchmark", 2)
	}
}

func BenchmarkTreeInsert(b *testing.B) {
	rng := rand.New(rand.NewSource(11))
	words := randomWordSet(rng, 20000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		BuildTree(words)
	}
}
