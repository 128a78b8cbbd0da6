package spell

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildChecker(t *testing.T, words []string) *Checker {
	t.Helper()
	c, err := Build(words, Options{})
	require.NoError(t, err)
	return c
}

func TestCheckerConfirmsKnownWords(t *testing.T) {
	c := buildChecker(t, []string{"house", "mouse", "horse"})

	res := c.Check("house")
	assert.True(t, res.Valid)
	assert.Nil(t, res.Suggestions)
}

func TestCheckerTranspositionSuggestion(t *testing.T) {
	c := buildChecker(t, []string{"the", "then", "tea"})

	res := c.Check("teh")
	require.False(t, res.Valid)
	require.NotEmpty(t, res.Suggestions)
	for _, s := range res.Suggestions {
		assert.Equal(t, 1, s.Distance, "%q should be one edit from teh", s.Word)
	}
	words := suggestionWords(res.Suggestions)
	assert.Contains(t, words, "the")
	assert.NotContains(t, words, "then")
}

func TestCheckerStopsAtFirstProductiveRadius(t *testing.T) {
	c := buildChecker(t, []string{"cat", "cats", "bat", "hat", "cut"})

	res := c.Check("cwt")
	require.False(t, res.Valid)
	require.NotEmpty(t, res.Suggestions)

	// "cat" and "cut" sit one edit away, so the search stops at radius 1
	// and no distance-2 word may leak in.
	words := suggestionWords(res.Suggestions)
	assert.ElementsMatch(t, []string{"cat", "cut"}, words)
	for _, s := range res.Suggestions {
		assert.Equal(t, 1, s.Distance)
	}
}

func TestCheckerEscalatesRadius(t *testing.T) {
	c := buildChecker(t, []string{"spell", "spine"})

	res := c.Check("spali")
	require.False(t, res.Valid)
	require.NotEmpty(t, res.Suggestions)
	words := suggestionWords(res.Suggestions)
	assert.Contains(t, words, "spell")
	for _, s := range res.Suggestions {
		assert.Equal(t, 2, s.Distance)
	}
}

func TestCheckerEmptySuggestions(t *testing.T) {
	c := buildChecker(t, []string{"encyclopedia", "dictionary"})

	res := c.Check("zap")
	assert.False(t, res.Valid)
	assert.NotNil(t, res.Suggestions)
	assert.Empty(t, res.Suggestions)
}

func TestCheckerSuggestionsSortedByDistance(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	corpus := randomWordSet(rng, 500)
	c := buildChecker(t, corpus)

	for _, q := range []string{corpus[3] + "x", "qqqqq", corpus[80][1:], "misspeled"} {
		res := c.Check(q)
		if res.Valid {
			continue
		}
		for i := 1; i < len(res.Suggestions); i++ {
			assert.LessOrEqual(t, res.Suggestions[i-1].Distance, res.Suggestions[i].Distance,
				"suggestions out of order for %q", q)
		}
	}
}

func TestCheckerMatchesManualAssembly(t *testing.T) {
	words := []string{"alpha", "beta", "gamma", "delta", "kappa"}
	built := buildChecker(t, words)

	filter, err := BuildFilter(words, len(words), DefaultFPRate)
	require.NoError(t, err)
	manual := NewChecker(filter, BuildTree(words), DefaultMaxRadius)

	for _, q := range []string{"alpha", "alpho", "bata", "zzz", ""} {
		assert.Equal(t, manual.Check(q), built.Check(q), "divergence on %q", q)
	}
}

func TestCheckerBuildErrors(t *testing.T) {
	_, err := Build(nil, Options{})
	assert.Error(t, err)

	_, err = Build([]string{"word"}, Options{FPRate: 2.0})
	assert.Error(t, err)

	_, err = Build([]string{"word"}, Options{FPRate: -0.5})
	assert.Error(t, err)
}

func TestCheckerDefaults(t *testing.T) {
	c := buildChecker(t, []string{"one", "two"})
	assert.Equal(t, DefaultMaxRadius, c.MaxRadius())
	assert.InDelta(t, DefaultFPRate, c.Filter().FPRate(), 1e-9)

	c.SetMaxRadius(4)
	assert.Equal(t, 4, c.MaxRadius())
	c.SetMaxRadius(0)
	assert.Equal(t, 4, c.MaxRadius())
}

func TestCheckerConcurrentChecks(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	corpus := randomWordSet(rng, 400)
	c := buildChecker(t, corpus)

	queries := append([]string{}, corpus[:50]...)
	queries = append(queries, "notaword", "alsso", "zzz")
	want := make([]Result, len(queries))
	for i, q := range queries {
		want[i] = c.Check(q)
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, q := range queries {
				got := c.Check(q)
				assert.Equal(t, want[i], got, "concurrent result drifted for %q", q)
			}
		}()
	}
	wg.Wait()
}

func suggestionWords(suggestions []Suggestion) []string {
	words := make([]string, len(suggestions))
	for i, s := range suggestions {
		words[i] = s.Word
	}
	return words
}

func BenchmarkCheckerCheck(b *testing.B) {
	rng := rand.New(rand.NewSource(5))
	corpus := randomWordSet(rng, 20000)
	c, err := Build(corpus, Options{})
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i%2 == 0 {
			c.Check(corpus[i%len(corpus)])
		} else {
			c.Check("misspeling")
		}
	}
}
