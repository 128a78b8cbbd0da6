package dictionary

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBasicList(t *testing.T) {
	input := `# common words
the 23135851162
of 13151942776
and 12997637966

cat 390568076
`
	dict, err := Read(strings.NewReader(input), 0)
	require.NoError(t, err)

	assert.Equal(t, 4, dict.Size())
	assert.Equal(t, []string{"the", "of", "and", "cat"}, dict.Words())
	assert.True(t, dict.Contains("cat"))
	assert.False(t, dict.Contains("dog"))
	assert.Equal(t, 3, dict.MaxWordLength())
}

func TestReadLowercasesAndDeduplicates(t *testing.T) {
	input := `Hello 10
hello 50
HELLO 30
world
`
	dict, err := Read(strings.NewReader(input), 0)
	require.NoError(t, err)

	assert.Equal(t, 2, dict.Size())
	assert.Equal(t, []string{"hello", "world"}, dict.Words())
	assert.True(t, dict.Contains("HeLLo"))
}

func TestReadDuplicateKeepsHighestFrequency(t *testing.T) {
	input := `hello 10
help 99
hello 50
hello 20
`
	dict, err := Read(strings.NewReader(input), 0)
	require.NoError(t, err)

	got := dict.Complete("hel", 10)
	require.Len(t, got, 2)
	assert.Equal(t, Completion{Word: "help", Frequency: 99}, got[0])
	assert.Equal(t, Completion{Word: "hello", Frequency: 50}, got[1])
}

func TestReadSkipsJunkEntries(t *testing.T) {
	input := `hello
x86
1234
---
can't
`
	dict, err := Read(strings.NewReader(input), 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"hello", "can't"}, dict.Words())
}

func TestReadBadFrequencyDefaultsToOne(t *testing.T) {
	input := `hello often
world -3
`
	dict, err := Read(strings.NewReader(input), 0)
	require.NoError(t, err)

	got := dict.Complete("he", 10)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Frequency)
}

func TestReadWordCap(t *testing.T) {
	input := `one
two
three
four
`
	dict, err := Read(strings.NewReader(input), 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"one", "two"}, dict.Words())
}

func TestReadEmptyInput(t *testing.T) {
	_, err := Read(strings.NewReader("# nothing but comments\n\n"), 0)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"), 0)
	assert.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("alpha 5\nbeta 9\n"), 0o644))

	dict, err := Load(path, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, dict.Size())
	assert.Equal(t, path, dict.Path())
}

func TestCompleteRankingAndLimit(t *testing.T) {
	input := `car 100
card 400
care 300
carp 50
cart 400
dog 999
`
	dict, err := Read(strings.NewReader(input), 0)
	require.NoError(t, err)

	got := dict.Complete("car", 3)
	require.Len(t, got, 3)
	// Frequency order, ties by trie visit order
	assert.Equal(t, "card", got[0].Word)
	assert.Equal(t, "cart", got[1].Word)
	assert.Equal(t, "care", got[2].Word)

	// A full word is not its own completion
	for _, c := range dict.Complete("car", 10) {
		assert.NotEqual(t, "car", c.Word)
	}

	assert.Empty(t, dict.Complete("", 10))
	assert.Empty(t, dict.Complete("zzz", 10))
}

func TestCompleteIsCaseInsensitive(t *testing.T) {
	dict, err := Read(strings.NewReader("hello 5\nhelp 9\n"), 0)
	require.NoError(t, err)

	got := dict.Complete("HEL", 10)
	require.Len(t, got, 2)
	assert.Equal(t, "help", got[0].Word)
}

func TestWordsReturnsCopy(t *testing.T) {
	dict, err := Read(strings.NewReader("alpha\nbeta\n"), 0)
	require.NoError(t, err)

	words := dict.Words()
	words[0] = "mutated"
	assert.Equal(t, []string{"alpha", "beta"}, dict.Words())
}
