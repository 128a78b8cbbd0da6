/*
Package dictionary loads plain text word lists into memory.

Input is one word per line, optionally followed by a frequency count
in a second whitespace-separated column. Blank lines and lines
starting with '#' are skipped. Words are lowercased on the way in, so
lookups and prefix completion are case-insensitive.

The word set feeds two consumers: the spell engine gets the flat word
slice, and prefix completion queries the patricia trie directly.
*/
package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/arlochr/spellserve/internal/utils"
)

// Completion pairs a dictionary word with its frequency rank.
type Completion struct {
	Word      string
	Frequency int
}

// Dictionary is an immutable in-memory word list. Safe for concurrent
// reads once loaded.
type Dictionary struct {
	trie   *patricia.Trie
	words  []string
	maxLen int
	path   string
}

// Load reads a word list file from path. maxWords caps how many unique
// words get kept, zero means unlimited.
func Load(path string, maxWords int) (*Dictionary, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dictionary: open %s: %w", path, err)
	}
	defer file.Close()

	dict, err := Read(file, maxWords)
	if err != nil {
		return nil, fmt.Errorf("dictionary: %s: %w", path, err)
	}
	dict.path = path
	return dict, nil
}

// Read parses a word list from r. See Load for the line format.
func Read(r io.Reader, maxWords int) (*Dictionary, error) {
	dict := &Dictionary{
		trie: patricia.NewTrie(),
	}

	var skipped, duplicates, badFreqs int

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		word := strings.ToLower(fields[0])
		if !utils.HasLetter(word) || utils.ContainsNumbers(word) {
			skipped++
			continue
		}

		freq := 1
		if len(fields) > 1 {
			parsed, err := strconv.Atoi(fields[1])
			if err != nil || parsed < 1 {
				badFreqs++
			} else {
				freq = parsed
			}
		}

		prefix := patricia.Prefix(word)
		if dict.trie.Insert(prefix, freq) {
			dict.words = append(dict.words, word)
			if n := utf8.RuneCountInString(word); n > dict.maxLen {
				dict.maxLen = n
			}
			if maxWords > 0 && len(dict.words) >= maxWords {
				log.Debugf("Word cap of %d reached, ignoring the rest", maxWords)
				break
			}
		} else {
			// Repeat entries keep whichever frequency ranks higher
			duplicates++
			if existing, ok := dict.trie.Get(prefix).(int); ok && freq > existing {
				dict.trie.Set(prefix, freq)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(dict.words) == 0 {
		return nil, fmt.Errorf("no usable words in input")
	}

	log.Debugf("Dictionary loaded: %d words (%d skipped, %d duplicates, %d bad frequencies)",
		len(dict.words), skipped, duplicates, badFreqs)

	return dict, nil
}

// Words returns a copy of the unique word list in file order.
func (d *Dictionary) Words() []string {
	out := make([]string, len(d.words))
	copy(out, d.words)
	return out
}

// Size returns the number of unique words loaded
func (d *Dictionary) Size() int {
	return len(d.words)
}

// MaxWordLength returns the rune length of the longest loaded word
func (d *Dictionary) MaxWordLength() int {
	return d.maxLen
}

// Path returns the file the dictionary came from, if any
func (d *Dictionary) Path() string {
	return d.path
}

// Contains reports whether word is in the dictionary, ignoring case
func (d *Dictionary) Contains(word string) bool {
	return d.trie.Get(patricia.Prefix(strings.ToLower(word))) != nil
}

// Complete returns dictionary words starting with prefix, highest
// frequency first. The prefix itself is not echoed back even when it
// is a full word. Ties keep trie visit order so results are stable.
func (d *Dictionary) Complete(prefix string, limit int) []Completion {
	if prefix == "" {
		return nil
	}
	lower := strings.ToLower(prefix)

	var results []Completion
	err := d.trie.VisitSubtree(patricia.Prefix(lower), func(p patricia.Prefix, item patricia.Item) error {
		word := string(p)
		if word == lower {
			return nil
		}

		freq := 1
		if v, ok := item.(int); ok {
			freq = v
		} else {
			log.Errorf("Unknown item type: %T for word %s", item, p)
		}

		results = append(results, Completion{
			Word:      word,
			Frequency: freq,
		})
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Frequency > results[j].Frequency
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
