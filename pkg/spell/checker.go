/*
Package spell implements the two-stage lookup engine behind SpellServe.

A Bloom filter gives a fast definite-no for words that were never loaded,
and a BK-tree over Damerau-Levenshtein distance confirms membership and
enumerates correction candidates within a bounded radius. Both structures
are built once from the dictionary word list and stay read-only for the
rest of the run, so any number of goroutines may call Check concurrently.
*/
package spell

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
)

const (
	// DefaultFPRate is the filter's target false positive rate when the
	// config leaves it unset.
	DefaultFPRate = 0.01
	// DefaultMaxRadius caps suggestion searches at two edits.
	DefaultMaxRadius = 2
)

// Options tunes engine construction. Zero values fall back to the
// defaults above.
type Options struct {
	FPRate    float64
	MaxRadius int
}

// Result is the outcome of one Check. Valid means the word is in the
// dictionary and Suggestions is nil. Otherwise Suggestions holds the
// candidates found at the nearest radius that produced any, sorted by
// ascending distance with ties in discovery order; an empty slice means
// nothing was found within the radius cap, which is a valid answer the
// caller decides what to do with.
type Result struct {
	Valid       bool
	Suggestions []Suggestion
}

// Checker answers spelling queries against a filter and tree pair built
// from the same word list. It holds no per-call state; every Check is an
// independent read-only lookup.
type Checker struct {
	filter    *Filter
	tree      *Tree
	maxRadius int
}

// NewChecker wires an already built filter and tree. maxRadius values
// below 1 fall back to DefaultMaxRadius.
func NewChecker(filter *Filter, tree *Tree, maxRadius int) *Checker {
	if maxRadius < 1 {
		maxRadius = DefaultMaxRadius
	}
	return &Checker{filter: filter, tree: tree, maxRadius: maxRadius}
}

// Build constructs the filter and the tree from one word list and returns
// a checker over them. The two builds share no state and run on separate
// goroutines; Build returning is the barrier after which everything is
// read-only.
func Build(words []string, opts Options) (*Checker, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("spell: cannot build an engine from an empty word list")
	}
	fpRate := opts.FPRate
	if fpRate == 0 {
		fpRate = DefaultFPRate
	}

	var (
		wg     sync.WaitGroup
		filter *Filter
		tree   *Tree
		ferr   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		filter, ferr = BuildFilter(words, len(words), fpRate)
	}()
	go func() {
		defer wg.Done()
		tree = BuildTree(words)
	}()
	wg.Wait()
	if ferr != nil {
		return nil, ferr
	}

	log.Debugf("engine ready: %d words, filter %d bits x%d hashes, tree depth %d",
		tree.Len(), filter.Size(), filter.Hashes(), tree.Depth())
	return NewChecker(filter, tree, opts.MaxRadius), nil
}

// Check classifies word. The filter answers first: a definite-no skips
// the exact lookup entirely, a maybe is confirmed against the tree.
// Anything unconfirmed falls through to suggestion queries of growing
// radius, stopping at the first radius that yields matches or at the cap.
func (c *Checker) Check(word string) Result {
	return c.CheckWithRadius(word, c.maxRadius)
}

// CheckWithRadius behaves like Check but caps the suggestion search at
// radius instead of the configured maximum.
func (c *Checker) CheckWithRadius(word string, radius int) Result {
	if c.filter.MightContain(word) && c.tree.Contains(word) {
		return Result{Valid: true}
	}
	for r := 1; r <= radius; r++ {
		matches := c.tree.Query(word, r)
		if len(matches) == 0 {
			continue
		}
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].Distance < matches[j].Distance
		})
		return Result{Suggestions: matches}
	}
	return Result{Suggestions: []Suggestion{}}
}

// MaxRadius returns the current radius cap.
func (c *Checker) MaxRadius() int {
	return c.maxRadius
}

// SetMaxRadius adjusts the radius cap for later Check calls. Values below
// 1 are ignored. Not safe to call while Checks run on other goroutines.
func (c *Checker) SetMaxRadius(r int) {
	if r < 1 {
		return
	}
	c.maxRadius = r
}

// Filter exposes the underlying filter for stats reporting.
func (c *Checker) Filter() *Filter {
	return c.filter
}

// Tree exposes the underlying tree for stats reporting.
func (c *Checker) Tree() *Tree {
	return c.tree
}
