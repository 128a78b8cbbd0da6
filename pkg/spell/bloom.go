package spell

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/bits-and-blooms/bitset"
	"github.com/cespare/xxhash/v2"
)

// Filter is a Bloom filter over dictionary words. MightContain answers
// either "definitely absent" or "possibly present"; a word that was added
// is never reported absent. Bits are only ever set, never cleared, and the
// filter never resizes: it must be sized for the final dictionary up
// front.
type Filter struct {
	bits   *bitset.BitSet
	size   uint64
	hashes uint32
	fpRate float64
	count  int
}

// NewFilter sizes an empty filter for an expected number of words at a
// target false positive rate:
//
//	m = ceil(-n * ln(p) / (ln 2)^2)
//	k = round((m/n) * ln 2)
//
// with both m and k clamped to at least 1. expected must be positive and
// fpRate must lie inside (0, 1); anything else is a configuration error
// and fails here rather than at query time.
func NewFilter(expected int, fpRate float64) (*Filter, error) {
	if expected <= 0 {
		return nil, fmt.Errorf("filter: expected word count must be positive, got %d", expected)
	}
	if fpRate <= 0 || fpRate >= 1 {
		return nil, fmt.Errorf("filter: target false positive rate must be inside (0, 1), got %g", fpRate)
	}
	size := uint64(math.Ceil(-float64(expected) * math.Log(fpRate) / (math.Ln2 * math.Ln2)))
	if size < 1 {
		size = 1
	}
	hashes := uint32(math.Round(float64(size) / float64(expected) * math.Ln2))
	if hashes < 1 {
		hashes = 1
	}
	return &Filter{
		bits:   bitset.New(uint(size)),
		size:   size,
		hashes: hashes,
		fpRate: fpRate,
	}, nil
}

// BuildFilter sizes a filter for expected/fpRate and adds every word.
func BuildFilter(words []string, expected int, fpRate float64) (*Filter, error) {
	f, err := NewFilter(expected, fpRate)
	if err != nil {
		return nil, err
	}
	for _, w := range words {
		f.Add(w)
	}
	return f, nil
}

// Add sets the k probe bits for word.
func (f *Filter) Add(word string) {
	for i := uint32(0); i < f.hashes; i++ {
		f.bits.Set(uint(probe(word, i) % f.size))
	}
	f.count++
}

// MightContain reports whether word could be in the set: false means
// definitely absent, true means possibly present. The false positive rate
// approaches the configured target as the filter fills and exceeds it once
// more than the expected count has been added.
func (f *Filter) MightContain(word string) bool {
	for i := uint32(0); i < f.hashes; i++ {
		if !f.bits.Test(uint(probe(word, i) % f.size)) {
			return false
		}
	}
	return true
}

// Size returns the bit array length m.
func (f *Filter) Size() uint64 { return f.size }

// Hashes returns the probe count k.
func (f *Filter) Hashes() int { return int(f.hashes) }

// FPRate returns the configured target false positive rate.
func (f *Filter) FPRate() float64 { return f.fpRate }

// Count returns how many Add calls the filter has seen, duplicates
// included.
func (f *Filter) Count() int { return f.count }

// probe derives the i-th hash for word by feeding the seed bytes through
// the digest ahead of the word, which keeps the k probes uncorrelated
// without needing k separate hash functions.
func probe(word string, seed uint32) uint64 {
	var prefix [4]byte
	binary.LittleEndian.PutUint32(prefix[:], seed)
	d := xxhash.New()
	d.Write(prefix[:])
	d.WriteString(word)
	return d.Sum64()
}
