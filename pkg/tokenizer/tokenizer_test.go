package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		leading  string
		core     string
		trailing string
	}{
		{"bare word", "world", "", "world", ""},
		{"trailing comma", "Hello,", "", "Hello", ","},
		{"leading and trailing", "!!!Hello,", "!!!", "Hello", ","},
		{"quoted", `"quoted"`, `"`, "quoted", `"`},
		{"interior apostrophe kept", "can't!", "", "can't", "!"},
		{"digits are core", "x86,", "", "x86", ","},
		{"all punctuation", "?!...", "?!...", "", ""},
		{"empty", "", "", "", ""},
		{"unicode quotes", "«naïve»", "«", "naïve", "»"},
		{"parenthesised", "(word)", "(", "word", ")"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tok := Split(tc.raw)
			assert.Equal(t, tc.leading, tok.Leading)
			assert.Equal(t, tc.core, tok.Core)
			assert.Equal(t, tc.trailing, tok.Trailing)
			assert.Equal(t, tc.raw, tok.Raw(), "split must reassemble losslessly")
		})
	}
}

func TestRejoin(t *testing.T) {
	tok := Split("!!!Helo,")
	assert.Equal(t, "!!!hello,", tok.Rejoin("hello"))

	bare := Split("teh")
	assert.Equal(t, "the", bare.Rejoin("the"))
}

func TestMatchCase(t *testing.T) {
	tests := []struct {
		name        string
		original    string
		replacement string
		want        string
	}{
		{"lower stays lower", "teh", "the", "the"},
		{"title carries over", "Teh", "the", "The"},
		{"all caps carries over", "TEH", "the", "THE"},
		{"single capital counts as title", "I", "in", "In"},
		{"mixed interior case passes through", "tEh", "the", "the"},
		{"empty original", "", "the", "the"},
		{"empty replacement", "Teh", "", ""},
		{"unicode title", "Über", "uber", "Uber"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MatchCase(tc.original, tc.replacement))
		})
	}
}

func TestFields(t *testing.T) {
	assert.Equal(t, []string{"Hello,", "world!"}, Fields("  Hello,   world!  "))
	assert.Empty(t, Fields("   "))
	assert.Empty(t, Fields(""))
}
