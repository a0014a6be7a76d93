package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestRandDigits(t *testing.T) {
	s := RandDigits(12)
	assert.Len(t, s, 12)
	for _, r := range s {
		assert.True(t, r >= '0' && r <= '9', "unexpected rune %q", r)
	}
	assert.Empty(t, RandDigits(0))
}

func TestRandBase36(t *testing.T) {
	s := RandBase36(32)
	assert.Len(t, s, 32)
	for _, r := range s {
		assert.True(t, strings.ContainsRune(base36Alphabet, r), "unexpected rune %q", r)
	}
	assert.Empty(t, RandBase36(-1))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab...", Truncate("abcdef", 2))
	assert.Len(t, Truncate80(strings.Repeat("x", 200)), 83)
}

func TestTruncate_KeepsRunesWhole(t *testing.T) {
	got := Truncate("héllo wörld", 2)
	assert.Equal(t, "hé...", got)
	assert.True(t, utf8.ValidString(got))

	long := strings.Repeat("日本", 50)
	short := Truncate80(long)
	assert.True(t, utf8.ValidString(short))
	assert.Equal(t, 83, utf8.RuneCountInString(short))
	assert.Equal(t, "日本", Truncate("日本", 2))
}
