package utils

import (
	"crypto/rand"
	"encoding/binary"
	"unicode/utf8"

	"github.com/bytedance/gopkg/lang/fastrand"
)

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// RandDigits returns n pseudo-random decimal digits. Not for secrets.
func RandDigits(n int) string {
	if n <= 0 {
		return ""
	}

	b := make([]byte, n)
	for i := range b {
		b[i] = byte('0' + fastrand.Uint32n(10))
	}
	return string(b)
}

// RandBase36 generates a cryptographically secure random lowercase base36 string of length n.
func RandBase36(n int) string {
	if n <= 0 {
		return ""
	}

	b := make([]byte, n)
	for i := range b {
		b[i] = base36Alphabet[cryptoRandIntn(len(base36Alphabet))]
	}
	return string(b)
}

func cryptoRandIntn(max int) int {
	var buf [8]byte
	_, _ = rand.Read(buf[:])
	return int(binary.LittleEndian.Uint64(buf[:]) % uint64(max))
}

// Truncate keeps at most maxLen runes of content and marks the cut with "...".
func Truncate(content string, maxLen int) string {
	if utf8.RuneCountInString(content) <= maxLen {
		return content
	}
	runes := []rune(content)
	return string(runes[:max(maxLen, 0)]) + "..."
}

// Truncate80 shortens message text for log lines.
func Truncate80(content string) string {
	return Truncate(content, 80)
}
