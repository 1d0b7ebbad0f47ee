package addressgen

import (
	"regexp"
	"strings"
)

// Charset is the alphabet an address body is drawn from.
type Charset string

const (
	Hex               Charset = "0123456789abcdef"
	Alphanumeric      Charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	Base58            Charset = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
	LowerAlphanumeric Charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	EOSCharset        Charset = "abcdefghijklmnopqrstuvwxyz12345"
)

// Draw returns n characters of the charset picked by rng.
func (c Charset) Draw(rng Rand, n int) string {
	if n <= 0 || len(c) == 0 {
		return ""
	}

	buf := make([]byte, n)
	for i := range buf {
		buf[i] = c[rng.Intn(len(c))]
	}
	return string(buf)
}

// class returns the regexp character class matching the charset, optionally
// folded to lowercase.
func (c Charset) class(lowercase bool) string {
	chars := string(c)
	if lowercase {
		chars = strings.ToLower(chars)
	}

	seen := make(map[rune]struct{}, len(chars))
	var sb strings.Builder
	sb.WriteString("[")
	for _, r := range chars {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		sb.WriteString(regexp.QuoteMeta(string(r)))
	}
	sb.WriteString("]")
	return sb.String()
}
