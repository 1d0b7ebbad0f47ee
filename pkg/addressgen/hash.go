package addressgen

import (
	"strconv"
	"strings"
	"unicode/utf16"
)

// Hash folds the seed phrase, salted with the network name and its position
// in the catalog, into a 32-bit signed integer.
//
// The input string is join(seed, "") + network + decimal(ordinal) and it is
// consumed one UTF-16 code unit at a time with hash = hash*31 + unit, wrapping
// on int32 overflow.
func Hash(seed []string, network string, ordinal int) int32 {
	var sb strings.Builder
	for _, word := range seed {
		sb.WriteString(word)
	}
	sb.WriteString(network)
	sb.WriteString(strconv.Itoa(ordinal))

	var hash int32
	for _, unit := range utf16.Encode([]rune(sb.String())) {
		hash = hash*31 + int32(unit)
	}
	return hash
}
