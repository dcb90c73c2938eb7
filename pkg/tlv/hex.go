package tlv

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Hex constructs a byte slice from a series of hex strings.
// Spaces, tabs and colons are ignored, so "A1 0B", "a1:0b" and "A10B" are equivalent.
func Hex(parts ...string) []byte {
	data, err := ParseHex(strings.Join(parts, ""))
	if err != nil {
		panic(err.Error())
	}
	return data
}

// ParseHex is the non-panicking form of Hex, used for operator input.
func ParseHex(s string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', ':', '\r', '\n':
			return -1
		}
		return r
	}, s)

	data, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("invalid input '%s': %w", clean, err)
	}
	return data, nil
}
