// Package bits reads bit fields out of single octets.
//
// Bits are numbered the way Q.931 and ISO 7816 figures number them: bit 8 is the most
// significant bit of the octet and bit 1 the least significant one.
package bits

// Mask returns the octet mask covering bits high down to low.
// Example: Mask(5, 1) returns 0x1F.
func Mask(high, low uint) byte {
	if high < low || high > 8 || low < 1 {
		return 0
	}
	width := high - low + 1
	return byte((1<<width)-1) << (low - 1)
}

// GetRange extracts the value from a range of bits (e.g., bits 5 to 1).
// Example: GetRange(0b1110_0011, 5, 1) returns 3.
func GetRange(b byte, high, low uint) byte {
	if high < low || high > 8 || low < 1 {
		return 0
	}
	return (b & Mask(high, low)) >> (low - 1)
}
