package bits

import "testing"

func TestMask(t *testing.T) {
	tests := []struct {
		name     string
		high     uint
		low      uint
		expected byte
	}{
		{"Transit counter bits 5-1", 5, 1, 0x1F},
		{"Party category bits 3-1", 3, 1, 0x07},
		{"Coding standard bits 7-6", 7, 6, 0x60},
		{"Full octet", 8, 1, 0xFF},
		{"Inverted range", 1, 5, 0x00},
		{"Out of octet", 9, 1, 0x00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if res := Mask(tt.high, tt.low); res != tt.expected {
				t.Errorf("Mask(%d, %d) = 0x%02X; want 0x%02X", tt.high, tt.low, res, tt.expected)
			}
		})
	}
}

func TestGetRange(t *testing.T) {
	tests := []struct {
		name     string
		input    byte
		high     uint
		low      uint
		expected byte
	}{
		{"Transit counter with spare bits set", 0b1110_0011, 5, 1, 3},
		{"Transit counter max", 0xFF, 5, 1, 31},
		{"Party category operator", 0b1111_1010, 3, 1, 2},
		{"Bits 7-6", 0b0100_0000, 7, 6, 2},
		{"Full octet", 0xAA, 8, 1, 0xAA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if res := GetRange(tt.input, tt.high, tt.low); res != tt.expected {
				t.Errorf("GetRange(0x%02X, %d, %d) = %d; want %d", tt.input, tt.high, tt.low, res, tt.expected)
			}
		})
	}
}
