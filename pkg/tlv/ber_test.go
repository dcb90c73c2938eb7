package tlv

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplit(t *testing.T) {
	data := Hex(
		"02 01 05",
		"30 81 03 020101", // long-form length
		"9F02 00",
	)

	got, err := Split(data)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	want := []Element{
		{Tag: "02", Offset: 0, Raw: Hex("02 01 05"), Content: Hex("05")},
		{Tag: "30", Offset: 3, Raw: Hex("30 81 03 020101"), Content: Hex("020101")},
		{Tag: "9F02", Offset: 9, Raw: Hex("9F02 00"), Content: []byte{}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Split mismatch (-want +got):\n%s", diff)
	}
	if !got[1].Constructed() || got[0].Constructed() {
		t.Error("Constructed() does not follow the tag's constructed bit")
	}

	// Elements are windows on the input.
	if &got[1].Content[0] != &data[6] {
		t.Error("Content is not a sub-slice of the input")
	}
}

func TestSplit_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{"Eight length octets", Hex("A1 88 FFFFFFFFFFFFFFFF")},
		{"Five length octets", Hex("30 85 0000000001 00")},
		{"Four length octets beyond the buffer", Hex("30 84 7FFFFFFF 00")},
		{"Indefinite length", Hex("30 80 800141 0000")},
		{"End-of-contents octet", Hex("00 00")},
		{"Length beyond the buffer", Hex("04 05 0102")},
		{"Missing length", Hex("04")},
		{"Truncated length octets", Hex("04 82 01")},
		{"Truncated tag", Hex("9F")},
		{"Tag longer than four octets", Hex("9F 81 81 81 01 00")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Split(tc.raw); !errors.Is(err, ErrMalformed) {
				t.Errorf("error = %v, want ErrMalformed", err)
			}
		})
	}
}

func TestValidate_Nested(t *testing.T) {
	if err := Validate(Hex("30 05 020101 3000")); err != nil {
		t.Errorf("valid nesting rejected: %v", err)
	}

	err := Validate(Hex("30 06 020101 04 88 FF"))
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("error = %v, want ErrMalformed", err)
	}
}

func TestDecode(t *testing.T) {
	packets, err := Decode(Hex("30 03 020105"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(packets) != 1 || len(packets[0].TLVs) != 1 || packets[0].TLVs[0].Tag != "02" {
		t.Errorf("unexpected tree: %+v", packets)
	}

	if _, err := Decode(Hex("30 88 FFFFFFFFFFFFFFFF")); !errors.Is(err, ErrMalformed) {
		t.Errorf("error = %v, want ErrMalformed", err)
	}
}
