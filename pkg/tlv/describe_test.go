package tlv

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/moov-io/bertlv"
)

type mockMode int

func (m mockMode) String() string {
	if m == 1 {
		return "on"
	}
	return "off"
}

type MockExtension struct {
	OID        string `tlv:"06"`
	Label      []byte `tlv:"16" fmt:"ascii"`
	Count      []byte `tlv:"02" fmt:"int"`
	Code       int32
	Mode       mockMode
	RawData    []byte // No tag
	EmptyField []byte `tlv:"99"`
	Unknown    []bertlv.TLV
}

func TestWriteStructFields(t *testing.T) {
	mock := MockExtension{
		OID:     "1.3.12.9.99",
		Label:   []byte{'P', 'B', 'X', 0x00},
		Count:   []byte{0x01, 0x00},
		Code:    -1,
		Mode:    1,
		RawData: []byte{0xCA, 0xFE},
		Unknown: []bertlv.TLV{
			{Tag: "80", Value: []byte{0x12, 0x34}},
		},
	}

	expected := []string{
		"    - Ext.OID (06): 1.3.12.9.99",
		`    - Ext.Label (16): 50425800 ("PBX.")`,
		"    - Ext.Count (02): 0100 (Dec: 256)",
		"    - Ext.Code: -1",
		"    - Ext.Mode: on",
		"    - Ext.RawData: CAFE",
		"    - Ext.Unknown Tag 80: 1234",
	}

	tests := []struct {
		name          string
		input         interface{}
		expectedLines []string
	}{
		{"Struct Pointer Input", &mock, expected},
		{"Struct Value Input", mock, expected},
		{"Nil Pointer", (*MockExtension)(nil), []string{""}},
		{"Not A Struct", 42, []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sb strings.Builder
			WriteStructFields(&sb, "Ext", tt.input)
			actualLines := strings.Split(sb.String(), "\n")

			if diff := cmp.Diff(tt.expectedLines, actualLines); diff != "" {
				t.Errorf("Mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteTree(t *testing.T) {
	tree := []bertlv.TLV{
		{Tag: "30", TLVs: []bertlv.TLV{
			{Tag: "02", Value: []byte{0x05}},
			{Tag: "A0", TLVs: []bertlv.TLV{
				{Tag: "80", Value: []byte{0x31, 0x32}},
			}},
		}},
		{Tag: "05", Value: nil},
	}

	var sb strings.Builder
	sb.WriteString("=== PAYLOAD ===")
	WriteTree(&sb, "Arg", tree)

	want := []string{
		"=== PAYLOAD ===",
		"    - Arg Tag 30:",
		"    -   Arg Tag 02: 05",
		"    -   Arg Tag A0:",
		"    -     Arg Tag 80: 3132",
		"    - Arg Tag 05: ",
	}
	if diff := cmp.Diff(want, strings.Split(sb.String(), "\n")); diff != "" {
		t.Errorf("Tree mismatch (-want +got):\n%s", diff)
	}
}

func TestMakeSafeASCII(t *testing.T) {
	input := []byte{0x41, 0x42, 0x00, 0x1F, 0x7F, 0x43}
	want := "AB...C"

	if got := MakeSafeASCII(input); got != want {
		t.Errorf("MakeSafeASCII() = %q, want %q", got, want)
	}
}
