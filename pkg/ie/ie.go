// Package ie decodes the QSIG information elements of codesets 4 and 5 carried in the
// call-control layer, next to the Q.931 ones.
//
// Each element is an octet-aligned type, a length octet and content. The element type
// space is partitioned by codeset (0 to 7), so the same type octet can mean different
// things in different codesets.
package ie

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gregLibert/qsig/pkg/bits"
	"github.com/gregLibert/qsig/pkg/observability"
	"github.com/gregLibert/qsig/pkg/tlv"
)

var (
	ErrTruncated      = errors.New("information element truncated")
	ErrInvalidCodeset = errors.New("invalid codeset")
)

// Codeset selects the element type space (0 to 7).
type Codeset uint8

const MaxCodeset Codeset = 7

// Element decodes one element type. Decode receives the bytes following the length octet,
// never empty, and returns the value with the number of bytes it read.
type Element struct {
	Name   string
	Decode func(content []byte) (value any, n int, err error)
}

// Table holds the element decoders of every codeset.
type Table [MaxCodeset + 1]map[byte]Element

// IE is one decoded information element.
type IE struct {
	Codeset Codeset
	Type    byte
	Name    string
	// Length is the declared length octet.
	Length int
	// Value is set when the type has a decoder.
	Value any
	// Raw holds the content of elements without a decoder.
	Raw []byte
}

// Decode reads the element at data[offset:] and returns it with the offset of the next
// element.
//
// Typed elements read a fixed number of content bytes regardless of the declared length.
// A typed element ending the buffer right after its length octet is returned with a nil
// Value. Untyped elements are captured opaquely using the declared length.
func (t *Table) Decode(cs Codeset, data []byte, offset int) (*IE, int, error) {
	if cs > MaxCodeset {
		return nil, offset, fmt.Errorf("%w: %d", ErrInvalidCodeset, cs)
	}
	if offset < 0 || offset+2 > len(data) {
		observability.RecordIE(uint8(cs), observability.OutcomeFailed)
		return nil, offset, fmt.Errorf("%w: need type and length at offset %d", ErrTruncated, offset)
	}

	ie := &IE{Codeset: cs, Type: data[offset], Length: int(data[offset+1])}
	content := data[offset+2:]

	if el, ok := t[cs][ie.Type]; ok {
		ie.Name = el.Name
		if len(content) == 0 {
			observability.RecordIE(uint8(cs), observability.OutcomeNoPayload)
			return ie, offset + 2, nil
		}
		v, n, err := el.Decode(content)
		if err != nil {
			observability.RecordIE(uint8(cs), observability.OutcomeFailed)
			return nil, offset, fmt.Errorf("%s: %w", el.Name, err)
		}
		ie.Value = v
		observability.RecordIE(uint8(cs), observability.OutcomeDecoded)
		return ie, offset + 2 + n, nil
	}

	if ie.Length > len(content) {
		observability.RecordIE(uint8(cs), observability.OutcomeFailed)
		return nil, offset, fmt.Errorf("%w: IE %02X declares %d bytes, %d left", ErrTruncated, ie.Type, ie.Length, len(content))
	}
	if ie.Length > 0 {
		ie.Raw = append([]byte(nil), content[:ie.Length]...)
	}
	observability.RecordIE(uint8(cs), observability.OutcomeOpaque)
	return ie, offset + 2 + ie.Length, nil
}

// DecodeAll decodes consecutive elements until the end of data.
func (t *Table) DecodeAll(cs Codeset, data []byte) ([]*IE, error) {
	var out []*IE
	for offset := 0; offset < len(data); {
		ie, next, err := t.Decode(cs, data, offset)
		if err != nil {
			return out, err
		}
		out = append(out, ie)
		offset = next
	}
	return out, nil
}

// Describe generates an ASCII report of the element.
func (ie *IE) Describe() string {
	var sb strings.Builder

	sb.WriteString("=== QSIG INFORMATION ELEMENT ===\n")

	name := ie.Name
	if name == "" {
		name = "Unknown"
	}
	sb.WriteString(fmt.Sprintf("[1] Codeset %d, IE %02X (%s)\n", ie.Codeset, ie.Type, name))
	sb.WriteString(fmt.Sprintf("    + Length:  %d", ie.Length))

	switch {
	case ie.Value != nil:
		sb.WriteString(fmt.Sprintf("\n    + Value:   %v", ie.Value))
	case len(ie.Raw) > 0:
		sb.WriteString(fmt.Sprintf("\n    + Data:    %X (%q)", ie.Raw, tlv.MakeSafeASCII(ie.Raw)))
	}

	return sb.String()
}

// oneOctet builds the decoder of an element whose content is a single octet.
func oneOctet(decode func(b byte) any) func([]byte) (any, int, error) {
	return func(content []byte) (any, int, error) {
		return decode(content[0]), 1, nil
	}
}

// TransitCounter is the number of transit PINXs the call went through (bits 5-1).
type TransitCounter uint8

func (c TransitCounter) String() string {
	return strconv.Itoa(int(c))
}

// PartyCategory is the category of the calling or connected party (bits 3-1).
type PartyCategory uint8

const (
	PartyCategoryUnknown            PartyCategory = 0
	PartyCategoryExtension          PartyCategory = 1
	PartyCategoryOperator           PartyCategory = 2
	PartyCategoryEmergencyExtension PartyCategory = 3
)

var partyCategoryNames = map[PartyCategory]string{
	PartyCategoryUnknown:            "unknown",
	PartyCategoryExtension:          "extension",
	PartyCategoryOperator:           "operator",
	PartyCategoryEmergencyExtension: "emergency extension",
}

func (p PartyCategory) String() string {
	if name, ok := partyCategoryNames[p]; ok {
		return fmt.Sprintf("%s (%d)", name, uint8(p))
	}
	return fmt.Sprintf("reserved (%d)", uint8(p))
}

const (
	TypeTransitCounter byte = 0x31
	TypePartyCategory  byte = 0x32
)

var standard = Table{
	4: {
		TypeTransitCounter: {
			Name:   "Transit counter",
			Decode: oneOctet(func(b byte) any { return TransitCounter(bits.GetRange(b, 5, 1)) }),
		},
	},
	5: {
		TypePartyCategory: {
			Name:   "Party category",
			Decode: oneOctet(func(b byte) any { return PartyCategory(bits.GetRange(b, 3, 1)) }),
		},
	},
}

// Standard returns the QSIG codeset table. It is shared and must not be modified.
func Standard() *Table {
	return &standard
}
