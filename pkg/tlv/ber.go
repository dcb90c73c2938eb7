package tlv

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/moov-io/bertlv"
)

// Encodings accepted from the wire: definite lengths only, at most four length octets, and
// every length within the bytes that remain. bertlv trusts the length octets it is given,
// so untrusted input is walked here first.

// ErrMalformed is wrapped by Split and Decode.
var ErrMalformed = errors.New("malformed BER encoding")

const (
	maxTagOctets    = 4
	maxLengthOctets = 4
)

// Element is one encoded element located in the buffer it was split from. Raw and Content
// are sub-slices of that buffer, not copies.
type Element struct {
	Tag string
	// Offset is the position of the first tag octet in the buffer.
	Offset  int
	Raw     []byte
	Content []byte
}

// Constructed reports whether the element's content is itself a series of elements.
func (e Element) Constructed() bool {
	return len(e.Raw) > 0 && e.Raw[0]&0x20 != 0
}

// Split returns the top-level elements of data without descending into them.
func Split(data []byte) ([]Element, error) {
	var out []Element
	for off := 0; off < len(data); {
		e, err := readElement(data, off)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
		off += len(e.Raw)
	}
	return out, nil
}

// Validate walks data and every constructed element within it.
func Validate(data []byte) error {
	elems, err := Split(data)
	if err != nil {
		return err
	}
	for _, e := range elems {
		if !e.Constructed() {
			continue
		}
		if err := Validate(e.Content); err != nil {
			return fmt.Errorf("in tag %s: %w", e.Tag, err)
		}
	}
	return nil
}

// Decode validates data and decodes it into a bertlv tree.
func Decode(data []byte) ([]bertlv.TLV, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	packets, err := bertlv.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return packets, nil
}

func readElement(data []byte, off int) (Element, error) {
	start := off

	if data[off] == 0x00 {
		return Element{}, fmt.Errorf("%w: end-of-contents octet at %d", ErrMalformed, off)
	}
	multi := data[off]&0x1F == 0x1F
	off++
	for multi {
		if off >= len(data) {
			return Element{}, fmt.Errorf("%w: truncated tag at %d", ErrMalformed, start)
		}
		if off-start >= maxTagOctets {
			return Element{}, fmt.Errorf("%w: tag at %d longer than %d octets", ErrMalformed, start, maxTagOctets)
		}
		multi = data[off]&0x80 != 0
		off++
	}
	tagEnd := off

	if off >= len(data) {
		return Element{}, fmt.Errorf("%w: missing length at %d", ErrMalformed, off)
	}
	length := int(data[off])
	off++

	switch {
	case length == 0x80:
		return Element{}, fmt.Errorf("%w: indefinite length at %d", ErrMalformed, off-1)
	case length > 0x80:
		n := length & 0x7F
		if n > maxLengthOctets {
			return Element{}, fmt.Errorf("%w: %d length octets at %d", ErrMalformed, n, off-1)
		}
		if n > len(data)-off {
			return Element{}, fmt.Errorf("%w: truncated length at %d", ErrMalformed, off-1)
		}
		length = 0
		for _, b := range data[off : off+n] {
			length = length<<8 | int(b)
			if length > len(data) {
				break
			}
		}
		off += n
	}

	if length > len(data)-off {
		return Element{}, fmt.Errorf("%w: tag %X declares %d bytes, %d left", ErrMalformed, data[start:tagEnd], length, len(data)-off)
	}

	return Element{
		Tag:     strings.ToUpper(hex.EncodeToString(data[start:tagEnd])),
		Offset:  start,
		Raw:     data[start : off+length],
		Content: data[off : off+length],
	}, nil
}
