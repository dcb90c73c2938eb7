package qsig

import (
	"fmt"

	"github.com/gregLibert/qsig/pkg/tlv"
)

//go:generate stringer -type=NamePresentation -linecomment -output=name_presentation_string.go

// NamePresentation is the presentation indicator carried by a QSIG-NA Name.
type NamePresentation int

const (
	NameAllowed      NamePresentation = iota // presentation allowed
	NameRestricted                           // presentation restricted
	NameNotAvailable                         // name not available
)

// Name is the argument of the QSIG-NA operations (callingName, calledName,
// connectedName, busyName).
type Name struct {
	Presentation NamePresentation
	Data         []byte `fmt:"ascii"`
	// CharacterSet is 0 (unknown) when the name used the simple form.
	CharacterSet int32
	Extensions   []Extension
}

// present marks a NULL alternative that was found.
type present bool

func (p *present) UnmarshalTLV([]byte) error {
	*p = true
	return nil
}

type nameSet struct {
	Data         []byte `tlv:"04"`
	CharacterSet int32  `tlv:"02"`
}

// nameChoice is the union of the Name alternatives. Sequence holds the
// SEQUENCE { name, extension } form of the argument.
type nameChoice struct {
	AllowedSimple      []byte      `tlv:"80"`
	AllowedExtended    *nameSet    `tlv:"A1"`
	RestrictedSimple   []byte      `tlv:"82"`
	RestrictedExtended *nameSet    `tlv:"A3"`
	NotAvailable       present     `tlv:"84"`
	RestrictedNull     present     `tlv:"87"`
	Sequence           *nameChoice `tlv:"30"`
}

func (c *nameChoice) fill(n *Name) bool {
	switch {
	case c.AllowedSimple != nil:
		n.Presentation, n.Data = NameAllowed, c.AllowedSimple
	case c.AllowedExtended != nil:
		n.Presentation, n.Data, n.CharacterSet = NameAllowed, c.AllowedExtended.Data, c.AllowedExtended.CharacterSet
	case c.RestrictedSimple != nil:
		n.Presentation, n.Data = NameRestricted, c.RestrictedSimple
	case c.RestrictedExtended != nil:
		n.Presentation, n.Data, n.CharacterSet = NameRestricted, c.RestrictedExtended.Data, c.RestrictedExtended.CharacterSet
	case bool(c.RestrictedNull):
		n.Presentation = NameRestricted
	case bool(c.NotAvailable):
		n.Presentation = NameNotAvailable
	default:
		return false
	}
	return true
}

// NameDecoder decodes the QSIG-NA name argument into a *Name. Extensions attached to the
// SEQUENCE form go through ExtensionDecoder and so through the context's registry.
type NameDecoder struct{}

func (NameDecoder) Decode(ctx *Context, data []byte, offset int) (int, any, error) {
	if err := checkOffset(data, offset); err != nil {
		return offset, nil, err
	}
	if ctx == nil {
		ctx = NewContext(nil, nil)
	}
	raw := data[offset:]

	var c nameChoice
	if err := tlv.Unmarshal(raw, &c); err != nil {
		return offset, nil, fmt.Errorf("%w: name: %w", ErrMalformedPayload, err)
	}

	n := &Name{}
	choice := &c
	if c.Sequence != nil {
		choice = c.Sequence
		exts, err := nameExtensions(ctx, raw)
		if err != nil {
			return offset, nil, err
		}
		n.Extensions = exts
	}
	if !choice.fill(n) {
		return offset, nil, fmt.Errorf("%w: name: no Name alternative", ErrMalformedPayload)
	}
	return len(data), n, nil
}

// nameExtensions decodes the [5] Extension or [6] SEQUENCE OF Extension trailing the name
// in the SEQUENCE form. raw has already been validated.
func nameExtensions(ctx *Context, raw []byte) ([]Extension, error) {
	elems, err := tlv.Split(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: name: %w", ErrMalformedPayload, err)
	}

	var out []Extension
	for _, e := range elems {
		if e.Tag != "30" {
			continue
		}
		fields, err := tlv.Split(e.Content)
		if err != nil {
			return nil, fmt.Errorf("%w: name: %w", ErrMalformedPayload, err)
		}
		for _, f := range fields {
			if f.Tag != "A5" && f.Tag != "A6" {
				continue
			}
			_, v, err := ExtensionDecoder{}.Decode(ctx, f.Raw, 0)
			if err != nil {
				return nil, err
			}
			out = append(out, v.([]Extension)...)
		}
	}
	return out, nil
}
