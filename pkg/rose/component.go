package rose

import (
	"errors"
	"fmt"

	"github.com/gregLibert/qsig/pkg/tlv"
)

// ErrMalformed is wrapped by every parse failure of this package.
var ErrMalformed = errors.New("malformed ROSE component")

// BER tags of the component envelope.
const (
	tagInvoke       = "A1"
	tagReturnResult = "A2"
	tagReturnError  = "A3"
	tagReject       = "A4"

	tagInteger  = "02"
	tagNull     = "05"
	tagOID      = "06"
	tagSequence = "30"
	tagLinkedID = "80"
)

var problemClasses = map[string]int{"80": 0, "81": 1, "82": 2, "83": 3}

// Problem is the reject reason of a Reject component.
type Problem struct {
	// Class is the problem CHOICE index: 0 general, 1 invoke, 2 returnResult, 3 returnError.
	Class int
	Value int32
}

var problemClassNames = []string{"general", "invoke", "returnResult", "returnError"}

func (p Problem) String() string {
	if p.Class < 0 || p.Class >= len(problemClassNames) {
		return fmt.Sprintf("problem(%d) %d", p.Class, p.Value)
	}
	return fmt.Sprintf("%s problem %d", problemClassNames[p.Class], p.Value)
}

// Component is one parsed ROSE APDU.
type Component struct {
	Kind     Kind
	InvokeID int32
	// HasInvokeID is false for a Reject carrying a NULL invoke identifier.
	HasInvokeID bool
	LinkedID    *int32
	Code        Code
	// Parameter holds the encoded argument, result or error parameter (empty if absent).
	Parameter []byte
	Problem   *Problem
}

// ParseComponents parses a sequence of components, such as the content of a facility IE.
func ParseComponents(data []byte) ([]Component, error) {
	elems, err := tlv.Split(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	components := make([]Component, 0, len(elems))
	for i, e := range elems {
		c, err := parseElement(e)
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		components = append(components, *c)
	}
	return components, nil
}

// ParseComponent parses exactly one component.
func ParseComponent(data []byte) (*Component, error) {
	elems, err := tlv.Split(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if len(elems) != 1 {
		return nil, fmt.Errorf("%w: expected 1 component, found %d", ErrMalformed, len(elems))
	}
	return parseElement(elems[0])
}

func parseElement(e tlv.Element) (*Component, error) {
	var parse func([]byte, []tlv.Element) (*Component, error)
	switch e.Tag {
	case tagInvoke:
		parse = parseInvoke
	case tagReturnResult:
		parse = parseReturnResult
	case tagReturnError:
		parse = parseReturnError
	case tagReject:
		parse = parseReject
	default:
		return nil, fmt.Errorf("%w: unknown component tag %s", ErrMalformed, e.Tag)
	}

	fields, err := tlv.Split(e.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return parse(e.Content, fields)
}

func parseInvoke(content []byte, fields []tlv.Element) (*Component, error) {
	c := &Component{Kind: KindInvoke}

	rest, err := c.readInvokeID(fields)
	if err != nil {
		return nil, err
	}

	if len(rest) > 0 && rest[0].Tag == tagLinkedID {
		linked, err := tlv.Integer(rest[0].Content)
		if err != nil {
			return nil, fmt.Errorf("%w: linkedId: %v", ErrMalformed, err)
		}
		c.LinkedID = &linked
		rest = rest[1:]
	}

	if len(rest) == 0 {
		return nil, fmt.Errorf("%w: invoke without operation code", ErrMalformed)
	}
	if c.Code, err = readCode(rest[0]); err != nil {
		return nil, err
	}
	c.Parameter = parameter(content, rest[1:])
	return c, nil
}

func parseReturnResult(_ []byte, fields []tlv.Element) (*Component, error) {
	c := &Component{Kind: KindReturnResult}

	rest, err := c.readInvokeID(fields)
	if err != nil {
		return nil, err
	}
	if len(rest) == 0 {
		return c, nil
	}

	if rest[0].Tag != tagSequence {
		return nil, fmt.Errorf("%w: returnResult expects SEQUENCE {opcode, result}, got tag %s", ErrMalformed, rest[0].Tag)
	}
	seq := rest[0].Content
	inner, err := tlv.Split(seq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if len(inner) == 0 {
		return nil, fmt.Errorf("%w: returnResult with empty result SEQUENCE", ErrMalformed)
	}
	if c.Code, err = readCode(inner[0]); err != nil {
		return nil, err
	}
	c.Parameter = parameter(seq, inner[1:])
	return c, nil
}

func parseReturnError(content []byte, fields []tlv.Element) (*Component, error) {
	c := &Component{Kind: KindReturnError}

	rest, err := c.readInvokeID(fields)
	if err != nil {
		return nil, err
	}
	if len(rest) == 0 {
		return nil, fmt.Errorf("%w: returnError without error code", ErrMalformed)
	}
	if c.Code, err = readCode(rest[0]); err != nil {
		return nil, err
	}
	c.Parameter = parameter(content, rest[1:])
	return c, nil
}

func parseReject(_ []byte, fields []tlv.Element) (*Component, error) {
	c := &Component{Kind: KindReject}

	if len(fields) > 0 && fields[0].Tag == tagNull {
		fields = fields[1:]
	} else {
		var err error
		if fields, err = c.readInvokeID(fields); err != nil {
			return nil, err
		}
	}

	if len(fields) != 1 {
		return nil, fmt.Errorf("%w: reject expects exactly one problem, found %d", ErrMalformed, len(fields))
	}

	class, ok := problemClasses[fields[0].Tag]
	if !ok {
		return nil, fmt.Errorf("%w: unknown reject problem tag %s", ErrMalformed, fields[0].Tag)
	}
	value, err := tlv.Integer(fields[0].Content)
	if err != nil {
		return nil, fmt.Errorf("%w: reject problem: %v", ErrMalformed, err)
	}
	c.Problem = &Problem{Class: class, Value: value}
	return c, nil
}

// readInvokeID consumes the leading invokeId INTEGER.
func (c *Component) readInvokeID(fields []tlv.Element) ([]tlv.Element, error) {
	if len(fields) == 0 || fields[0].Tag != tagInteger {
		return nil, fmt.Errorf("%w: %s without invokeId", ErrMalformed, c.Kind)
	}
	id, err := tlv.Integer(fields[0].Content)
	if err != nil {
		return nil, fmt.Errorf("%w: invokeId: %v", ErrMalformed, err)
	}
	c.InvokeID = id
	c.HasInvokeID = true
	return fields[1:], nil
}

func readCode(e tlv.Element) (Code, error) {
	switch e.Tag {
	case tagInteger:
		v, err := tlv.Integer(e.Content)
		if err != nil {
			return Code{}, fmt.Errorf("%w: local code: %v", ErrMalformed, err)
		}
		return LocalCode(v), nil
	case tagOID:
		oid, err := tlv.OID(e.Content)
		if err != nil {
			return Code{}, fmt.Errorf("%w: global code: %v", ErrMalformed, err)
		}
		return GlobalCode(oid), nil
	default:
		return Code{}, fmt.Errorf("%w: code must be INTEGER or OBJECT IDENTIFIER, got tag %s", ErrMalformed, e.Tag)
	}
}

// parameter copies the bytes of content from the first of rest to the end, exactly as
// they were received. rest must have been split from content.
func parameter(content []byte, rest []tlv.Element) []byte {
	if len(rest) == 0 {
		return nil
	}
	return append([]byte(nil), content[rest[0].Offset:]...)
}
