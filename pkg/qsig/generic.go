package qsig

import (
	"fmt"

	"github.com/gregLibert/qsig/pkg/tlv"
)

// BERDecoder decodes any payload into its raw TLV tree. It is meant as Bindings.Default
// when no typed decoder exists for an operation but the structure should still be shown.
type BERDecoder struct{}

func (BERDecoder) Decode(_ *Context, data []byte, offset int) (int, any, error) {
	if err := checkOffset(data, offset); err != nil {
		return offset, nil, err
	}
	packets, err := tlv.Decode(data[offset:])
	if err != nil {
		return offset, nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	return len(data), packets, nil
}
