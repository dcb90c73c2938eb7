package qsig

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

var (
	// ErrOffsetOutOfRange is returned when a read position lies outside the buffer.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrMalformedPayload is wrapped by the decoders of this package when BER parsing fails.
	ErrMalformedPayload = errors.New("malformed payload")
)

// Decoder decodes one payload starting at offset and returns the new read offset.
// A returned error is a decode failure and is propagated to the caller unchanged.
type Decoder interface {
	Decode(ctx *Context, data []byte, offset int) (next int, value any, err error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(ctx *Context, data []byte, offset int) (int, any, error)

// Decode calls f(ctx, data, offset).
func (f DecoderFunc) Decode(ctx *Context, data []byte, offset int) (int, any, error) {
	return f(ctx, data, offset)
}

// Context is the per-call decode state. One Context belongs to one APDU decode and must not
// be shared between goroutines.
type Context struct {
	// Transaction is the embedder's correlation handle for the in-flight transaction.
	// Dispatch is a no-op while it is nil.
	Transaction any

	// Extensions resolves manufacturer extensions. A nil registry resolves nothing.
	Extensions *ExtensionRegistry

	Logger zerolog.Logger

	// extensionID is the OID read from the first field of the Extension SEQUENCE
	// being decoded; the second field is resolved against it.
	extensionID string
}

// NewContext creates a Context with a disabled logger.
func NewContext(transaction any, extensions *ExtensionRegistry) *Context {
	return &Context{
		Transaction: transaction,
		Extensions:  extensions,
		Logger:      zerolog.Nop(),
	}
}

// WithLogger sets the logger and returns the context.
func (c *Context) WithLogger(l zerolog.Logger) *Context {
	c.Logger = l
	return c
}

// ExtensionID returns the identifier of the extension currently being decoded.
func (c *Context) ExtensionID() string {
	return c.extensionID
}

func checkOffset(data []byte, offset int) error {
	if offset < 0 || offset > len(data) {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrOffsetOutOfRange, offset, len(data))
	}
	return nil
}
