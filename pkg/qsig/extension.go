package qsig

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/gregLibert/qsig/pkg/observability"
	"github.com/gregLibert/qsig/pkg/tlv"
)

// ErrRegistryFrozen is returned by Register once the registry has been frozen.
var ErrRegistryFrozen = errors.New("extension registry is frozen")

// ExtensionEntry binds a manufacturer extension OID to the decoder of its argument.
type ExtensionEntry struct {
	OID     string
	Name    string
	Decoder Decoder
}

// ExtensionRegistry resolves manufacturer extensions by exact OID string.
//
// Registration happens at start-up; after Freeze the registry is read-only and may be
// shared by any number of concurrent decodes.
type ExtensionRegistry struct {
	mu      sync.RWMutex
	entries map[string]ExtensionEntry
	frozen  bool
}

func NewExtensionRegistry() *ExtensionRegistry {
	return &ExtensionRegistry{entries: make(map[string]ExtensionEntry)}
}

// DefaultExtensions is the process-wide registry used by RegisterExtension.
var DefaultExtensions = NewExtensionRegistry()

// RegisterExtension registers a decoder in DefaultExtensions.
func RegisterExtension(oid string, dec Decoder) error {
	return DefaultExtensions.Register(ExtensionEntry{OID: oid, Decoder: dec})
}

// Register adds an entry. Registering an OID again replaces the previous entry.
func (r *ExtensionRegistry) Register(e ExtensionEntry) error {
	if e.OID == "" {
		return fmt.Errorf("register extension: empty OID")
	}
	if e.Decoder == nil {
		return fmt.Errorf("register extension %s: nil decoder", e.OID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return fmt.Errorf("register extension %s: %w", e.OID, ErrRegistryFrozen)
	}
	r.entries[e.OID] = e
	return nil
}

// Freeze ends the registration phase.
func (r *ExtensionRegistry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// Lookup returns the entry registered for oid. Matching is exact and case-sensitive.
func (r *ExtensionRegistry) Lookup(oid string) (ExtensionEntry, bool) {
	if r == nil {
		return ExtensionEntry{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[oid]
	return e, ok
}

// Entries returns the registered entries sorted by OID.
func (r *ExtensionRegistry) Entries() []ExtensionEntry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	out := make([]ExtensionEntry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].OID < out[j].OID })
	return out
}

func (r *ExtensionRegistry) Count() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// OpaqueExtension is the value produced for an extension this build does not know.
type OpaqueExtension struct {
	OID string
	Raw []byte
}

// Decode resolves the extension argument at data[offset:] against oid.
//
// An unknown OID is not an error: the remaining bytes are captured in an OpaqueExtension
// and the returned offset is the end of the buffer. Errors from a registered decoder are
// returned unchanged.
func (r *ExtensionRegistry) Decode(ctx *Context, oid string, data []byte, offset int) (int, any, error) {
	if err := checkOffset(data, offset); err != nil {
		return offset, nil, err
	}

	entry, ok := r.Lookup(oid)
	if !ok {
		observability.RecordExtension(observability.OutcomeOpaque)
		if ctx != nil {
			ctx.Logger.Debug().Str("oid", oid).Int("bytes", len(data)-offset).Msg("unknown extension, kept opaque")
		}
		raw := append([]byte(nil), data[offset:]...)
		return len(data), &OpaqueExtension{OID: oid, Raw: raw}, nil
	}

	next, v, err := entry.Decoder.Decode(ctx, data, offset)
	if err != nil {
		observability.RecordExtension(observability.OutcomeFailed)
		return next, nil, err
	}
	observability.RecordExtension(observability.OutcomeDecoded)
	return next, v, nil
}

// Extension is one decoded manufacturer extension.
type Extension struct {
	OID   string
	Value any
}

type extensionID struct {
	ID string `tlv:"06" fmt:"oid"`
}

// ExtensionDecoder decodes the Extension payloads QSIG modules attach to their arguments
// and errors: a single Extension SEQUENCE, a SEQUENCE OF Extension, or the context-tagged
// choice between the two. It returns the extensions found, in order, as []Extension.
type ExtensionDecoder struct{}

func (ExtensionDecoder) Decode(ctx *Context, data []byte, offset int) (int, any, error) {
	if err := checkOffset(data, offset); err != nil {
		return offset, nil, err
	}
	if ctx == nil {
		ctx = NewContext(nil, nil)
	}

	elems, err := tlv.Split(data[offset:])
	if err != nil {
		return offset, nil, fmt.Errorf("%w: extension: %w", ErrMalformedPayload, err)
	}

	var out []Extension
	if err := decodeExtensions(ctx, elems, &out); err != nil {
		return offset, nil, err
	}
	return len(data), out, nil
}

func decodeExtensions(ctx *Context, elems []tlv.Element, out *[]Extension) error {
	for _, e := range elems {
		if !e.Constructed() {
			return fmt.Errorf("%w: extension: unexpected primitive tag %s", ErrMalformedPayload, e.Tag)
		}
		fields, err := tlv.Split(e.Content)
		if err != nil {
			return fmt.Errorf("%w: extension: %w", ErrMalformedPayload, err)
		}
		if len(fields) == 0 {
			return fmt.Errorf("%w: extension: empty %s", ErrMalformedPayload, e.Tag)
		}
		if fields[0].Tag != "06" {
			if err := decodeExtensions(ctx, fields, out); err != nil {
				return err
			}
			continue
		}

		var f extensionID
		if err := tlv.Unmarshal(fields[0].Raw, &f); err != nil {
			return fmt.Errorf("%w: extension: %w", ErrMalformedPayload, err)
		}
		ctx.extensionID = f.ID

		// Everything after extensionId is the argument, as it appeared on the wire.
		var arg []byte
		if rest := e.Content[len(fields[0].Raw):]; len(rest) > 0 {
			arg = rest
		}

		_, v, err := ctx.Extensions.Decode(ctx, ctx.ExtensionID(), arg, 0)
		if err != nil {
			return err
		}
		*out = append(*out, Extension{OID: f.ID, Value: v})
	}
	return nil
}
