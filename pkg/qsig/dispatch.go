package qsig

import (
	"github.com/gregLibert/qsig/pkg/observability"
	"github.com/gregLibert/qsig/pkg/rose"
)

//go:generate stringer -type=Status -linecomment -output=status_string.go

// Status tells what happened to the payload of a dispatched component.
type Status int

const (
	// StatusDecoded: a decoder was registered and decoded the payload.
	StatusDecoded Status = iota // decoded
	// StatusNoPayload: no decoder was registered and no bytes remained.
	StatusNoPayload // no payload
	// StatusUnsupported: no decoder was registered for the remaining bytes. They are
	// captured in Outcome.Unsupported and the offset still moves to the end of the buffer.
	StatusUnsupported // unsupported
)

// Outcome is the result of dispatching one component.
type Outcome struct {
	Kind rose.Kind
	// Code is the resolved local opcode or error code.
	Code   int32
	Name   string
	Module string

	// Service is set for invokes and results. Errors are not classified.
	Service Service

	Status      Status
	Value       any
	Offset      int
	Unsupported []byte
}

// Dispatcher routes ROSE components to the payload decoders of the operation and error
// tables. It holds no per-call state and may be shared between goroutines.
type Dispatcher struct {
	Operations *OperationTable
	Errors     *ErrorTable
	Services   ServiceMap
}

func NewDispatcher(ops *OperationTable, errs *ErrorTable, services ServiceMap) *Dispatcher {
	return &Dispatcher{Operations: ops, Errors: errs, Services: services}
}

// Dispatch decodes the parameter of c. Reject components carry nothing to dispatch.
//
// A nil Outcome with a nil error means the component is not applicable to this
// dispatcher. A non-nil error is a decode failure of a registered decoder, or an offset
// outside data.
func (d *Dispatcher) Dispatch(ctx *Context, c *rose.Component) (*Outcome, error) {
	if c == nil {
		return nil, nil
	}
	switch c.Kind {
	case rose.KindInvoke:
		return d.DispatchInvoke(ctx, c, c.Parameter, 0)
	case rose.KindReturnResult:
		return d.DispatchResult(ctx, c, c.Parameter, 0)
	case rose.KindReturnError:
		return d.DispatchError(ctx, c, c.Parameter, 0)
	}
	return nil, nil
}

// DispatchInvoke decodes the argument of an invoke at data[offset:].
// Both code forms are accepted; a global code is resolved through its final arc.
func (d *Dispatcher) DispatchInvoke(ctx *Context, c *rose.Component, data []byte, offset int) (*Outcome, error) {
	if !applicable(ctx, c, rose.KindInvoke) {
		return nil, nil
	}

	var opcode int32
	switch c.Code.Form {
	case rose.CodeLocal:
		opcode = c.Code.Local
	case rose.CodeGlobal:
		op, ok := ResolveGlobalOpcode(c.Code.Global)
		if !ok {
			notApplicable(ctx, c, "global code has no numeric final arc")
			return nil, nil
		}
		opcode = op
	default:
		notApplicable(ctx, c, "no operation code")
		return nil, nil
	}

	rec, ok := d.Operations.Resolve(opcode)
	if !ok {
		observability.RecordDispatch(c.Kind.String(), observability.OutcomeUnresolved)
		ctx.Logger.Debug().Int32("opcode", opcode).Msg("invoke of unknown operation skipped")
		return nil, nil
	}

	out := &Outcome{
		Kind:    c.Kind,
		Code:    rec.Opcode,
		Name:    rec.Name,
		Module:  rec.Module,
		Service: d.Services.Classify(rec.Opcode),
	}
	return d.decode(ctx, out, rec.Argument, data, offset)
}

// DispatchResult decodes the result of a returnResult at data[offset:].
// Only local operation codes are handled.
func (d *Dispatcher) DispatchResult(ctx *Context, c *rose.Component, data []byte, offset int) (*Outcome, error) {
	if !applicable(ctx, c, rose.KindReturnResult) {
		return nil, nil
	}
	if c.Code.Form != rose.CodeLocal {
		notApplicable(ctx, c, "result without local operation code")
		return nil, nil
	}

	rec, ok := d.Operations.Resolve(c.Code.Local)
	if !ok {
		notApplicable(ctx, c, "unknown operation")
		return nil, nil
	}

	out := &Outcome{
		Kind:    c.Kind,
		Code:    rec.Opcode,
		Name:    rec.Name,
		Module:  rec.Module,
		Service: d.Services.Classify(rec.Opcode),
	}
	return d.decode(ctx, out, rec.Result, data, offset)
}

// DispatchError decodes the parameter of a returnError at data[offset:] using the
// error table. Only local error codes are handled.
func (d *Dispatcher) DispatchError(ctx *Context, c *rose.Component, data []byte, offset int) (*Outcome, error) {
	if !applicable(ctx, c, rose.KindReturnError) {
		return nil, nil
	}
	if c.Code.Form != rose.CodeLocal {
		notApplicable(ctx, c, "error without local error code")
		return nil, nil
	}

	rec, ok := d.Errors.Resolve(c.Code.Local)
	if !ok {
		notApplicable(ctx, c, "unknown error code")
		return nil, nil
	}

	out := &Outcome{
		Kind:   c.Kind,
		Code:   rec.Code,
		Name:   rec.Name,
		Module: rec.Module,
	}
	return d.decode(ctx, out, rec.Parameter, data, offset)
}

func (d *Dispatcher) decode(ctx *Context, out *Outcome, dec Decoder, data []byte, offset int) (*Outcome, error) {
	if err := checkOffset(data, offset); err != nil {
		return nil, err
	}
	kind := out.Kind.String()

	if dec == nil {
		if offset >= len(data) {
			out.Status, out.Offset = StatusNoPayload, offset
			observability.RecordDispatch(kind, observability.OutcomeNoPayload)
			return out, nil
		}
		out.Status = StatusUnsupported
		out.Unsupported = append([]byte(nil), data[offset:]...)
		out.Offset = len(data)
		observability.RecordDispatch(kind, observability.OutcomeUnsupported)
		ctx.Logger.Info().
			Str("kind", kind).
			Str("operation", out.Name).
			Str("module", out.Module).
			Int("bytes", len(out.Unsupported)).
			Msg("unsupported payload shape")
		return out, nil
	}

	next, v, err := dec.Decode(ctx, data, offset)
	if err != nil {
		observability.RecordDispatch(kind, observability.OutcomeFailed)
		ctx.Logger.Debug().Err(err).Str("kind", kind).Str("operation", out.Name).Msg("payload decode failed")
		return nil, err
	}
	out.Status, out.Value, out.Offset = StatusDecoded, v, next
	observability.RecordDispatch(kind, observability.OutcomeDecoded)
	return out, nil
}

// applicable reports whether c can be dispatched as want under ctx.
// A missing context or transaction makes every dispatch a no-op.
func applicable(ctx *Context, c *rose.Component, want rose.Kind) bool {
	if c == nil || c.Kind != want {
		return false
	}
	if ctx == nil || ctx.Transaction == nil {
		observability.RecordDispatch(want.String(), observability.OutcomeNotApplicable)
		return false
	}
	return true
}

func notApplicable(ctx *Context, c *rose.Component, reason string) {
	observability.RecordDispatch(c.Kind.String(), observability.OutcomeNotApplicable)
	ctx.Logger.Debug().Str("kind", c.Kind.String()).Stringer("code", c.Code).Msg(reason)
}
