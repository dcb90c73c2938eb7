package qsig

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gregLibert/qsig/pkg/rose"
	"github.com/gregLibert/qsig/pkg/tlv"
)

type txn struct{ id int }

func testDispatcher(argument Decoder) *Dispatcher {
	ops := NewOperationTable([]OperationRecord{
		{Opcode: 0, Name: "callingName", Module: "QSIG-NA", Argument: argument},
		{Opcode: 15, Name: "activateDiversionQ", Module: "QSIG-CF", Argument: argument, Result: argument},
		{Opcode: 41, Name: "pathRetain", Module: "QSIG-CI"},
	})
	errs := NewErrorTable([]ErrorRecord{
		{Code: 1008, Name: "unspecified", Module: "QSIG-CF", Parameter: valueDecoder("first")},
		{Code: 1008, Name: "unspecified", Module: "QSIG-PR", Parameter: valueDecoder("second")},
		{Code: 1000, Name: "temporarilyUnavailable", Module: "QSIG-PR"},
	})
	return NewDispatcher(ops, errs, StandardServiceMap())
}

func invoke(code rose.Code) *rose.Component {
	return &rose.Component{Kind: rose.KindInvoke, InvokeID: 1, HasInvokeID: true, Code: code}
}

func TestDispatcher_Invoke(t *testing.T) {
	d := testDispatcher(valueDecoder("decoded"))
	ctx := NewContext(&txn{1}, nil)
	data := tlv.Hex("80 03 414243")

	tests := []struct {
		name string
		code rose.Code
		want *Outcome
	}{
		{
			name: "Local code",
			code: rose.LocalCode(0),
			want: &Outcome{
				Kind: rose.KindInvoke, Code: 0, Name: "callingName", Module: "QSIG-NA",
				Service: Service{Kind: ServiceKnown, ID: ServiceNA},
				Status:  StatusDecoded, Value: "decoded", Offset: 5,
			},
		},
		{
			name: "Global code resolved through its final arc",
			code: rose.GlobalCode("1.3.12.9.15"),
			want: &Outcome{
				Kind: rose.KindInvoke, Code: 15, Name: "activateDiversionQ", Module: "QSIG-CF",
				Service: Service{Kind: ServiceKnown, ID: ServiceCF},
				Status:  StatusDecoded, Value: "decoded", Offset: 5,
			},
		},
		{
			name: "No argument decoder",
			code: rose.LocalCode(41),
			want: &Outcome{
				Kind: rose.KindInvoke, Code: 41, Name: "pathRetain", Module: "QSIG-CI",
				Service: Service{Kind: ServiceMultiple},
				Status:  StatusUnsupported, Offset: 5, Unsupported: data,
			},
		},
		{name: "Unknown opcode", code: rose.LocalCode(25)},
		{name: "Global code without numeric arc", code: rose.GlobalCode("not-an-oid")},
		{name: "Absent code", code: rose.Code{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := d.DispatchInvoke(ctx, invoke(tc.code), data, 0)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDispatcher_UnsupportedConsumesToEnd(t *testing.T) {
	d := testDispatcher(nil)
	data := tlv.Hex("02 01 01 80 03 414243")

	got, err := d.DispatchInvoke(NewContext(&txn{1}, nil), invoke(rose.LocalCode(0)), data, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != StatusUnsupported || got.Offset != len(data) {
		t.Errorf("got status %s offset %d, want unsupported at %d", got.Status, got.Offset, len(data))
	}
	if diff := cmp.Diff(data[3:], got.Unsupported); diff != "" {
		t.Errorf("unsupported bytes mismatch (-want +got):\n%s", diff)
	}

	got, err = d.DispatchInvoke(NewContext(&txn{1}, nil), invoke(rose.LocalCode(0)), data, len(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != StatusNoPayload || got.Offset != len(data) || got.Unsupported != nil {
		t.Errorf("empty remainder: got %+v", got)
	}
}

func TestDispatcher_NotApplicable(t *testing.T) {
	d := testDispatcher(valueDecoder("decoded"))
	data := tlv.Hex("80 03 414243")
	ctx := NewContext(&txn{1}, nil)

	tests := []struct {
		name     string
		dispatch func() (*Outcome, error)
	}{
		{"Nil context", func() (*Outcome, error) {
			return d.DispatchInvoke(nil, invoke(rose.LocalCode(0)), data, 0)
		}},
		{"Nil transaction", func() (*Outcome, error) {
			return d.DispatchInvoke(NewContext(nil, nil), invoke(rose.LocalCode(0)), data, 0)
		}},
		{"Nil component", func() (*Outcome, error) {
			return d.DispatchInvoke(ctx, nil, data, 0)
		}},
		{"Result handed to the invoke path", func() (*Outcome, error) {
			return d.DispatchInvoke(ctx, &rose.Component{Kind: rose.KindReturnResult, Code: rose.LocalCode(0)}, data, 0)
		}},
		{"Result with global code", func() (*Outcome, error) {
			return d.DispatchResult(ctx, &rose.Component{Kind: rose.KindReturnResult, Code: rose.GlobalCode("1.3.12.9.15")}, data, 0)
		}},
		{"Result without operation", func() (*Outcome, error) {
			return d.DispatchResult(ctx, &rose.Component{Kind: rose.KindReturnResult}, nil, 0)
		}},
		{"Result of unknown operation", func() (*Outcome, error) {
			return d.DispatchResult(ctx, &rose.Component{Kind: rose.KindReturnResult, Code: rose.LocalCode(99)}, data, 0)
		}},
		{"Error with global code", func() (*Outcome, error) {
			return d.DispatchError(ctx, &rose.Component{Kind: rose.KindReturnError, Code: rose.GlobalCode("1.2.1008")}, data, 0)
		}},
		{"Unknown error code", func() (*Outcome, error) {
			return d.DispatchError(ctx, &rose.Component{Kind: rose.KindReturnError, Code: rose.LocalCode(1)}, data, 0)
		}},
		{"Reject", func() (*Outcome, error) {
			return d.Dispatch(ctx, &rose.Component{Kind: rose.KindReject, Problem: &rose.Problem{Class: 0, Value: 1}})
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.dispatch()
			if got != nil || err != nil {
				t.Errorf("got %+v, %v, want nil, nil", got, err)
			}
		})
	}
}

func TestDispatcher_Result(t *testing.T) {
	d := testDispatcher(valueDecoder("decoded"))
	c := &rose.Component{Kind: rose.KindReturnResult, Code: rose.LocalCode(15), Parameter: tlv.Hex("05 00")}

	got, err := d.Dispatch(NewContext(&txn{1}, nil), c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Value != "decoded" || got.Offset != 2 || got.Service.Code() != int32(ServiceCF) {
		t.Errorf("got %+v", got)
	}

	// callingName has no result decoder.
	c.Code = rose.LocalCode(0)
	got, _ = d.Dispatch(NewContext(&txn{1}, nil), c)
	if got.Status != StatusUnsupported || got.Offset != 2 {
		t.Errorf("got %+v, want unsupported result", got)
	}
}

func TestDispatcher_Error(t *testing.T) {
	d := testDispatcher(nil)
	ctx := NewContext(&txn{1}, nil)
	data := tlv.Hex("05 00")

	got, err := d.DispatchError(ctx, &rose.Component{Kind: rose.KindReturnError, Code: rose.LocalCode(1008)}, data, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := &Outcome{
		Kind: rose.KindReturnError, Code: 1008, Name: "unspecified", Module: "QSIG-PR",
		Status: StatusDecoded, Value: "second", Offset: 2,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	got, _ = d.DispatchError(ctx, &rose.Component{Kind: rose.KindReturnError, Code: rose.LocalCode(1000)}, data, 0)
	if got.Status != StatusUnsupported || got.Offset != 2 {
		t.Errorf("got %+v, want unsupported error parameter", got)
	}
}

func TestDispatcher_DecodeErrorPropagates(t *testing.T) {
	errBoom := errors.New("boom")
	d := testDispatcher(DecoderFunc(func(_ *Context, _ []byte, offset int) (int, any, error) {
		return offset, nil, errBoom
	}))

	got, err := d.DispatchInvoke(NewContext(&txn{1}, nil), invoke(rose.LocalCode(0)), tlv.Hex("05 00"), 0)
	if !errors.Is(err, errBoom) {
		t.Errorf("error = %v, want %v", err, errBoom)
	}
	if got != nil {
		t.Errorf("outcome = %+v, want nil", got)
	}
}

func TestDispatcher_OffsetOutOfRange(t *testing.T) {
	d := testDispatcher(valueDecoder("decoded"))

	_, err := d.DispatchInvoke(NewContext(&txn{1}, nil), invoke(rose.LocalCode(0)), tlv.Hex("05 00"), 3)
	if !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("error = %v, want ErrOffsetOutOfRange", err)
	}
}

func TestDispatcher_StandardCatalogue(t *testing.T) {
	d := NewStandardDispatcher(Bindings{Default: BERDecoder{}})
	raw := tlv.Hex("A1 0B", "02 01 01", "02 01 00", "80 03 414243")

	c, err := rose.ParseComponent(raw)
	if err != nil {
		t.Fatalf("ParseComponent: %v", err)
	}
	got, err := d.Dispatch(NewContext(&txn{1}, nil), c)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if got.Name != "callingName" || got.Status != StatusDecoded {
		t.Errorf("got %+v", got)
	}
	if name, _ := got.Service.Name(); name != "QSIG-NA" {
		t.Errorf("service name = %q, want QSIG-NA", name)
	}
}

func TestStatus_String(t *testing.T) {
	tests := []struct {
		s    Status
		want string
	}{
		{StatusDecoded, "decoded"},
		{StatusNoPayload, "no payload"},
		{StatusUnsupported, "unsupported"},
		{Status(7), "Status(7)"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
