package qsig

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gregLibert/qsig/pkg/rose"
	"github.com/gregLibert/qsig/pkg/tlv"
	"github.com/moov-io/bertlv"
)

var reportTitles = map[rose.Kind]string{
	rose.KindInvoke:       "=== QSIG INVOKE REPORT ===",
	rose.KindReturnResult: "=== QSIG RETURN RESULT REPORT ===",
	rose.KindReturnError:  "=== QSIG RETURN ERROR REPORT ===",
}

var payloadLabels = map[rose.Kind]string{
	rose.KindInvoke:       "Argument",
	rose.KindReturnResult: "Result",
	rose.KindReturnError:  "Parameter",
}

// Describe generates an ASCII report of the dispatch: the resolved operation or error,
// its service, and a dump of the decoded payload.
func (o *Outcome) Describe() string {
	var sb strings.Builder

	sb.WriteString(reportTitles[o.Kind] + "\n")

	what := "Operation"
	if o.Kind == rose.KindReturnError {
		what = "Error"
	}
	sb.WriteString(fmt.Sprintf("[1] %s: %s (%s, code %d)\n", what, o.Name, o.Module, o.Code))

	if o.Kind != rose.KindReturnError {
		line := o.Service.String()
		if ops, ok := o.Service.Operations(); ok {
			line += " -> " + ops
		}
		sb.WriteString(fmt.Sprintf("    + Service: %s\n", line))
	}
	sb.WriteString(fmt.Sprintf("    + Status:  %s (offset %d)", o.Status, o.Offset))

	label := payloadLabels[o.Kind]
	switch o.Status {
	case StatusUnsupported:
		sb.WriteString(fmt.Sprintf("\n    + %s:  %d bytes [!!] no decoder: %X", label, len(o.Unsupported), o.Unsupported))
	case StatusDecoded:
		var body strings.Builder
		writeValue(&body, label, o.Value)
		if body.Len() > 0 {
			sb.WriteString("\n\n[2] Payload\n")
			sb.WriteString(body.String())
		}
	}

	return sb.String()
}

func writeValue(sb *strings.Builder, label string, v any) {
	switch val := v.(type) {
	case nil:
	case []bertlv.TLV:
		tlv.WriteTree(sb, label, val)
	case []Extension:
		for i, ext := range val {
			writeValue(sb, fmt.Sprintf("%s.Extension[%d] %s", label, i, ext.OID), ext.Value)
		}
	case *Name:
		tlv.WriteStructFields(sb, label, val)
		writeValue(sb, label, val.Extensions)
	case *OpaqueExtension:
		writeLine(sb, fmt.Sprintf("    - %s (opaque): %X", label, val.Raw))
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Ptr {
			rv = rv.Elem()
		}
		if rv.Kind() == reflect.Struct {
			tlv.WriteStructFields(sb, label, v)
			return
		}
		writeLine(sb, fmt.Sprintf("    - %s: %v", label, v))
	}
}

func writeLine(sb *strings.Builder, line string) {
	if sb.Len() > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString(line)
}
