package tlv

import (
	"encoding/hex"
	"fmt"
	"reflect"
	"strings"

	"github.com/moov-io/bertlv"
)

var stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()

// WriteStructFields inspects a struct and writes its fields to the strings.Builder.
// It joins lines with newlines but DOES NOT add a trailing newline.
// If the builder is not empty, it prepends a newline to separate this block from previous content.
func WriteStructFields(sb *strings.Builder, prefix string, s interface{}) {
	val := reflect.ValueOf(s)

	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return
	}

	typ := val.Type()
	var lines []string

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)
		if !fieldType.IsExported() {
			continue
		}

		switch {
		case field.Type() == reflect.TypeOf([]bertlv.TLV{}):
			lines = append(lines, treeLines(prefix+"."+fieldType.Name, field.Interface().([]bertlv.TLV))...)
		case field.Kind() == reflect.Slice && field.Type().Elem().Kind() == reflect.Uint8:
			if line := formatByteSliceField(prefix, field, fieldType); line != "" {
				lines = append(lines, line)
			}
		case fieldType.Type.Implements(stringerType):
			lines = append(lines, fmt.Sprintf("    - %s.%s: %s", prefix, fieldName(fieldType), field.Interface().(fmt.Stringer).String()))
		case field.Kind() == reflect.String:
			if field.Len() > 0 {
				lines = append(lines, fmt.Sprintf("    - %s.%s: %s", prefix, fieldName(fieldType), field.String()))
			}
		case field.CanInt():
			lines = append(lines, fmt.Sprintf("    - %s.%s: %d", prefix, fieldName(fieldType), field.Int()))
		case field.CanUint():
			lines = append(lines, fmt.Sprintf("    - %s.%s: %d", prefix, fieldName(fieldType), field.Uint()))
		}
	}

	writeLines(sb, lines)
}

// WriteTree writes a decoded TLV tree, one line per packet, indenting nested packets.
func WriteTree(sb *strings.Builder, prefix string, tlvs []bertlv.TLV) {
	writeLines(sb, treeLines(prefix, tlvs))
}

func treeLines(prefix string, tlvs []bertlv.TLV) []string {
	var lines []string
	var walk func(depth int, packets []bertlv.TLV)
	walk = func(depth int, packets []bertlv.TLV) {
		indent := strings.Repeat("  ", depth)
		for _, p := range packets {
			if len(p.TLVs) > 0 {
				lines = append(lines, fmt.Sprintf("    - %s%s Tag %s:", indent, prefix, p.Tag))
				walk(depth+1, p.TLVs)
				continue
			}
			lines = append(lines, fmt.Sprintf("    - %s%s Tag %s: %s", indent, prefix, p.Tag, strings.ToUpper(hex.EncodeToString(p.Value))))
		}
	}
	walk(0, tlvs)
	return lines
}

func writeLines(sb *strings.Builder, lines []string) {
	if len(lines) == 0 {
		return
	}
	if sb.Len() > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString(strings.Join(lines, "\n"))
}

func fieldName(f reflect.StructField) string {
	if tag := f.Tag.Get("tlv"); tag != "" {
		return fmt.Sprintf("%s (%s)", f.Name, tag)
	}
	return f.Name
}

func formatByteSliceField(prefix string, field reflect.Value, fieldType reflect.StructField) string {
	if field.IsNil() || field.Len() == 0 {
		return ""
	}
	displayVal := formatByteValue(field.Bytes(), fieldType.Tag.Get("fmt"))
	return fmt.Sprintf("    - %s.%s: %s", prefix, fieldName(fieldType), displayVal)
}

func formatByteValue(data []byte, format string) string {
	switch format {
	case "ascii":
		return fmt.Sprintf("%X (%q)", data, MakeSafeASCII(data))
	case "int":
		var integer int
		for _, b := range data {
			integer = (integer << 8) | int(b)
		}
		return fmt.Sprintf("%X (Dec: %d)", data, integer)
	default:
		return strings.ToUpper(hex.EncodeToString(data))
	}
}

// MakeSafeASCII replaces non-printable bytes with '.'.
func MakeSafeASCII(data []byte) string {
	return strings.Map(func(r rune) rune {
		if r >= 32 && r <= 126 {
			return r
		}
		return '.'
	}, string(data))
}
