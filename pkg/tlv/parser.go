// Package tlv maps BER-TLV encoded ASN.1 values onto Go structures using struct tags.
//
// QSIG operation arguments, ROSE components and manufacturer extensions are all BER
// encoded. The package sits on top of github.com/moov-io/bertlv, which splits a buffer into
// (possibly nested) TLV packets, and adds:
//   - a bounded walk of untrusted encodings before they reach bertlv,
//   - struct tag mapping (`tlv:"06" fmt:"oid"`),
//   - content decoders for INTEGER and OBJECT IDENTIFIER values,
//   - report writers for decoded trees.
package tlv

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/moov-io/bertlv"
)

// Unmarshaler allows custom types to implement their own TLV parsing logic.
type Unmarshaler interface {
	UnmarshalTLV(data []byte) error
}

// Unmarshal parses raw BER-TLV data and maps it into a target Go struct.
func Unmarshal(data []byte, target interface{}) error {
	packets, err := Decode(data)
	if err != nil {
		return err
	}
	return unmarshalPackets(packets, target)
}

// unmarshalPackets maps a slice of pre-decoded bertlv.TLV objects to a target struct.
// When a tag occurs more than once, the last occurrence wins. Packets no field claims are
// ignored.
func unmarshalPackets(packets []bertlv.TLV, target interface{}) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("target must be a non-nil pointer")
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("target must point to a struct, got %s", v.Kind())
	}
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		fieldType := t.Field(i)
		tag, format, ok := fieldTag(fieldType)
		if !ok {
			continue
		}

		for _, packet := range packets {
			if !strings.EqualFold(packet.Tag, tag) {
				continue
			}
			if err := decodeToValue(packet, v.Field(i), format); err != nil {
				return fmt.Errorf("field %s (tag %s): %w", fieldType.Name, tag, err)
			}
		}
	}
	return nil
}

// fieldTag returns the BER tag and format of a mapped struct field.
func fieldTag(f reflect.StructField) (tag, format string, ok bool) {
	config := f.Tag.Get("tlv")
	if config == "" {
		return "", "", false
	}
	return strings.ToUpper(config), f.Tag.Get("fmt"), true
}

// decodeToValue handles one leaf: custom unmarshaler, bytes, OID text, integers or a nested structure.
func decodeToValue(packet bertlv.TLV, field reflect.Value, format string) error {
	if field.CanAddr() {
		if u, ok := field.Addr().Interface().(Unmarshaler); ok {
			return u.UnmarshalTLV(Raw(packet))
		}
	}

	switch {
	case isByteSlice(field):
		field.SetBytes(Raw(packet))
		return nil

	case field.Kind() == reflect.String:
		if format != "oid" {
			return fmt.Errorf("unsupported string format %q", format)
		}
		oid, err := OID(packet.Value)
		if err != nil {
			return err
		}
		field.SetString(oid)
		return nil

	case field.Kind() == reflect.Int32, field.Kind() == reflect.Int64, field.Kind() == reflect.Int:
		n, err := Integer(packet.Value)
		if err != nil {
			return err
		}
		field.SetInt(int64(n))
		return nil

	case isStructOrPtrToStruct(field):
		target := targetField(field)
		if len(packet.TLVs) > 0 {
			return unmarshalPackets(packet.TLVs, target.Interface())
		}
		if len(packet.Value) == 0 {
			return nil
		}
		return Unmarshal(packet.Value, target.Interface())
	}

	return fmt.Errorf("unsupported field kind %s", field.Kind())
}

// Raw returns the content octets of a packet. Constructed packets are re-encoded from
// their children, so the result is the full inner encoding.
func Raw(p bertlv.TLV) []byte {
	if len(p.TLVs) > 0 {
		if enc, err := bertlv.Encode(p.TLVs); err == nil {
			return enc
		}
	}
	return p.Value
}

func isByteSlice(v reflect.Value) bool {
	return v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8
}

func isStructOrPtrToStruct(v reflect.Value) bool {
	if v.Kind() == reflect.Struct {
		return true
	}
	return v.Kind() == reflect.Ptr && v.Type().Elem().Kind() == reflect.Struct
}

func targetField(field reflect.Value) reflect.Value {
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return field
	}
	return field.Addr()
}
