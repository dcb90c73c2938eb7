package tlv

import (
	"encoding/asn1"
	"fmt"

	"github.com/moov-io/bertlv"
)

// Content decoders for the two ASN.1 primitives the QSIG core interprets itself:
// INTEGER (invoke identifiers, local operation and error codes) and OBJECT IDENTIFIER
// (global codes and manufacturer extension identifiers).
//
// bertlv hands out content octets only, while encoding/asn1 expects a complete
// encoding. The content is therefore re-wrapped under the universal tag before parsing,
// which also makes implicitly tagged values ([0] IMPLICIT INTEGER) decodable.

const (
	universalInteger = "02"
	universalOID     = "06"
)

// Integer decodes the content octets of an INTEGER into an int32.
func Integer(content []byte) (int32, error) {
	if len(content) == 0 {
		return 0, fmt.Errorf("empty INTEGER content")
	}
	full, err := bertlv.Encode([]bertlv.TLV{{Tag: universalInteger, Value: content}})
	if err != nil {
		return 0, fmt.Errorf("INTEGER re-encode failed: %w", err)
	}

	var n int32
	if _, err := asn1.Unmarshal(full, &n); err != nil {
		return 0, fmt.Errorf("INTEGER decode failed: %w", err)
	}
	return n, nil
}

// OID decodes the content octets of an OBJECT IDENTIFIER into its dotted form.
func OID(content []byte) (string, error) {
	if len(content) == 0 {
		return "", fmt.Errorf("empty OBJECT IDENTIFIER content")
	}
	full, err := bertlv.Encode([]bertlv.TLV{{Tag: universalOID, Value: content}})
	if err != nil {
		return "", fmt.Errorf("OBJECT IDENTIFIER re-encode failed: %w", err)
	}

	var oid asn1.ObjectIdentifier
	if _, err := asn1.Unmarshal(full, &oid); err != nil {
		return "", fmt.Errorf("OBJECT IDENTIFIER decode failed: %w", err)
	}
	return oid.String(), nil
}
