package rose

import "fmt"

//go:generate stringer -type=Kind -linecomment -output=kind_string.go

// Kind identifies the ROSE component (APDU) type. Values match the context tag number.
type Kind int

const (
	KindInvoke       Kind = 1 // invoke
	KindReturnResult Kind = 2 // returnResult
	KindReturnError  Kind = 3 // returnError
	KindReject       Kind = 4 // reject
)

// CodeForm tells which alternative of the Code CHOICE is present.
type CodeForm int

const (
	// CodeAbsent is used by ReturnResult components without a result and by Reject.
	CodeAbsent CodeForm = iota
	CodeLocal
	CodeGlobal
)

// Code is an operation or error code.
type Code struct {
	Form   CodeForm
	Local  int32
	Global string
}

// LocalCode builds a local (INTEGER) code.
func LocalCode(v int32) Code {
	return Code{Form: CodeLocal, Local: v}
}

// GlobalCode builds a global (OBJECT IDENTIFIER) code from its dotted form.
func GlobalCode(oid string) Code {
	return Code{Form: CodeGlobal, Global: oid}
}

// IsLocal reports whether the code uses the local form.
func (c Code) IsLocal() bool {
	return c.Form == CodeLocal
}

// String returns "local:N", "global:OID" or "absent".
func (c Code) String() string {
	switch c.Form {
	case CodeLocal:
		return fmt.Sprintf("local:%d", c.Local)
	case CodeGlobal:
		return "global:" + c.Global
	default:
		return "absent"
	}
}
