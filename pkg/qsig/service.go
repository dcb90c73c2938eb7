package qsig

import "fmt"

// Legacy integer encodings of the two non-service classifications.
const (
	NoService        int32 = -1
	MultipleServices int32 = 90001
)

// ServiceKind tells how an opcode was classified.
type ServiceKind uint8

const (
	// ServiceUnclassified: the opcode is outside the map or explicitly has no service.
	ServiceUnclassified ServiceKind = iota
	// ServiceKnown: the opcode belongs to the service identified by Service.ID.
	ServiceKnown
	// ServiceMultiple: the opcode is shared by several services.
	ServiceMultiple
)

// Service is the supplementary service an operation belongs to.
type Service struct {
	Kind ServiceKind
	ID   uint32
}

// ServiceFromCode converts a legacy integer classification.
func ServiceFromCode(code int32) Service {
	switch {
	case code < 0:
		return Service{Kind: ServiceUnclassified}
	case code == MultipleServices:
		return Service{Kind: ServiceMultiple}
	default:
		return Service{Kind: ServiceKnown, ID: uint32(code)}
	}
}

// Code returns the legacy integer classification (-1, 90001 or the service id).
func (s Service) Code() int32 {
	switch s.Kind {
	case ServiceKnown:
		return int32(s.ID)
	case ServiceMultiple:
		return MultipleServices
	default:
		return NoService
	}
}

// Name returns the short service name ("QSIG-NA"). Unclassified and shared opcodes have
// no name; that is not an error.
func (s Service) Name() (string, bool) {
	if s.Kind != ServiceKnown {
		return "", false
	}
	info, ok := serviceNames[s.ID]
	return info.short, ok
}

// Operations returns the name of the service's operation module ("Name-Operations").
func (s Service) Operations() (string, bool) {
	if s.Kind != ServiceKnown {
		return "", false
	}
	info, ok := serviceNames[s.ID]
	return info.operations, ok
}

// String returns a display form suitable for reports.
func (s Service) String() string {
	switch s.Kind {
	case ServiceMultiple:
		return fmt.Sprintf("multiple services (%d)", MultipleServices)
	case ServiceUnclassified:
		return "unclassified"
	}
	if name, ok := s.Name(); ok {
		return fmt.Sprintf("%s (%d)", name, s.ID)
	}
	return fmt.Sprintf("Service(%d)", s.ID)
}

// ServiceMap is a dense opcode -> service classification table.
type ServiceMap []int32

// Classify returns the service of opcode. Opcodes come from the wire, so anything outside
// the table is Unclassified instead of an index error.
func (m ServiceMap) Classify(opcode int32) Service {
	if opcode < 0 || int(opcode) >= len(m) {
		return Service{Kind: ServiceUnclassified}
	}
	return ServiceFromCode(m[opcode])
}
