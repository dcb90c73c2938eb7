package qsig

import (
	"math"
	"strconv"
	"strings"
)

// OperationRecord binds an operation code to its payload decoders.
type OperationRecord struct {
	Opcode int32
	Name   string
	// Module is the short name of the declaring supplementary service (e.g. "QSIG-NA").
	Module   string
	Argument Decoder
	Result   Decoder
}

// OperationTable is the immutable operation table. Build it with NewOperationTable.
type OperationTable struct {
	records []OperationRecord
	index   map[int32]int
}

// NewOperationTable builds a table from records in declaration order. When an opcode is
// declared more than once, the last declaration wins.
func NewOperationTable(records []OperationRecord) *OperationTable {
	t := &OperationTable{
		records: append([]OperationRecord(nil), records...),
	}
	t.index = lastDeclared(len(t.records), func(i int) int32 { return t.records[i].Opcode })
	return t
}

// Resolve returns the winning record for opcode. A miss is a normal outcome.
func (t *OperationTable) Resolve(opcode int32) (*OperationRecord, bool) {
	if t == nil {
		return nil, false
	}
	i, ok := t.index[opcode]
	if !ok {
		return nil, false
	}
	return &t.records[i], true
}

// ResolveGlobal resolves a global (OID) code through its final arc.
func (t *OperationTable) ResolveGlobal(oid string) (*OperationRecord, bool) {
	opcode, ok := ResolveGlobalOpcode(oid)
	if !ok {
		return nil, false
	}
	return t.Resolve(opcode)
}

// Records returns every declared record, duplicates included, in declaration order.
func (t *OperationTable) Records() []OperationRecord {
	if t == nil {
		return nil
	}
	return append([]OperationRecord(nil), t.records...)
}

// Len returns the number of distinct opcodes.
func (t *OperationTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.index)
}

// ResolveGlobalOpcode extracts the final arc of a dotted OID as a local opcode.
// It fails for strings without a '.', for a non-numeric final arc, and for arcs that
// do not fit an int32.
func ResolveGlobalOpcode(oid string) (int32, bool) {
	dot := strings.LastIndexByte(oid, '.')
	if dot < 0 {
		return 0, false
	}
	arc, err := strconv.ParseUint(oid[dot+1:], 10, 32)
	if err != nil || arc > math.MaxInt32 {
		return 0, false
	}
	return int32(arc), true
}

// lastDeclared maps each code to the index of its last declaration.
func lastDeclared(n int, code func(int) int32) map[int32]int {
	index := make(map[int32]int, n)
	for i := 0; i < n; i++ {
		index[code(i)] = i
	}
	return index
}
