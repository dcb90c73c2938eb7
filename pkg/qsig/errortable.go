package qsig

// ErrorRecord binds an error code to the decoder of its parameter.
type ErrorRecord struct {
	Code      int32
	Name      string
	Module    string
	Parameter Decoder
}

// ErrorTable is the immutable error table. The same code is legitimately reused by many
// modules ("unspecified", "temporarilyUnavailable"); the last declaration wins.
type ErrorTable struct {
	records []ErrorRecord
	index   map[int32]int
}

// NewErrorTable builds a table from records in declaration order.
func NewErrorTable(records []ErrorRecord) *ErrorTable {
	t := &ErrorTable{
		records: append([]ErrorRecord(nil), records...),
	}
	t.index = lastDeclared(len(t.records), func(i int) int32 { return t.records[i].Code })
	return t
}

// Resolve returns the winning record for code.
func (t *ErrorTable) Resolve(code int32) (*ErrorRecord, bool) {
	if t == nil {
		return nil, false
	}
	i, ok := t.index[code]
	if !ok {
		return nil, false
	}
	return &t.records[i], true
}

// Records returns every declared record in declaration order.
func (t *ErrorTable) Records() []ErrorRecord {
	if t == nil {
		return nil
	}
	return append([]ErrorRecord(nil), t.records...)
}

// Len returns the number of distinct error codes.
func (t *ErrorTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.index)
}
