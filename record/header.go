package record

import "github.com/safing/tabletext/typeinfo"

// Header holds the column names of a table.
type Header struct {
	names []string
}

// NewHeader returns a header with the given column names.
func NewHeader(names ...string) *Header {
	h := &Header{}
	h.Reset(names...)
	return h
}

// NewHeaderFromType returns a header with the member names of the table type.
func NewHeaderFromType(tt *typeinfo.TableType) *Header {
	if tt == nil {
		return NewHeader()
	}
	return NewHeader(tt.Names()...)
}

// Add appends a column name.
func (h *Header) Add(name string) {
	h.names = append(h.names, name)
}

// Reset replaces all column names.
func (h *Header) Reset(names ...string) {
	h.names = append(make([]string, 0, len(names)), names...)
}

// Len returns the number of columns.
func (h *Header) Len() int {
	return len(h.names)
}

// Name returns the name of the column at index i.
func (h *Header) Name(i int) (string, bool) {
	if i < 0 || i >= len(h.names) {
		return "", false
	}
	return h.names[i], true
}

// Index returns the index of the named column, or -1.
func (h *Header) Index(name string) int {
	for i, n := range h.names {
		if n == name {
			return i
		}
	}
	return -1
}

// Names returns a copy of the column names.
func (h *Header) Names() []string {
	return append([]string(nil), h.names...)
}
