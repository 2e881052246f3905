package record

import (
	"strconv"
	"strings"

	"github.com/tidwall/sjson"

	"github.com/safing/tabletext/typeinfo"
)

// Record is a single row of a table, holding its field values in column order.
type Record struct {
	Fields []string
}

// New returns a record with the given field values. Values are copied.
func New(fields ...string) *Record {
	return &Record{
		Fields: append(make([]string, 0, len(fields)), fields...),
	}
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.Fields)
}

// Get returns the field at index i.
func (r *Record) Get(i int) (string, bool) {
	if i < 0 || i >= len(r.Fields) {
		return "", false
	}
	return r.Fields[i], true
}

// Set sets the field at index i, extending the record with empty fields if needed.
// Negative indexes are ignored.
func (r *Record) Set(i int, value string) {
	if i < 0 {
		return
	}
	for len(r.Fields) <= i {
		r.Fields = append(r.Fields, "")
	}
	r.Fields[i] = value
}

// Values returns a copy of the field values.
func (r *Record) Values() []string {
	return append([]string(nil), r.Fields...)
}

// JSON renders the record as a JSON object keyed by the header's column names.
// If tt is given, fields of numeric and boolean members are written as JSON
// numbers and booleans when they parse as such. Fields beyond the header are
// omitted.
func (r *Record) JSON(h *Header, tt *typeinfo.TableType) (string, error) {
	json := "{}"
	for i := 0; i < h.Len() && i < len(r.Fields); i++ {
		name, _ := h.Name(i)
		var err error
		json, err = sjson.Set(json, escapeKey(name), typedValue(r.Fields[i], memberKind(tt, name)))
		if err != nil {
			return "", err
		}
	}
	return json, nil
}

// Accessor returns an accessor for typed reads and writes of the record's fields by column name.
func (r *Record) Accessor(h *Header, tt *typeinfo.TableType) (*JSONAccessor, error) {
	json, err := r.JSON(h, tt)
	if err != nil {
		return nil, err
	}
	return &JSONAccessor{
		json:   json,
		record: r,
		header: h,
	}, nil
}

func memberKind(tt *typeinfo.TableType, name string) typeinfo.Kind {
	if tt == nil {
		return typeinfo.KindString
	}
	m, ok := tt.Member(name)
	if !ok {
		return typeinfo.KindString
	}
	return m.Kind
}

func typedValue(value string, kind typeinfo.Kind) interface{} {
	trimmed := strings.TrimSpace(value)
	switch kind {
	case typeinfo.KindInteger:
		if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return n
		}
	case typeinfo.KindDecimal:
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return f
		}
	case typeinfo.KindBoolean:
		if b, err := strconv.ParseBool(trimmed); err == nil {
			return b
		}
	}
	return value
}

// escapeKey escapes gjson path characters in column names.
func escapeKey(name string) string {
	var b strings.Builder
	for _, c := range name {
		switch c {
		case '.', '*', '?', '|', '#', '@', '\\', ':', '!', '=', '<', '>', '%':
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}
