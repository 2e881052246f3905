package structured

import (
	"fmt"

	"github.com/safing/tabletext/record"
	"github.com/safing/tabletext/serializer"
)

// Document is the structured form of a table.
type Document struct {
	Type    string     `json:"type,omitempty" msgpack:"type,omitempty"`
	Columns []string   `json:"columns" msgpack:"columns"`
	Rows    [][]string `json:"rows" msgpack:"rows"`
}

// DocumentFrom builds a document holding all records of the table.
func DocumentFrom(t serializer.Target) (*Document, error) {
	doc := &Document{
		Columns: t.Header().Names(),
		Rows:    make([][]string, 0, t.Size()),
	}
	if tt := t.TableType(); tt != nil {
		doc.Type = tt.Name
	}

	for i := 0; i < t.Size(); i++ {
		r, err := t.GetAt(i)
		if err != nil {
			return nil, err
		}
		if r == nil {
			return nil, serializer.NewMappingError(serializer.OpSerialize, 0, fmt.Sprintf("record %d is missing", i), nil)
		}
		doc.Rows = append(doc.Rows, r.Values())
	}

	return doc, nil
}

// ApplyTo appends the rows of the document to the table. The columns set
// the header of a table without one, otherwise their count must match.
func (doc *Document) ApplyTo(t serializer.Target) error {
	if tt := t.TableType(); tt != nil && tt.Name != "" && doc.Type != "" && doc.Type != tt.Name {
		return serializer.NewMappingError(serializer.OpDeserialize, 0,
			fmt.Sprintf("document holds type %q, table is %q", doc.Type, tt.Name), nil)
	}

	header := t.Header()
	switch {
	case header.Len() == 0:
		header.Reset(doc.Columns...)
	case len(doc.Columns) != 0 && len(doc.Columns) != header.Len():
		return serializer.NewMappingError(serializer.OpDeserialize, 0,
			fmt.Sprintf("document has %d columns, expected %d", len(doc.Columns), header.Len()), nil)
	}

	// Check all rows before adding any.
	for i, row := range doc.Rows {
		if header.Len() > 0 && len(row) != header.Len() {
			return serializer.NewMappingError(serializer.OpDeserialize, i+1,
				fmt.Sprintf("row has %d fields, expected %d", len(row), header.Len()), nil)
		}
	}
	for _, row := range doc.Rows {
		t.Add(record.New(row...))
	}

	return nil
}
