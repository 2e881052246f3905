package table

import (
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/copystructure"

	"github.com/safing/tabletext/log"
	"github.com/safing/tabletext/metrics"
	"github.com/safing/tabletext/record"
	"github.com/safing/tabletext/serializer"
	"github.com/safing/tabletext/tableio"
	"github.com/safing/tabletext/typeinfo"
)

// Table is an ordered set of records with a header and a serializer that
// reads and writes them. A Table is not safe for concurrent use.
type Table struct {
	records   []*record.Record
	header    *record.Header
	tableType *typeinfo.TableType

	factory    serializer.Factory
	serializer serializer.Serializer
}

// New returns an empty table of the given type. The header is initialized
// from the type's members, then the serializer is created by the factory.
// The table type may be nil for tables without a fixed structure.
func New(tableType *typeinfo.TableType, factory serializer.Factory) (*Table, error) {
	if factory == nil {
		return nil, ErrNoSerializer
	}

	t := &Table{
		header:    record.NewHeaderFromType(tableType),
		tableType: tableType,
		factory:   factory,
	}
	t.serializer = factory(t)
	if t.serializer == nil {
		return nil, ErrNoSerializer
	}
	return t, nil
}

// TableType returns the type of the table.
func (t *Table) TableType() *typeinfo.TableType {
	return t.tableType
}

// Header returns the header of the table.
func (t *Table) Header() *record.Header {
	return t.header
}

// Size returns the number of records.
func (t *Table) Size() int {
	return len(t.records)
}

// Add appends a record.
func (t *Table) Add(r *record.Record) {
	t.records = append(t.records, r)
}

// Clear removes all records.
func (t *Table) Clear() {
	t.records = nil
}

// GetAt returns the record at the given index.
func (t *Table) GetAt(index int) (*record.Record, error) {
	if index < 0 || index >= len(t.records) {
		return nil, newError(IndexOutOfBounds, "get", fmt.Sprintf("index %d out of range [0,%d)", index, len(t.records)), nil)
	}
	return t.records[index], nil
}

// Records returns a copy of the record list. The records themselves are shared.
func (t *Table) Records() []*record.Record {
	return append([]*record.Record(nil), t.records...)
}

// SetEncoding sets the encoding the serializer uses for byte streams.
func (t *Table) SetEncoding(name string, bigEndian, bom bool) {
	t.serializer.SetEncoding(name, bigEndian, bom)
}

// Save writes the table to the given output.
func (t *Table) Save(out *tableio.Output) error {
	log.Tracef("table: saving %s to %s output", t.name(), out.Kind())

	switch out.Kind() {
	case tableio.KindDOM:
		return t.fail(newError(UnsupportedOperation, "save", "this is a text component, it cannot be written into DOM", nil))
	case tableio.KindStream:
		return t.SaveStream(out.Stream())
	case tableio.KindText:
		return t.SaveWriter(out.Writer())
	default:
		return t.fail(newError(UnknownKind, "save", "unknown output type", nil))
	}
}

// SaveStream writes the table to an encoded byte stream.
func (t *Table) SaveStream(w io.Writer) error {
	metrics.Counter("table_saves_total", "kind", tableio.KindStream.String()).Inc()
	return t.wrap("save", t.serializer.Serialize(w))
}

// SaveWriter writes the table as UTF-8 text.
func (t *Table) SaveWriter(w io.Writer) error {
	metrics.Counter("table_saves_total", "kind", tableio.KindText.String()).Inc()
	return t.wrap("save", t.serializer.SerializeText(w))
}

// Parse reads records from the given input.
func (t *Table) Parse(in *tableio.Input) error {
	log.Tracef("table: parsing %s from %s input", t.name(), in.Kind())

	switch in.Kind() {
	case tableio.KindDOM:
		return t.fail(newError(UnsupportedOperation, "parse", "this is a text component, it cannot be read from DOM", nil))
	case tableio.KindStream:
		return t.ParseStream(in.Stream())
	case tableio.KindText:
		return t.ParseReader(in.Reader())
	default:
		return t.fail(newError(UnknownKind, "parse", "unknown input type", nil))
	}
}

// ParseReader reads records from UTF-8 text.
func (t *Table) ParseReader(r io.Reader) error {
	metrics.Counter("table_parses_total", "kind", tableio.KindText.String()).Inc()
	return t.wrap("parse", t.serializer.DeserializeText(r))
}

// ParseStream reads records from an encoded byte stream.
func (t *Table) ParseStream(r io.Reader) error {
	metrics.Counter("table_parses_total", "kind", tableio.KindStream.String()).Inc()
	return t.wrap("parse", t.serializer.Deserialize(r))
}

// Validate checks all records against the header and the member kinds of
// the table type. All problems are reported together.
func (t *Table) Validate() error {
	var result *multierror.Error

	columns := t.header.Len()
	for i, r := range t.records {
		if r == nil {
			result = multierror.Append(result, fmt.Errorf("record %d: missing", i))
			continue
		}
		if r.Len() != columns {
			result = multierror.Append(result, fmt.Errorf("record %d: has %d fields, header has %d columns", i, r.Len(), columns))
		}
		if t.tableType == nil {
			continue
		}
		for j, m := range t.tableType.Members {
			value, ok := r.Get(j)
			if !ok {
				break
			}
			if err := m.Kind.Check(value); err != nil {
				result = multierror.Append(result, fmt.Errorf("record %d: field %s: %w", i, m.Name, err))
			}
		}
	}

	return result.ErrorOrNil()
}

// Clone returns a deep copy of the table with a new serializer from the same
// factory. Encoding settings are not carried over.
func (t *Table) Clone() (*Table, error) {
	copied, err := copystructure.Copy(t.records)
	if err != nil {
		return nil, fmt.Errorf("table: failed to copy records: %w", err)
	}

	clone, err := New(t.tableType, t.factory)
	if err != nil {
		return nil, err
	}
	clone.header.Reset(t.header.Names()...)
	clone.records, _ = copied.([]*record.Record)
	return clone, nil
}

// wrap turns mapping errors of the serializer into table errors. Other errors pass unchanged.
func (t *Table) wrap(op string, err error) error {
	if err == nil {
		return nil
	}

	var mappingErr *serializer.MappingError
	if errors.As(err, &mappingErr) {
		log.Warningf("table: failed to %s %s: %s", op, t.name(), err)
		return t.fail(newError(MappingFailure, op, "mapping failed", err))
	}
	return err
}

func (t *Table) fail(err *Error) error {
	metrics.Counter("table_errors_total", "kind", err.Kind.String()).Inc()
	return err
}

func (t *Table) name() string {
	if t.tableType == nil || t.tableType.Name == "" {
		return "table"
	}
	return t.tableType.Name
}
