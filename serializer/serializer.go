// Package serializer defines the contract between a table and the
// components that read and write its records in a concrete text format.
package serializer

import (
	"io"

	"github.com/safing/tabletext/record"
	"github.com/safing/tabletext/typeinfo"
)

// Serializer reads and writes the records of a table.
//
// Serialize and Deserialize work on byte streams and apply the configured
// encoding. SerializeText and DeserializeText work on UTF-8 text and never
// transcode. None of the methods close the given stream.
type Serializer interface {
	Serialize(w io.Writer) error
	SerializeText(w io.Writer) error
	Deserialize(r io.Reader) error
	DeserializeText(r io.Reader) error
	SetEncoding(name string, bigEndian, bom bool)
}

// Target is the view of a table a serializer works on.
type Target interface {
	TableType() *typeinfo.TableType
	Header() *record.Header
	Size() int
	GetAt(index int) (*record.Record, error)
	Add(r *record.Record)
	Clear()
}

// Factory creates a serializer bound to a table.
type Factory func(t Target) Serializer
