// Package structured reads and writes tables as structured documents in
// JSON, YAML, CBOR or MsgPack.
package structured

import (
	"fmt"
	"io"

	"github.com/safing/tabletext/formats/dsd"
	"github.com/safing/tabletext/log"
	"github.com/safing/tabletext/serializer"
)

// Options configure the document format.
type Options struct {
	Format dsd.SerializationFormat
	// Compress enables gzip compression on byte streams.
	Compress bool
}

// Serializer reads and writes structured documents.
type Serializer struct {
	target serializer.Target
	opts   Options
}

// New returns a factory for structured serializers with the given options.
func New(opts Options) serializer.Factory {
	return func(t serializer.Target) serializer.Serializer {
		return &Serializer{
			target: t,
			opts:   opts,
		}
	}
}

// SetEncoding has no effect, documents are always written in their native encoding.
func (s *Serializer) SetEncoding(name string, _, _ bool) {
	log.Debugf("structured: ignoring encoding %s", name)
}

// Serialize writes the table as a document prefixed with its format identifier.
func (s *Serializer) Serialize(w io.Writer) error {
	data, err := Marshal(s.target, s.opts)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// SerializeText writes the table as a text document without format identifier.
// It fails for binary formats.
func (s *Serializer) SerializeText(w io.Writer) error {
	format, err := s.textFormat(serializer.OpSerialize)
	if err != nil {
		return err
	}

	doc, err := DocumentFrom(s.target)
	if err != nil {
		return err
	}
	data, err := dsd.DumpWithoutIdentifier(doc, format)
	if err != nil {
		return serializer.NewMappingError(serializer.OpSerialize, 0, "", err)
	}
	_, err = w.Write(data)
	return err
}

// Deserialize reads a document written by Serialize and appends its rows.
func (s *Serializer) Deserialize(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	_, err = Unmarshal(data, s.target)
	return err
}

// DeserializeText reads a text document in the configured format and appends its rows.
func (s *Serializer) DeserializeText(r io.Reader) error {
	format, err := s.textFormat(serializer.OpDeserialize)
	if err != nil {
		return err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	doc := &Document{}
	if err := dsd.LoadAsFormat(data, format, doc); err != nil {
		return serializer.NewMappingError(serializer.OpDeserialize, 0, "", err)
	}
	return doc.ApplyTo(s.target)
}

func (s *Serializer) textFormat(op string) (dsd.SerializationFormat, error) {
	format, ok := s.opts.Format.ValidateSerializationFormat()
	if !ok || !format.IsText() {
		return 0, serializer.NewMappingError(op, 0, fmt.Sprintf("%s is not a text format", s.opts.Format), dsd.ErrIncompatibleFormat)
	}
	return format, nil
}

// Marshal returns the table as a document in dsd format, optionally compressed.
func Marshal(t serializer.Target, opts Options) ([]byte, error) {
	doc, err := DocumentFrom(t)
	if err != nil {
		return nil, err
	}

	var data []byte
	if opts.Compress {
		data, err = dsd.DumpAndCompress(doc, opts.Format, dsd.GZIP)
	} else {
		data, err = dsd.Dump(doc, opts.Format)
	}
	if err != nil {
		return nil, serializer.NewMappingError(serializer.OpSerialize, 0, "", err)
	}
	return data, nil
}

// Unmarshal appends the rows of a document in dsd format to the table and
// returns the format it was stored in.
func Unmarshal(data []byte, t serializer.Target) (dsd.SerializationFormat, error) {
	doc := &Document{}
	format, err := dsd.LoadCompressed(data, doc)
	if err != nil {
		return 0, serializer.NewMappingError(serializer.OpDeserialize, 0, "", err)
	}
	return format, doc.ApplyTo(t)
}
