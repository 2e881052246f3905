// Package delimited reads and writes tables as delimiter separated text,
// such as CSV or TSV.
package delimited

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/safing/tabletext/log"
	"github.com/safing/tabletext/record"
	"github.com/safing/tabletext/serializer"
	"github.com/safing/tabletext/textenc"
)

// Options configure the text layout.
type Options struct {
	// Separator separates the fields of a row.
	Separator rune
	// Header enables a leading row of column names.
	Header bool
	// CRLF ends rows with \r\n instead of \n.
	CRLF bool
	// LazyQuotes accepts quotes in unquoted fields and unescaped quotes in quoted fields.
	LazyQuotes bool
}

// Serializer reads and writes delimited text.
type Serializer struct {
	target   serializer.Target
	opts     Options
	encoding textenc.Settings
}

// New returns a factory for delimited serializers with the given options.
// The encoding is taken from the configuration.
func New(opts Options) serializer.Factory {
	return func(t serializer.Target) serializer.Serializer {
		return &Serializer{
			target:   t,
			opts:     opts,
			encoding: textenc.Configured(),
		}
	}
}

// SetEncoding sets the encoding used by Serialize and Deserialize.
func (s *Serializer) SetEncoding(name string, bigEndian, bom bool) {
	s.encoding = textenc.Settings{
		Name:      name,
		BigEndian: bigEndian,
		BOM:       bom,
	}
}

// Serialize writes the table to w in the configured encoding.
func (s *Serializer) Serialize(w io.Writer) error {
	ew, err := textenc.NewWriter(w, s.encoding)
	if err != nil {
		return fmt.Errorf("delimited: %w", err)
	}

	if err := s.SerializeText(ew); err != nil {
		_ = ew.Close()
		return err
	}
	return ew.Close()
}

// SerializeText writes the table to w as UTF-8.
func (s *Serializer) SerializeText(w io.Writer) error {
	if !validSeparator(s.opts.Separator) {
		return serializer.NewMappingError(serializer.OpSerialize, 0, fmt.Sprintf("invalid separator %q", s.opts.Separator), nil)
	}

	cw := csv.NewWriter(w)
	cw.Comma = s.opts.Separator
	cw.UseCRLF = s.opts.CRLF

	header := s.target.Header()
	if s.opts.Header && header.Len() > 0 {
		if err := cw.Write(header.Names()); err != nil {
			return err
		}
	}

	size := s.target.Size()
	for i := 0; i < size; i++ {
		r, err := s.target.GetAt(i)
		if err != nil {
			return err
		}
		if r == nil {
			return serializer.NewMappingError(serializer.OpSerialize, 0, fmt.Sprintf("record %d is missing", i), nil)
		}
		if err := cw.Write(r.Values()); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Deserialize reads records from r in the configured encoding and appends them to the table.
func (s *Serializer) Deserialize(r io.Reader) error {
	dr, err := textenc.NewReader(r, s.encoding)
	if err != nil {
		return fmt.Errorf("delimited: %w", err)
	}
	return s.DeserializeText(dr)
}

// DeserializeText reads UTF-8 records from r and appends them to the table.
// With a header row enabled, the first row sets the column names of a table
// without header. Otherwise it must have as many columns as the table header.
func (s *Serializer) DeserializeText(r io.Reader) error {
	if !validSeparator(s.opts.Separator) {
		return serializer.NewMappingError(serializer.OpDeserialize, 0, fmt.Sprintf("invalid separator %q", s.opts.Separator), nil)
	}

	cr := csv.NewReader(r)
	cr.Comma = s.opts.Separator
	cr.LazyQuotes = s.opts.LazyQuotes
	cr.FieldsPerRecord = -1

	// Rows and a header taken from the input are applied once the whole
	// input has been read.
	columns := s.target.Header().Names()
	var (
		newHeader []string
		rows      []*record.Record
	)
	expectHeader := s.opts.Header
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return serializer.NewMappingError(serializer.OpDeserialize, parseErr.Line, "", parseErr.Err)
			}
			return err
		}
		line, _ := cr.FieldPos(0)

		if expectHeader {
			expectHeader = false
			if len(columns) == 0 {
				newHeader = fields
				columns = fields
				continue
			}
			if err := checkHeader(fields, columns); err != nil {
				return serializer.NewMappingError(serializer.OpDeserialize, line, err.Error(), nil)
			}
			continue
		}

		if len(columns) > 0 && len(fields) != len(columns) {
			return serializer.NewMappingError(serializer.OpDeserialize, line,
				fmt.Sprintf("record has %d fields, expected %d", len(fields), len(columns)), nil)
		}
		rows = append(rows, record.New(fields...))
	}

	if newHeader != nil {
		s.target.Header().Reset(newHeader...)
	}
	for _, r := range rows {
		s.target.Add(r)
	}

	log.Tracef("delimited: read %d records", len(rows))
	return nil
}

// checkHeader compares a header row with the column names of the table.
func checkHeader(fields, columns []string) error {
	if len(fields) != len(columns) {
		return fmt.Errorf("header has %d columns, expected %d", len(fields), len(columns))
	}
	for i, name := range fields {
		if name != columns[i] {
			return fmt.Errorf("header column %d is %q, expected %q", i+1, name, columns[i])
		}
	}
	return nil
}

func validSeparator(r rune) bool {
	return r != 0 && r != '"' && r != '\r' && r != '\n' && utf8.ValidRune(r) && r != utf8.RuneError
}
