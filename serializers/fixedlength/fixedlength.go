// Package fixedlength reads and writes tables as text with fixed field
// widths. Widths are taken from the members of the table type.
package fixedlength

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/safing/tabletext/log"
	"github.com/safing/tabletext/record"
	"github.com/safing/tabletext/serializer"
	"github.com/safing/tabletext/textenc"
	"github.com/safing/tabletext/typeinfo"
)

const maxLineLength = 1 << 20

// Options configure the text layout.
type Options struct {
	// Padding fills fields shorter than their width.
	Padding rune
	// Header enables a leading line of column names. On read it is skipped.
	Header bool
	// CRLF ends lines with \r\n instead of \n.
	CRLF bool
}

// Serializer reads and writes fixed-length text.
type Serializer struct {
	target   serializer.Target
	opts     Options
	encoding textenc.Settings
}

// New returns a factory for fixed-length serializers with the given options.
// The encoding is taken from the configuration.
func New(opts Options) serializer.Factory {
	if opts.Padding == 0 {
		opts.Padding = ' '
	}
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
		return fmt.Errorf("fixedlength: %w", err)
	}

	if err := s.SerializeText(ew); err != nil {
		_ = ew.Close()
		return err
	}
	return ew.Close()
}

// SerializeText writes the table to w as UTF-8.
func (s *Serializer) SerializeText(w io.Writer) error {
	members, err := s.members(serializer.OpSerialize)
	if err != nil {
		return err
	}

	eol := "\n"
	if s.opts.CRLF {
		eol = "\r\n"
	}

	bw := bufio.NewWriter(w)
	line := 0

	if s.opts.Header {
		line++
		for _, m := range members {
			// Names longer than the field are cut.
			name := []rune(m.Name)
			if len(name) > m.Width {
				name = name[:m.Width]
			}
			_, _ = bw.WriteString(s.pad(string(name), m))
		}
		_, _ = bw.WriteString(eol)
	}

	size := s.target.Size()
	for i := 0; i < size; i++ {
		line++
		r, err := s.target.GetAt(i)
		if err != nil {
			return err
		}
		if r == nil {
			return serializer.NewMappingError(serializer.OpSerialize, line, fmt.Sprintf("record %d is missing", i), nil)
		}

		for j, m := range members {
			value, _ := r.Get(j)
			if utf8.RuneCountInString(value) > m.Width {
				return serializer.NewMappingError(serializer.OpSerialize, line,
					fmt.Sprintf("value of %s exceeds width %d", m.Name, m.Width), nil)
			}
			_, _ = bw.WriteString(s.pad(value, m))
		}
		_, _ = bw.WriteString(eol)
	}

	return bw.Flush()
}

// Deserialize reads records from r in the configured encoding and appends them to the table.
func (s *Serializer) Deserialize(r io.Reader) error {
	dr, err := textenc.NewReader(r, s.encoding)
	if err != nil {
		return fmt.Errorf("fixedlength: %w", err)
	}
	return s.DeserializeText(dr)
}

// DeserializeText reads UTF-8 records from r and appends them to the table.
// Empty lines are skipped.
func (s *Serializer) DeserializeText(r io.Reader) error {
	members, err := s.members(serializer.OpDeserialize)
	if err != nil {
		return err
	}

	total := 0
	for _, m := range members {
		total += m.Width
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)

	skipHeader := s.opts.Header
	line := 0
	// Records are added once the whole input has been read.
	var rows []*record.Record
	for scanner.Scan() {
		line++
		text := strings.TrimSuffix(scanner.Text(), "\r")
		if text == "" {
			continue
		}
		if skipHeader {
			skipHeader = false
			continue
		}

		runes := []rune(text)
		if len(runes) < total {
			return serializer.NewMappingError(serializer.OpDeserialize, line,
				fmt.Sprintf("line has %d characters, expected %d", len(runes), total), nil)
		}
		if rest := string(runes[total:]); strings.TrimSpace(rest) != "" {
			return serializer.NewMappingError(serializer.OpDeserialize, line,
				fmt.Sprintf("unexpected trailing data %q", rest), nil)
		}

		fields := make([]string, 0, len(members))
		offset := 0
		for _, m := range members {
			fields = append(fields, s.trim(string(runes[offset:offset+m.Width]), m))
			offset += m.Width
		}
		rows = append(rows, record.New(fields...))
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return serializer.NewMappingError(serializer.OpDeserialize, line+1,
				fmt.Sprintf("line exceeds %d bytes", maxLineLength), err)
		}
		return err
	}

	for _, r := range rows {
		s.target.Add(r)
	}
	log.Tracef("fixedlength: read %d records", len(rows))
	return nil
}

func (s *Serializer) members(op string) ([]typeinfo.Member, error) {
	tt := s.target.TableType()
	if tt == nil || len(tt.Members) == 0 {
		return nil, serializer.NewMappingError(op, 0, "table type has no members", nil)
	}
	for _, m := range tt.Members {
		if m.Width <= 0 {
			return nil, serializer.NewMappingError(op, 0, fmt.Sprintf("member %s has no width", m.Name), nil)
		}
	}
	return tt.Members, nil
}

// pad fills value to the member width. Numbers are aligned right.
func (s *Serializer) pad(value string, m typeinfo.Member) string {
	missing := m.Width - utf8.RuneCountInString(value)
	if missing <= 0 {
		return value
	}
	fill := strings.Repeat(string(s.opts.Padding), missing)
	if m.Kind.IsNumeric() {
		return fill + value
	}
	return value + fill
}

func (s *Serializer) trim(field string, m typeinfo.Member) string {
	if m.Kind.IsNumeric() {
		return strings.TrimLeft(field, string(s.opts.Padding))
	}
	return strings.TrimRight(field, string(s.opts.Padding))
}
