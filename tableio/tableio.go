// Package tableio describes the sources and sinks a table can be parsed
// from and saved to. Each Input and Output carries a kind tag that the
// table dispatches on.
package tableio

import "io"

// Kind tags the representation behind an Input or Output.
type Kind uint8

// Kinds. The zero value is not a valid kind.
const (
	KindUnknown Kind = iota
	// KindDOM is a structured tree, which text tables cannot be read from or written to.
	KindDOM
	// KindStream is an encoded byte stream.
	KindStream
	// KindText is UTF-8 text from a reader or to a writer.
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindDOM:
		return "dom"
	case KindStream:
		return "stream"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Input is a source to parse a table from.
type Input struct {
	kind   Kind
	stream io.Reader
	reader io.Reader
	dom    interface{}
}

// NewStreamInput returns an input reading encoded bytes from r.
func NewStreamInput(r io.Reader) *Input {
	return &Input{kind: KindStream, stream: r}
}

// NewReaderInput returns an input reading UTF-8 text from r.
func NewReaderInput(r io.Reader) *Input {
	return &Input{kind: KindText, reader: r}
}

// NewDOMInput returns an input holding a structured tree.
func NewDOMInput(node interface{}) *Input {
	return &Input{kind: KindDOM, dom: node}
}

// Kind returns the kind of the input. A nil input has no kind.
func (in *Input) Kind() Kind {
	if in == nil {
		return KindUnknown
	}
	return in.kind
}

// Stream returns the byte stream of a stream input.
func (in *Input) Stream() io.Reader {
	return in.stream
}

// Reader returns the text reader of a text input.
func (in *Input) Reader() io.Reader {
	return in.reader
}

// DOM returns the tree of a DOM input.
func (in *Input) DOM() interface{} {
	return in.dom
}

// Output is a sink to save a table to.
type Output struct {
	kind   Kind
	stream io.Writer
	writer io.Writer
	dom    interface{}
}

// NewStreamOutput returns an output writing encoded bytes to w.
func NewStreamOutput(w io.Writer) *Output {
	return &Output{kind: KindStream, stream: w}
}

// NewWriterOutput returns an output writing UTF-8 text to w.
func NewWriterOutput(w io.Writer) *Output {
	return &Output{kind: KindText, writer: w}
}

// NewDOMOutput returns an output holding a structured tree.
func NewDOMOutput(node interface{}) *Output {
	return &Output{kind: KindDOM, dom: node}
}

// Kind returns the kind of the output. A nil output has no kind.
func (out *Output) Kind() Kind {
	if out == nil {
		return KindUnknown
	}
	return out.kind
}

// Stream returns the byte stream of a stream output.
func (out *Output) Stream() io.Writer {
	return out.stream
}

// Writer returns the text writer of a text output.
func (out *Output) Writer() io.Writer {
	return out.writer
}

// DOM returns the tree of a DOM output.
func (out *Output) DOM() interface{} {
	return out.dom
}
