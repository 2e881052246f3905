package dsd

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

// HTTP Related Errors.
var (
	ErrMissingBody        = errors.New("dsd: missing http body")
	ErrMissingContentType = errors.New("dsd: missing http content type")
)

const (
	httpHeaderContentType = "Content-Type"
)

// LoadFromHTTPRequest loads the data from the body into the given interface.
func LoadFromHTTPRequest(r *http.Request, t interface{}) (format SerializationFormat, err error) {
	return loadFromHTTP(r.Body, r.Header.Get(httpHeaderContentType), t)
}

// LoadFromHTTPResponse loads the data from the body into the given interface.
// Closing the body is left to the caller.
func LoadFromHTTPResponse(resp *http.Response, t interface{}) (format SerializationFormat, err error) {
	return loadFromHTTP(resp.Body, resp.Header.Get(httpHeaderContentType), t)
}

func loadFromHTTP(body io.Reader, mimeType string, t interface{}) (format SerializationFormat, err error) {
	if body == nil {
		return 0, ErrMissingBody
	}

	// Read full body.
	data, err := io.ReadAll(body)
	if err != nil {
		return 0, fmt.Errorf("dsd: failed to read http body: %w", err)
	}

	// Get format from mime type.
	format, err = FormatFromMimeType(mimeType)
	if err != nil {
		return 0, err
	}

	// Parse data..
	return format, LoadAsFormat(data, format, t)
}

// FormatFromMimeType returns the serialization format for the given mime type, which may carry parameters.
func FormatFromMimeType(mimeType string) (SerializationFormat, error) {
	if mimeType == "" {
		return 0, ErrMissingContentType
	}
	format, ok := MimeTypeToFormat[cleanMimeType(mimeType)]
	if !ok {
		return 0, ErrIncompatibleFormat
	}
	return format, nil
}

// DumpToHTTPResponse dumps the given data to the http response, using the
// format defined in the Accept header.
func DumpToHTTPResponse(w http.ResponseWriter, r *http.Request, t interface{}, fallbackFormat SerializationFormat) error {
	// Get format from Accept header.
	format, ok := MimeTypeToFormat[cleanMimeType(r.Header.Get("Accept"))]
	if !ok {
		format = fallbackFormat
	}
	format, ok = format.ValidateSerializationFormat()
	if !ok {
		return ErrIncompatibleFormat
	}
	mimeType, ok := FormatToMimeType[format]
	if !ok {
		return ErrIncompatibleFormat
	}

	// Serialize data.
	data, err := DumpWithoutIdentifier(t, format)
	if err != nil {
		return fmt.Errorf("dsd: failed to serialize: %w", err)
	}

	// Write data to response
	w.Header().Set(httpHeaderContentType, mimeType)
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("dsd: failed to write response: %w", err)
	}
	return nil
}

// cleanMimeType returns the first mime type of a list, without parameters.
func cleanMimeType(mimeType string) string {
	if strings.Contains(mimeType, ",") {
		mimeType = strings.SplitN(mimeType, ",", 2)[0]
	}
	cleaned, _, err := mime.ParseMediaType(strings.TrimSpace(mimeType))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(mimeType))
	}
	return cleaned
}

// Format and MimeType mappings.
var (
	FormatToMimeType = map[SerializationFormat]string{
		JSON:    "application/json",
		CBOR:    "application/cbor",
		MsgPack: "application/msgpack",
		YAML:    "application/yaml",
	}
	MimeTypeToFormat = map[string]SerializationFormat{
		"application/json":    JSON,
		"application/cbor":    CBOR,
		"application/msgpack": MsgPack,
		"application/yaml":    YAML,
		"text/yaml":           YAML,
	}
)
