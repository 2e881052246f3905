package dsd

import (
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMimeTypes(t *testing.T) {
	t.Parallel()

	// Test static maps.
	for _, mimeType := range FormatToMimeType {
		cleaned, _, err := mime.ParseMediaType(mimeType)
		assert.NoError(t, err, "mime type must be parse-able")
		assert.Equal(t, mimeType, cleaned, "mime type should be clean in map already")
	}
	for mimeType := range MimeTypeToFormat {
		cleaned, _, err := mime.ParseMediaType(mimeType)
		assert.NoError(t, err, "mime type must be parse-able")
		assert.Equal(t, mimeType, cleaned, "mime type should be clean in map already")
	}

	// Test assumptions.
	for mimeType, mimeTypeCleaned := range map[string]string{
		"application/xml, image/webp":       "application/xml",
		"application/xml;q=0.9, image/webp": "application/xml",
		"application/json; charset=utf-8":   "application/json",
		"text/yAMl":                         "text/yaml",
	} {
		assert.Equal(t, mimeTypeCleaned, cleanMimeType(mimeType), "assumption for %q should hold", mimeType)
	}
}

func TestHTTPRoundTrip(t *testing.T) {
	t.Parallel()

	subject := &SimpleTestStruct{S: "http", B: 2}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "application/cbor")
	rec := httptest.NewRecorder()
	require.NoError(t, DumpToHTTPResponse(rec, req, subject, JSON))
	assert.Equal(t, "application/cbor", rec.Header().Get("Content-Type"))

	put := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(rec.Body.String()))
	put.Header.Set("Content-Type", rec.Header().Get("Content-Type"))
	loaded := &SimpleTestStruct{}
	format, err := LoadFromHTTPRequest(put, loaded)
	require.NoError(t, err)
	assert.Equal(t, CBOR, format)
	assert.Equal(t, subject, loaded)

	put = httptest.NewRequest(http.MethodPut, "/", strings.NewReader("{}"))
	_, err = LoadFromHTTPRequest(put, loaded)
	assert.ErrorIs(t, err, ErrMissingContentType)
}
