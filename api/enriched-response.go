package api

import (
	"net/http"
)

// EnrichedResponseWriter records the status code written to a response.
type EnrichedResponseWriter struct {
	http.ResponseWriter
	Status int
}

// NewEnrichedResponseWriter wraps the response writer.
func NewEnrichedResponseWriter(w http.ResponseWriter) *EnrichedResponseWriter {
	return &EnrichedResponseWriter{
		w,
		0,
	}
}

// WriteHeader records the status code and writes it.
func (ew *EnrichedResponseWriter) WriteHeader(code int) {
	if ew.Status == 0 {
		ew.Status = code
	}
	ew.ResponseWriter.WriteHeader(code)
}

// Write writes the data, with an implicit 200 status if none was written.
func (ew *EnrichedResponseWriter) Write(data []byte) (int, error) {
	if ew.Status == 0 {
		ew.Status = http.StatusOK
	}
	return ew.ResponseWriter.Write(data)
}
