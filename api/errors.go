package api

import (
	"errors"
	"net/http"

	"github.com/safing/tabletext/database"
	"github.com/safing/tabletext/database/storage"
	"github.com/safing/tabletext/formats/dsd"
	"github.com/safing/tabletext/log"
	"github.com/safing/tabletext/serializer"
	"github.com/safing/tabletext/table"
)

// API Errors.
var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrNotAcceptable        = errors.New("none of the accepted media types can be produced")
)

// statusOf returns the http status code for an error.
func statusOf(err error) int {
	var mappingErr *serializer.MappingError
	switch {
	case errors.Is(err, database.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrInvalidKey):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnsupportedMediaType),
		errors.Is(err, dsd.ErrMissingContentType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ErrNotAcceptable):
		return http.StatusNotAcceptable
	case errors.Is(err, table.ErrMappingFailure),
		errors.As(err, &mappingErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, database.ErrShuttingDown):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes the error as plain text with the matching status code.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		log.Warningf("api: %s %s failed: %s", r.Method, r.URL.Path, err)
	}
	http.Error(w, err.Error(), status)
}
