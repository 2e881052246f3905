package api

import (
	"bytes"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/safing/tabletext/database"
	"github.com/safing/tabletext/formats/dsd"
	"github.com/safing/tabletext/serializer"
	"github.com/safing/tabletext/serializers/structured"
	"github.com/safing/tabletext/table"
	"github.com/safing/tabletext/tableio"
)

const headerTableID = "X-Table-Id"

type tableHandler struct {
	db       *database.Database
	newTable func() *table.Table
}

func (th *tableHandler) list(w http.ResponseWriter, r *http.Request) {
	keys, err := th.db.List(r.URL.Query().Get("prefix"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if keys == nil {
		keys = []string{}
	}
	writeJSON(w, r, http.StatusOK, keys)
}

func (th *tableHandler) get(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	t := th.newTable()
	meta, err := th.db.LoadTable(key, t)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set(headerTableID, meta.ID)
	w.Header().Set("Last-Modified", time.Unix(meta.Modified, 0).UTC().Format(http.TimeFormat))

	accept := mediaType(r.Header.Get("Accept"))
	if _, ok := dsd.MimeTypeToFormat[accept]; ok {
		doc, err := structured.DocumentFrom(t)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if err := dsd.DumpToHTTPResponse(w, r, doc, dsd.JSON); err != nil {
			writeError(w, r, err)
		}
		return
	}
	if !isTextMediaType(accept) {
		writeError(w, r, ErrNotAcceptable)
		return
	}

	// Buffer, so that failures can still be reported.
	var buf bytes.Buffer
	if err := t.Save(tableio.NewStreamOutput(&buf)); err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", textContentType(accept))
	_, _ = w.Write(buf.Bytes())
}

func (th *tableHandler) put(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	contentType := mediaType(r.Header.Get("Content-Type"))

	t := th.newTable()
	if _, ok := dsd.MimeTypeToFormat[contentType]; ok {
		doc := &structured.Document{}
		if _, err := dsd.LoadFromHTTPRequest(r, doc); err != nil {
			writeError(w, r, serializer.NewMappingError(serializer.OpDeserialize, 0, "", err))
			return
		}
		if err := doc.ApplyTo(t); err != nil {
			writeError(w, r, err)
			return
		}
	} else {
		if contentType != "" && !isTextMediaType(contentType) {
			writeError(w, r, ErrUnsupportedMediaType)
			return
		}
		if err := t.Parse(tableio.NewStreamInput(r.Body)); err != nil {
			writeError(w, r, err)
			return
		}
	}

	if err := t.Validate(); err != nil {
		writeError(w, r, serializer.NewMappingError(serializer.OpDeserialize, 0, "invalid records", err))
		return
	}

	existed, err := th.db.Exists(key)
	if err != nil {
		writeError(w, r, err)
		return
	}
	meta, err := th.db.SaveTable(key, t)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set(headerTableID, meta.ID)
	status := http.StatusCreated
	if existed {
		status = http.StatusOK
	}
	writeJSON(w, r, status, meta)
}

func (th *tableHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := th.db.Delete(mux.Vars(r)["key"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	data, err := dsd.DumpWithoutIdentifier(v, dsd.JSON)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", dsd.FormatToMimeType[dsd.JSON])
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// mediaType returns the first media type of a header value, without parameters.
func mediaType(value string) string {
	value, _, _ = strings.Cut(value, ",")
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	parsed, _, err := mime.ParseMediaType(value)
	if err != nil {
		return strings.ToLower(value)
	}
	return parsed
}

func isTextMediaType(mt string) bool {
	switch mt {
	case "", "*/*", "text/*", "text/plain", "text/csv", "text/tab-separated-values":
		return true
	default:
		return false
	}
}

func textContentType(accept string) string {
	switch accept {
	case "text/csv", "text/tab-separated-values":
		return accept
	default:
		return "text/plain"
	}
}
