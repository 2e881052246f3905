package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safing/tabletext/database"
	_ "github.com/safing/tabletext/database/storage/hashmap"
	"github.com/safing/tabletext/serializers/delimited"
	"github.com/safing/tabletext/table"
	"github.com/safing/tabletext/typeinfo"
)

var people = &typeinfo.TableType{
	Name: "people",
	Members: []typeinfo.Member{
		{Name: "name"},
		{Name: "age", Kind: typeinfo.KindInteger},
	},
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := database.Open("test", "hashmap", "")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	router := NewRouter(db, func() *table.Table {
		tbl, err := table.New(people, delimited.New(delimited.Options{Separator: ',', Header: true}))
		if err != nil {
			panic(err)
		}
		return tbl
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, contentType, accept, body string) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body)) //nolint:noctx
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(data)
}

const peopleCSV = "name,age\nann,31\nbob,42\n"

func TestTableLifecycle(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	url := srv.URL + "/tables/teams/people"

	resp, body := do(t, http.MethodPut, url, "text/csv", "", peopleCSV)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	var meta database.Meta
	require.NoError(t, json.Unmarshal([]byte(body), &meta))
	assert.Equal(t, 2, meta.Records)
	assert.Equal(t, meta.ID, resp.Header.Get(headerTableID))

	resp, body = do(t, http.MethodPut, url, "text/csv; charset=utf-8", "", peopleCSV)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	resp, body = do(t, http.MethodGet, url, "", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, peopleCSV, body)
	assert.Equal(t, "text/plain", resp.Header.Get("Content-Type"))
	assert.Equal(t, meta.ID, resp.Header.Get(headerTableID))

	resp, body = do(t, http.MethodGet, url, "", "text/csv", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Equal(t, peopleCSV, body)

	resp, body = do(t, http.MethodGet, url, "", "application/json", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"type":"people","columns":["name","age"],"rows":[["ann","31"],["bob","42"]]}`, body)

	resp, _ = do(t, http.MethodGet, srv.URL+"/tables?prefix=teams/", "", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, http.MethodDelete, url, "", "", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, http.MethodGet, url, "", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStructuredUpload(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	url := srv.URL + "/tables/yaml"

	doc := "type: people\ncolumns: [name, age]\nrows:\n- [carl, \"7\"]\n"
	resp, body := do(t, http.MethodPut, url, "application/yaml", "", doc)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)

	resp, body = do(t, http.MethodGet, url, "", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "name,age\ncarl,7\n", body)
}

func TestList(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	for _, key := range []string{"a/1", "a/2", "b/1"} {
		resp, body := do(t, http.MethodPut, srv.URL+"/tables/"+key, "text/csv", "", peopleCSV)
		require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	}

	resp, body := do(t, http.MethodGet, srv.URL+"/tables?prefix=a/", "", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `["a/1","a/2"]`, body)

	_, body = do(t, http.MethodGet, srv.URL+"/tables?prefix=zzz", "", "", "")
	assert.JSONEq(t, `[]`, body)
}

func TestErrorStatus(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	url := srv.URL + "/tables/bad"

	tests := []struct {
		name        string
		method      string
		contentType string
		accept      string
		body        string
		status      int
	}{
		{name: "missing", method: http.MethodGet, status: http.StatusNotFound},
		{name: "field count", method: http.MethodPut, contentType: "text/csv", body: "name,age\nann\n", status: http.StatusUnprocessableEntity},
		{name: "invalid kind", method: http.MethodPut, contentType: "text/csv", body: "name,age\nann,old\n", status: http.StatusUnprocessableEntity},
		{name: "broken json", method: http.MethodPut, contentType: "application/json", body: "{", status: http.StatusUnprocessableEntity},
		{name: "media type", method: http.MethodPut, contentType: "image/png", body: "x", status: http.StatusUnsupportedMediaType},
		{name: "method", method: http.MethodPost, status: http.StatusMethodNotAllowed},
	}
	for _, tc := range tests {
		resp, body := do(t, tc.method, url, tc.contentType, tc.accept, tc.body)
		assert.Equal(t, tc.status, resp.StatusCode, "%s: %s", tc.name, body)
	}

	resp, body := do(t, http.MethodPut, url, "text/csv", "", peopleCSV)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	resp, _ = do(t, http.MethodGet, url, "", "image/png", "")
	assert.Equal(t, http.StatusNotAcceptable, resp.StatusCode)
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	resp, body := do(t, http.MethodPut, srv.URL+"/tables/m", "text/csv", "", peopleCSV)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)

	resp, body = do(t, http.MethodGet, srv.URL+"/metrics", "", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `tabletext_database_ops_total{op="save"}`)
	assert.Contains(t, body, "tabletext_api_requests_total")
}
