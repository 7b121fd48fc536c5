package column

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/library-proxy/internal/columns"
)

func serve(path string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/columns/{table}", Get())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestGet_Books(t *testing.T) {
	rec := serve("/api/columns/books")
	require.Equal(t, http.StatusOK, rec.Code)

	var cols []columns.Column
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cols))
	assert.Equal(t, columns.Books(), cols)
}

func TestGet_Students(t *testing.T) {
	rec := serve("/api/columns/students")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, rec.Body.String(), `"accessorKey":"full_name"`)
	assert.Contains(t, rec.Body.String(), `"inactive":"error"`)
}

func TestGet_UnknownTable(t *testing.T) {
	rec := serve("/api/columns/loans")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"status":"error","error":"unknown table \"loans\""}`, rec.Body.String())
}
