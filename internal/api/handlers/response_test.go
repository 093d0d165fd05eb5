package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Иван"}`))
	require.NoError(t, DecodeJSON(r, &v))
	assert.Equal(t, "Иван", v.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Иван","extra":1}`))
	assert.Error(t, DecodeJSON(r, &v))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.Error(t, DecodeJSON(r, &v))
}

func TestRespondHelpers(t *testing.T) {
	tests := []struct {
		name    string
		respond func(w http.ResponseWriter)
		status  int
		message string
	}{
		{"bad request", func(w http.ResponseWriter) { RespondBadRequest(w, "плохо") }, http.StatusBadRequest, "плохо"},
		{"unauthorized", func(w http.ResponseWriter) { RespondUnauthorized(w, "войдите") }, http.StatusUnauthorized, "войдите"},
		{"not found", func(w http.ResponseWriter) { RespondNotFound(w, "нет") }, http.StatusNotFound, "нет"},
		{"conflict", func(w http.ResponseWriter) { RespondConflict(w, "занято") }, http.StatusConflict, "занято"},
		{"bad gateway", RespondBadGateway, http.StatusBadGateway, msgServiceUnavailable},
		{"internal", RespondInternalError, http.StatusInternalServerError, msgInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.respond(rec)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.message, body.Error)
		})
	}
}

func TestRespondNoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondNoContent(rec)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())
}
