// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cite-check/pkg/types"
)

func postValidate(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/validate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestValidateEndpoint(t *testing.T) {
	s := &Server{}
	body := `{"text": "Kim, B. Y., & Lee, S. H. (2024). The impact of AI on education. Journal of Educational Technology, 45(2), 123–145. https://doi.org/10.1234/jet.2024"}`

	rec := postValidate(t, s, body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Results []types.ValidationResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, types.TypeJournal, resp.Results[0].Citation.Type)
	assert.Equal(t, 100, resp.Results[0].Score)
}

func TestValidateEndpointEmptyText(t *testing.T) {
	s := &Server{}
	rec := postValidate(t, s, `{"text": "   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no citation text")
}

func TestValidateEndpointBadJSON(t *testing.T) {
	s := &Server{}
	rec := postValidate(t, s, `{"text": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request body")
}

func TestValidateEndpointBodyLimit(t *testing.T) {
	s := &Server{MaxBodyBytes: 64}
	big, err := json.Marshal(map[string]any{"text": strings.Repeat("x", 1024)})
	require.NoError(t, err)

	rec := postValidate(t, s, string(big))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidateEndpointMethodNotAllowed(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodGet, "/v1/validate", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthz(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestValidateEndpointMultipleCitations(t *testing.T) {
	s := &Server{}
	text := "Kim, B. Y. (2024). The impact of AI on education. Journal of Educational Technology, 45(2), 123–145. https://doi.org/10.1/a\n\nAuthor, A. (2023). Psychology of learning (4th ed.). Academic Press."
	body, err := json.Marshal(map[string]any{"text": text})
	require.NoError(t, err)

	rec := postValidate(t, s, string(body))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Results []types.ValidationResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	assert.Equal(t, types.TypeJournal, resp.Results[0].Citation.Type)
	assert.Equal(t, types.TypeBook, resp.Results[1].Citation.Type)
}
