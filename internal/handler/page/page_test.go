package page

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expertsoft/softchat/internal/model/knowledge"
)

func serve(t *testing.T, h *Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
	return resp
}

func TestIndexRendersWidget(t *testing.T) {
	resp := serve(t, New(knowledge.NewMemoryStore(knowledge.Seed())), "/")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header().Get("Content-Type"))

	body := resp.Body.String()
	assert.Contains(t, body, `id="chat-container"`)
	assert.Contains(t, body, `id="chat-form"`)
	assert.Contains(t, body, `id="chat-input"`)
	assert.Contains(t, body, `id="loadingOverlay"`)
	assert.Contains(t, body, "<strong>Bot:</strong> Hello! Welcome to Expert Soft Solution.")
	assert.Contains(t, body, `/static/script.js`)
}

func TestIndexEscapesGreeting(t *testing.T) {
	store := knowledge.NewMemoryStore([]knowledge.Entry{
		{Intent: "greeting", Response: "<b>hi</b>"},
	})
	body := serve(t, New(store), "/").Body.String()

	assert.Contains(t, body, "&lt;b&gt;hi&lt;/b&gt;")
	assert.NotContains(t, body, "<b>hi</b>")
}

func TestIndexFallsBackToDefaultGreeting(t *testing.T) {
	body := serve(t, New(knowledge.NewMemoryStore(nil)), "/").Body.String()
	assert.Contains(t, body, DefaultGreeting)
}

func TestStaticAssets(t *testing.T) {
	h := New(nil)

	resp := serve(t, h, "/static/script.js")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "textContent")
	assert.False(t, strings.Contains(resp.Body.String(), "innerHTML"))

	resp = serve(t, h, "/static/style.css")
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = serve(t, h, "/static/missing.js")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
