package mymemory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/get", r.URL.Path)
		assert.Equal(t, "hello", r.URL.Query().Get("q"))
		assert.Equal(t, "en|es", r.URL.Query().Get("langpair"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"responseData":   map[string]any{"translatedText": "hola"},
			"responseStatus": 200,
		})
	}))
	defer srv.Close()

	p := NewWithBaseURL(srv.URL)
	got, err := p.Translate(context.Background(), "hello", "en", "es")
	require.NoError(t, err)
	assert.Equal(t, "hola", got)
}

func TestTranslateAPILevelError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// MyMemory reports quota errors inside a 200 body.
		json.NewEncoder(w).Encode(map[string]any{
			"responseData":   map[string]any{"translatedText": ""},
			"responseStatus": "403",
		})
	}))
	defer srv.Close()

	p := NewWithBaseURL(srv.URL)
	_, err := p.Translate(context.Background(), "hello", "en", "es")
	assert.Error(t, err)
}

func TestProviderTraits(t *testing.T) {
	p := New(true, "")
	assert.True(t, p.Configured())
	assert.False(t, p.NativeDetect(), "mymemory needs an explicit source tag")
	assert.True(t, p.Supports("anything"))

	assert.False(t, New(false, "").Configured())
}
