package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/careplus/woundtrack/internal/pkg/instrument"
)

func TestNewRouter(t *testing.T) {
	ro := NewRouter(Config{Instrument: instrument.NewNoop()})

	t.Run("RootWelcome", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ro.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "Welcome to API WoundTrack")
	})

	t.Run("UnknownEndpoint", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ro.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "endpoint not found")
	})
}
