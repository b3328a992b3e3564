package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/go-record-keeper/internal/config"
	"github.com/MKhiriev/go-record-keeper/internal/handler"
	httphandler "github.com/MKhiriev/go-record-keeper/internal/handler/http"
	"github.com/MKhiriev/go-record-keeper/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHandlers() *handler.Handlers {
	return &handler.Handlers{HTTP: httphandler.NewHandler(nil, logger.Nop())}
}

func TestNewServer_NoAddress(t *testing.T) {
	s, err := NewServer(testHandlers(), config.Server{}, logger.Nop())

	require.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, s)
}

func TestNewServer_HTTPAddress(t *testing.T) {
	s, err := NewServer(testHandlers(), config.Server{HTTPAddress: "localhost:0"}, logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, s)
}

func TestNewHTTPServer_Timeouts(t *testing.T) {
	h := newHTTPServer(http.NewServeMux(), config.Server{
		HTTPAddress:    "localhost:0",
		RequestTimeout: 5 * time.Second,
	}, logger.Nop())

	assert.Equal(t, 5*time.Second, h.server.ReadTimeout)
	assert.Equal(t, 5*time.Second, h.server.WriteTimeout)
}

func TestNewHTTPServer_DefaultTimeout(t *testing.T) {
	h := newHTTPServer(http.NewServeMux(), config.Server{HTTPAddress: "localhost:0"}, logger.Nop())

	assert.Equal(t, 30*time.Second, h.server.ReadTimeout)
}

func TestHTTPServer_ShutdownWithoutStartIsSafe(t *testing.T) {
	h := newHTTPServer(http.NewServeMux(), config.Server{HTTPAddress: "localhost:0"}, logger.Nop())

	// Shutdown до запуска не должен паниковать
	h.Shutdown()
}
