// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-record-keeper/internal/logger"
	"github.com/MKhiriev/go-record-keeper/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandler(t *testing.T) {
	svcs := &service.Services{}
	h := NewHandler(svcs, logger.Nop())

	require.NotNil(t, h)
	assert.Same(t, svcs, h.services)
}

func TestInit_PublicRoutesDoNotRequireAuth(t *testing.T) {
	// регистрация доступна без токена; ломаный JSON даёт 400, а не 401
	h := newTestHandler(&mockAuthService{}, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", nil)
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInit_UnknownRouteIs404(t *testing.T) {
	h := newTestHandler(&mockAuthService{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInit_MethodNotAllowedHidesRoute(t *testing.T) {
	h := newTestHandler(&mockAuthService{}, nil, nil)

	// register поддерживает только POST; GET не должен выдавать 405
	req := httptest.NewRequest(http.MethodGet, "/api/auth/register", nil)
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
