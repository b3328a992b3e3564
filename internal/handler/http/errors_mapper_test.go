package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-record-keeper/internal/service"
	"github.com/MKhiriev/go-record-keeper/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrInvalidDataProvided, http.StatusBadRequest},
		{service.ErrAccessDenied, http.StatusForbidden},
		{service.ErrNotFound, http.StatusNotFound},
		{service.ErrInvalidPasscode, http.StatusUnauthorized},
		{service.ErrPasscodeRequired, http.StatusPreconditionRequired},
		{service.ErrLockedOut, http.StatusTooManyRequests},
		{service.ErrDecryptionFailure, http.StatusInternalServerError},
		{service.ErrWrongPassword, http.StatusUnauthorized},
		{store.ErrLoginAlreadyExists, http.StatusConflict},
		{fmt.Errorf("wrapped: %w", service.ErrNotFound), http.StatusNotFound},
		{errors.New("unclassified"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFromError(tt.err), "error: %v", tt.err)
	}
}

func TestWriteError_TypedLockErrorsMatchSentinels(t *testing.T) {
	// типизированные ошибки должны попадать в ту же ветку, что и сентинелы
	rec := httptest.NewRecorder()
	writeError(rec, &service.PasscodeRejectedError{RemainingAttempts: 1})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"remaining_attempts":1`)

	rec = httptest.NewRecorder()
	writeError(rec, &service.LockedOutError{RetryAfter: 90 * time.Second})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "90", rec.Header().Get("Retry-After"))
}

func TestWriteError_UnclassifiedIsGeneric(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, errors.New("pq: column secret_key does not exist"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// внутренние детали не утекают клиенту
	assert.NotContains(t, rec.Body.String(), "secret_key")
}
