package http

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-record-keeper/internal/service"
	"github.com/MKhiriev/go-record-keeper/internal/store"
	"github.com/MKhiriev/go-record-keeper/internal/utils"
	"github.com/MKhiriev/go-record-keeper/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrAccessDenied:            http.StatusForbidden,
	service.ErrNotFound:                http.StatusNotFound,
	service.ErrInvalidPasscode:         http.StatusUnauthorized,
	service.ErrPasscodeRequired:        http.StatusPreconditionRequired,
	service.ErrLockedOut:               http.StatusTooManyRequests,
	service.ErrDecryptionFailure:       http.StatusInternalServerError,

	store.ErrLoginAlreadyExists: http.StatusConflict,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError renders a service-layer error as an HTTP response. Passcode
// outcomes carry structured bodies: a rejected attempt reports how many
// attempts remain, a lockout reports when attempts are accepted again
// (mirrored in the Retry-After header). Everything else maps through
// errorStatusMap; unclassified errors collapse to a generic 500 so internal
// detail never reaches the client.
func writeError(w http.ResponseWriter, err error) {
	var rejected *service.PasscodeRejectedError
	if errors.As(err, &rejected) {
		utils.WriteJSON(w, models.UnlockRejectedResponse{
			Error:             service.ErrInvalidPasscode.Error(),
			RemainingAttempts: rejected.RemainingAttempts,
		}, http.StatusUnauthorized)
		return
	}

	var locked *service.LockedOutError
	if errors.As(err, &locked) {
		seconds := int64(math.Ceil(locked.RetryAfter.Seconds()))
		if seconds < 1 {
			seconds = 1
		}
		w.Header().Set("Retry-After", strconv.FormatInt(seconds, 10))
		utils.WriteJSON(w, models.LockedOutResponse{
			Error:      service.ErrLockedOut.Error(),
			RetryAfter: seconds,
		}, http.StatusTooManyRequests)
		return
	}

	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Error(w, err.Error(), status)
}
