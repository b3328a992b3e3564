package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-record-keeper/internal/app"
	"github.com/MKhiriev/go-record-keeper/internal/logger"
	"github.com/MKhiriev/go-record-keeper/internal/utils"
	"github.com/MKhiriev/go-record-keeper/models"
)

type shareRequest struct {
	UserID     int64             `json:"user_id"`
	Permission models.Permission `json:"permission"`
}

type lockRequest struct {
	Passcode string `json:"passcode"`
}

type revealRequest struct {
	// Passcode is optional: a locked record revealed without one fails
	// with 428 Precondition Required.
	Passcode *string `json:"passcode"`
}

// actorFromRequest extracts the authenticated Actor injected by the auth
// middleware. A missing actor means the route was wired outside the
// authenticated group; the request is rejected rather than served
// anonymously.
func actorFromRequest(w http.ResponseWriter, r *http.Request) (models.Actor, bool) {
	actor, found := utils.GetActorFromContext(r.Context())
	if !found {
		logger.FromRequest(r).Error().Msg("no actor in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return models.Actor{}, false
	}
	return actor, true
}

// urlParamInt64 parses the named chi URL parameter as a positive int64.
func urlParamInt64(r *http.Request, name string) (int64, bool) {
	value, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}

func (h *Handler) createRecord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var record models.Record
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	created, err := h.services.RecordService.CreateRecord(r.Context(), actor, record)
	if err != nil {
		log.Err(err).Msg("error creating record")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) getRecord(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	recordID, ok := urlParamInt64(r, "recordID")
	if !ok {
		http.Error(w, app.MsgInvalidRecordID, http.StatusBadRequest)
		return
	}

	record, err := h.services.RecordService.GetRecord(r.Context(), actor, recordID)
	if err != nil {
		logger.FromRequest(r).Err(err).Int64("record_id", recordID).Msg("error getting record")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, record, http.StatusOK)
}

func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	recordType := r.URL.Query().Get("type")

	records, err := h.services.RecordService.ListRecords(r.Context(), actor, recordType)
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("error listing records")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, records, http.StatusOK)
}

func (h *Handler) updateRecord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	recordID, ok := urlParamInt64(r, "recordID")
	if !ok {
		http.Error(w, app.MsgInvalidRecordID, http.StatusBadRequest)
		return
	}

	var record models.Record
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}
	// идентификатор берём из URL, не из тела
	record.RecordID = recordID

	updated, err := h.services.RecordService.UpdateRecord(r.Context(), actor, record)
	if err != nil {
		log.Err(err).Int64("record_id", recordID).Msg("error updating record")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	recordID, ok := urlParamInt64(r, "recordID")
	if !ok {
		http.Error(w, app.MsgInvalidRecordID, http.StatusBadRequest)
		return
	}

	if err := h.services.RecordService.DeleteRecord(r.Context(), actor, recordID); err != nil {
		logger.FromRequest(r).Err(err).Int64("record_id", recordID).Msg("error deleting record")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) grantShare(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	recordID, ok := urlParamInt64(r, "recordID")
	if !ok {
		http.Error(w, app.MsgInvalidRecordID, http.StatusBadRequest)
		return
	}

	var req shareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	if err := h.services.RecordService.GrantShare(r.Context(), actor, recordID, req.UserID, req.Permission); err != nil {
		log.Err(err).Int64("record_id", recordID).Msg("error granting share")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) revokeShare(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	recordID, okRecord := urlParamInt64(r, "recordID")
	userID, okUser := urlParamInt64(r, "userID")
	if !okRecord || !okUser {
		http.Error(w, app.MsgInvalidURLParameters, http.StatusBadRequest)
		return
	}

	if err := h.services.RecordService.RevokeShare(r.Context(), actor, recordID, userID); err != nil {
		logger.FromRequest(r).Err(err).Int64("record_id", recordID).Msg("error revoking share")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setLock(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	recordID, ok := urlParamInt64(r, "recordID")
	if !ok {
		http.Error(w, app.MsgInvalidRecordID, http.StatusBadRequest)
		return
	}

	var req lockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	if err := h.services.RecordService.SetLock(r.Context(), actor, recordID, req.Passcode); err != nil {
		// сам пасскод в лог не попадает
		log.Err(err).Int64("record_id", recordID).Msg("error setting lock")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) clearLock(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	recordID, ok := urlParamInt64(r, "recordID")
	if !ok {
		http.Error(w, app.MsgInvalidRecordID, http.StatusBadRequest)
		return
	}

	if err := h.services.RecordService.ClearLock(r.Context(), actor, recordID); err != nil {
		logger.FromRequest(r).Err(err).Int64("record_id", recordID).Msg("error clearing lock")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) reveal(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	recordID, ok := urlParamInt64(r, "recordID")
	if !ok {
		http.Error(w, app.MsgInvalidRecordID, http.StatusBadRequest)
		return
	}

	var req revealRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Err(err).Msg("Invalid JSON was passed")
			http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
			return
		}
	}

	record, err := h.services.RecordService.Reveal(r.Context(), actor, recordID, req.Passcode)
	if err != nil {
		log.Warn().Int64("record_id", recordID).Msg("reveal denied")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.RevealResponse{Record: record}, http.StatusOK)
}
