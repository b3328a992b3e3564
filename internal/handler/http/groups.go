package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-record-keeper/internal/app"
	"github.com/MKhiriev/go-record-keeper/internal/logger"
	"github.com/MKhiriev/go-record-keeper/internal/utils"
	"github.com/MKhiriev/go-record-keeper/models"
)

type createGroupRequest struct {
	Name string `json:"name"`
}

type renameGroupRequest struct {
	Name string `json:"name"`
}

type addMemberRequest struct {
	UserID int64       `json:"user_id"`
	Role   models.Role `json:"role"`
}

func (h *Handler) createGroup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req createGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	group, err := h.services.GroupService.CreateGroup(r.Context(), actor, req.Name)
	if err != nil {
		log.Err(err).Msg("error creating group")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, group, http.StatusCreated)
}

func (h *Handler) getGroup(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	groupID, ok := urlParamInt64(r, "groupID")
	if !ok {
		http.Error(w, app.MsgInvalidGroupID, http.StatusBadRequest)
		return
	}

	group, err := h.services.GroupService.GetGroup(r.Context(), actor, groupID)
	if err != nil {
		logger.FromRequest(r).Err(err).Int64("group_id", groupID).Msg("error getting group")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, group, http.StatusOK)
}

func (h *Handler) renameGroup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	groupID, ok := urlParamInt64(r, "groupID")
	if !ok {
		http.Error(w, app.MsgInvalidGroupID, http.StatusBadRequest)
		return
	}

	var req renameGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	if err := h.services.GroupService.RenameGroup(r.Context(), actor, groupID, req.Name); err != nil {
		log.Err(err).Int64("group_id", groupID).Msg("error renaming group")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteGroup(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	groupID, ok := urlParamInt64(r, "groupID")
	if !ok {
		http.Error(w, app.MsgInvalidGroupID, http.StatusBadRequest)
		return
	}

	if err := h.services.GroupService.DeleteGroup(r.Context(), actor, groupID); err != nil {
		logger.FromRequest(r).Err(err).Int64("group_id", groupID).Msg("error deleting group")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addMember(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	groupID, ok := urlParamInt64(r, "groupID")
	if !ok {
		http.Error(w, app.MsgInvalidGroupID, http.StatusBadRequest)
		return
	}

	var req addMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	if err := h.services.GroupService.AddMember(r.Context(), actor, groupID, req.UserID, req.Role); err != nil {
		log.Err(err).Int64("group_id", groupID).Msg("error adding member")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) removeMember(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	groupID, okGroup := urlParamInt64(r, "groupID")
	userID, okUser := urlParamInt64(r, "userID")
	if !okGroup || !okUser {
		http.Error(w, app.MsgInvalidURLParameters, http.StatusBadRequest)
		return
	}

	if err := h.services.GroupService.RemoveMember(r.Context(), actor, groupID, userID); err != nil {
		logger.FromRequest(r).Err(err).Int64("group_id", groupID).Msg("error removing member")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
