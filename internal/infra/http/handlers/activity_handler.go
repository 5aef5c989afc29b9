package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/pipeline-crm/internal/entity"
	"github.com/xavierca1/pipeline-crm/internal/infra/http/middleware"
)

type ActivityHandler struct {
	Activities entity.ActivityRepository
}

func NewActivityHandler(activities entity.ActivityRepository) *ActivityHandler {
	return &ActivityHandler{Activities: activities}
}

type activityRequest struct {
	ActivityType string `json:"activity_type"`
	Description  string `json:"description"`
}

func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	prospectID, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	activities, err := h.Activities.ListByProspect(r.Context(), prospectID, middleware.UserID(r.Context()))
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, activities)
}

func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	prospectID, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req activityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	ctx := r.Context()
	a := &entity.Activity{
		ProspectID:   prospectID,
		ActivityType: req.ActivityType,
		Description:  req.Description,
		CreatedBy:    middleware.UserName(ctx),
		UserID:       middleware.UserID(ctx),
	}

	if err := h.Activities.Create(ctx, a); err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"id": a.ID})
}
