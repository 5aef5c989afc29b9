package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/pipeline-crm/internal/entity"
	"github.com/xavierca1/pipeline-crm/internal/infra/http/middleware"
	"github.com/xavierca1/pipeline-crm/internal/usecase"
)

type ProspectHandler struct {
	Prospects entity.ProspectRepository
	UpdateUC  *usecase.UpdateProspectUseCase
}

func NewProspectHandler(prospects entity.ProspectRepository, updateUC *usecase.UpdateProspectUseCase) *ProspectHandler {
	return &ProspectHandler{Prospects: prospects, UpdateUC: updateUC}
}

func (h *ProspectHandler) List(w http.ResponseWriter, r *http.Request) {
	prospects, err := h.Prospects.ListByOwner(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, prospects)
}

func (h *ProspectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.ProspectInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if errs := usecase.ValidateProspectInput(input); len(errs) > 0 {
		writeError(w, http.StatusBadRequest, errs[0].Error())
		return
	}

	p := input.ToEntity()
	p.UserID = middleware.UserID(r.Context())

	if err := h.Prospects.Create(r.Context(), p); err != nil {
		handleError(w, err)
		return
	}

	middleware.RecordProspectCreated()
	writeJSON(w, http.StatusCreated, map[string]any{"id": p.ID})
}

func (h *ProspectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var input usecase.ProspectInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	ctx := r.Context()
	transition, err := h.UpdateUC.Execute(ctx, id, middleware.UserID(ctx), middleware.UserName(ctx), input)
	if err != nil {
		handleError(w, err)
		return
	}

	if transition != nil {
		middleware.RecordStatusTransition(transition.NewStatus)
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *ProspectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.Prospects.Delete(r.Context(), id, middleware.UserID(r.Context())); err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
