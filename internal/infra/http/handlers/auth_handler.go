package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/pipeline-crm/internal/infra/http/middleware"
	"github.com/xavierca1/pipeline-crm/internal/usecase"
)

type AuthHandler struct {
	Auth *usecase.AuthUseCase
}

func NewAuthHandler(auth *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input usecase.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	output, err := h.Auth.Register(r.Context(), input, r.RemoteAddr)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input usecase.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	output, err := h.Auth.Login(r.Context(), input, r.RemoteAddr)
	if err != nil {
		handleError(w, err)
		return
	}

	middleware.RecordLogin()
	writeJSON(w, http.StatusOK, output)
}
