package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dukerupert/chorewheel/internal/roster"
)

type ChoreHandler struct {
	svc    *roster.Service
	logger *slog.Logger
}

func NewChoreHandler(svc *roster.Service, logger *slog.Logger) *ChoreHandler {
	return &ChoreHandler{svc: svc, logger: logger}
}

type choreRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *ChoreHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ListChores())
}

func (h *ChoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req choreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	chore, err := h.svc.AddChore(req.Name, req.Description)
	if err != nil {
		writeError(w, h.logger, err, "failed to create chore")
		return
	}
	writeJSON(w, http.StatusCreated, chore)
}

func (h *ChoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req choreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	chore, err := h.svc.EditChore(r.PathValue("id"), req.Name, req.Description)
	if err != nil {
		writeError(w, h.logger, err, "failed to update chore")
		return
	}
	writeJSON(w, http.StatusOK, chore)
}

func (h *ChoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveChore(r.PathValue("id")); err != nil {
		writeError(w, h.logger, err, "failed to delete chore")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
