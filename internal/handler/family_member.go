package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dukerupert/chorewheel/internal/roster"
)

type FamilyMemberHandler struct {
	svc    *roster.Service
	logger *slog.Logger
}

func NewFamilyMemberHandler(svc *roster.Service, logger *slog.Logger) *FamilyMemberHandler {
	return &FamilyMemberHandler{svc: svc, logger: logger}
}

func (h *FamilyMemberHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ListMembers())
}

func (h *FamilyMemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	member, err := h.svc.AddMember(req.Name)
	if err != nil {
		writeError(w, h.logger, err, "failed to create family member")
		return
	}
	writeJSON(w, http.StatusCreated, member)
}

func (h *FamilyMemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveMember(r.PathValue("id")); err != nil {
		writeError(w, h.logger, err, "failed to delete family member")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
