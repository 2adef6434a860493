package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dukerupert/chorewheel/internal/model"
	"github.com/dukerupert/chorewheel/internal/roster"
)

type AssignmentHandler struct {
	svc    *roster.Service
	logger *slog.Logger
}

func NewAssignmentHandler(svc *roster.Service, logger *slog.Logger) *AssignmentHandler {
	return &AssignmentHandler{svc: svc, logger: logger}
}

// generateResponse carries the roster even when saving it failed.
type generateResponse struct {
	model.DailyAssignments
	Saved   bool   `json:"saved"`
	Warning string `json:"warning,omitempty"`
}

func (h *AssignmentHandler) History(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.History())
}

func (h *AssignmentHandler) Today(w http.ResponseWriter, r *http.Request) {
	h.writeDay(w, h.svc.TodayDate())
}

func (h *AssignmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.writeDay(w, r.PathValue("date"))
}

func (h *AssignmentHandler) writeDay(w http.ResponseWriter, date string) {
	daily, err := h.svc.ForDate(date)
	if err != nil {
		writeError(w, h.logger, err, "failed to get assignments")
		return
	}
	if daily == nil {
		writeErrorMsg(w, http.StatusNotFound, "no assignments for "+date)
		return
	}
	writeJSON(w, http.StatusOK, daily)
}

// Generate creates or replaces the roster for {date}. "today" is accepted as
// the date.
func (h *AssignmentHandler) Generate(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")
	if date == "today" {
		date = h.svc.TodayDate()
	}

	daily, err := h.svc.Generate(date)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, generateResponse{DailyAssignments: daily, Saved: true})
	case errors.Is(err, roster.ErrStorageWrite):
		writeJSON(w, http.StatusCreated, generateResponse{
			DailyAssignments: daily,
			Warning:          "assignments were generated but could not be saved",
		})
	default:
		writeError(w, h.logger, err, "failed to generate assignments")
	}
}

func (h *AssignmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearDate(r.PathValue("date")); err != nil {
		writeError(w, h.logger, err, "failed to delete assignments")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
