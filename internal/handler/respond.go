package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dukerupert/chorewheel/internal/roster"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeError maps roster errors to HTTP statuses. Unexpected errors are
// logged and reported as fallback.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, roster.ErrNameRequired):
		writeErrorMsg(w, http.StatusBadRequest, "name is required")
	case errors.Is(err, roster.ErrInvalidDate):
		writeErrorMsg(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
	case errors.Is(err, roster.ErrDuplicateName):
		writeErrorMsg(w, http.StatusConflict, err.Error())
	case errors.Is(err, roster.ErrNotFound):
		writeErrorMsg(w, http.StatusNotFound, err.Error())
	case errors.Is(err, roster.ErrNoMembers):
		writeErrorMsg(w, http.StatusUnprocessableEntity, "add family members first")
	default:
		logger.Error(fallback, "error", err)
		writeErrorMsg(w, http.StatusInternalServerError, fallback)
	}
}
