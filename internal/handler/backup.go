package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dukerupert/chorewheel/internal/backup"
)

type BackupHandler struct {
	mgr    *backup.Manager
	logger *slog.Logger
}

func NewBackupHandler(mgr *backup.Manager, logger *slog.Logger) *BackupHandler {
	return &BackupHandler{mgr: mgr, logger: logger}
}

func (h *BackupHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.mgr.Status())
}

func (h *BackupHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeErrorMsg(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	backups, err := h.mgr.List(limit)
	if err != nil {
		h.logger.Error("list backups", "error", err)
		writeErrorMsg(w, http.StatusInternalServerError, "failed to list backups")
		return
	}
	writeJSON(w, http.StatusOK, backups)
}

// Run uploads the history now.
func (h *BackupHandler) Run(w http.ResponseWriter, r *http.Request) {
	b, err := h.mgr.RunNow(r.Context())
	if errors.Is(err, backup.ErrNotConfigured) {
		writeErrorMsg(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("run backup", "error", err)
		writeErrorMsg(w, http.StatusBadGateway, "backup failed")
		return
	}
	writeJSON(w, http.StatusCreated, b)
}
