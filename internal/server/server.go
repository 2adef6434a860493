package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/chorewheel/internal/assignment"
	"github.com/dukerupert/chorewheel/internal/backup"
	"github.com/dukerupert/chorewheel/internal/handler"
	"github.com/dukerupert/chorewheel/internal/middleware"
	"github.com/dukerupert/chorewheel/internal/roster"
	"github.com/dukerupert/chorewheel/internal/store"
	ws "github.com/dukerupert/chorewheel/internal/websocket"
)

// Write endpoints allow this many requests per client per minute.
const writeLimit = 60

type Server struct {
	db            *sql.DB
	hub           *ws.Hub
	roster        *roster.Service
	familyMemberH *handler.FamilyMemberHandler
	choreH        *handler.ChoreHandler
	assignmentH   *handler.AssignmentHandler
	backupH       *handler.BackupHandler
	backupManager *backup.Manager
	rateLimiter   *middleware.RateLimiter
	logger        *slog.Logger
}

// New wires stores, the roster service and handlers over db. backupCfg may
// be the zero Config, in which case the backup endpoints report 503.
func New(db *sql.DB, gen *assignment.Generator, backupCfg backup.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))
	handlerLogger := logger.With("component", "handler")

	svc := roster.New(
		store.NewFamilyMemberStore(db),
		store.NewChoreStore(db),
		store.NewAssignmentStore(db),
		gen,
		logger.With("component", "roster"),
	)
	svc.SetNotifier(hub)

	backupMgr := backup.NewManager(backupCfg, svc, store.NewBackupStore(db), func(st backup.Status) {
		hub.Notify("backup", string(st.State), "")
	}, logger.With("component", "backup"))

	return &Server{
		db:            db,
		hub:           hub,
		roster:        svc,
		familyMemberH: handler.NewFamilyMemberHandler(svc, handlerLogger),
		choreH:        handler.NewChoreHandler(svc, handlerLogger),
		assignmentH:   handler.NewAssignmentHandler(svc, handlerLogger),
		backupH:       handler.NewBackupHandler(backupMgr, handlerLogger),
		backupManager: backupMgr,
		rateLimiter:   middleware.NewRateLimiter(writeLimit, time.Minute),
		logger:        logger,
	}
}

func (s *Server) Roster() *roster.Service {
	return s.roster
}

func (s *Server) Hub() *ws.Hub {
	return s.hub
}

func (s *Server) BackupManager() *backup.Manager {
	return s.backupManager
}

func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))

	// Family members
	mux.HandleFunc("GET /api/family-members", s.familyMemberH.List)
	mux.HandleFunc("POST /api/family-members", s.limited(s.familyMemberH.Create))
	mux.HandleFunc("DELETE /api/family-members/{id}", s.limited(s.familyMemberH.Delete))

	// Chores
	mux.HandleFunc("GET /api/chores", s.choreH.List)
	mux.HandleFunc("POST /api/chores", s.limited(s.choreH.Create))
	mux.HandleFunc("PUT /api/chores/{id}", s.limited(s.choreH.Update))
	mux.HandleFunc("DELETE /api/chores/{id}", s.limited(s.choreH.Delete))

	// Assignments
	mux.HandleFunc("GET /api/assignments", s.assignmentH.History)
	mux.HandleFunc("GET /api/assignments/today", s.assignmentH.Today)
	mux.HandleFunc("GET /api/assignments/{date}", s.assignmentH.Get)
	mux.HandleFunc("POST /api/assignments/{date}/generate", s.limited(s.assignmentH.Generate))
	mux.HandleFunc("DELETE /api/assignments/{date}", s.limited(s.assignmentH.Delete))

	// Offsite backups
	mux.HandleFunc("GET /api/backups", s.backupH.List)
	mux.HandleFunc("GET /api/backups/status", s.backupH.Status)
	mux.HandleFunc("POST /api/backups", s.limited(s.backupH.Run))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	status, code := "ok", http.StatusOK
	if err := s.db.PingContext(r.Context()); err != nil {
		s.logger.Error("health check", "error", err)
		status, code = "database unavailable", http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{
		"status":  status,
		"clients": s.hub.ClientCount(),
	})
}

func (s *Server) limited(h http.HandlerFunc) http.HandlerFunc {
	return middleware.RateLimit(s.rateLimiter)(h).ServeHTTP
}
