package router

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/inklet/inklet-server/internal/api/http/handler"
	"github.com/inklet/inklet-server/internal/api/http/middleware"
	"github.com/inklet/inklet-server/internal/logger"
)

const healthCheckTimeout = 2 * time.Second

// Router assembles the HTTP surface: application routes behind the
// authentication gate, plus health and metrics endpoints.
type Router struct {
	auth         *handler.Auth
	note         *handler.Note
	authenticate *middleware.Authenticate
	logging      *middleware.Logging
	metrics      *middleware.Metrics
	gatherer     prometheus.Gatherer
	dbPing       func(ctx context.Context) error
	logger       *logger.Logger
}

// New creates a new Router instance.
func New(
	auth *handler.Auth,
	note *handler.Note,
	authenticate *middleware.Authenticate,
	logging *middleware.Logging,
	metrics *middleware.Metrics,
	gatherer prometheus.Gatherer,
	dbPing func(ctx context.Context) error,
	logger *logger.Logger,
) *Router {
	return &Router{
		auth:         auth,
		note:         note,
		authenticate: authenticate,
		logging:      logging,
		metrics:      metrics,
		gatherer:     gatherer,
		dbPing:       dbPing,
		logger:       logger,
	}
}

// Register wires all routes and returns the root handler.
func (rt *Router) Register() http.Handler {
	mux := http.NewServeMux()

	public := func(route string, h http.HandlerFunc) http.HandlerFunc {
		return rt.metrics.Handle(route, h)
	}
	protected := func(route string, h http.HandlerFunc) http.HandlerFunc {
		return rt.metrics.Handle(route, rt.authenticate.Handle(h))
	}

	mux.HandleFunc("POST /create-account", public("/create-account", rt.auth.CreateAccount))
	mux.HandleFunc("POST /login", public("/login", rt.auth.Login))
	mux.HandleFunc("GET /get-user", protected("/get-user", rt.auth.GetUser))

	mux.HandleFunc("POST /add-note", protected("/add-note", rt.note.AddNote))
	mux.HandleFunc("PUT /edit-note/{noteId}", protected("/edit-note/{noteId}", rt.note.EditNote))
	mux.HandleFunc("GET /getAllNotes", protected("/getAllNotes", rt.note.GetAllNotes))
	mux.HandleFunc("DELETE /deleteNotes/{noteId}", protected("/deleteNotes/{noteId}", rt.note.DeleteNote))
	mux.HandleFunc("PUT /updateNotePinned/{noteId}", protected("/updateNotePinned/{noteId}", rt.note.UpdatePinned))
	mux.HandleFunc("GET /search-notes", protected("/search-notes", rt.note.SearchNotes))

	mux.HandleFunc("GET /healthz", rt.healthz)
	mux.Handle("GET /metrics", promhttp.HandlerFor(rt.gatherer, promhttp.HandlerOpts{}))

	return rt.logging.Handle(mux)
}

// healthz reports liveness plus a bounded database ping so that a stuck
// pool flips the check instead of hanging it.
func (rt *Router) healthz(w http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), healthCheckTimeout)
	defer cancel()

	if err := rt.dbPing(ctx); err != nil {
		rt.logger.Error("health check: database unreachable", "error", err.Error())
		writeStatus(w, http.StatusServiceUnavailable, "degraded")
		return
	}

	writeStatus(w, http.StatusOK, "ok")
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
}
