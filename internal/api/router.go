package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/worldsmp/worlds-server/internal/middleware"
	"github.com/worldsmp/worlds-server/internal/services/players"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	Logger        *slog.Logger
	SocketHandler http.Handler
	Players       *players.Service
}

// NewRouter creates the HTTP router. The websocket endpoint is mounted
// without the logging wrapper so the upgrade can hijack the connection.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Recovery(cfg.Logger, middleware.DefaultPanicHandler))

	r.PathPrefix("/socket.io/").Handler(cfg.SocketHandler)

	logging := middleware.Logging(cfg.Logger)
	r.Handle("/healthz", logging(healthHandler(cfg.Players))).Methods(http.MethodGet)
	r.Handle("/", logging(http.HandlerFunc(indexHandler))).Methods(http.MethodGet)

	return r
}

type healthResponse struct {
	Status  string `json:"status"`
	Players int    `json:"players"`
}

func healthHandler(playerStore *players.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(healthResponse{
			Status:  "ok",
			Players: playerStore.Count(),
		})
	})
}

func indexHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Use the client from your public folder. Deploy public/ contents separately."))
}
