package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/scrabble-go/internal/api/handler"
	"github.com/mcoot/scrabble-go/internal/api/middleware"
	"github.com/mcoot/scrabble-go/internal/services/auth"
	"github.com/mcoot/scrabble-go/internal/services/game"
	"github.com/mcoot/scrabble-go/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	GameController *game.Controller
	HubManager     *sse.HubManager
	Broadcaster    *sse.Broadcaster
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	userHandler := handler.NewUserHandler(cfg.AuthService)
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.HubManager, cfg.Broadcaster)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// User routes (no auth required for registering/logging in)
	api.HandleFunc("/users/register", userHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/users/login", userHandler.Login).Methods(http.MethodPost)

	// Protected user routes
	userProtected := api.PathPrefix("/users").Subrouter()
	userProtected.Use(authMiddleware)
	userProtected.HandleFunc("/logout", userHandler.Logout).Methods(http.MethodPost)
	userProtected.HandleFunc("/me", userHandler.GetMe).Methods(http.MethodGet)

	// Game viewing is open to spectators; a session only adds the
	// viewer's own rack to the response
	api.Handle("/games", optionalAuthMiddleware(http.HandlerFunc(gameHandler.List))).Methods(http.MethodGet)
	api.Handle("/games/{id}", optionalAuthMiddleware(http.HandlerFunc(gameHandler.Get))).Methods(http.MethodGet)

	// Game routes that mutate state require auth
	games := api.PathPrefix("/games").Subrouter()
	games.Use(authMiddleware)
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("/{id}/join", gameHandler.Join).Methods(http.MethodPost)
	games.HandleFunc("/{id}/start", gameHandler.Start).Methods(http.MethodPost)
	games.HandleFunc("/{id}/play", gameHandler.Play).Methods(http.MethodPost)
	games.HandleFunc("/{id}/pass", gameHandler.Pass).Methods(http.MethodPost)
	games.HandleFunc("/{id}/events", gameHandler.Events).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
