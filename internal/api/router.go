package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iqbalShafiq/word-battle-game/internal/api/handler"
	"github.com/iqbalShafiq/word-battle-game/internal/api/middleware"
	"github.com/iqbalShafiq/word-battle-game/internal/services/auth"
	"github.com/iqbalShafiq/word-battle-game/internal/services/scoring"
	"github.com/iqbalShafiq/word-battle-game/internal/services/words"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger           *slog.Logger
	AuthService      *auth.Service
	WordsService     *words.Service
	ScoringService   *scoring.Service
	WebsocketHandler http.Handler
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	wordsHandler := handler.NewWordsHandler(cfg.WordsService, cfg.ScoringService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes (no auth required)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	players := api.PathPrefix("/players").Subrouter()
	players.Use(authMiddleware)
	players.HandleFunc("/me", authHandler.GetMe).Methods(http.MethodGet)

	// Word checking (requires auth)
	wordRoutes := api.PathPrefix("/words").Subrouter()
	wordRoutes.Use(authMiddleware)
	wordRoutes.HandleFunc("/validate", wordsHandler.Validate).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Game connections; the handler authenticates via ?token= itself
	if cfg.WebsocketHandler != nil {
		r.Handle("/ws", cfg.WebsocketHandler).Methods(http.MethodGet)
	}

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
