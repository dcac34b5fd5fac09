package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/iqbalShafiq/word-battle-game/internal/api/apierr"
	"github.com/iqbalShafiq/word-battle-game/internal/model"
	"github.com/iqbalShafiq/word-battle-game/internal/services/auth"
)

type contextKey string

const playerContextKey contextKey = "player"

// Auth rejects requests without a valid session token and stashes the
// authenticated player in the request context.
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			session, err := authService.ValidateSession(token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), playerContextKey, &session.Player)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}

	// Query parameter fallback, matching the websocket entry point
	return r.URL.Query().Get("token")
}

// GetPlayer returns the authenticated player, or nil outside Auth.
func GetPlayer(ctx context.Context) *model.Player {
	player, _ := ctx.Value(playerContextKey).(*model.Player)
	return player
}

// MustGetPlayer returns the authenticated player or panics.
func MustGetPlayer(ctx context.Context) *model.Player {
	player := GetPlayer(ctx)
	if player == nil {
		panic("no player in context - auth middleware not applied?")
	}
	return player
}
