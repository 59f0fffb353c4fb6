package middleware

import (
	"context"
	"crypto/rsa"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stevedao0/contract-service/internal/utils"
)

type contextKey string

const (
	// ContextKeyActor holds the authenticated user's id (the JWT "sub").
	ContextKeyActor = contextKey("actor")

	// DevActorHeader names the caller when token auth is disabled in dev.
	DevActorHeader = "X-Actor"
)

// ActorFromContext returns the actor stored by the auth middleware, or "".
func ActorFromContext(ctx context.Context) string {
	actor, _ := ctx.Value(ContextKeyActor).(string)
	return actor
}

// AuthMiddleware – for protected endpoints. If the Bearer token is missing
// or invalid, returns 401.
func AuthMiddleware(pub *rsa.PublicKey, issuer string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, err := extractBearerToken(r)
			if err != nil {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, err.Error(), nil,
				)
				return
			}

			sub, vErr := ValidateToken(r.Context(), tokenStr, pub, issuer)
			if vErr != nil {
				if errors.Is(vErr, jwt.ErrTokenExpired) {
					utils.RespondErrorWithCode(
						w, http.StatusUnauthorized, utils.ErrCodeTokenExpired, "Token expired", nil, vErr,
					)
					return
				}
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid token", nil, vErr,
				)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyActor, sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// DevActorMiddleware trusts the X-Actor header. Only wired when ENV=dev and
// no public key is configured.
func DevActorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := strings.TrimSpace(r.Header.Get(DevActorHeader))
		if actor == "" {
			actor = "dev"
		}
		ctx := context.WithValue(r.Context(), ContextKeyActor, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractBearerToken(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", errors.New("missing Authorization header")
	}
	return strings.TrimPrefix(h, "Bearer "), nil
}
