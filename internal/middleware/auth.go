package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"inkwell/internal/auth"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/httputil"
)

// CallerResolver loads the caller identity, including role, for a token subject
type CallerResolver interface {
	ResolveCaller(ctx context.Context, userID string) (*models.Caller, error)
}

// AuthMiddleware verifies the bearer token and stores the caller in the request context.
// Requests to publicPaths and CORS pre-flights pass through without a caller.
func AuthMiddleware(verifier auth.TokenVerifier, resolver CallerResolver, logger *slog.Logger, publicPaths ...string) func(http.Handler) http.Handler {
	public := make(map[string]struct{}, len(publicPaths))
	for _, p := range publicPaths {
		public[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := public[r.URL.Path]; ok || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			caller, err := resolver.ResolveCaller(r.Context(), claims.GetUserID())
			if err != nil {
				if errors.Is(err, domain.ErrUnauthorized) {
					httputil.RespondError(w, http.StatusUnauthorized, "unknown user")
					return
				}
				logger.Error("failed to resolve caller", "user_id", claims.GetUserID(), "error", err)
				httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			next.ServeHTTP(w, httputil.WithCaller(r, caller))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
