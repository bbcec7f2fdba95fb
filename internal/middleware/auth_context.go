package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"front-desk/internal/ports/auth"
)

type ctxKey string

const identityKey ctxKey = "identity"

// AuthContext:
// - Con verifier: si viene Bearer token, intenta Verify() y setea la
//   identidad; si falla, el request sigue sin identidad y cada handler
//   decide 401/403.
// - Sin verifier (modo dev): la identidad se inyecta con headers
//   X-Debug-User-ID / X-Debug-Role / X-Debug-Destination-ID / X-Debug-Name.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				if id, ok := debugIdentity(r); ok {
					next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), id)))
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := verifier.Verify(r.Context(), token)
			if err != nil {
				// No cortamos acá para no acoplar; el handler decide.
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), id)))
		})
	}
}

func GetIdentity(ctx context.Context) (auth.Identity, bool) {
	v := ctx.Value(identityKey)
	if v == nil {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}

func withIdentity(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func debugIdentity(r *http.Request) (auth.Identity, bool) {
	uid := strings.TrimSpace(r.Header.Get("X-Debug-User-ID"))
	if uid == "" {
		return auth.Identity{}, false
	}

	id := auth.Identity{
		UserID:      uid,
		DisplayName: strings.TrimSpace(r.Header.Get("X-Debug-Name")),
		Role:        auth.ParseRole(r.Header.Get("X-Debug-Role")),
	}
	if raw := strings.TrimSpace(r.Header.Get("X-Debug-Destination-ID")); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			id.HomeDestinationID = &v
		}
	}
	return id, true
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
