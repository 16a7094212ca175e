package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"beer_machine/internal/models"
)

// contextKey is a custom type used for storing values in a context without
// risking collisions.
type contextKey string

// ContextClaims is the key under which the parsed token claims are stored in
// the request context.
const ContextClaims contextKey = "contextClaims"

// ClaimsFromContext retrieves the authenticated claims placed in the context
// by CheckJWTMiddleware. The second return value is false for unauthenticated
// requests.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ContextClaims).(*Claims)
	return claims, ok && claims.UserID != 0
}

// CheckJWTMiddleware validates the Authorization header of incoming requests.
// It checks for a Bearer token, parses it, and stores the claims in the
// request context. Failures are answered immediately with 401.
func CheckJWTMiddleware() func(h http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")

			if authHeader == "" {
				writeErrorResponse(w, "missing auth header", http.StatusUnauthorized)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeErrorResponse(w, "invalid auth header", http.StatusUnauthorized)
				return
			}

			claims, err := ParseToken(parts[1])
			if err != nil {
				writeErrorResponse(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ContextClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(fn)
	}
}

// RequireAdmin rejects requests whose token does not belong to an admin.
func RequireAdmin() func(h http.Handler) http.Handler {
	return requireUserType(models.UserTypeAdmin)
}

// RequireStaff rejects requests whose token belongs to neither an admin nor
// a seller. Sales and undos are staff operations; management stays admin-only.
func RequireStaff() func(h http.Handler) http.Handler {
	return requireUserType(models.UserTypeAdmin, models.UserTypeSeller)
}

func requireUserType(allowed ...string) func(h http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeErrorResponse(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			for _, userType := range allowed {
				if claims.UserType == userType {
					h.ServeHTTP(w, r)
					return
				}
			}
			writeErrorResponse(w, "insufficient permissions", http.StatusForbidden)
		}
		return http.HandlerFunc(fn)
	}
}

// writeErrorResponse writes a JSON-formatted error response.
func writeErrorResponse(res http.ResponseWriter, errorInfo string, statusCode int) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(statusCode)
	json.NewEncoder(res).Encode(models.ErrorResponse{Errors: errorInfo})
}
