package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sakif/content-automation/internal/repository"
)

// errNoToken means the request carried no usable Authorization header.
var errNoToken = errors.New("auth: missing bearer token")

// contextKey is an unexported type used for context keys in this package.
//
// WHY A CUSTOM TYPE FOR CONTEXT KEYS?
// context.WithValue uses any as the key type. If you use a plain string like
// context.WithValue(ctx, "userID", id), ANY package that knows the string "userID"
// can read or shadow your value. Using a package-private type prevents collisions:
// only THIS package can create a key of type contextKey, so only this package
// can read or write userID values in the context.
type contextKey string

const userIDKey contextKey = "userID"

// RequireAuth is a middleware that enforces authentication on protected routes.
//
// It reads the JWT from the "Authorization: Bearer <token>" header, validates
// it, resolves the token's email subject to a stored user, and puts the
// user's internal ID in the request context. Missing/invalid/expired tokens
// and tokens for unknown users all produce the same 401 — the request never
// reaches the handler.
//
// WHY A DB LOOKUP PER REQUEST?
// The token encodes the email, not the internal ID, so we resolve it against
// the credential store each time. That costs one indexed SELECT and means a
// token for a deleted account fails closed instead of ghosting through.
func RequireAuth(tokens *TokenService, users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, err := extractSubject(r, tokens)
			if err != nil {
				unauthorized(w)
				return
			}

			user, err := users.GetUserByEmail(r.Context(), email)
			if err != nil {
				unauthorized(w)
				return
			}

			// Store userID in context so handlers can read it
			next.ServeHTTP(w, r.WithContext(ContextWithUserID(r.Context(), user.ID)))
		})
	}
}

// ContextWithUserID returns a context carrying the authenticated user's ID.
// RequireAuth calls this after validating a token; handler tests call it to
// simulate an authenticated request.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext retrieves the authenticated user's ID from the request context.
//
// Returns ("", false) if the request is anonymous (no valid token was present).
// Returns (id, true) if the user is authenticated.
//
// Usage in handlers:
//
//	userID, ok := auth.UserIDFromContext(r.Context())
//	if !ok {
//	    // anonymous — should not happen behind RequireAuth
//	}
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// extractSubject reads and validates the bearer token from the request.
//
// BEARER HEADER FORMAT:
// The client sends exactly "Authorization: Bearer <jwt>". Anything else —
// missing header, wrong scheme, extra parts — is rejected before the token
// is even parsed.
func extractSubject(r *http.Request, tokens *TokenService) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errNoToken
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", errNoToken
	}

	return tokens.Validate(token)
}

func unauthorized(w http.ResponseWriter) {
	http.Error(w, `{"error":"unauthorized","message":"valid authentication required"}`, http.StatusUnauthorized)
}
