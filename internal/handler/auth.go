package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/content-automation/internal/apperror"
	"github.com/sakif/content-automation/internal/service"
)

// AuthHandler exposes account registration and login.
//
// HANDLER RESPONSIBILITIES:
//   - HandleSignup → create an account from {email, password}
//   - HandleLogin  → verify credentials, return a bearer token
//
// All rules (email format, password length, duplicate detection, credential
// checks) live in the service; this layer only parses JSON and shapes the
// response.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler. All dependencies are injected here;
// the handler has no knowledge of how they're constructed.
func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		logger: logger,
	}
}

// credentialsRequest is the shared body for signup and login.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleSignup registers a new account.
//
// HTTP: POST /auth/signup
// Body: {"email": "a@example.com", "password": "..."}
//
// Responses:
//   - 201 + the created user (password hash excluded by the model's json tags)
//   - 400 validation_error for a bad email or password length
//   - 409 conflict if the email is already registered
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON request body"))
		return
	}

	user, err := h.auth.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// HandleLogin verifies credentials and issues a token.
//
// HTTP: POST /auth/login
// Body: {"email": "a@example.com", "password": "..."}
//
// Responses:
//   - 200 + {"access_token": "...", "token_type": "bearer"}
//   - 401 invalid_credentials for a bad email OR a bad password — the two are
//     deliberately indistinguishable
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON request body"))
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
