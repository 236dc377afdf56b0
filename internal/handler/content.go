package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/content-automation/internal/apperror"
	"github.com/sakif/content-automation/internal/auth"
	"github.com/sakif/content-automation/internal/service"
)

// ContentHandler exposes content generation, saving, and retrieval.
//
// Every route here sits behind auth.RequireAuth, so the user ID is always in
// the request context. The handler pulls it out and passes it down — the
// service never trusts an owner ID from the request body or URL.
type ContentHandler struct {
	content *service.ContentService
	logger  *slog.Logger
}

// NewContentHandler creates a ContentHandler.
func NewContentHandler(content *service.ContentService, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{
		content: content,
		logger:  logger,
	}
}

// generateRequest is the body for POST /content/generate.
type generateRequest struct {
	Niche       string   `json:"niche"`
	ContentType string   `json:"content_type"`
	Keywords    []string `json:"keywords"`
}

// saveRequest is the body for POST /content/save. Keywords here are a single
// comma-separated string — stored verbatim, split only by the analytics report.
type saveRequest struct {
	Title       string `json:"title"`
	ContentType string `json:"content_type"`
	Keywords    string `json:"keywords"`
	Text        string `json:"text"`
}

// HandleGenerate produces text via the generation gateway without storing it.
//
// HTTP: POST /content/generate
// Body: {"niche": "fitness", "content_type": "blog", "keywords": ["gym"]}
//
// Responses:
//   - 200 + {"content": "..."}
//   - 400 validation_error for a missing niche or content_type
//   - 400 generation_failed when the gateway errors or returns nothing
//
// Generation and saving are separate calls: the client reviews the text
// first and saves it (possibly edited) with POST /content/save.
func (h *ContentHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON request body"))
		return
	}

	text, err := h.content.Generate(r.Context(), userID, req.Niche, req.ContentType, req.Keywords)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"content": text})
}

// HandleSave stores a content record for the authenticated user.
//
// HTTP: POST /content/save
// Body: {"title": "...", "content_type": "blog", "keywords": "ai, ml", "text": "..."}
//
// Responses:
//   - 201 + the stored record (with its generated ID and timestamp)
//   - 400 validation_error for a missing content_type/text or oversized fields
func (h *ContentHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON request body"))
		return
	}

	content, err := h.content.Save(r.Context(), userID, req.Title, req.ContentType, req.Keywords, req.Text)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, content)
}

// HandleHistory returns a page of the user's saved records, newest first.
//
// HTTP: GET /content/history?skip=0&limit=10
//
// skip and limit are optional. Unparseable values fall back to the defaults
// rather than erroring — the service clamps them to sane bounds either way.
func (h *ContentHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", service.DefaultHistoryLimit)

	contents, err := h.content.History(r.Context(), userID, skip, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contents)
}

// HandleGetByID returns a single record owned by the authenticated user.
//
// HTTP: GET /content/{id}
//
// A record that exists but belongs to someone else comes back as the SAME
// 404 as a record that doesn't exist — the response never reveals whether
// the ID is in use.
func (h *ContentHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	content, err := h.content.GetByID(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, content)
}

// queryInt reads an integer query parameter, falling back to def when the
// parameter is absent or not a number.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
