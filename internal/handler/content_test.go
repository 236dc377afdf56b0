package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sakif/content-automation/internal/handler"
	"github.com/sakif/content-automation/internal/model"
	"github.com/sakif/content-automation/internal/service"
)

func newContentFixture(t *testing.T) (*handler.ContentHandler, *fakeContentRepo, *fakeGenerator) {
	t.Helper()
	repo := &fakeContentRepo{}
	gen := &fakeGenerator{text: "generated text"}
	svc := service.NewContentService(repo, gen, testLogger())
	return handler.NewContentHandler(svc, testLogger()), repo, gen
}

// save stores a record through the handler and returns its ID.
func save(t *testing.T, h *handler.ContentHandler, userID, title string) string {
	t.Helper()
	body := `{"title":"` + title + `","content_type":"blog","keywords":"ai, ml","text":"body"}`
	req := asUser(httptest.NewRequest(http.MethodPost, "/content/save", bytes.NewBufferString(body)), userID)
	rr := httptest.NewRecorder()
	h.HandleSave(rr, req)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var res model.Content
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
	return res.ID
}

func TestContentHandler_HandleGenerate(t *testing.T) {
	t.Run("valid generation", func(t *testing.T) {
		h, _, _ := newContentFixture(t)

		reqBody := `{"niche":"fitness","content_type":"blog","keywords":["gym","cardio"]}`
		req := asUser(httptest.NewRequest(http.MethodPost, "/content/generate", bytes.NewBufferString(reqBody)), "user-1")
		rr := httptest.NewRecorder()

		h.HandleGenerate(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var res map[string]string
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.Equal(t, "generated text", res["content"])
	})

	t.Run("gateway failure", func(t *testing.T) {
		h, _, gen := newContentFixture(t)
		gen.text = ""
		gen.err = errors.New("upstream down")

		reqBody := `{"niche":"fitness","content_type":"blog"}`
		req := asUser(httptest.NewRequest(http.MethodPost, "/content/generate", bytes.NewBufferString(reqBody)), "user-1")
		rr := httptest.NewRecorder()

		h.HandleGenerate(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "generation_failed")
	})

	t.Run("missing niche", func(t *testing.T) {
		h, _, _ := newContentFixture(t)

		req := asUser(httptest.NewRequest(http.MethodPost, "/content/generate", bytes.NewBufferString(`{"content_type":"blog"}`)), "user-1")
		rr := httptest.NewRecorder()

		h.HandleGenerate(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "validation_error")
	})

	t.Run("anonymous request", func(t *testing.T) {
		h, _, _ := newContentFixture(t)

		// No user in context — RequireAuth would normally block this.
		req := httptest.NewRequest(http.MethodPost, "/content/generate", bytes.NewBufferString(`{"niche":"x","content_type":"blog"}`))
		rr := httptest.NewRecorder()

		h.HandleGenerate(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestContentHandler_HandleSave(t *testing.T) {
	t.Run("valid save", func(t *testing.T) {
		h, repo, _ := newContentFixture(t)

		reqBody := `{"title":"My Post","content_type":"blog","keywords":"ai, ml","text":"the body"}`
		req := asUser(httptest.NewRequest(http.MethodPost, "/content/save", bytes.NewBufferString(reqBody)), "user-1")
		rr := httptest.NewRecorder()

		h.HandleSave(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var res model.Content
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.NotEmpty(t, res.ID)
		assert.Equal(t, "My Post", res.Title)
		assert.Equal(t, "ai, ml", res.Keywords)

		// The owner comes from the token, never from the body.
		assert.Len(t, repo.contents, 1)
		assert.Equal(t, "user-1", repo.contents[0].UserID)
	})

	t.Run("missing text", func(t *testing.T) {
		h, _, _ := newContentFixture(t)

		req := asUser(httptest.NewRequest(http.MethodPost, "/content/save", bytes.NewBufferString(`{"content_type":"blog"}`)), "user-1")
		rr := httptest.NewRecorder()

		h.HandleSave(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("invalid request body", func(t *testing.T) {
		h, _, _ := newContentFixture(t)

		req := asUser(httptest.NewRequest(http.MethodPost, "/content/save", bytes.NewBufferString(`{"title":`)), "user-1")
		rr := httptest.NewRecorder()

		h.HandleSave(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestContentHandler_HandleHistory(t *testing.T) {
	t.Run("newest first, owner scoped", func(t *testing.T) {
		h, _, _ := newContentFixture(t)
		save(t, h, "user-1", "first")
		save(t, h, "user-1", "second")
		save(t, h, "user-2", "other")

		req := asUser(httptest.NewRequest(http.MethodGet, "/content/history", nil), "user-1")
		rr := httptest.NewRecorder()

		h.HandleHistory(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var res []model.Content
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.Len(t, res, 2)
		assert.Equal(t, "second", res[0].Title)
		assert.Equal(t, "first", res[1].Title)
	})

	t.Run("skip and limit", func(t *testing.T) {
		h, _, _ := newContentFixture(t)
		for i := 0; i < 5; i++ {
			save(t, h, "user-1", "post")
		}

		req := asUser(httptest.NewRequest(http.MethodGet, "/content/history?skip=1&limit=2", nil), "user-1")
		rr := httptest.NewRecorder()

		h.HandleHistory(rr, req)

		var res []model.Content
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.Len(t, res, 2)
	})

	t.Run("unparseable params fall back to defaults", func(t *testing.T) {
		h, _, _ := newContentFixture(t)
		save(t, h, "user-1", "post")

		req := asUser(httptest.NewRequest(http.MethodGet, "/content/history?skip=abc&limit=xyz", nil), "user-1")
		rr := httptest.NewRecorder()

		h.HandleHistory(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var res []model.Content
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.Len(t, res, 1)
	})
}

func TestContentHandler_HandleGetByID(t *testing.T) {
	t.Run("own record", func(t *testing.T) {
		h, _, _ := newContentFixture(t)
		id := save(t, h, "user-1", "mine")

		req := asUser(httptest.NewRequest(http.MethodGet, "/content/"+id, nil), "user-1")
		req.SetPathValue("id", id)
		rr := httptest.NewRecorder()

		h.HandleGetByID(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var res model.Content
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.Equal(t, "mine", res.Title)
	})

	t.Run("someone else's record is a 404", func(t *testing.T) {
		h, _, _ := newContentFixture(t)
		id := save(t, h, "user-1", "mine")

		req := asUser(httptest.NewRequest(http.MethodGet, "/content/"+id, nil), "user-2")
		req.SetPathValue("id", id)
		rr := httptest.NewRecorder()

		h.HandleGetByID(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "not_found")
	})

	t.Run("unknown id", func(t *testing.T) {
		h, _, _ := newContentFixture(t)

		req := asUser(httptest.NewRequest(http.MethodGet, "/content/nope", nil), "user-1")
		req.SetPathValue("id", "nope")
		rr := httptest.NewRecorder()

		h.HandleGetByID(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
