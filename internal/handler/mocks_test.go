package handler_test

// Shared in-memory fakes for handler tests. Handlers are tested with REAL
// services wired to these fakes — the only things mocked out are the
// database and the generation gateway, same as the service tests do.

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sakif/content-automation/internal/apperror"
	"github.com/sakif/content-automation/internal/auth"
	"github.com/sakif/content-automation/internal/model"
	"github.com/sakif/content-automation/internal/repository"
	"github.com/sakif/content-automation/internal/service"
)

type fakeUserRepo struct {
	byEmail map[string]*model.User
	nextID  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*model.User)}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return apperror.Conflict("user", user.Email)
	}
	f.nextID++
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	user.CreatedAt = time.Now()
	stored := *user
	f.byEmail[user.Email] = &stored
	return nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, apperror.NotFound("user", email)
	}
	result := *user
	return &result, nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id string) (*model.User, error) {
	for _, user := range f.byEmail {
		if user.ID == id {
			result := *user
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", id)
}

type fakeContentRepo struct {
	contents []model.Content
	nextID   int
}

func (f *fakeContentRepo) CreateContent(_ context.Context, content *model.Content) error {
	f.nextID++
	content.ID = fmt.Sprintf("content-%d", f.nextID)
	content.CreatedAt = time.Now()
	f.contents = append(f.contents, *content)
	return nil
}

func (f *fakeContentRepo) GetContentByID(_ context.Context, id, ownerID string) (*model.Content, error) {
	for _, c := range f.contents {
		if c.ID == id && c.UserID == ownerID {
			result := c
			return &result, nil
		}
	}
	return nil, apperror.NotFound("content", id)
}

func (f *fakeContentRepo) ListContentByOwner(_ context.Context, ownerID string, opts repository.ListOptions) ([]model.Content, error) {
	owned := f.ownedBy(ownerID)
	for i, j := 0, len(owned)-1; i < j; i, j = i+1, j-1 {
		owned[i], owned[j] = owned[j], owned[i]
	}
	if opts.Offset >= len(owned) {
		return []model.Content{}, nil
	}
	owned = owned[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(owned) {
		owned = owned[:opts.Limit]
	}
	return owned, nil
}

func (f *fakeContentRepo) AllContentByOwner(_ context.Context, ownerID string) ([]model.Content, error) {
	return f.ownedBy(ownerID), nil
}

func (f *fakeContentRepo) CountContentByType(_ context.Context, ownerID string) ([]model.TypeCount, error) {
	tally := map[string]int{}
	order := []string{}
	for _, c := range f.contents {
		if c.UserID != ownerID {
			continue
		}
		if _, seen := tally[c.ContentType]; !seen {
			order = append(order, c.ContentType)
		}
		tally[c.ContentType]++
	}
	counts := make([]model.TypeCount, 0, len(order))
	for _, typ := range order {
		counts = append(counts, model.TypeCount{Type: typ, Count: tally[typ]})
	}
	return counts, nil
}

func (f *fakeContentRepo) ownedBy(ownerID string) []model.Content {
	owned := []model.Content{}
	for _, c := range f.contents {
		if c.UserID == ownerID {
			owned = append(owned, c)
		}
	}
	return owned
}

// fakeGenerator returns canned text or a canned error.
type fakeGenerator struct {
	text string
	err  error
}

func (f *fakeGenerator) Generate(context.Context, string, string, []string) (string, error) {
	return f.text, f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestAuthService(t *testing.T) (*service.AuthService, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo()
	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars!!")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	passwords := auth.NewPasswordServiceForTest(bcrypt.MinCost)
	return service.NewAuthService(repo, tokens, passwords, testLogger()), repo
}

// asUser stamps a request with an authenticated user ID, standing in for the
// RequireAuth middleware that wraps these handlers in the real router.
func asUser(r *http.Request, userID string) *http.Request {
	return r.WithContext(auth.ContextWithUserID(r.Context(), userID))
}
