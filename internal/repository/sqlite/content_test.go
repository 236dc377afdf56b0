package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sakif/content-automation/internal/apperror"
	"github.com/sakif/content-automation/internal/model"
	"github.com/sakif/content-automation/internal/repository"
)

// createTestContent creates a content record and fails the test if it errors.
func createTestContent(t *testing.T, db *DB, ownerID, contentType, keywords string) *model.Content {
	t.Helper()
	c := &model.Content{
		Title:       "test title",
		ContentType: contentType,
		Text:        "generated text body",
		Keywords:    keywords,
		UserID:      ownerID,
	}
	if err := db.CreateContent(context.Background(), c); err != nil {
		t.Fatalf("failed to create test content: %v", err)
	}
	return c
}

// =========================================================================
// CREATE + GET TESTS
// =========================================================================

func TestCreateContent(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")

	c := createTestContent(t, db, owner.ID, "blog", "ai, ml")

	if c.ID == "" {
		t.Error("CreateContent() did not set content.ID")
	}
	if c.CreatedAt.IsZero() {
		t.Error("CreateContent() did not set content.CreatedAt")
	}
}

func TestGetContentByID(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	created := createTestContent(t, db, owner.ID, "script", "video")

	found, err := db.GetContentByID(context.Background(), created.ID, owner.ID)
	if err != nil {
		t.Fatalf("GetContentByID() error = %v", err)
	}

	if found.ContentType != "script" {
		t.Errorf("ContentType = %q, want %q", found.ContentType, "script")
	}
	if found.Keywords != "video" {
		t.Errorf("Keywords = %q, want %q", found.Keywords, "video")
	}
}

func TestGetContentByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")

	_, err := db.GetContentByID(context.Background(), "missing-id", owner.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetContentByID() error = %v, want ErrNotFound", err)
	}
}

func TestGetContentByID_OtherOwnerLooksAbsent(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice@example.com")
	mallory := createTestUser(t, db, "mallory@example.com")

	created := createTestContent(t, db, alice.ID, "blog", "secret")

	// The record exists, but for another caller it must be indistinguishable
	// from a record that never existed.
	_, err := db.GetContentByID(context.Background(), created.ID, mallory.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetContentByID() cross-owner error = %v, want ErrNotFound", err)
	}
}

// =========================================================================
// LIST TESTS
// =========================================================================

func TestListContentByOwner_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")

	first := createTestContent(t, db, owner.ID, "blog", "a")
	time.Sleep(2 * time.Millisecond) // distinct created_at timestamps
	second := createTestContent(t, db, owner.ID, "blog", "b")

	list, err := db.ListContentByOwner(context.Background(), owner.ID, repository.ListOptions{Limit: 10})
	if err != nil {
		t.Fatalf("ListContentByOwner() error = %v", err)
	}

	if len(list) != 2 {
		t.Fatalf("len(list) = %d, want 2", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Errorf("list order = [%s %s], want newest first [%s %s]",
			list[0].ID, list[1].ID, second.ID, first.ID)
	}
}

func TestListContentByOwner_NeverCrossesOwners(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	createTestContent(t, db, alice.ID, "blog", "alice-kw")
	createTestContent(t, db, bob.ID, "blog", "bob-kw")

	list, err := db.ListContentByOwner(context.Background(), alice.ID, repository.ListOptions{Limit: 100})
	if err != nil {
		t.Fatalf("ListContentByOwner() error = %v", err)
	}

	for _, c := range list {
		if c.UserID != alice.ID {
			t.Errorf("list returned record %s owned by %s", c.ID, c.UserID)
		}
	}
	if len(list) != 1 {
		t.Errorf("len(list) = %d, want 1", len(list))
	}
}

func TestListContentByOwner_Pagination(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")

	for i := 0; i < 5; i++ {
		createTestContent(t, db, owner.ID, "blog", "kw")
		time.Sleep(time.Millisecond)
	}

	page, err := db.ListContentByOwner(context.Background(), owner.ID, repository.ListOptions{Limit: 2, Offset: 3})
	if err != nil {
		t.Fatalf("ListContentByOwner() error = %v", err)
	}
	if len(page) != 2 {
		t.Errorf("len(page) = %d, want 2", len(page))
	}
}

func TestAllContentByOwner_Empty(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")

	all, err := db.AllContentByOwner(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("AllContentByOwner() error = %v", err)
	}
	if len(all) != 0 {
		t.Errorf("len(all) = %d, want 0", len(all))
	}
	if all == nil {
		t.Error("AllContentByOwner() returned nil, want empty slice")
	}
}

// =========================================================================
// GROUP-BY TESTS
// =========================================================================

func TestCountContentByType(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")

	createTestContent(t, db, owner.ID, "blog", "")
	createTestContent(t, db, owner.ID, "blog", "")
	createTestContent(t, db, owner.ID, "script", "")

	counts, err := db.CountContentByType(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("CountContentByType() error = %v", err)
	}

	got := map[string]int{}
	for _, tc := range counts {
		got[tc.Type] = tc.Count
	}
	if got["blog"] != 2 {
		t.Errorf("count[blog] = %d, want 2", got["blog"])
	}
	if got["script"] != 1 {
		t.Errorf("count[script] = %d, want 1", got["script"])
	}
}

func TestCountContentByType_CaseSensitive(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")

	// "Blog" and "blog" are distinct types — no normalization anywhere.
	createTestContent(t, db, owner.ID, "blog", "")
	createTestContent(t, db, owner.ID, "Blog", "")

	counts, err := db.CountContentByType(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("CountContentByType() error = %v", err)
	}

	got := map[string]int{}
	for _, tc := range counts {
		got[tc.Type] = tc.Count
	}
	if got["blog"] != 1 || got["Blog"] != 1 {
		t.Errorf("counts = %v, want blog:1 and Blog:1 separately", got)
	}
}

func TestCountContentByType_ScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	createTestContent(t, db, alice.ID, "blog", "")
	createTestContent(t, db, bob.ID, "blog", "")
	createTestContent(t, db, bob.ID, "summary", "")

	counts, err := db.CountContentByType(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("CountContentByType() error = %v", err)
	}
	if len(counts) != 1 || counts[0].Type != "blog" || counts[0].Count != 1 {
		t.Errorf("counts = %v, want exactly [{blog 1}]", counts)
	}
}
