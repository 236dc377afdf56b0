package repository

import (
	"context"

	"github.com/sakif/content-automation/internal/model"
)

type ListOptions struct {
	Limit  int
	Offset int
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// ContentRepository persists generated text records. Every read is scoped to
// a single owner: there is no query that can cross user boundaries.
type ContentRepository interface {
	CreateContent(ctx context.Context, content *model.Content) error
	GetContentByID(ctx context.Context, id, ownerID string) (*model.Content, error)
	ListContentByOwner(ctx context.Context, ownerID string, opts ListOptions) ([]model.Content, error)
	AllContentByOwner(ctx context.Context, ownerID string) ([]model.Content, error)
	CountContentByType(ctx context.Context, ownerID string) ([]model.TypeCount, error)
}
