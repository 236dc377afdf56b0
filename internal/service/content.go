package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/content-automation/internal/apperror"
	"github.com/sakif/content-automation/internal/generator"
	"github.com/sakif/content-automation/internal/model"
	"github.com/sakif/content-automation/internal/repository"
)

const (
	MaxTitleLength       = 200
	MaxContentTypeLength = 50
	MaxTextLength        = 100000 // ~100KB of generated text
	DefaultHistoryLimit  = 10
	MaxHistoryLimit      = 100
)

// ContentService handles generation, saving, and retrieval of content
// records. Everything it returns is scoped to the calling user — the ownerID
// parameter on every method comes from the validated token, never from
// client input.
type ContentService struct {
	repo   repository.ContentRepository
	gen    generator.Generator
	logger *slog.Logger
}

// NewContentService creates a ContentService.
func NewContentService(repo repository.ContentRepository, gen generator.Generator, logger *slog.Logger) *ContentService {
	return &ContentService{
		repo:   repo,
		gen:    gen,
		logger: logger,
	}
}

// Generate produces text for the given niche/type/keywords via the gateway.
//
// FAILURE COLLAPSING:
// The gateway may fail in many ways (network, quota, bad response) or
// "succeed" with empty text. All of those become the single
// apperror.ErrGenerationFailed — the client gets a generic 400 and the
// detail goes to the log only. No retries.
func (s *ContentService) Generate(ctx context.Context, ownerID, niche, contentType string, keywords []string) (string, error) {
	niche = strings.TrimSpace(niche)
	if niche == "" {
		return "", apperror.ValidationFailed("niche", "niche is required")
	}
	if contentType == "" {
		return "", apperror.ValidationFailed("content_type", "content_type is required")
	}

	text, err := s.gen.Generate(ctx, niche, contentType, keywords)
	if err != nil || strings.TrimSpace(text) == "" {
		s.logger.Warn("content generation failed",
			slog.String("userID", ownerID),
			slog.String("contentType", contentType),
			slog.Any("error", err),
		)
		return "", apperror.GenerationFailed()
	}

	return text, nil
}

// Save stores a generated text record for the owner. Records are immutable
// after this point — there is no update or delete.
//
// The keywords string is stored verbatim (raw comma-separated form); the
// analytics aggregator does the splitting at read time.
func (s *ContentService) Save(ctx context.Context, ownerID, title, contentType, keywords, text string) (*model.Content, error) {
	title = strings.TrimSpace(title)
	if len(title) > MaxTitleLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("title must be %d characters or less", MaxTitleLength))
	}

	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		return nil, apperror.ValidationFailed("content_type", "content_type is required")
	}
	if len(contentType) > MaxContentTypeLength {
		return nil, apperror.ValidationFailed("content_type",
			fmt.Sprintf("content_type must be %d characters or less", MaxContentTypeLength))
	}

	if text == "" {
		return nil, apperror.ValidationFailed("text", "text is required")
	}
	if len(text) > MaxTextLength {
		return nil, apperror.ValidationFailed("text",
			fmt.Sprintf("text must be %d characters or less", MaxTextLength))
	}

	content := &model.Content{
		Title:       title,
		ContentType: contentType,
		Text:        text,
		Keywords:    keywords,
		UserID:      ownerID,
	}

	if err := s.repo.CreateContent(ctx, content); err != nil {
		s.logger.Error("failed to save content",
			slog.String("userID", ownerID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("saving content: %w", err)
	}

	s.logger.Info("content saved",
		slog.String("id", content.ID),
		slog.String("userID", ownerID),
		slog.String("contentType", contentType),
	)

	return content, nil
}

// History returns a page of the owner's records, newest first.
// limit defaults to 10 and is clamped to 1-100; skip can't go negative.
func (s *ContentService) History(ctx context.Context, ownerID string, skip, limit int) ([]model.Content, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	if skip < 0 {
		skip = 0
	}

	contents, err := s.repo.ListContentByOwner(ctx, ownerID, repository.ListOptions{
		Limit:  limit,
		Offset: skip,
	})
	if err != nil {
		s.logger.Error("failed to list content history",
			slog.String("userID", ownerID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing content: %w", err)
	}

	return contents, nil
}

// GetByID returns one of the owner's records, or ErrNotFound — including
// when the record exists but belongs to someone else.
func (s *ContentService) GetByID(ctx context.Context, ownerID, id string) (*model.Content, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "content ID is required")
	}

	return s.repo.GetContentByID(ctx, id, ownerID)
}
