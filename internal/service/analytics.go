package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/sakif/content-automation/internal/model"
	"github.com/sakif/content-automation/internal/repository"
)

// topKeywordCount is how many keywords the report keeps after sorting.
const topKeywordCount = 10

// AnalyticsService computes the per-user usage report.
//
// The report is computed fresh on every call — no cache, no materialized
// counts. At this system's scale a user's full content set fits comfortably
// in memory, and freshness beats the bookkeeping of incremental counters.
type AnalyticsService struct {
	repo   repository.ContentRepository
	logger *slog.Logger
}

// NewAnalyticsService creates an AnalyticsService.
func NewAnalyticsService(repo repository.ContentRepository, logger *slog.Logger) *AnalyticsService {
	return &AnalyticsService{
		repo:   repo,
		logger: logger,
	}
}

// Report builds the usage summary for one user:
//
//  1. content_by_type — SQL GROUP BY counts over the user's records. Exact,
//     case-sensitive type strings; pair order follows the storage grouping.
//  2. top_keywords — keyword frequencies across all the user's records,
//     sorted by count and truncated to 10.
//  3. total_content — total number of records.
//
// A user with zero records gets empty lists and a zero total; that is a
// normal answer, not an error. Read-only throughout.
func (s *AnalyticsService) Report(ctx context.Context, ownerID string) (*model.AnalyticsReport, error) {
	byType, err := s.repo.CountContentByType(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("counting content by type: %w", err)
	}

	contents, err := s.repo.AllContentByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("loading content for analytics: %w", err)
	}

	report := &model.AnalyticsReport{
		ContentByType: byType,
		TopKeywords:   topKeywords(contents),
		TotalContent:  len(contents),
	}
	if report.ContentByType == nil {
		report.ContentByType = []model.TypeCount{}
	}

	s.logger.Debug("analytics report computed",
		slog.String("userID", ownerID),
		slog.Int("totalContent", report.TotalContent),
	)

	return report, nil
}

// topKeywords tallies keyword frequencies across the given records and
// returns the 10 most frequent.
//
// The keywords column is a raw comma-separated string, so the splitting
// rules live here, at read time:
//   - split on commas
//   - trim surrounding whitespace from each piece
//   - discard pieces that are empty after trimming
//   - count every remaining piece, INCLUDING duplicates within one record
//   - matching is case-sensitive and exact ("AI" and "ai" are different)
//
// Sort order: count descending. Equal counts are ordered by keyword
// ascending — the tie-break is otherwise unspecified by the contract, and a
// total order keeps the report deterministic.
func topKeywords(contents []model.Content) []model.KeywordCount {
	counts := make(map[string]int)
	for _, c := range contents {
		for _, piece := range strings.Split(c.Keywords, ",") {
			keyword := strings.TrimSpace(piece)
			if keyword == "" {
				continue
			}
			counts[keyword]++
		}
	}

	top := make([]model.KeywordCount, 0, len(counts))
	for keyword, count := range counts {
		top = append(top, model.KeywordCount{Keyword: keyword, Count: count})
	}

	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Keyword < top[j].Keyword
	})

	if len(top) > topKeywordCount {
		top = top[:topKeywordCount]
	}

	return top
}
