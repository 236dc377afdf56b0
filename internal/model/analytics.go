package model

// TypeCount is one (content_type, count) pair in the analytics report.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// KeywordCount is one (keyword, count) pair in the analytics report.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// AnalyticsReport is the per-user usage summary returned by GET /analytics/.
//
// The JSON field names match the wire contract exactly: content_by_type,
// top_keywords, total_content. Both slices are always non-nil so a user with
// zero records serializes as empty arrays, not null.
type AnalyticsReport struct {
	ContentByType []TypeCount    `json:"content_by_type"`
	TopKeywords   []KeywordCount `json:"top_keywords"`
	TotalContent  int            `json:"total_content"`
}
