package model

import "time"

// Content represents a single stored piece of generated text.
//
// ContentType is an open string tag ("blog", "script", "summary", ...) —
// deliberately NOT an enum. Any string is accepted and comparisons elsewhere
// are exact and case-sensitive, so "Blog" and "blog" are distinct types.
//
// Keywords is the raw comma-separated string the client sent, stored
// verbatim. Splitting and trimming happen at read time in the analytics
// aggregator, never at write time.
//
// Content rows are immutable after save: no update, no delete.
type Content struct {
	ID          string    `json:"id"          db:"id"`
	Title       string    `json:"title"       db:"title"`
	ContentType string    `json:"contentType" db:"content_type"`
	Text        string    `json:"text"        db:"text"`
	Keywords    string    `json:"keywords"    db:"keywords"`
	UserID      string    `json:"userId"      db:"user_id"`
	CreatedAt   time.Time `json:"createdAt"   db:"created_at"`
}
