package models

import (
	"encoding/json"
	"time"
)

// Post is a blog post as returned by the condenser API. Posts are
// immutable once fetched; identity is (author, permlink).
type Post struct {
	Author       string    `json:"author"`
	Permlink     string    `json:"permlink"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	Created      time.Time `json:"created"`
	JSONMetadata string    `json:"json_metadata"`
}

// PostMetadata is the parsed form of a post's json_metadata field.
type PostMetadata struct {
	Tags   []string `json:"tags"`
	Image  []string `json:"image"`
	App    string   `json:"app"`
	Format string   `json:"format"`
}

// Metadata parses the post's json_metadata. Malformed or empty metadata
// yields a zero value, never an error.
func (p *Post) Metadata() PostMetadata {
	var meta PostMetadata
	if p.JSONMetadata == "" {
		return meta
	}
	// Invalid JSON is common on chain; treat it as no metadata.
	_ = json.Unmarshal([]byte(p.JSONMetadata), &meta)
	return meta
}

// HasImage reports whether the post metadata carries at least one image.
func (p *Post) HasImage() bool {
	return len(p.Metadata().Image) > 0
}

// CoverImage returns the first metadata image, or empty string.
func (p *Post) CoverImage() string {
	images := p.Metadata().Image
	if len(images) == 0 {
		return ""
	}
	return images[0]
}

// FeedSnapshot is a cached copy of the post feed together with the time
// it was fetched. It is considered fresh while now-FetchedAt < TTL.
type FeedSnapshot struct {
	Posts     []Post    `json:"posts"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Fresh reports whether the snapshot is still within its TTL.
func (s *FeedSnapshot) Fresh(now time.Time, ttl time.Duration) bool {
	if s == nil || s.FetchedAt.IsZero() {
		return false
	}
	return now.Sub(s.FetchedAt) < ttl
}
