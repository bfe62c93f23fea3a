package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// RecencyStatus is the three-valued freshness classification derived from
// article age. It is recomputed on every normalization pass and never
// authoritative when read back from a snapshot.
type RecencyStatus string

const (
	Newest RecencyStatus = "Newest" // younger than 6h
	New    RecencyStatus = "New"    // 6h to 48h
	Past   RecencyStatus = "Past"   // 48h and older
)

// Rank orders recency groups for sorting: Newest < New < Past.
// Unknown values sort with Past.
func (r RecencyStatus) Rank() int {
	switch r {
	case Newest:
		return 0
	case New:
		return 1
	default:
		return 2
	}
}

// Article is a normalized news item.
type Article struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	URL             string        `json:"url"`
	Source          string        `json:"source"`
	Thumbnail       string        `json:"thumbnail,omitempty"`
	PublishedAt     time.Time     `json:"publishedAt"`
	Category        string        `json:"category"`
	MatchedKeywords []string      `json:"matchedKeywords"`
	Recency         RecencyStatus `json:"recencyStatus,omitempty"`
}

// ArticleID derives a stable identifier from the article URL. The same URL
// always yields the same ID across runs.
func ArticleID(url string) string {
	h := sha256.Sum256([]byte(url))
	return fmt.Sprintf("%x", h[:16])
}

// Snapshot is the unit persisted by the snapshot cache: the last successful
// normalized article set plus the time it was written. Snapshots are
// superseded wholesale, never merged.
type Snapshot struct {
	Articles  []Article `json:"articles"`
	Timestamp time.Time `json:"timestamp"`
}
