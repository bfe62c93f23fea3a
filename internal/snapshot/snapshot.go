// Package snapshot persists the last successful normalized article set with
// a timestamp and TTL, and exposes a stale-but-usable fallback read.
package snapshot

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/marinawille/ai-news-hub/internal/model"
)

const (
	keyArticles  = "ainewshub_articles"
	keyTimestamp = "ainewshub_timestamp"
)

// Cache wraps a Store with the snapshot contract. Snapshots are replaced
// wholesale on every save, never merged.
type Cache struct {
	store       Store
	ttl         time.Duration
	maxArticles int
	now         func() time.Time
}

func NewCache(store Store, ttl time.Duration, maxArticles int) *Cache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	if maxArticles <= 0 {
		maxArticles = 200
	}
	return &Cache{store: store, ttl: ttl, maxArticles: maxArticles, now: time.Now}
}

// Save persists at most maxArticles articles plus the current timestamp
// (unix milliseconds).
func (c *Cache) Save(articles []model.Article) error {
	toSave := articles
	if len(toSave) > c.maxArticles {
		toSave = toSave[:c.maxArticles]
	}

	payload, err := json.Marshal(toSave)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := c.store.Set(keyArticles, string(payload)); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	ts := strconv.FormatInt(c.now().UnixMilli(), 10)
	if err := c.store.Set(keyTimestamp, ts); err != nil {
		return fmt.Errorf("saving snapshot timestamp: %w", err)
	}
	return nil
}

// Load returns the stored snapshot when one exists and is within the TTL.
// A payload that fails to deserialize counts as corruption: the snapshot is
// cleared and treated as absent.
func (c *Cache) Load() (model.Snapshot, bool, error) {
	snap, ok, err := c.read()
	if err != nil || !ok {
		return model.Snapshot{}, false, err
	}
	if c.now().Sub(snap.Timestamp) > c.ttl {
		return model.Snapshot{}, false, nil
	}
	return snap, true, nil
}

// LoadStale ignores the TTL entirely. It is the designated fallback when a
// refresh cycle yields zero articles from every source.
func (c *Cache) LoadStale() (model.Snapshot, bool, error) {
	return c.read()
}

func (c *Cache) read() (model.Snapshot, bool, error) {
	raw, ok, err := c.store.Get(keyArticles)
	if err != nil {
		return model.Snapshot{}, false, fmt.Errorf("reading snapshot: %w", err)
	}
	if !ok {
		return model.Snapshot{}, false, nil
	}

	var articles []model.Article
	if err := json.Unmarshal([]byte(raw), &articles); err != nil {
		// Corrupted payload heals itself: clear and report absent.
		_ = c.Clear()
		return model.Snapshot{}, false, nil
	}

	ts := c.now()
	if rawTS, ok, err := c.store.Get(keyTimestamp); err == nil && ok {
		if millis, perr := strconv.ParseInt(rawTS, 10, 64); perr == nil {
			ts = time.UnixMilli(millis)
		}
	}

	return model.Snapshot{Articles: articles, Timestamp: ts}, true, nil
}

// Clear removes both snapshot keys.
func (c *Cache) Clear() error {
	if err := c.store.Delete(keyArticles); err != nil {
		return err
	}
	return c.store.Delete(keyTimestamp)
}
