// Package aggregate fans out over every configured source concurrently and
// collects whatever succeeded, plus the names of what failed.
package aggregate

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/marinawille/ai-news-hub/internal/config"
	"github.com/marinawille/ai-news-hub/internal/feed"
	"github.com/marinawille/ai-news-hub/internal/model"
	"github.com/marinawille/ai-news-hub/internal/relay"
	"github.com/marinawille/ai-news-hub/internal/social"
)

// ErrTotalFailure reports a refresh cycle that produced zero articles. The
// documented fallback is the snapshot cache's stale read.
var ErrTotalFailure = errors.New("every configured source failed")

// Result holds the raw (pre-normalization) articles of one refresh cycle
// and the display names of sources that contributed nothing.
type Result struct {
	Articles      []model.Article
	FailedSources []string
}

// Aggregator runs the fetch+parse pipeline for feeds and the social cascade
// for accounts. Partial failure never aborts a batch.
type Aggregator struct {
	client *relay.Client
	parser *feed.Parser
	social *social.Cascade
	logger *log.Logger
}

func New(client *relay.Client, parser *feed.Parser, cascade *social.Cascade, logger *log.Logger) *Aggregator {
	return &Aggregator{client: client, parser: parser, social: cascade, logger: logger}
}

// Refresh fetches every source concurrently with an all-settled join: the
// batch completes once each cascade has succeeded or exhausted itself, and
// a slow source never blocks successful ones from being returned. The
// failed-source list is sorted for stable reporting. Returns
// ErrTotalFailure when the whole batch yields zero articles.
func (g *Aggregator) Refresh(ctx context.Context, feeds []config.Feed, accounts []config.Account) (Result, error) {
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		result Result
	)

	for _, src := range feeds {
		wg.Add(1)
		go func(src config.Feed) {
			defer wg.Done()
			articles, err := g.fetchFeed(ctx, src)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				g.logger.Warn("source failed", "source", src.Name, "err", err)
				result.FailedSources = append(result.FailedSources, src.Name)
				return
			}
			result.Articles = append(result.Articles, articles...)
		}(src)
	}

	for _, acct := range accounts {
		wg.Add(1)
		go func(acct config.Account) {
			defer wg.Done()
			res := g.social.FetchAccount(ctx, acct)
			mu.Lock()
			defer mu.Unlock()
			if len(res.Articles) == 0 {
				g.logger.Warn("account failed", "account", acct.Name, "reason", res.Reason)
				result.FailedSources = append(result.FailedSources, acct.Name)
				return
			}
			result.Articles = append(result.Articles, res.Articles...)
		}(acct)
	}

	wg.Wait()
	sort.Strings(result.FailedSources)

	if len(result.Articles) == 0 && len(feeds)+len(accounts) > 0 {
		return result, ErrTotalFailure
	}
	return result, nil
}

func (g *Aggregator) fetchFeed(ctx context.Context, src config.Feed) ([]model.Article, error) {
	payload, err := g.client.Fetch(ctx, src.URL)
	if err != nil {
		return nil, err
	}
	return g.parser.Parse(payload, src)
}
