// Package social fetches articles for accounts that lack a stable feed URL
// by cascading through alternative source strategies: the account's own
// feed, a bridge service, then public mirror instances.
package social

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/marinawille/ai-news-hub/internal/config"
	"github.com/marinawille/ai-news-hub/internal/feed"
	"github.com/marinawille/ai-news-hub/internal/model"
	"github.com/marinawille/ai-news-hub/internal/relay"
)

// Result is the outcome of one account cascade. The cascade never fails
// hard: when every strategy is exhausted, Articles is empty and Reason
// records why.
type Result struct {
	Articles    []model.Article
	SourceLabel string
	Reason      string
}

type attempt struct {
	strategy string
	url      string
	label    string
}

// Cascade tries an ordered list of source strategies per account and keeps
// the first non-empty parse.
type Cascade struct {
	client     *relay.Client
	parser     *feed.Parser
	bridge     string
	mirrors    []string
	strategies []string
	logger     *log.Logger
}

func NewCascade(client *relay.Client, parser *feed.Parser, cfg *config.Config, logger *log.Logger) *Cascade {
	strategies := cfg.Strategies
	if len(strategies) == 0 {
		strategies = []string{config.StrategyNativeFeed, config.StrategyBridge, config.StrategyMirrors}
	}
	return &Cascade{
		client:     client,
		parser:     parser,
		bridge:     cfg.Bridge,
		mirrors:    cfg.Mirrors,
		strategies: strategies,
		logger:     logger,
	}
}

// FetchAccount walks the attempt list for account. A fetch error or an
// empty parse is a soft failure that advances to the next attempt; an empty
// page must not short-circuit the cascade. On the first non-empty result
// the source name is relabeled to reflect the strategy that produced it.
func (c *Cascade) FetchAccount(ctx context.Context, account config.Account) Result {
	attempts := c.buildAttempts(account)
	if len(attempts) == 0 {
		return Result{SourceLabel: account.Name, Reason: "no usable handles configured"}
	}

	var lastReason string
	for _, at := range attempts {
		payload, err := c.client.Fetch(ctx, at.url)
		if err != nil {
			lastReason = err.Error()
			c.logger.Debug("social attempt failed", "account", account.Name, "strategy", at.strategy, "err", err)
			continue
		}

		articles, err := c.parser.Parse(payload, config.Feed{
			Name:            at.label,
			DefaultCategory: account.Category,
		})
		if err != nil {
			lastReason = err.Error()
			c.logger.Debug("social attempt unparseable", "account", account.Name, "strategy", at.strategy, "err", err)
			continue
		}
		if len(articles) == 0 {
			lastReason = fmt.Sprintf("%s returned no items", at.strategy)
			continue
		}

		return Result{Articles: articles, SourceLabel: at.label}
	}

	return Result{SourceLabel: account.Name, Reason: lastReason}
}

func (c *Cascade) buildAttempts(account config.Account) []attempt {
	var attempts []attempt
	for _, strategy := range c.strategies {
		switch strategy {
		case config.StrategyNativeFeed:
			if account.SecondaryHandle != "" {
				attempts = append(attempts, attempt{
					strategy: strategy,
					url:      account.SecondaryHandle,
					label:    account.Name + " (via native feed)",
				})
			}
		case config.StrategyBridge:
			if account.PrimaryHandle != "" && c.bridge != "" {
				attempts = append(attempts, attempt{
					strategy: strategy,
					url:      fmt.Sprintf(c.bridge, account.PrimaryHandle),
					label:    account.Name + " (via bridge)",
				})
			}
		case config.StrategyMirrors:
			if account.PrimaryHandle == "" {
				continue
			}
			for _, mirror := range c.mirrors {
				attempts = append(attempts, attempt{
					strategy: strategy,
					url:      strings.TrimRight(mirror, "/") + "/" + account.PrimaryHandle + "/rss",
					label:    account.Name + " (via mirror)",
				})
			}
		}
	}
	return attempts
}
