package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/marinawille/ai-news-hub/internal/aggregate"
	"github.com/marinawille/ai-news-hub/internal/config"
	"github.com/marinawille/ai-news-hub/internal/feed"
	"github.com/marinawille/ai-news-hub/internal/model"
	"github.com/marinawille/ai-news-hub/internal/normalize"
	"github.com/marinawille/ai-news-hub/internal/relay"
	"github.com/marinawille/ai-news-hub/internal/snapshot"
	"github.com/marinawille/ai-news-hub/internal/social"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	staleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

var flagWatch bool

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch all sources, normalize, and update the snapshot",
	RunE:  runRefresh,
}

func init() {
	refreshCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "keep refreshing on the configured interval")
}

func runRefresh(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	if err := refreshOnce(cfg); err != nil {
		return err
	}
	if !flagWatch {
		return nil
	}

	ticker := time.NewTicker(cfg.RefreshInterval())
	defer ticker.Stop()
	for range ticker.C {
		if err := refreshOnce(cfg); err != nil {
			return err
		}
	}
	return nil
}

func refreshOnce(cfg *config.Config) error {
	logger := newLogger()

	cachePath := flagCache
	if cachePath == "" {
		cachePath = config.DefaultCachePath()
	}
	store, err := snapshot.OpenSQLite(cachePath)
	if err != nil {
		return err
	}
	defer store.Close()
	cache := snapshot.NewCache(store, cfg.CacheTTL(), cfg.Settings.MaxTotalArticles)

	rotator := relay.NewRotator(cfg.Relays)
	client := relay.NewClient(rotator, cfg.FetchTimeout(), logger)
	parser := feed.NewParser(cfg.Settings.MaxArticlesPerFeed)
	cascade := social.NewCascade(client, parser, cfg, logger)
	agg := aggregate.New(client, parser, cascade, logger)

	ctx := context.Background()
	result, err := agg.Refresh(ctx, cfg.EnabledFeeds(), cfg.EnabledAccounts())
	if err != nil {
		if !errors.Is(err, aggregate.ErrTotalFailure) {
			return err
		}
		// Every source failed: fall back to the stale snapshot if one exists.
		snap, ok, serr := cache.LoadStale()
		if serr != nil {
			return serr
		}
		if !ok {
			return fmt.Errorf("no sources reachable and no cached snapshot available")
		}
		fmt.Println(staleStyle.Render(fmt.Sprintf(
			"all sources failed — showing cached data from %s",
			snap.Timestamp.Format(time.RFC822))))
		printSummary(snap.Articles, nil)
		return nil
	}

	normalizer := normalize.New(cfg.Categories, cfg.Settings.MaxTotalArticles)
	articles := normalizer.Normalize(result.Articles, time.Now())

	if err := cache.Save(articles); err != nil {
		logger.Warn("could not save snapshot", "err", err)
	}

	printSummary(articles, result.FailedSources)
	return nil
}

func printSummary(articles []model.Article, failed []string) {
	fmt.Println(headerStyle.Render(fmt.Sprintf("%d articles", len(articles))))

	byCategory := make(map[string]int)
	for _, a := range articles {
		byCategory[a.Category]++
	}
	for cat, n := range byCategory {
		fmt.Printf("  %-22s %d\n", cat, n)
	}

	if len(failed) > 0 {
		fmt.Println(warnStyle.Render("unavailable sources: " + strings.Join(failed, ", ")))
	}
}
