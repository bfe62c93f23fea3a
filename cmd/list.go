package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/marinawille/ai-news-hub/internal/config"
	"github.com/marinawille/ai-news-hub/internal/model"
	"github.com/marinawille/ai-news-hub/internal/normalize"
	"github.com/marinawille/ai-news-hub/internal/snapshot"
)

var (
	flagCategory string
	flagRecency  string
	flagSearch   string

	titleStyle = lipgloss.NewStyle().Bold(true)
	metaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List articles from the cached snapshot",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVarP(&flagCategory, "category", "c", "all", "filter by category id")
	listCmd.Flags().StringVarP(&flagRecency, "recency", "r", "", "filter by recency (Newest, New, Past)")
	listCmd.Flags().StringVarP(&flagSearch, "search", "s", "", "filter by title/description/source text")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

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
	snap, ok, err := cache.Load()
	if err != nil {
		return err
	}
	if !ok {
		// Past the TTL (or absent): show whatever we have rather than nothing.
		snap, ok, err = cache.LoadStale()
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no snapshot yet — run `ai-news-hub refresh` first")
		}
		fmt.Println(staleStyle.Render(fmt.Sprintf(
			"snapshot from %s is past its refresh window",
			snap.Timestamp.Format(time.RFC822))))
	}

	articles := normalize.ByCategory(snap.Articles, flagCategory)
	if flagRecency != "" {
		articles = normalize.ByRecency(articles, model.RecencyStatus(flagRecency))
	}
	articles = normalize.Search(articles, flagSearch)

	if len(articles) == 0 {
		fmt.Println("no articles match the filters")
		return nil
	}
	for _, a := range articles {
		fmt.Println(titleStyle.Render(a.Title))
		fmt.Println(metaStyle.Render(fmt.Sprintf("  %s · %s · %s · %s",
			a.Source, a.Category, a.Recency, a.PublishedAt.Format("02 Jan 15:04"))))
		if a.Description != "" {
			fmt.Printf("  %s\n", a.Description)
		}
		fmt.Printf("  %s\n\n", a.URL)
	}
	return nil
}
