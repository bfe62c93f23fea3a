package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/marinawille/ai-news-hub/internal/analytics"
	"github.com/marinawille/ai-news-hub/internal/config"
	"github.com/marinawille/ai-news-hub/internal/sentiment"
	"github.com/marinawille/ai-news-hub/internal/snapshot"
	"github.com/marinawille/ai-news-hub/internal/timeseries"
)

var flagRange string

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Show sentiment buckets, peaks and trending keywords from the cached snapshot",
	RunE:  runTrends,
}

func init() {
	trendsCmd.Flags().StringVar(&flagRange, "range", "7d", "window to bucket (3d, 7d, 30d)")
}

func runTrends(cmd *cobra.Command, args []string) error {
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
	snap, ok, err := cache.LoadStale()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no snapshot yet — run `ai-news-hub refresh` first")
	}

	days := map[string]int{"3d": 3, "7d": 7, "30d": 30}[flagRange]
	if days == 0 {
		return fmt.Errorf("unknown range %q (valid: 3d, 7d, 30d)", flagRange)
	}

	now := time.Now()
	start := now.Add(-time.Duration(days) * 24 * time.Hour)
	interval := timeseries.IntervalFor(now.Sub(start))

	classifier := sentiment.NewDefault()
	buckets := timeseries.Buckets(snap.Articles, start, now, interval, classifier)
	totals := timeseries.Sum(buckets)

	fmt.Println(headerStyle.Render(fmt.Sprintf("sentiment over the last %s", flagRange)))
	fmt.Printf("  positive %d (%d%%)  neutral %d (%d%%)  negative %d (%d%%)\n",
		totals.Positive, totals.Percent(totals.Positive),
		totals.Neutral, totals.Percent(totals.Neutral),
		totals.Negative, totals.Percent(totals.Negative))

	for _, peak := range timeseries.Peaks(buckets) {
		fmt.Printf("  %s peak: %d on %s — %s\n",
			peak.Class, peak.Count,
			buckets[peak.BucketIndex].Start.Format("02/01 15h"),
			peak.Headline.Title)
	}

	keywords := analytics.TopKeywords(snap.Articles, now)
	if len(keywords) > 0 {
		fmt.Println(headerStyle.Render("trending topics"))
		limit := 10
		if len(keywords) < limit {
			limit = len(keywords)
		}
		for _, kw := range keywords[:limit] {
			marker := " "
			if kw.Trending {
				marker = "↑"
			}
			fmt.Printf("  %s #%-20s %d\n", marker, kw.Word, kw.Count)
		}
	}

	fmt.Println(headerStyle.Render("category momentum (24h vs previous 24h)"))
	for _, m := range analytics.CategoryMomentum(snap.Articles, cfg.CategoryIDs(), now, 24*time.Hour) {
		fmt.Printf("  %-22s %3d (was %d)\n", m.CategoryID, m.Current, m.Previous)
	}

	fmt.Println(headerStyle.Render("most read"))
	for i, a := range analytics.MostRead(snap.Articles, now, 5) {
		fmt.Printf("  %d. %s (%s)\n", i+1, a.Title, a.Source)
	}

	return nil
}
