// Package normalize turns the raw article lists collected by the aggregator
// into the canonical deduplicated, categorized, time-ordered set.
package normalize

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/marinawille/ai-news-hub/internal/config"
	"github.com/marinawille/ai-news-hub/internal/model"
)

// Titles shorter than this are exempt from title-based dedup; short generic
// titles collide too easily.
const minTitleDedupLen = 15

// categoryMigration maps deprecated category IDs, still present on articles
// carried over from a persisted snapshot, to their canonical replacements.
// Applied before keyword matching so the fallback category is always valid.
var categoryMigration = map[string]string{
	"llms":          "modelos-linguagem",
	"ia-generativa": "visao-computacional",
	"big-techs":     "empresas-negocios",
	"startups":      "empresas-negocios",
	"robotica":      "robotica-hardware",
}

type categoryCheck struct {
	id       string
	keywords []string
}

// Normalizer applies the full normalization pass. It is a pure function of
// its input, the category table it was built with, and the time handed to
// Normalize.
type Normalizer struct {
	checks   []categoryCheck
	maxTotal int
}

// New builds a normalizer from the configured category table. The "all"
// catch-all and any keywordless entry are excluded from scoring.
func New(categories []config.Category, maxTotal int) *Normalizer {
	if maxTotal <= 0 {
		maxTotal = 200
	}
	var checks []categoryCheck
	for _, c := range categories {
		if c.ID == "all" || len(c.Keywords) == 0 {
			continue
		}
		kws := make([]string, len(c.Keywords))
		for i, k := range c.Keywords {
			kws[i] = strings.ToLower(k)
		}
		checks = append(checks, categoryCheck{id: c.ID, keywords: kws})
	}
	return &Normalizer{checks: checks, maxTotal: maxTotal}
}

// Normalize runs the stages in order: legacy category migration, dedup,
// categorization, recency enrichment, sort, cap. The stages depend on each
// other's guarantees, so the order is fixed.
func (n *Normalizer) Normalize(articles []model.Article, now time.Time) []model.Article {
	out := make([]model.Article, len(articles))
	copy(out, articles)

	for i := range out {
		out[i] = migrateCategory(out[i])
	}
	out = Deduplicate(out)
	for i := range out {
		out[i] = n.categorize(out[i])
		out[i].Recency = RecencyOf(out[i].PublishedAt, now)
	}
	sortArticles(out)

	if len(out) > n.maxTotal {
		out = out[:n.maxTotal]
	}
	return out
}

func migrateCategory(a model.Article) model.Article {
	if canonical, ok := categoryMigration[a.Category]; ok {
		a.Category = canonical
	}
	return a
}

// categorize scores every category by the number of its keywords appearing
// as substrings of the lowercased title+description. The comparison is
// strict, so the first-configured category with the running maximum keeps
// the assignment on a tie. Zero matches keeps the feed's default category.
func (n *Normalizer) categorize(a model.Article) model.Article {
	text := strings.ToLower(a.Title + " " + a.Description)

	bestID := ""
	bestCount := 0
	var bestMatched []string

	for _, check := range n.checks {
		var matched []string
		for _, kw := range check.keywords {
			if strings.Contains(text, kw) {
				matched = append(matched, kw)
			}
		}
		if len(matched) > bestCount {
			bestCount = len(matched)
			bestID = check.id
			bestMatched = matched
		}
	}

	if bestID != "" && bestCount > 0 {
		a.Category = bestID
		a.MatchedKeywords = bestMatched
	}
	return a
}

// Deduplicate drops subsequent articles sharing a normalized URL, then
// subsequent articles sharing a normalized title of at least
// minTitleDedupLen characters. The first encountered article survives.
func Deduplicate(articles []model.Article) []model.Article {
	seenURLs := make(map[string]bool)
	seenTitles := make(map[string]bool)
	unique := make([]model.Article, 0, len(articles))

	for _, a := range articles {
		u := NormalizeURL(a.URL)
		if seenURLs[u] {
			continue
		}
		seenURLs[u] = true

		t := normalizeTitle(a.Title)
		if len(t) >= minTitleDedupLen {
			if seenTitles[t] {
				continue
			}
			seenTitles[t] = true
		}

		unique = append(unique, a)
	}
	return unique
}

var (
	schemeRe   = regexp.MustCompile(`^https?://(www\.)?`)
	nonWordRe  = regexp.MustCompile(`[^\w\s]`)
	multiWSRe  = regexp.MustCompile(`\s+`)
	trailSlash = regexp.MustCompile(`/+$`)
)

// NormalizeURL lowercases and strips trailing slashes, the query string and
// the scheme/www prefix, yielding the dedup key the article ID contract is
// defined over.
func NormalizeURL(u string) string {
	s := strings.ToLower(u)
	if i := strings.IndexByte(s, '?'); i >= 0 {
		s = s[:i]
	}
	s = trailSlash.ReplaceAllString(s, "")
	s = schemeRe.ReplaceAllString(s, "")
	return s
}

func normalizeTitle(t string) string {
	s := strings.ToLower(t)
	s = nonWordRe.ReplaceAllString(s, "")
	s = multiWSRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// RecencyOf classifies article age: under 6h Newest, under 48h New,
// otherwise Past. Exactly 6h is New and exactly 48h is Past.
func RecencyOf(published, now time.Time) model.RecencyStatus {
	age := now.Sub(published)
	switch {
	case age < 6*time.Hour:
		return model.Newest
	case age < 48*time.Hour:
		return model.New
	default:
		return model.Past
	}
}

// sortArticles orders by recency group, then published descending within
// each group.
func sortArticles(articles []model.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		ri, rj := articles[i].Recency.Rank(), articles[j].Recency.Rank()
		if ri != rj {
			return ri < rj
		}
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
}
