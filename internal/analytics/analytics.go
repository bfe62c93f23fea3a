// Package analytics derives presentation-facing summaries from the
// canonical article set: trending keywords, per-category momentum against a
// previous window, and a most-read ranking.
package analytics

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/marinawille/ai-news-hub/internal/model"
)

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true,
	"this": true, "from": true, "are": true, "was": true, "were": true,
	"been": true, "being": true, "have": true, "has": true, "had": true,
	"does": true, "did": true, "will": true, "would": true, "could": true,
	"should": true, "may": true, "might": true, "can": true, "not": true,
	"but": true, "its": true, "you": true, "your": true, "our": true,
	"their": true, "than": true, "then": true, "also": true, "into": true,
	"about": true, "more": true, "some": true, "just": true, "how": true,
	"why": true, "what": true, "when": true, "who": true, "which": true,
	"where": true, "after": true, "before": true, "each": true,
	"que": true, "para": true, "com": true, "uma": true, "por": true,
	"dos": true, "das": true, "nos": true, "nas": true, "sua": true,
	"seu": true, "como": true, "mais": true, "isso": true, "esta": true,
	"esse": true, "pela": true, "pelo": true, "entre": true, "sobre": true,
	"ainda": true, "pode": true, "deve": true, "tem": true, "são": true,
	"novo": true, "nova": true, "new": true, "says": true, "said": true,
	"now": true, "get": true, "use": true, "using": true, "used": true,
	"like": true, "make": true, "first": true, "over": true, "most": true,
	"other": true, "all": true, "very": true, "many": true, "these": true,
	"those": true,
}

// Keyword is one topic-cloud entry. Trending keywords grew more than 1.5x
// in the last six hours compared with the preceding eighteen.
type Keyword struct {
	Word     string
	Count    int
	Trending bool
}

// TopKeywords extracts the most mentioned keywords over the last 24 hours
// (or the whole set when nothing is that fresh), keeping words mentioned at
// least twice, capped at 40.
func TopKeywords(articles []model.Article, now time.Time) []Keyword {
	recent := within(articles, now, 24*time.Hour)
	if len(recent) == 0 {
		recent = articles
	}
	counts := extractKeywords(recent)

	last6h := extractKeywords(within(articles, now, 6*time.Hour))
	prev18h := extractKeywords(between(articles, now, 6*time.Hour, 24*time.Hour))

	trending := make(map[string]bool)
	for word, cnt := range last6h {
		older := prev18h[word]
		growth := float64(cnt)
		if older > 0 {
			growth = float64(cnt) / float64(older)
		}
		if growth > 1.5 && cnt >= 2 {
			trending[word] = true
		}
	}

	out := make([]Keyword, 0, len(counts))
	for word, cnt := range counts {
		out = append(out, Keyword{Word: word, Count: cnt, Trending: trending[word]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	if len(out) > 40 {
		out = out[:40]
	}
	return out
}

// extractKeywords counts matched keywords (3+ chars) and title words
// (4+ chars, stopword-filtered), dropping anything mentioned only once.
func extractKeywords(articles []model.Article) map[string]int {
	counts := make(map[string]int)
	for _, a := range articles {
		for _, kw := range a.MatchedKeywords {
			w := strings.ToLower(strings.TrimSpace(kw))
			if len(w) >= 3 {
				counts[w]++
			}
		}
		for _, w := range titleWords(a.Title) {
			counts[w]++
		}
	}
	for w, c := range counts {
		if c < 2 {
			delete(counts, w)
		}
	}
	return counts
}

func titleWords(title string) []string {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(title)) {
		w = strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
		})
		if len([]rune(w)) < 4 || stopwords[w] {
			continue
		}
		words = append(words, w)
	}
	return words
}

// Momentum compares per-category article counts in the current window
// against the equal-width window immediately before it.
type Momentum struct {
	CategoryID string
	Current    int
	Previous   int
}

// CategoryMomentum counts articles per category for [now-window, now] and
// the ghost window [now-2*window, now-window). Categories are reported in
// the order given.
func CategoryMomentum(articles []model.Article, categoryIDs []string, now time.Time, window time.Duration) []Momentum {
	current := within(articles, now, window)
	previous := between(articles, now, window, 2*window)

	count := func(set []model.Article, id string) int {
		n := 0
		for _, a := range set {
			if a.Category == id {
				n++
			}
		}
		return n
	}

	out := make([]Momentum, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		if id == "all" {
			continue
		}
		out = append(out, Momentum{
			CategoryID: id,
			Current:    count(current, id),
			Previous:   count(previous, id),
		})
	}
	return out
}

// MostRead ranks articles by recency plus keyword relevance: 100 minus the
// age in hours (floored at zero), plus ten per matched keyword.
func MostRead(articles []model.Article, now time.Time, limit int) []model.Article {
	type scored struct {
		article model.Article
		score   float64
	}

	pool := within(articles, now, 24*time.Hour)
	if len(pool) == 0 {
		pool = articles
	}

	ranked := make([]scored, 0, len(pool))
	for _, a := range pool {
		recency := 100 - now.Sub(a.PublishedAt).Hours()
		if recency < 0 {
			recency = 0
		}
		ranked = append(ranked, scored{
			article: a,
			score:   recency + float64(10*len(a.MatchedKeywords)),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	if limit <= 0 {
		limit = 5
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]model.Article, len(ranked))
	for i, s := range ranked {
		out[i] = s.article
	}
	return out
}

func within(articles []model.Article, now time.Time, window time.Duration) []model.Article {
	var out []model.Article
	for _, a := range articles {
		if now.Sub(a.PublishedAt) < window {
			out = append(out, a)
		}
	}
	return out
}

func between(articles []model.Article, now time.Time, newer, older time.Duration) []model.Article {
	var out []model.Article
	for _, a := range articles {
		age := now.Sub(a.PublishedAt)
		if age >= newer && age < older {
			out = append(out, a)
		}
	}
	return out
}
