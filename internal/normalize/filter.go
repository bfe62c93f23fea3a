package normalize

import (
	"strings"

	"github.com/marinawille/ai-news-hub/internal/model"
)

// ByCategory keeps articles in the given category. The "all" catch-all
// passes everything through.
func ByCategory(articles []model.Article, categoryID string) []model.Article {
	if categoryID == "" || categoryID == "all" {
		return articles
	}
	var out []model.Article
	for _, a := range articles {
		if a.Category == categoryID {
			out = append(out, a)
		}
	}
	return out
}

// ByRecency keeps articles with the given recency status.
func ByRecency(articles []model.Article, status model.RecencyStatus) []model.Article {
	var out []model.Article
	for _, a := range articles {
		if a.Recency == status {
			out = append(out, a)
		}
	}
	return out
}

// Search keeps articles whose title, description or source contains the
// query, case-insensitive.
func Search(articles []model.Article, query string) []model.Article {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return articles
	}
	var out []model.Article
	for _, a := range articles {
		text := strings.ToLower(a.Title + " " + a.Description + " " + a.Source)
		if strings.Contains(text, q) {
			out = append(out, a)
		}
	}
	return out
}
