package normalize

import (
	"testing"
	"time"

	"github.com/marinawille/ai-news-hub/internal/config"
	"github.com/marinawille/ai-news-hub/internal/model"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://example.com/a?utm_source=feed", "example.com/a"},
		{"https://www.example.com/a/", "example.com/a"},
		{"HTTP://Example.COM/A", "example.com/a"},
		{"https://example.com/a///", "example.com/a"},
		{"example.com/a", "example.com/a"},
	}
	for _, tt := range tests {
		if got := NormalizeURL(tt.in); got != tt.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDeduplicateByURL(t *testing.T) {
	articles := []model.Article{
		{Title: "First variant of the story", URL: "https://x.com/a?utm=1"},
		{Title: "Second variant of the story", URL: "https://www.x.com/a/"},
		{Title: "A different story entirely", URL: "https://x.com/b"},
	}

	got := Deduplicate(articles)
	if len(got) != 2 {
		t.Fatalf("got %d articles, want 2", len(got))
	}
	if got[0].URL != "https://x.com/a?utm=1" {
		t.Errorf("first occurrence should survive, got %q", got[0].URL)
	}
}

func TestDeduplicateByTitle(t *testing.T) {
	articles := []model.Article{
		{Title: "OpenAI Releases a New Model!", URL: "https://a.com/1"},
		{Title: "openai releases a new model", URL: "https://b.com/2"},
		{Title: "Short", URL: "https://c.com/1"},
		{Title: "short", URL: "https://c.com/2"},
	}

	got := Deduplicate(articles)
	if len(got) != 3 {
		t.Fatalf("got %d articles, want 3", len(got))
	}
	// Long titles collapse across punctuation and case; titles under the
	// length floor never collide.
	if got[0].URL != "https://a.com/1" {
		t.Errorf("first long-title occurrence should survive, got %q", got[0].URL)
	}
}

func testCategories() []config.Category {
	return []config.Category{
		{ID: "all", Label: "All"},
		{ID: "models", Keywords: []string{"gpt", "llm"}},
		{ID: "business", Keywords: []string{"funding", "gpt"}},
	}
}

func TestCategorizeTieBreak(t *testing.T) {
	n := New(testCategories(), 200)

	// "gpt" matches both categories with equal counts; the
	// first-configured category wins.
	a := n.categorize(model.Article{Title: "GPT update", Category: "all"})
	if a.Category != "models" {
		t.Errorf("tie should keep first-configured category, got %q", a.Category)
	}
	if len(a.MatchedKeywords) != 1 || a.MatchedKeywords[0] != "gpt" {
		t.Errorf("matched keywords = %v, want [gpt]", a.MatchedKeywords)
	}
}

func TestCategorizeNoMatchKeepsDefault(t *testing.T) {
	n := New(testCategories(), 200)

	a := n.categorize(model.Article{Title: "Weather report", Category: "business"})
	if a.Category != "business" {
		t.Errorf("zero matches should keep default category, got %q", a.Category)
	}
	if len(a.MatchedKeywords) != 0 {
		t.Errorf("matched keywords = %v, want none", a.MatchedKeywords)
	}
}

func TestCategorizeHigherCountWins(t *testing.T) {
	n := New(testCategories(), 200)

	a := n.categorize(model.Article{Title: "GPT funding round", Category: "all"})
	if a.Category != "business" {
		t.Errorf("category = %q, want business (two matches beat one)", a.Category)
	}
}

func TestRecencyOf(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		age  time.Duration
		want model.RecencyStatus
	}{
		{1 * time.Hour, model.Newest},
		{6*time.Hour - time.Second, model.Newest},
		{6 * time.Hour, model.New},
		{48*time.Hour - time.Second, model.New},
		{48 * time.Hour, model.Past},
		{100 * time.Hour, model.Past},
	}
	for _, tt := range tests {
		if got := RecencyOf(now.Add(-tt.age), now); got != tt.want {
			t.Errorf("RecencyOf(age=%v) = %q, want %q", tt.age, got, tt.want)
		}
	}
}

func TestNormalizeSortAndCap(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	articles := []model.Article{
		{Title: "Old story from last week here", URL: "https://a.com/old", PublishedAt: now.Add(-72 * time.Hour)},
		{Title: "Fresh story from this morning", URL: "https://a.com/fresh", PublishedAt: now.Add(-1 * time.Hour)},
		{Title: "Yesterday story with details!!", URL: "https://a.com/mid", PublishedAt: now.Add(-20 * time.Hour)},
		{Title: "Even fresher story right now!", URL: "https://a.com/freshest", PublishedAt: now.Add(-10 * time.Minute)},
	}

	n := New(testCategories(), 3)
	got := n.Normalize(articles, now)

	if len(got) != 3 {
		t.Fatalf("got %d articles, want cap of 3", len(got))
	}
	wantOrder := []string{"https://a.com/freshest", "https://a.com/fresh", "https://a.com/mid"}
	for i, url := range wantOrder {
		if got[i].URL != url {
			t.Errorf("position %d = %q, want %q", i, got[i].URL, url)
		}
	}
	if got[0].Recency != model.Newest {
		t.Errorf("freshest article recency = %q, want Newest", got[0].Recency)
	}
}

func TestMigrateCategory(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"llms", "modelos-linguagem"},
		{"big-techs", "empresas-negocios"},
		{"startups", "empresas-negocios"},
		{"robotica", "robotica-hardware"},
		{"modelos-linguagem", "modelos-linguagem"},
	}
	for _, tt := range tests {
		got := migrateCategory(model.Article{Category: tt.in})
		if got.Category != tt.want {
			t.Errorf("migrateCategory(%q) = %q, want %q", tt.in, got.Category, tt.want)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	articles := []model.Article{
		{Title: "Duplicate story about GPT!", URL: "https://x.com/a?utm=1", PublishedAt: now.Add(-time.Hour)},
		{Title: "Duplicate story about GPT?", URL: "https://www.x.com/a/", PublishedAt: now.Add(-2 * time.Hour)},
		{Title: "Unrelated funding announcement", URL: "https://y.com/b", PublishedAt: now.Add(-3 * time.Hour)},
	}

	n := New(testCategories(), 200)
	once := n.Normalize(articles, now)
	twice := n.Normalize(once, now)

	if len(once) != 2 {
		t.Fatalf("first pass kept %d articles, want 2", len(once))
	}
	if len(twice) != len(once) {
		t.Fatalf("second pass kept %d articles, want %d", len(twice), len(once))
	}
	for i := range once {
		if once[i].URL != twice[i].URL || once[i].Category != twice[i].Category {
			t.Errorf("pass divergence at %d: %+v vs %+v", i, once[i], twice[i])
		}
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	now := time.Now()
	in := []model.Article{{Title: "A story to keep untouched!", URL: "https://a.com/1", Category: "llms"}}
	New(testCategories(), 200).Normalize(in, now)
	if in[0].Category != "llms" {
		t.Errorf("input mutated: category = %q", in[0].Category)
	}
	if in[0].Recency != "" {
		t.Errorf("input mutated: recency = %q", in[0].Recency)
	}
}
