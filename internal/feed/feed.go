// Package feed parses raw RSS 2.0 and Atom payloads into normalized
// articles. Fetching happens elsewhere; this package only sees bytes.
package feed

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/marinawille/ai-news-hub/internal/config"
	"github.com/marinawille/ai-news-hub/internal/model"
)

const descriptionMaxLen = 200

// ParseError reports a payload that was not well-formed XML for either
// supported schema. A document that parses but yields zero usable items is
// not an error.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing feed %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parser converts feed payloads into articles. Format detection (RSS vs
// Atom) is by content inspection, delegated to gofeed's universal parser.
type Parser struct {
	maxItems int
	now      func() time.Time
}

func NewParser(maxItems int) *Parser {
	if maxItems <= 0 {
		maxItems = 30
	}
	return &Parser{maxItems: maxItems, now: time.Now}
}

// Parse extracts up to maxItems articles from payload. Items missing both
// title and link are skipped; unparseable dates coerce to now. Every
// emitted article carries the feed's default category and no matched
// keywords — categorization happens later in the normalizer.
func (p *Parser) Parse(payload []byte, src config.Feed) ([]model.Article, error) {
	parsed, err := gofeed.NewParser().ParseString(string(payload))
	if err != nil {
		return nil, &ParseError{Source: src.Name, Err: err}
	}

	isAtom := parsed.FeedType == "atom"
	now := p.now()

	articles := make([]model.Article, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if len(articles) >= p.maxItems {
			break
		}

		title := strings.TrimSpace(html.UnescapeString(item.Title))
		link := strings.TrimSpace(item.Link)
		if title == "" || link == "" {
			continue
		}

		desc := item.Description
		if desc == "" {
			desc = item.Content
		}

		a := model.Article{
			ID:              model.ArticleID(link),
			Title:           title,
			Description:     CleanText(desc, descriptionMaxLen),
			URL:             link,
			Source:          src.Name,
			PublishedAt:     publishedAt(item, now),
			Category:        src.DefaultCategory,
			MatchedKeywords: []string{},
		}
		if !isAtom {
			a.Thumbnail = extractThumbnail(item)
		}
		articles = append(articles, a)
	}

	return articles, nil
}

func publishedAt(item *gofeed.Item, now time.Time) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	return now
}

var imgSrcRe = regexp.MustCompile(`(?i)<img[^>]+src=["']([^"']+)["']`)

// extractThumbnail checks, in order: media:thumbnail, an image-typed
// media:content, an image-typed enclosure, then an <img> tag embedded in
// the content or description body.
func extractThumbnail(item *gofeed.Item) string {
	if media, ok := item.Extensions["media"]; ok {
		for _, ext := range media["thumbnail"] {
			if u := ext.Attrs["url"]; u != "" {
				return u
			}
		}
		for _, ext := range media["content"] {
			u := ext.Attrs["url"]
			if u == "" {
				continue
			}
			if ext.Attrs["medium"] == "image" || strings.HasPrefix(ext.Attrs["type"], "image") {
				return u
			}
		}
	}

	for _, enc := range item.Enclosures {
		if enc.URL != "" && strings.HasPrefix(enc.Type, "image") {
			return enc.URL
		}
	}

	body := item.Content
	if body == "" {
		body = item.Description
	}
	if m := imgSrcRe.FindStringSubmatch(body); m != nil {
		return m[1]
	}
	return ""
}

// CleanText strips HTML tags, decodes entities, collapses whitespace and
// truncates to maxLen runes.
func CleanText(s string, maxLen int) string {
	return truncate(stripHTML(s), maxLen)
}

func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
			b.WriteRune(' ')
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	text := strings.Join(strings.Fields(b.String()), " ")
	return strings.TrimSpace(html.UnescapeString(text))
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return strings.TrimSpace(string(runes[:n-3])) + "..."
}
