// Package timeseries buckets classified articles into fixed-width time
// windows for trend visualization.
package timeseries

import (
	"time"

	"github.com/marinawille/ai-news-hub/internal/model"
	"github.com/marinawille/ai-news-hub/internal/sentiment"
)

// Bucket is one fixed-width window. Contributing articles are retained per
// class so callers can pick annotation headlines; they are transient and
// never persisted.
type Bucket struct {
	Start    time.Time
	Counts   map[sentiment.Class]int
	Articles map[sentiment.Class][]model.Article
}

// Total sums the bucket's counts across classes.
func (b Bucket) Total() int {
	n := 0
	for _, c := range b.Counts {
		n += c
	}
	return n
}

// IntervalFor picks the bucket width for a requested span: six-hour buckets
// for spans up to three days, daily buckets beyond.
func IntervalFor(span time.Duration) time.Duration {
	if span <= 72*time.Hour {
		return 6 * time.Hour
	}
	return 24 * time.Hour
}

// GhostRange returns the equal-width window immediately preceding
// [start, end], used for trend-delta comparisons.
func GhostRange(start, end time.Time) (time.Time, time.Time) {
	span := end.Sub(start)
	return start.Add(-span), start
}

// Buckets builds contiguous interval-wide buckets covering [start, end] and
// assigns every in-range article to exactly one of them by
// floor((publishedAt-start)/interval), clamped into the bucket list. An
// article exactly on a boundary lands in the bucket beginning there.
// Articles outside the range are excluded.
func Buckets(articles []model.Article, start, end time.Time, interval time.Duration, classifier *sentiment.Classifier) []Bucket {
	if interval <= 0 || !end.After(start) {
		return nil
	}

	var buckets []Bucket
	for t := start; !t.After(end); t = t.Add(interval) {
		buckets = append(buckets, Bucket{
			Start:    t,
			Counts:   make(map[sentiment.Class]int),
			Articles: make(map[sentiment.Class][]model.Article),
		})
	}

	for _, a := range articles {
		if a.PublishedAt.Before(start) || a.PublishedAt.After(end) {
			continue
		}
		idx := int(a.PublishedAt.Sub(start) / interval)
		if idx < 0 {
			idx = 0
		}
		if idx > len(buckets)-1 {
			idx = len(buckets) - 1
		}
		class := classifier.Classify(a)
		buckets[idx].Counts[class]++
		buckets[idx].Articles[class] = append(buckets[idx].Articles[class], a)
	}

	return buckets
}

// Peak marks the highest-count bucket of one sentiment series and the
// article chosen to represent it.
type Peak struct {
	Class       sentiment.Class
	BucketIndex int
	Count       int
	Headline    model.Article
}

// Peaks finds, per sentiment series, the bucket with the maximum count and
// picks that bucket's most recently published contributor as the headline.
// Series with no articles anywhere produce no peak.
func Peaks(buckets []Bucket) []Peak {
	var peaks []Peak
	for _, class := range sentiment.Classes() {
		maxIdx, maxVal := 0, 0
		for i, b := range buckets {
			if b.Counts[class] > maxVal {
				maxVal = b.Counts[class]
				maxIdx = i
			}
		}
		if maxVal == 0 {
			continue
		}

		contributors := buckets[maxIdx].Articles[class]
		best := contributors[0]
		for _, a := range contributors[1:] {
			if a.PublishedAt.After(best.PublishedAt) {
				best = a
			}
		}
		peaks = append(peaks, Peak{Class: class, BucketIndex: maxIdx, Count: maxVal, Headline: best})
	}
	return peaks
}

// Totals aggregates per-class counts and percentages across a bucket list.
type Totals struct {
	Positive, Neutral, Negative int
	Total                       int
}

func Sum(buckets []Bucket) Totals {
	var t Totals
	for _, b := range buckets {
		t.Positive += b.Counts[sentiment.Positive]
		t.Neutral += b.Counts[sentiment.Neutral]
		t.Negative += b.Counts[sentiment.Negative]
	}
	t.Total = t.Positive + t.Neutral + t.Negative
	return t
}

// Percent returns n as a rounded percentage of the total, 0 when empty.
func (t Totals) Percent(n int) int {
	if t.Total == 0 {
		return 0
	}
	return int(float64(n)/float64(t.Total)*100 + 0.5)
}
