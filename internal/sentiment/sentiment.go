// Package sentiment scores article text against positive and negative
// keyword lexicons. The lexicons are mixed-language plain data; there is no
// translation or stemming.
package sentiment

import (
	"strings"

	"github.com/marinawille/ai-news-hub/internal/model"
)

// Class is a three-valued sentiment label.
type Class string

const (
	Positive Class = "positive"
	Neutral  Class = "neutral"
	Negative Class = "negative"
)

// Classes lists the labels in layer order (negative bottom, positive top),
// matching how the stream visualization stacks them.
func Classes() []Class {
	return []Class{Negative, Neutral, Positive}
}

var defaultPositive = []string{
	"avanço", "breakthrough", "inovação", "innovation", "lançamento", "launch",
	"release", "sucesso", "success", "melhoria", "improvement", "growth",
	"crescimento", "progress", "progresso", "achievement", "conquista",
	"record", "recorde", "milestone", "partnership", "parceria",
	"funding", "investimento", "upgrade", "faster", "better", "leading",
	"state-of-the-art", "outperform", "surpass", "open source", "free",
	"powerful", "efficient", "impressive", "promising", "optimistic",
}

var defaultNegative = []string{
	"crise", "crisis", "regulação", "regulation", "ban", "proibição",
	"falha", "failure", "erro", "error", "risco", "risk", "threat",
	"ameaça", "preocupação", "concern", "demissão", "layoff", "corte",
	"cut", "critic", "crítica", "controversy", "controvérsia", "lawsuit",
	"sued", "fine", "multa", "delay", "atraso", "problem", "problema",
	"warning", "alerta", "dangerous", "perigoso", "bias", "hack",
	"breach", "leak", "vulnerability", "shutdown", "decline",
}

// Classifier scores articles against its lexicons. Zero-value thresholds:
// score above 0.2 is positive, below -0.2 negative, anything else neutral
// (the boundaries themselves are neutral).
type Classifier struct {
	positive []string
	negative []string
}

// NewDefault returns a classifier with the built-in lexicons.
func NewDefault() *Classifier {
	return NewClassifier(defaultPositive, defaultNegative)
}

// NewClassifier builds a classifier over caller-supplied lexicons, which
// are lowercased once up front.
func NewClassifier(positive, negative []string) *Classifier {
	lower := func(words []string) []string {
		out := make([]string, len(words))
		for i, w := range words {
			out[i] = strings.ToLower(w)
		}
		return out
	}
	return &Classifier{positive: lower(positive), negative: lower(negative)}
}

// Score computes (positiveHits - negativeHits) / (positiveHits +
// negativeHits) over the lowercased title+description. Each lexicon word
// counts at most once — presence, not frequency. No matches at all scores
// exactly 0.
func (c *Classifier) Score(a model.Article) float64 {
	text := strings.ToLower(a.Title + " " + a.Description)

	pos, neg := 0, 0
	for _, w := range c.positive {
		if strings.Contains(text, w) {
			pos++
		}
	}
	for _, w := range c.negative {
		if strings.Contains(text, w) {
			neg++
		}
	}

	total := pos + neg
	if total == 0 {
		return 0
	}
	return float64(pos-neg) / float64(total)
}

// Classify maps the score through the ±0.2 thresholds.
func (c *Classifier) Classify(a model.Article) Class {
	score := c.Score(a)
	if score > 0.2 {
		return Positive
	}
	if score < -0.2 {
		return Negative
	}
	return Neutral
}
