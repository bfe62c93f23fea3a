package sentiment

import (
	"testing"

	"github.com/marinawille/ai-news-hub/internal/model"
)

func TestScore(t *testing.T) {
	c := NewClassifier(
		[]string{"good", "great", "win"},
		[]string{"bad", "fail"},
	)

	tests := []struct {
		name string
		a    model.Article
		want float64
	}{
		{"no matches", model.Article{Title: "plain headline"}, 0},
		{"all positive", model.Article{Title: "good great win"}, 1},
		{"all negative", model.Article{Title: "bad fail"}, -1},
		{"mixed", model.Article{Title: "good day", Description: "bad ending"}, 0},
		{"two to one", model.Article{Title: "good great", Description: "bad"}, 1.0 / 3.0},
	}
	for _, tt := range tests {
		if got := c.Score(tt.a); got != tt.want {
			t.Errorf("%s: score = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestScoreCountsPresenceNotFrequency(t *testing.T) {
	c := NewClassifier([]string{"good"}, []string{"bad"})
	a := model.Article{Title: "good good good", Description: "bad"}
	// One positive hit, one negative hit, regardless of repetition.
	if got := c.Score(a); got != 0 {
		t.Errorf("score = %v, want 0", got)
	}
}

func TestClassifyThresholds(t *testing.T) {
	// Lexicons sized so that hits land exactly on the boundary: with 6
	// positive and 4 negative hits the score is (6-4)/10 = 0.2, which must
	// stay neutral — the thresholds are exclusive.
	pos := []string{"pa", "pb", "pc", "pd", "pe", "pf"}
	neg := []string{"na", "nb", "nc", "nd"}
	c := NewClassifier(pos, neg)

	boundary := model.Article{Title: "pa pb pc pd pe pf na nb nc nd"}
	if got := c.Classify(boundary); got != Neutral {
		t.Errorf("score exactly 0.2 classified %q, want neutral", got)
	}

	above := model.Article{Title: "pa pb pc pd pe pf na nb nc"} // (6-3)/9 = 0.33
	if got := c.Classify(above); got != Positive {
		t.Errorf("score above 0.2 classified %q, want positive", got)
	}

	below := model.Article{Title: "na nb nc nd ne pa"}
	c2 := NewClassifier([]string{"pa"}, []string{"na", "nb", "nc", "nd", "ne"}) // (1-5)/6 = -0.67
	if got := c2.Classify(below); got != Negative {
		t.Errorf("score below -0.2 classified %q, want negative", got)
	}

	if got := c.Classify(model.Article{Title: "nothing matches"}); got != Neutral {
		t.Errorf("no matches classified %q, want neutral", got)
	}
}

func TestClassifierIsCaseInsensitive(t *testing.T) {
	c := NewClassifier([]string{"Breakthrough"}, nil)
	a := model.Article{Title: "A major BREAKTHROUGH in robotics"}
	if got := c.Classify(a); got != Positive {
		t.Errorf("classified %q, want positive", got)
	}
}

func TestClasses(t *testing.T) {
	got := Classes()
	want := []Class{Negative, Neutral, Positive}
	if len(got) != len(want) {
		t.Fatalf("Classes() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Classes()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
