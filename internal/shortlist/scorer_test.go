package shortlist

import "testing"

func newTestScorer() *Scorer {
	return NewScorer(Config{
		Keywords:  map[string]int{"go": 30, "kubernetes": 40},
		Threshold: 60,
	})
}

func TestScoreMatchesKeywordsCaseInsensitively(t *testing.T) {
	scorer := newTestScorer()

	score, reason := scorer.Score("We need GO and Kubernetes experience", "")
	if score != 70 {
		t.Fatalf("expected score 70, got %d", score)
	}
	if reason != "go+30, kubernetes+40" {
		t.Fatalf("unexpected reason %q", reason)
	}
}

func TestScoreMatchesCoverLetterToo(t *testing.T) {
	scorer := newTestScorer()

	score, reason := scorer.Score("Backend role", "I have shipped kubernetes operators")
	if score != 40 {
		t.Fatalf("expected score 40, got %d", score)
	}
	if reason != "kubernetes+40" {
		t.Fatalf("unexpected reason %q", reason)
	}
}

func TestScoreNoMatches(t *testing.T) {
	scorer := newTestScorer()

	score, reason := scorer.Score("Frontend role", "I write CSS")
	if score != 0 {
		t.Fatalf("expected score 0, got %d", score)
	}
	if reason != "" {
		t.Fatalf("expected empty reason, got %q", reason)
	}
}

func TestScoreClampsAtHundred(t *testing.T) {
	scorer := NewScorer(Config{
		Keywords: map[string]int{"go": 60, "kubernetes": 60},
	})

	score, _ := scorer.Score("go and kubernetes", "")
	if score != 100 {
		t.Fatalf("expected clamp to 100, got %d", score)
	}
}

func TestScoreEmptyConfig(t *testing.T) {
	scorer := NewScorer(Config{})

	score, reason := scorer.Score("go and kubernetes everywhere", "")
	if score != 0 || reason != "" {
		t.Fatalf("expected zero score and empty reason, got %d %q", score, reason)
	}
}

func TestApplyInternalBonus(t *testing.T) {
	scorer := newTestScorer()

	score, reason := scorer.ApplyInternalBonus(70, "go+30, kubernetes+40")
	if score != 75 {
		t.Fatalf("expected score 75, got %d", score)
	}
	if reason != "go+30, kubernetes+40 (internal+5)" {
		t.Fatalf("unexpected reason %q", reason)
	}
}

func TestApplyInternalBonusClamps(t *testing.T) {
	scorer := newTestScorer()

	score, _ := scorer.ApplyInternalBonus(98, "")
	if score != 100 {
		t.Fatalf("expected clamp to 100, got %d", score)
	}
}
