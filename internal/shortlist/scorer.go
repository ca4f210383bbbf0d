// Package shortlist implements the keyword-weighted scoring applied to new
// applications. Scoring is a pure function of the two input texts and the
// injected keyword table; it has no failure mode.
package shortlist

import (
	"sort"
	"strconv"
	"strings"
)

const maxScore = 100

type Config struct {
	// Keywords maps lowercase keywords to positive integer weights.
	Keywords map[string]int
	// Threshold is the minimum score that triggers auto-shortlisting.
	Threshold int
	// InternalBonus is added once, at creation, for internal applicants.
	InternalBonus int
}

type Scorer struct {
	cfg Config
}

func NewScorer(cfg Config) *Scorer {
	if cfg.Threshold <= 0 {
		cfg.Threshold = 60
	}
	if cfg.InternalBonus <= 0 {
		cfg.InternalBonus = 5
	}
	return &Scorer{cfg: cfg}
}

func (s *Scorer) Threshold() int {
	return s.cfg.Threshold
}

// Score matches every configured keyword against the lowercased concatenation
// of job description and cover letter by plain substring containment. The
// total is clamped to [0, 100]; the reason lists matched "<kw>+<weight>"
// tokens in sorted keyword order, or is empty when nothing matched.
func (s *Scorer) Score(jobDescription, coverLetter string) (int, string) {
	text := strings.ToLower(jobDescription + "\n" + coverLetter)

	keywords := make([]string, 0, len(s.cfg.Keywords))
	for keyword := range s.cfg.Keywords {
		keywords = append(keywords, keyword)
	}
	sort.Strings(keywords)

	total := 0
	var hits []string
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			weight := s.cfg.Keywords[keyword]
			total += weight
			hits = append(hits, keyword+"+"+strconv.Itoa(weight))
		}
	}
	if total > maxScore {
		total = maxScore
	}
	if total < 0 {
		total = 0
	}
	return total, strings.Join(hits, ", ")
}

// ApplyInternalBonus adds the internal-candidate bonus to an already computed
// score, clamping again to 100 and extending the reason string.
func (s *Scorer) ApplyInternalBonus(score int, reason string) (int, string) {
	score += s.cfg.InternalBonus
	if score > maxScore {
		score = maxScore
	}
	return score, reason + " (internal+" + strconv.Itoa(s.cfg.InternalBonus) + ")"
}
