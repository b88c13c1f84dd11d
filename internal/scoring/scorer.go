// Package scoring computes 0-100 relevance between candidate text and a job
// description keyword set.
package scoring

import (
	"sort"
	"strings"

	"resume-screener/internal/keywords"
	"resume-screener/internal/models"
	"resume-screener/internal/textutil"
)

// Score returns the percentage of job-description keywords present in the
// candidate text, floored, in [0, 100]. An empty keyword set scores 0: it
// both guards the division and uniformly signals "no JD active".
//
// Matching is substring containment on the lower-cased text, deliberately
// mirroring skill extraction so that scoring and extraction stay consistent.
func Score(candidateText string, kw keywords.Set) int {
	if kw.Len() == 0 {
		return 0
	}

	text := textutil.Normalize(candidateText)
	matches := 0
	for w := range kw {
		if strings.Contains(text, w) {
			matches++
		}
	}

	pct := matches * 100 / kw.Len()
	if pct > 100 {
		pct = 100
	}
	return pct
}

// Rank scores every candidate against the keyword set and returns a new
// slice ordered best-first with ranks assigned. Input records are not
// mutated; match percentages are a view over the current job description,
// never a persisted fact.
func Rank(candidates []models.Candidate, kw keywords.Set) []models.Candidate {
	ranked := make([]models.Candidate, len(candidates))
	copy(ranked, candidates)

	for i := range ranked {
		ranked[i].MatchPercentage = Score(ranked[i].Content, kw)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchPercentage > ranked[j].MatchPercentage
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
