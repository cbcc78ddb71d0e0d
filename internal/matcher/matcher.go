package matcher

import (
	"sort"

	"github.com/patrickmn/go-cache"

	"sheetmatch/internal/reference"
	"sheetmatch/internal/textutil"
)

// Match is the best label for a candidate and its similarity score in [0,100].
type Match struct {
	Label reference.Label
	Score float64
}

// Matcher finds the best reference label for candidate strings. Scores are
// memoized per normalized candidate because scoring is pure.
type Matcher struct {
	index  *reference.Index
	scores *cache.Cache
}

// New creates a matcher over the provided index.
func New(index *reference.Index) *Matcher {
	return &Matcher{
		index:  index,
		scores: cache.New(cache.NoExpiration, 0),
	}
}

// Index returns the reference index the matcher scores against.
func (m *Matcher) Index() *reference.Index {
	return m.index
}

// BestMatch returns the highest scoring label for candidate. It returns false
// only when the index holds no labels. Empty or symbol-only candidates score 0
// against every label, so the first declared label is returned.
func (m *Matcher) BestMatch(candidate string) (Match, bool) {
	if m.index.Len() == 0 {
		return Match{}, false
	}
	normalized := textutil.Normalize(candidate)
	if cached, ok := m.scores.Get(normalized); ok {
		return cached.(Match), true
	}

	var best Match
	bestScore := -1.0
	for _, label := range m.index.Labels() {
		score := textutil.TokenSortRatio(normalized, label.Normalized)
		if score > bestScore {
			bestScore = score
			best = Match{Label: label, Score: score}
		}
	}
	m.scores.Set(normalized, best, cache.NoExpiration)
	return best, true
}

// Rank returns every label scored against candidate, best first. Labels with
// equal scores keep their declared order.
func (m *Matcher) Rank(candidate string) []Match {
	normalized := textutil.Normalize(candidate)
	labels := m.index.Labels()
	ranked := make([]Match, 0, len(labels))
	for _, label := range labels {
		ranked = append(ranked, Match{Label: label, Score: textutil.TokenSortRatio(normalized, label.Normalized)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
