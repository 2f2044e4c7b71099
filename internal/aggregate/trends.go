package aggregate

import (
	"math"
	"sort"

	"RecruitIntel/internal/domain"
)

const (
	topArticleCount  = 5
	topKeywordCount  = 5
	topCategoryCount = 3
	topSourceCount   = 3
)

// Analyze derives the weekly summary from a window. An empty window yields
// a well-formed zero analysis, never an error.
func Analyze(window domain.WeeklyWindow) domain.WeeklyAnalysis {
	var analysis domain.WeeklyAnalysis

	// Flatten deterministically: days ascending, stored order within a day.
	// Frequency tie-breaks below depend on this order.
	type flatArticle struct {
		domain.ScoredArticle
		dayIndex int
	}
	var flat []flatArticle
	for i, day := range window {
		for _, article := range day.Articles {
			flat = append(flat, flatArticle{ScoredArticle: article, dayIndex: i})
		}
	}

	analysis.TotalArticles = len(flat)
	if len(flat) == 0 {
		return analysis
	}

	sum := 0
	categories := newCounter()
	keywords := newCounter()
	sources := newCounter()
	for _, a := range flat {
		sum += a.Score
		categories.add(a.Category)
		sources.add(a.Source)
		for _, kw := range a.Keywords {
			keywords.add(kw)
		}
	}
	analysis.AverageScore = int(math.Round(float64(sum) / float64(len(flat))))
	analysis.TopCategories = categories.top(topCategoryCount)
	analysis.TopKeywords = keywords.top(topKeywordCount)
	analysis.TopSources = sources.top(topSourceCount)

	// Rank by score; score ties go to the newer day. The stable sort over
	// the ascending-date flatten keeps within-day order for full ties.
	sort.SliceStable(flat, func(i, j int) bool {
		if flat[i].Score != flat[j].Score {
			return flat[i].Score > flat[j].Score
		}
		return flat[i].dayIndex > flat[j].dayIndex
	})

	n := topArticleCount
	if len(flat) < n {
		n = len(flat)
	}
	analysis.TopArticles = make([]domain.ScoredArticle, 0, n)
	for _, a := range flat[:n] {
		analysis.TopArticles = append(analysis.TopArticles, a.ScoredArticle)
	}

	return analysis
}

// counter tallies names while remembering first-seen order, which breaks
// equal-count ties deterministically.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: map[string]int{}}
}

func (c *counter) add(name string) {
	if name == "" {
		return
	}
	if _, seen := c.counts[name]; !seen {
		c.order = append(c.order, name)
	}
	c.counts[name]++
}

func (c *counter) top(n int) []domain.Freq {
	ranked := make([]domain.Freq, 0, len(c.order))
	for _, name := range c.order {
		ranked = append(ranked, domain.Freq{Name: name, Count: c.counts[name]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
