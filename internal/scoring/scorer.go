package scoring

import (
	"sort"
	"strings"
	"time"

	"RecruitIntel/internal/domain"
)

const (
	maxScore = 100

	// descriptionBonus rewards articles with more than 100 characters of
	// description text.
	descriptionBonus   = 3
	longDescriptionLen = 100

	// recencyBonus rewards articles published on the reference day.
	recencyBonus = 5
)

// Score rates one article against the weight tables. The result is a pure
// function of the article, the tables, and the reference day: the caller
// supplies "today", the wall clock is never read here. Unknown sources and
// categories contribute nothing; the final score is capped at 100.
func Score(article domain.Article, weights domain.Weights, today time.Time) domain.ScoredArticle {
	score := 0
	text := strings.ToLower(article.Title + " " + article.Description)

	// Walk the vocabulary in sorted order so the matched-keyword list is
	// deterministic across runs.
	var matched []string
	for _, kw := range sortedKeys(weights.Keywords) {
		if strings.Contains(text, kw) {
			score += weights.Keywords[kw]
			matched = append(matched, kw)
		}
	}

	if pts, ok := weights.Sources[article.Source]; ok {
		score += pts
	}
	if pts, ok := weights.Categories[article.Category]; ok {
		score += pts
	}

	if len(article.Description) > longDescriptionLen {
		score += descriptionBonus
	}
	if !article.PublishedAt.IsZero() && domain.SameDay(article.PublishedAt, today) {
		score += recencyBonus
	}

	if score > maxScore {
		score = maxScore
	}
	if score < 0 {
		score = 0
	}

	return domain.ScoredArticle{Article: article, Score: score, Keywords: matched}
}

// AggregateDay scores every article with day as the recency reference and
// seals the result into a bucket, sorted descending by score. The sort is
// stable: articles with equal scores keep their input order. The full list
// is kept; taking a top-N prefix is the caller's concern.
func AggregateDay(articles []domain.Article, day time.Time, weights domain.Weights) domain.DayBucket {
	scored := make([]domain.ScoredArticle, 0, len(articles))
	for _, article := range articles {
		scored = append(scored, Score(article, weights, day))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return domain.DayBucket{Date: domain.Day(day), Articles: scored}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
