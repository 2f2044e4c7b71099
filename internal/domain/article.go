package domain

import "time"

// Article is a raw news item as delivered by a source, fake or real.
// Description may be empty; nothing beyond presence is validated here.
type Article struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Source      string    `json:"source"`
	Category    string    `json:"category"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishDate"`
}

// ScoredArticle is an Article annotated with its relevance score and the
// keywords from the configured vocabulary that matched its text.
type ScoredArticle struct {
	Article
	Score    int      `json:"score"`
	Keywords []string `json:"keywords"`
}

// DayBucket holds one calendar day's scored articles, sorted descending by
// score. A bucket is sealed by the daily aggregation run and never grows.
type DayBucket struct {
	Date     time.Time       `json:"date"`
	Articles []ScoredArticle `json:"articles"`
}

// WeeklyWindow is a rolling collection of at most seven DayBuckets, sorted
// ascending by date. Its JSON form is the persisted weekly-top-articles
// shape consumed by downstream content generators.
type WeeklyWindow []DayBucket

// Freq is one entry of a ranked frequency table.
type Freq struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// WeeklyAnalysis summarizes a WeeklyWindow for content generation.
type WeeklyAnalysis struct {
	TotalArticles int             `json:"totalArticles"`
	AverageScore  int             `json:"averageScore"`
	TopArticles   []ScoredArticle `json:"topArticles"`
	TopCategories []Freq          `json:"topCategories"`
	TopKeywords   []Freq          `json:"topKeywords"`
	TopSources    []Freq          `json:"topSources"`
}

// Weights are the static lookup tables driving the scorer. All values are
// non-negative integer points; missing keys simply contribute nothing.
type Weights struct {
	Keywords   map[string]int `yaml:"keywords" json:"keywords"`
	Sources    map[string]int `yaml:"sources" json:"sources"`
	Categories map[string]int `yaml:"categories" json:"categories"`
}

// Day truncates t to midnight UTC, the granularity used for bucket keys.
func Day(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

// SameDay reports whether a and b fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}
