package content

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RecruitIntel/internal/domain"
)

func sampleAnalysis() domain.WeeklyAnalysis {
	return domain.WeeklyAnalysis{
		TotalArticles: 42,
		AverageScore:  31,
		TopArticles: []domain.ScoredArticle{
			{
				Article: domain.Article{
					Title:       "AI in recruitment",
					Description: "Kunstmatige intelligentie versnelt de selectie van kandidaten aanzienlijk.",
					Source:      "Intelligence Group",
					Category:    "AI & Technologie",
					URL:         "https://intelligence-group.nl/artikel/1",
				},
				Score:    37,
				Keywords: []string{"ai", "recruitment"},
			},
			{
				Article: domain.Article{
					Title:    "Krapte houdt aan",
					Source:   "Werf&",
					Category: "Arbeidsmarkt",
					URL:      "https://werf-en.nl/artikel/2",
				},
				Score: 24,
			},
		},
		TopCategories: []domain.Freq{{Name: "Arbeidsmarkt", Count: 12}, {Name: "AI & Technologie", Count: 9}},
		TopKeywords:   []domain.Freq{{Name: "ai", Count: 15}, {Name: "krapte", Count: 7}},
		TopSources:    []domain.Freq{{Name: "Werf&", Count: 11}},
	}
}

func TestDraftsProducesAllFormats(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	drafts := Drafts(sampleAnalysis(), now)

	require.Len(t, drafts, 5)

	byType := map[string]Draft{}
	for _, d := range drafts {
		byType[d.Type] = d
	}
	for _, want := range []string{TypeWeeklyRoundup, TypeInsightPost, TypeTrendAnalysis, TypeLongFormArticle, "metadata"} {
		_, ok := byType[want]
		assert.True(t, ok, "missing draft type %s", want)
	}

	assert.Equal(t, "2026-08-23-weeklyRoundup.md", byType[TypeWeeklyRoundup].Filename)
	assert.Equal(t, "2026-08-23-metadata.json", byType["metadata"].Filename)
}

func TestWeeklyRoundupContent(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	body := string(weeklyRoundup(sampleAnalysis(), now))

	assert.Contains(t, body, "AI in recruitment")
	assert.Contains(t, body, "Intelligence Group")
	assert.Contains(t, body, "42 artikelen")
	assert.Contains(t, body, "#recruitment")
}

func TestInsightPostLeadsWithTopKeyword(t *testing.T) {
	t.Parallel()

	body := string(insightPost(sampleAnalysis()))

	assert.Contains(t, body, `"ai"`)
	assert.Contains(t, body, "15 keer")
	assert.Contains(t, body, "https://intelligence-group.nl/artikel/1")
}

func TestTrendAnalysisListsFrequencies(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	body := string(trendAnalysis(sampleAnalysis(), now))

	assert.Contains(t, body, "ai (15x)")
	assert.Contains(t, body, "Arbeidsmarkt (12 artikelen)")
	assert.Contains(t, body, "Werf& (11 artikelen)")
	assert.Contains(t, body, "31/100")
}

func TestMetadataSidecar(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	drafts := Drafts(sampleAnalysis(), now)
	meta := drafts[len(drafts)-1]
	require.Equal(t, "metadata", meta.Type)

	var payload struct {
		GeneratedAt   string   `json:"generatedAt"`
		TotalArticles int      `json:"totalArticles"`
		AverageScore  int      `json:"averageScore"`
		Files         []string `json:"files"`
	}
	require.NoError(t, json.Unmarshal(meta.Body, &payload))
	assert.Equal(t, 42, payload.TotalArticles)
	assert.Equal(t, 31, payload.AverageScore)
	assert.Len(t, payload.Files, 4)
	for _, f := range payload.Files {
		assert.True(t, strings.HasSuffix(f, ".md"), "unexpected file %s", f)
	}
}
