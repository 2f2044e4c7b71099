package content

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"RecruitIntel/internal/domain"
)

// Draft is one generated LinkedIn content option, ready to be written to
// the content directory. Posting stays manual: a human reviews the drafts.
type Draft struct {
	Type     string
	Filename string
	Body     []byte
}

const (
	TypeWeeklyRoundup   = "weeklyRoundup"
	TypeInsightPost     = "insightPost"
	TypeTrendAnalysis   = "trendAnalysis"
	TypeLongFormArticle = "longFormArticle"
)

const hashtags = "#recruitment #arbeidsmarkt #AI #werving #HRtech"

// Drafts renders the four content formats from a weekly analysis, plus a
// metadata sidecar describing the batch. The analysis must contain at
// least one article; callers guard the empty-week case.
func Drafts(analysis domain.WeeklyAnalysis, now time.Time) []Draft {
	stamp := now.Format("2006-01-02")
	drafts := []Draft{
		{Type: TypeWeeklyRoundup, Filename: stamp + "-weeklyRoundup.md", Body: weeklyRoundup(analysis, now)},
		{Type: TypeInsightPost, Filename: stamp + "-insightPost.md", Body: insightPost(analysis)},
		{Type: TypeTrendAnalysis, Filename: stamp + "-trendAnalysis.md", Body: trendAnalysis(analysis, now)},
		{Type: TypeLongFormArticle, Filename: stamp + "-longFormArticle.md", Body: longFormArticle(analysis, now)},
	}
	drafts = append(drafts, metadata(analysis, drafts, now))
	return drafts
}

func weeklyRoundup(analysis domain.WeeklyAnalysis, now time.Time) []byte {
	_, week := now.ISOWeek()

	var b strings.Builder
	fmt.Fprintf(&b, "# Recruitment Week %d in het kort\n\n", week)
	fmt.Fprintf(&b, "Deze week volgden we %d artikelen uit de Nederlandse recruitmentmedia. Dit waren de uitschieters:\n\n", analysis.TotalArticles)
	for i, article := range analysis.TopArticles {
		fmt.Fprintf(&b, "%d. **%s** (%s, score %d)\n   %s\n", i+1, article.Title, article.Source, article.Score, article.URL)
	}
	b.WriteString("\nWelk artikel sprong er voor jou uit?\n\n")
	b.WriteString(hashtags + "\n")
	return []byte(b.String())
}

func insightPost(analysis domain.WeeklyAnalysis) []byte {
	var b strings.Builder
	b.WriteString("# Eén trend uitgelicht\n\n")
	if len(analysis.TopKeywords) > 0 {
		top := analysis.TopKeywords[0]
		fmt.Fprintf(&b, "\"%s\" dook deze week %d keer op in het recruitmentnieuws — vaker dan elk ander thema.\n\n", top.Name, top.Count)
	}
	if len(analysis.TopArticles) > 0 {
		lead := analysis.TopArticles[0]
		fmt.Fprintf(&b, "Het sterkste stuk hierover kwam van %s: \"%s\".\n", lead.Source, lead.Title)
		if lead.Description != "" {
			fmt.Fprintf(&b, "\n> %s\n", firstSentence(lead.Description))
		}
		fmt.Fprintf(&b, "\nLees verder: %s\n", lead.URL)
	}
	b.WriteString("\n" + hashtags + "\n")
	return []byte(b.String())
}

func trendAnalysis(analysis domain.WeeklyAnalysis, now time.Time) []byte {
	_, week := now.ISOWeek()

	var b strings.Builder
	fmt.Fprintf(&b, "# Data: wat de cijfers van week %d vertellen\n\n", week)
	fmt.Fprintf(&b, "- Artikelen geanalyseerd: **%d**\n", analysis.TotalArticles)
	fmt.Fprintf(&b, "- Gemiddelde relevantiescore: **%d/100**\n\n", analysis.AverageScore)

	b.WriteString("## Meest besproken thema's\n\n")
	for _, kw := range analysis.TopKeywords {
		fmt.Fprintf(&b, "- %s (%dx)\n", kw.Name, kw.Count)
	}

	b.WriteString("\n## Actiefste categorieën\n\n")
	for _, cat := range analysis.TopCategories {
		fmt.Fprintf(&b, "- %s (%d artikelen)\n", cat.Name, cat.Count)
	}

	b.WriteString("\n## Productiefste bronnen\n\n")
	for _, src := range analysis.TopSources {
		fmt.Fprintf(&b, "- %s (%d artikelen)\n", src.Name, src.Count)
	}

	b.WriteString("\n" + hashtags + "\n")
	return []byte(b.String())
}

func longFormArticle(analysis domain.WeeklyAnalysis, now time.Time) []byte {
	_, week := now.ISOWeek()

	var b strings.Builder
	fmt.Fprintf(&b, "# De week in recruitment: een analyse van week %d\n\n", week)
	fmt.Fprintf(&b, "De Nederlandse arbeidsmarkt stond ook deze week niet stil. Uit %d artikelen, met een gemiddelde relevantiescore van %d, tekenen zich duidelijke lijnen af.\n\n",
		analysis.TotalArticles, analysis.AverageScore)

	if len(analysis.TopCategories) > 0 {
		fmt.Fprintf(&b, "## %s voert de boventoon\n\n", analysis.TopCategories[0].Name)
		fmt.Fprintf(&b, "Met %d artikelen was %s de meest besproken categorie van de week.\n\n",
			analysis.TopCategories[0].Count, analysis.TopCategories[0].Name)
	}

	b.WriteString("## De artikelen die het gesprek bepaalden\n\n")
	for _, article := range analysis.TopArticles {
		fmt.Fprintf(&b, "### %s\n\n", article.Title)
		fmt.Fprintf(&b, "*%s — %s, score %d*\n\n", article.Source, article.Category, article.Score)
		if article.Description != "" {
			b.WriteString(article.Description + "\n\n")
		}
		fmt.Fprintf(&b, "Bron: %s\n\n", article.URL)
	}

	if len(analysis.TopKeywords) > 0 {
		b.WriteString("## Vooruitblik\n\n")
		names := make([]string, 0, len(analysis.TopKeywords))
		for _, kw := range analysis.TopKeywords {
			names = append(names, kw.Name)
		}
		fmt.Fprintf(&b, "De thema's %s houden we komende week opnieuw in de gaten.\n\n", strings.Join(names, ", "))
	}

	b.WriteString(hashtags + "\n")
	return []byte(b.String())
}

func metadata(analysis domain.WeeklyAnalysis, drafts []Draft, now time.Time) Draft {
	files := make([]string, 0, len(drafts))
	for _, d := range drafts {
		files = append(files, d.Filename)
	}

	payload := struct {
		GeneratedAt   string   `json:"generatedAt"`
		TotalArticles int      `json:"totalArticles"`
		AverageScore  int      `json:"averageScore"`
		Files         []string `json:"files"`
	}{
		GeneratedAt:   now.Format(time.RFC3339),
		TotalArticles: analysis.TotalArticles,
		AverageScore:  analysis.AverageScore,
		Files:         files,
	}

	body, _ := json.MarshalIndent(payload, "", "  ")
	return Draft{
		Type:     "metadata",
		Filename: now.Format("2006-01-02") + "-metadata.json",
		Body:     body,
	}
}

func firstSentence(s string) string {
	for i, r := range s {
		if r == '.' && i > 20 {
			return s[:i+1]
		}
	}
	runes := []rune(s)
	if len(runes) > 150 {
		return string(runes[:150]) + "..."
	}
	return s
}
