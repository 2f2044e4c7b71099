package source

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	"RecruitIntel/internal/domain"
	"RecruitIntel/internal/scanner"
)

// SimulatedScanner fabricates plausible Dutch recruitment headlines for a
// site. The RNG is seeded from the site name and the requested day, so a
// rerun for the same day produces the same articles. All randomness lives
// here; the scoring core only ever sees finished Article values.
type SimulatedScanner struct{}

// NewSimulatedScanner builds the fake-news strategy.
func NewSimulatedScanner() *SimulatedScanner {
	return &SimulatedScanner{}
}

// Name identifies the strategy inside the registry.
func (s *SimulatedScanner) Name() string {
	return "simulated"
}

var headlineTemplates = []string{
	"AI verandert %s in de Nederlandse recruitmentsector",
	"Krapte op de arbeidsmarkt raakt %s hard",
	"Nieuw onderzoek: %s wint terrein bij werving en selectie",
	"Recruitment in 2026: wat betekent %s voor recruiters?",
	"Uitzendbureaus zetten in op %s tegen personeelstekort",
	"ChatGPT en automatisering: %s onder druk",
	"Employer branding cruciaal voor %s, blijkt uit cijfers",
	"Vacatureteksten en %s: vijf lessen uit de praktijk",
	"Talent binden via %s steeds belangrijker",
	"Flexwerk groeit: %s profiteert van de omslag",
}

var headlineSubjects = []string{
	"de zorgsector", "het mkb", "technisch talent", "de bouw",
	"jonge sollicitanten", "interne mobiliteit", "de detailhandel",
	"IT-vacatures", "de publieke sector", "logistiek personeel",
}

var descriptionSnippets = []string{
	"Uit nieuwe cijfers blijkt dat de vraag naar personeel opnieuw is gestegen.",
	"Recruiters geven aan dat kunstmatige intelligentie het wervingsproces versnelt.",
	"De krapte op de arbeidsmarkt dwingt werkgevers tot creatievere werving.",
	"Volgens analisten blijft de sollicitatiebereidheid onder werkenden laag.",
	"Vooral kleinere bureaus experimenteren met automatisering van de selectie.",
	"Experts waarschuwen dat employer branding meer is dan een campagne.",
	"Het aantal openstaande vacatures per werkzoekende blijft historisch hoog.",
}

// Scan generates two to four articles per configured category.
func (s *SimulatedScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(req.Categories) == 0 {
		return nil, fmt.Errorf("no categories provided for site %s", req.SiteName)
	}

	day := domain.Day(req.Day)
	rng := rand.New(rand.NewSource(seedFor(req.SiteName, day)))

	var articles []domain.Article
	for _, category := range req.Categories {
		count := 2 + rng.Intn(3)
		for i := 0; i < count; i++ {
			template := headlineTemplates[rng.Intn(len(headlineTemplates))]
			subject := headlineSubjects[rng.Intn(len(headlineSubjects))]
			title := fmt.Sprintf(template, subject)

			articles = append(articles, domain.Article{
				Title:       title,
				Description: buildDescription(rng),
				Source:      req.SiteName,
				Category:    category,
				URL:         buildURL(req.SiteName, day, rng),
				PublishedAt: day.Add(time.Duration(6+rng.Intn(12)) * time.Hour),
			})
		}
	}

	return articles, nil
}

// buildDescription joins one to three snippets so description lengths vary
// around the 100-character quality-bonus threshold.
func buildDescription(rng *rand.Rand) string {
	count := 1 + rng.Intn(3)
	parts := make([]string, 0, count)
	for i := 0; i < count; i++ {
		parts = append(parts, descriptionSnippets[rng.Intn(len(descriptionSnippets))])
	}
	return strings.Join(parts, " ")
}

func buildURL(site string, day time.Time, rng *rand.Rand) string {
	slug := strings.ToLower(site)
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, slug)
	slug = strings.Trim(slug, "-")
	return fmt.Sprintf("https://%s.nl/artikel/%s-%06d", slug, day.Format("2006-01-02"), rng.Intn(1000000))
}

func seedFor(site string, day time.Time) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(site))
	return int64(h.Sum64()) ^ day.Unix()
}
