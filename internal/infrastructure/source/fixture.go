package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"RecruitIntel/internal/domain"
	"RecruitIntel/internal/scanner"
)

// FixtureScanner reads articles from a JSON file, the hand-off format used
// when an external collector drops its output on disk. Descriptions from
// such files often carry markup, so they are reduced to plain text before
// entering the pipeline.
type FixtureScanner struct{}

// NewFixtureScanner builds the file-backed strategy.
func NewFixtureScanner() *FixtureScanner {
	return &FixtureScanner{}
}

// Name identifies the strategy inside the registry.
func (f *FixtureScanner) Name() string {
	return "fixture"
}

// Scan loads the file named by the site's "path" option.
func (f *FixtureScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := req.Options["path"]
	if path == "" {
		return nil, fmt.Errorf("site %s: fixture scanner requires a path option", req.SiteName)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}

	var articles []domain.Article
	if err := json.Unmarshal(raw, &articles); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}

	for i := range articles {
		if articles[i].Source == "" {
			articles[i].Source = req.SiteName
		}
		articles[i].Description = stripMarkup(articles[i].Description)
	}

	return articles, nil
}

// stripMarkup extracts the text content from an HTML fragment. Plain
// strings pass through unchanged.
func stripMarkup(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
