package report

import (
	"bytes"
	"fmt"
	"html/template"

	"RecruitIntel/internal/domain"
)

var dailyTmpl = template.Must(template.New("daily").Parse(`<!DOCTYPE html>
<html lang="nl">
<head>
<meta charset="utf-8">
<title>Dagelijks recruitmentnieuws — {{.Date}}</title>
<style>
body { font-family: sans-serif; max-width: 720px; margin: 2em auto; color: #222; }
table { border-collapse: collapse; width: 100%; }
th, td { text-align: left; padding: 6px 10px; border-bottom: 1px solid #ddd; }
.score { font-weight: bold; }
</style>
</head>
<body>
<h1>Dagelijks recruitmentnieuws</h1>
<p>{{.Date}} — {{.Total}} artikelen verzameld.</p>
<table>
<tr><th>#</th><th>Titel</th><th>Bron</th><th>Categorie</th><th>Score</th></tr>
{{range .Rows}}<tr>
<td>{{.Rank}}</td>
<td><a href="{{.URL}}">{{.Title}}</a></td>
<td>{{.Source}}</td>
<td>{{.Category}}</td>
<td class="score">{{.Score}}</td>
</tr>
{{end}}</table>
</body>
</html>
`))

type dailyRow struct {
	Rank     int
	Title    string
	URL      string
	Source   string
	Category string
	Score    int
}

// Daily renders a bucket as an HTML page and names the output file.
func Daily(bucket domain.DayBucket) (filename string, body []byte, err error) {
	data := struct {
		Date  string
		Total int
		Rows  []dailyRow
	}{
		Date:  bucket.Date.Format("2006-01-02"),
		Total: len(bucket.Articles),
	}
	for i, article := range bucket.Articles {
		data.Rows = append(data.Rows, dailyRow{
			Rank:     i + 1,
			Title:    article.Title,
			URL:      article.URL,
			Source:   article.Source,
			Category: article.Category,
			Score:    article.Score,
		})
	}

	var buf bytes.Buffer
	if err := dailyTmpl.Execute(&buf, data); err != nil {
		return "", nil, fmt.Errorf("render daily report: %w", err)
	}

	return fmt.Sprintf("daily-report-%s.html", data.Date), buf.Bytes(), nil
}
