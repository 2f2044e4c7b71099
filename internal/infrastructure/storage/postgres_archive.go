package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"RecruitIntel/internal/domain"
	"RecruitIntel/internal/ports"
)

// PostgresArchive keeps scored articles beyond the seven days the weekly
// window retains. It is optional; the pipeline runs without it.
type PostgresArchive struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.ArticleArchive = (*PostgresArchive)(nil)

// OpenPostgresArchive connects to Postgres and verifies the connection.
func OpenPostgresArchive(ctx context.Context, dsn string) (*PostgresArchive, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return NewPostgresArchive(db), nil
}

// NewPostgresArchive wraps an existing connection.
func NewPostgresArchive(db *sql.DB) *PostgresArchive {
	return &PostgresArchive{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Close releases the underlying connection pool.
func (r *PostgresArchive) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// ArchiveDay upserts every article of the bucket, keyed by URL.
func (r *PostgresArchive) ArchiveDay(ctx context.Context, bucket domain.DayBucket) error {
	if r.db == nil {
		return nil
	}

	for _, article := range bucket.Articles {
		query := r.builder.
			Insert("scored_articles").
			Columns("url", "title", "description", "source", "category", "score", "keywords", "collected_on").
			Values(
				article.URL,
				article.Title,
				article.Description,
				article.Source,
				article.Category,
				article.Score,
				strings.Join(article.Keywords, ","),
				bucket.Date,
			).
			Suffix(`ON CONFLICT (url) DO UPDATE
                SET score = EXCLUDED.score,
                    keywords = EXCLUDED.keywords,
                    collected_on = EXCLUDED.collected_on`)

		if _, err := query.RunWith(r.db).ExecContext(ctx); err != nil {
			return fmt.Errorf("archive article %s: %w", article.URL, err)
		}
	}

	return nil
}

// CountSince reports how many articles were collected on or after since.
func (r *PostgresArchive) CountSince(ctx context.Context, since time.Time) (int, error) {
	if r.db == nil {
		return 0, nil
	}

	query := r.builder.
		Select("COUNT(*)").
		From("scored_articles").
		Where(sq.GtOrEq{"collected_on": since})

	var count int
	if err := query.RunWith(r.db).QueryRowContext(ctx).Scan(&count); err != nil {
		return 0, fmt.Errorf("count archived articles: %w", err)
	}
	return count, nil
}
