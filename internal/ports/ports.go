package ports

import (
	"context"
	"time"

	"RecruitIntel/internal/domain"
)

// ArticleSource pulls the day's articles from the configured providers.
type ArticleSource interface {
	FetchDaily(ctx context.Context, day time.Time) ([]domain.Article, error)
}

// SnapshotStore persists the pipeline's JSON state between runs. The
// scoring core itself never touches disk; whatever it returns is handed
// here by the caller.
type SnapshotStore interface {
	SaveLatest(bucket domain.DayBucket) error
	LoadLatest() (domain.DayBucket, error)
	SaveWindow(window domain.WeeklyWindow) error
	LoadWindow() (domain.WeeklyWindow, error)
	SaveSheetsBackup(bucket domain.DayBucket) error
}

// ContentStore writes generated drafts and reports and lists what exists.
type ContentStore interface {
	SaveContent(filename string, data []byte) (string, error)
	SaveReport(filename string, data []byte) (string, error)
	ListGenerated() ([]string, error)
}

// ArticleArchive keeps a long-term record of scored articles, beyond the
// seven days the window retains.
type ArticleArchive interface {
	ArchiveDay(ctx context.Context, bucket domain.DayBucket) error
	CountSince(ctx context.Context, since time.Time) (int, error)
}

// SheetUploader pushes a day's scored articles to a spreadsheet and
// returns its URL.
type SheetUploader interface {
	UploadDay(ctx context.Context, bucket domain.DayBucket) (string, error)
}

// Notifier delivers short status digests to an outbound channel.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scheduler drives the daily and weekly jobs on their configured cadence.
type Scheduler interface {
	Start(ctx context.Context, daily, weekly func(time.Time)) error
	Stop(ctx context.Context) error
}
