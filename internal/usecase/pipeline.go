package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"RecruitIntel/internal/aggregate"
	"RecruitIntel/internal/content"
	"RecruitIntel/internal/domain"
	"RecruitIntel/internal/ports"
	"RecruitIntel/internal/report"
	"RecruitIntel/internal/scoring"
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
// Archive, Uploader, and Notifier are optional; the rest are required.
type PipelineDeps struct {
	Source    ports.ArticleSource
	Snapshots ports.SnapshotStore
	Files     ports.ContentStore
	Archive   ports.ArticleArchive
	Uploader  ports.SheetUploader
	Notifier  ports.Notifier
	Weights   domain.Weights
	DailyTop  int
	Logger    *slog.Logger
}

// Pipeline implements the daily collection and weekly content workflows.
// The scoring core stays pure; every side effect happens here, at the
// edges, through the injected ports.
type Pipeline struct {
	source    ports.ArticleSource
	snapshots ports.SnapshotStore
	files     ports.ContentStore
	archive   ports.ArticleArchive
	uploader  ports.SheetUploader
	notifier  ports.Notifier
	weights   domain.Weights
	dailyTop  int
	logger    *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	if deps.DailyTop <= 0 {
		deps.DailyTop = 5
	}
	return &Pipeline{
		source:    deps.Source,
		snapshots: deps.Snapshots,
		files:     deps.Files,
		archive:   deps.Archive,
		uploader:  deps.Uploader,
		notifier:  deps.Notifier,
		weights:   deps.Weights,
		dailyTop:  deps.DailyTop,
		logger:    deps.Logger,
	}
}

// RunDailyCollection fetches, scores, and persists one day of articles,
// then rolls the day's top entries into the weekly window and writes the
// HTML report.
func (p *Pipeline) RunDailyCollection(ctx context.Context, now time.Time) (domain.DayBucket, error) {
	articles, err := p.source.FetchDaily(ctx, now)
	if err != nil {
		return domain.DayBucket{}, fmt.Errorf("fetch daily: %w", err)
	}

	bucket := scoring.AggregateDay(articles, now, p.weights)
	p.info("daily collection scored", "date", bucket.Date.Format("2006-01-02"), "articles", len(bucket.Articles))

	if err := p.snapshots.SaveLatest(bucket); err != nil {
		return domain.DayBucket{}, fmt.Errorf("save latest snapshot: %w", err)
	}

	window, err := p.snapshots.LoadWindow()
	if err != nil {
		return domain.DayBucket{}, fmt.Errorf("load weekly window: %w", err)
	}
	window = aggregate.Insert(window, p.truncate(bucket))
	if err := p.snapshots.SaveWindow(window); err != nil {
		return domain.DayBucket{}, fmt.Errorf("save weekly window: %w", err)
	}

	if p.archive != nil {
		if err := p.archive.ArchiveDay(ctx, bucket); err != nil {
			return domain.DayBucket{}, fmt.Errorf("archive day: %w", err)
		}
	}

	filename, body, err := report.Daily(bucket)
	if err != nil {
		return domain.DayBucket{}, err
	}
	if _, err := p.files.SaveReport(filename, body); err != nil {
		return domain.DayBucket{}, err
	}

	p.notify(ctx, dailySummary(bucket))
	return bucket, nil
}

// RunSheetsUpload pushes the latest day to the spreadsheet and writes the
// local backup alongside it.
func (p *Pipeline) RunSheetsUpload(ctx context.Context) (string, error) {
	if p.uploader == nil {
		return "", fmt.Errorf("sheets uploader not configured")
	}

	bucket, err := p.snapshots.LoadLatest()
	if err != nil {
		return "", fmt.Errorf("no daily collection to upload: %w", err)
	}

	url, err := p.uploader.UploadDay(ctx, bucket)
	if err != nil {
		return "", fmt.Errorf("upload to sheets: %w", err)
	}

	if err := p.snapshots.SaveSheetsBackup(bucket); err != nil {
		return "", fmt.Errorf("save sheets backup: %w", err)
	}

	p.info("sheets upload done", "url", url, "articles", len(bucket.Articles))
	return url, nil
}

// RunWeeklyContent analyzes the window and writes the four LinkedIn draft
// formats plus their metadata sidecar. It returns the saved file paths.
func (p *Pipeline) RunWeeklyContent(ctx context.Context, now time.Time) ([]string, error) {
	window, err := p.snapshots.LoadWindow()
	if err != nil {
		return nil, fmt.Errorf("load weekly window: %w", err)
	}

	analysis := aggregate.Analyze(window)
	if analysis.TotalArticles == 0 {
		return nil, fmt.Errorf("weekly window is empty; run daily collections first")
	}

	var paths []string
	for _, draft := range content.Drafts(analysis, now) {
		path, err := p.files.SaveContent(draft.Filename, draft.Body)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	p.info("weekly content generated", "files", len(paths), "articles", analysis.TotalArticles)
	p.notify(ctx, weeklySummary(analysis, len(paths)))
	return paths, nil
}

// TopArticles exposes the current weekly analysis for the webhook surface.
func (p *Pipeline) TopArticles(ctx context.Context) (domain.WeeklyAnalysis, error) {
	window, err := p.snapshots.LoadWindow()
	if err != nil {
		return domain.WeeklyAnalysis{}, fmt.Errorf("load weekly window: %w", err)
	}
	return aggregate.Analyze(window), nil
}

// ArchivedWeekTotal counts archived articles collected within the window
// span. The second result is false when no archive is configured or the
// count fails; the status surface then omits the figure.
func (p *Pipeline) ArchivedWeekTotal(ctx context.Context) (int, bool) {
	if p.archive == nil {
		return 0, false
	}
	since := domain.Day(time.Now()).AddDate(0, 0, -aggregate.WindowDays)
	count, err := p.archive.CountSince(ctx, since)
	if err != nil {
		p.warn("archive count failed", "error", err)
		return 0, false
	}
	return count, true
}

// WindowDays reports how many days of data the window currently holds.
func (p *Pipeline) WindowDays() int {
	window, err := p.snapshots.LoadWindow()
	if err != nil {
		return 0
	}
	return len(window)
}

// ListGenerated names the drafts and reports currently on disk.
func (p *Pipeline) ListGenerated() ([]string, error) {
	return p.files.ListGenerated()
}

// truncate applies the persisted top-N; the aggregator itself never cuts.
func (p *Pipeline) truncate(bucket domain.DayBucket) domain.DayBucket {
	if len(bucket.Articles) <= p.dailyTop {
		return bucket
	}
	top := make([]domain.ScoredArticle, p.dailyTop)
	copy(top, bucket.Articles[:p.dailyTop])
	return domain.DayBucket{Date: bucket.Date, Articles: top}
}

func (p *Pipeline) notify(ctx context.Context, message string) {
	if p.notifier == nil || message == "" {
		return
	}
	if err := p.notifier.PublishDigest(ctx, message); err != nil {
		p.warn("notify failed", "error", err)
	}
}

func dailySummary(bucket domain.DayBucket) string {
	if len(bucket.Articles) == 0 {
		return fmt.Sprintf("Dagelijkse collectie %s: geen artikelen gevonden.", bucket.Date.Format("2006-01-02"))
	}
	top := bucket.Articles[0]
	return fmt.Sprintf("Dagelijkse collectie %s: %d artikelen. Hoogste score %d: %s (%s)",
		bucket.Date.Format("2006-01-02"), len(bucket.Articles), top.Score, top.Title, top.Source)
}

func weeklySummary(analysis domain.WeeklyAnalysis, files int) string {
	return fmt.Sprintf("Weekcontent klaar: %d bestanden op basis van %d artikelen (gemiddelde score %d). Review voor publicatie.",
		files, analysis.TotalArticles, analysis.AverageScore)
}

func (p *Pipeline) info(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
