package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RecruitIntel/internal/domain"
)

type fakeSource struct {
	articles []domain.Article
	err      error
}

func (f *fakeSource) FetchDaily(ctx context.Context, day time.Time) ([]domain.Article, error) {
	return f.articles, f.err
}

type memoryStore struct {
	latest    *domain.DayBucket
	window    domain.WeeklyWindow
	backups   int
	contents  map[string][]byte
	reports   map[string][]byte
	windowErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{contents: map[string][]byte{}, reports: map[string][]byte{}}
}

func (m *memoryStore) SaveLatest(bucket domain.DayBucket) error {
	m.latest = &bucket
	return nil
}

func (m *memoryStore) LoadLatest() (domain.DayBucket, error) {
	if m.latest == nil {
		return domain.DayBucket{}, fmt.Errorf("no latest snapshot")
	}
	return *m.latest, nil
}

func (m *memoryStore) SaveWindow(window domain.WeeklyWindow) error {
	m.window = window
	return nil
}

func (m *memoryStore) LoadWindow() (domain.WeeklyWindow, error) {
	return m.window, m.windowErr
}

func (m *memoryStore) SaveSheetsBackup(bucket domain.DayBucket) error {
	m.backups++
	return nil
}

func (m *memoryStore) SaveContent(filename string, data []byte) (string, error) {
	m.contents[filename] = data
	return "content/" + filename, nil
}

func (m *memoryStore) SaveReport(filename string, data []byte) (string, error) {
	m.reports[filename] = data
	return "reports/" + filename, nil
}

func (m *memoryStore) ListGenerated() ([]string, error) {
	var names []string
	for name := range m.contents {
		names = append(names, name)
	}
	for name := range m.reports {
		names = append(names, name)
	}
	return names, nil
}

type fakeArchive struct {
	archived int
	countErr error
}

func (f *fakeArchive) ArchiveDay(ctx context.Context, bucket domain.DayBucket) error {
	f.archived += len(bucket.Articles)
	return nil
}

func (f *fakeArchive) CountSince(ctx context.Context, since time.Time) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.archived, nil
}

type fakeUploader struct {
	calls int
	err   error
}

func (f *fakeUploader) UploadDay(ctx context.Context, bucket domain.DayBucket) (string, error) {
	f.calls++
	return "https://docs.google.com/spreadsheets/d/test/edit", f.err
}

func testArticles(day time.Time) []domain.Article {
	return []domain.Article{
		{
			Title:       "AI in recruitment",
			Description: "Kunstmatige intelligentie versnelt het wervingsproces aanzienlijk voor veel bureaus.",
			Source:      "Intelligence Group",
			Category:    "AI & Technologie",
			URL:         "https://example.nl/1",
			PublishedAt: day.Add(8 * time.Hour),
		},
		{
			Title:       "Krapte op de arbeidsmarkt",
			Source:      "Werf&",
			Category:    "Arbeidsmarkt",
			URL:         "https://example.nl/2",
			PublishedAt: day.Add(10 * time.Hour),
		},
		{
			Title:       "Gemeente opent zwembad",
			Source:      "Onbekend",
			Category:    "Overig",
			URL:         "https://example.nl/3",
			PublishedAt: day.AddDate(0, 0, -1),
		},
	}
}

func testWeights() domain.Weights {
	return domain.Weights{
		Keywords:   map[string]int{"ai": 10, "arbeidsmarkt": 9, "krapte": 8},
		Sources:    map[string]int{"Intelligence Group": 9, "Werf&": 8},
		Categories: map[string]int{"AI & Technologie": 10, "Arbeidsmarkt": 9},
	}
}

func newTestPipeline(store *memoryStore, src *fakeSource, up *fakeUploader) *Pipeline {
	deps := PipelineDeps{
		Source:    src,
		Snapshots: store,
		Files:     store,
		Weights:   testWeights(),
		DailyTop:  2,
	}
	if up != nil {
		deps.Uploader = up
	}
	return NewPipeline(deps)
}

func TestRunDailyCollection(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	store := newMemoryStore()
	pipeline := newTestPipeline(store, &fakeSource{articles: testArticles(day)}, nil)

	bucket, err := pipeline.RunDailyCollection(context.Background(), day)
	require.NoError(t, err)

	require.Len(t, bucket.Articles, 3)
	// Sorted descending by score; the zwembad article matches nothing.
	assert.Equal(t, "Krapte op de arbeidsmarkt", bucket.Articles[0].Title)
	assert.Equal(t, 0, bucket.Articles[2].Score)

	// Latest snapshot keeps the full day, the window only the top N.
	require.NotNil(t, store.latest)
	assert.Len(t, store.latest.Articles, 3)
	require.Len(t, store.window, 1)
	assert.Len(t, store.window[0].Articles, 2)

	assert.Len(t, store.reports, 1, "daily HTML report written")
}

func TestRunDailyCollectionRollsWindow(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	src := &fakeSource{}
	pipeline := newTestPipeline(store, src, nil)

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 9; i++ {
		day := base.AddDate(0, 0, i)
		src.articles = testArticles(day)
		_, err := pipeline.RunDailyCollection(context.Background(), day)
		require.NoError(t, err)
	}

	require.Len(t, store.window, 7)
	assert.True(t, store.window[0].Date.Equal(base.AddDate(0, 0, 2)))
	assert.True(t, store.window[6].Date.Equal(base.AddDate(0, 0, 8)))
}

func TestRunDailyCollectionSourceError(t *testing.T) {
	t.Parallel()

	pipeline := newTestPipeline(newMemoryStore(), &fakeSource{err: fmt.Errorf("boom")}, nil)
	_, err := pipeline.RunDailyCollection(context.Background(), time.Now())
	assert.ErrorContains(t, err, "fetch daily")
}

func TestRunSheetsUpload(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	store := newMemoryStore()
	uploader := &fakeUploader{}
	pipeline := newTestPipeline(store, &fakeSource{articles: testArticles(day)}, uploader)

	_, err := pipeline.RunDailyCollection(context.Background(), day)
	require.NoError(t, err)

	url, err := pipeline.RunSheetsUpload(context.Background())
	require.NoError(t, err)
	assert.Contains(t, url, "docs.google.com")
	assert.Equal(t, 1, uploader.calls)
	assert.Equal(t, 1, store.backups)
}

func TestRunSheetsUploadWithoutCollection(t *testing.T) {
	t.Parallel()

	pipeline := newTestPipeline(newMemoryStore(), &fakeSource{}, &fakeUploader{})
	_, err := pipeline.RunSheetsUpload(context.Background())
	assert.ErrorContains(t, err, "no daily collection")
}

func TestRunSheetsUploadNotConfigured(t *testing.T) {
	t.Parallel()

	pipeline := newTestPipeline(newMemoryStore(), &fakeSource{}, nil)
	_, err := pipeline.RunSheetsUpload(context.Background())
	assert.ErrorContains(t, err, "not configured")
}

func TestRunWeeklyContent(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	store := newMemoryStore()
	pipeline := newTestPipeline(store, &fakeSource{articles: testArticles(day)}, nil)

	_, err := pipeline.RunDailyCollection(context.Background(), day)
	require.NoError(t, err)

	files, err := pipeline.RunWeeklyContent(context.Background(), day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Len(t, files, 5)
	assert.Len(t, store.contents, 5)
}

func TestRunWeeklyContentEmptyWindow(t *testing.T) {
	t.Parallel()

	pipeline := newTestPipeline(newMemoryStore(), &fakeSource{}, nil)
	_, err := pipeline.RunWeeklyContent(context.Background(), time.Now())
	assert.ErrorContains(t, err, "empty")
}

func TestRunDailyCollectionArchivesArticles(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	store := newMemoryStore()
	archive := &fakeArchive{}
	pipeline := NewPipeline(PipelineDeps{
		Source:    &fakeSource{articles: testArticles(day)},
		Snapshots: store,
		Files:     store,
		Archive:   archive,
		Weights:   testWeights(),
		DailyTop:  2,
	})

	_, err := pipeline.RunDailyCollection(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, 3, archive.archived, "full day archived, not the truncated window entry")

	count, ok := pipeline.ArchivedWeekTotal(context.Background())
	require.True(t, ok)
	assert.Equal(t, 3, count)
}

func TestArchivedWeekTotalWithoutArchive(t *testing.T) {
	t.Parallel()

	pipeline := newTestPipeline(newMemoryStore(), &fakeSource{}, nil)
	_, ok := pipeline.ArchivedWeekTotal(context.Background())
	assert.False(t, ok)
}

func TestArchivedWeekTotalCountFailure(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	pipeline := NewPipeline(PipelineDeps{
		Source:    &fakeSource{},
		Snapshots: store,
		Files:     store,
		Archive:   &fakeArchive{countErr: fmt.Errorf("connection lost")},
		Weights:   testWeights(),
	})

	_, ok := pipeline.ArchivedWeekTotal(context.Background())
	assert.False(t, ok)
}

func TestTopArticlesEmptyWindow(t *testing.T) {
	t.Parallel()

	pipeline := newTestPipeline(newMemoryStore(), &fakeSource{}, nil)
	analysis, err := pipeline.TopArticles(context.Background())
	require.NoError(t, err)
	assert.Zero(t, analysis.TotalArticles)
	assert.Empty(t, analysis.TopArticles)
}
