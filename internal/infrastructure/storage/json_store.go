package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"RecruitIntel/internal/domain"
	"RecruitIntel/internal/ports"
)

const (
	latestFile = "latest-dutch-news.json"
	weeklyFile = "weekly-top-articles.json"
)

// FileStore owns the data, content, and reports directories and performs
// all JSON persistence the pipeline needs between runs. Writes go through
// a temp file and rename so a crash never leaves a half-written snapshot.
type FileStore struct {
	dataDir    string
	contentDir string
	reportsDir string
}

var (
	_ ports.SnapshotStore = (*FileStore)(nil)
	_ ports.ContentStore  = (*FileStore)(nil)
)

// NewFileStore creates the directory layout under baseDir.
func NewFileStore(baseDir string) (*FileStore, error) {
	s := &FileStore{
		dataDir:    baseDir,
		contentDir: filepath.Join(baseDir, "content"),
		reportsDir: filepath.Join(baseDir, "reports"),
	}
	for _, dir := range []string{s.dataDir, s.contentDir, s.reportsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return s, nil
}

// latestSnapshot is the on-disk shape of the most recent collection run,
// with the category and source rollups downstream consumers read.
type latestSnapshot struct {
	Date          string                 `json:"date"`
	TotalArticles int                    `json:"totalArticles"`
	Categories    []string               `json:"categories"`
	Sources       []string               `json:"sources"`
	Articles      []domain.ScoredArticle `json:"articles"`
}

// SaveLatest snapshots the day's full bucket.
func (s *FileStore) SaveLatest(bucket domain.DayBucket) error {
	snap := latestSnapshot{
		Date:          bucket.Date.Format("2006-01-02"),
		TotalArticles: len(bucket.Articles),
		Categories:    distinct(bucket.Articles, func(a domain.ScoredArticle) string { return a.Category }),
		Sources:       distinct(bucket.Articles, func(a domain.ScoredArticle) string { return a.Source }),
		Articles:      bucket.Articles,
	}
	return s.writeJSON(filepath.Join(s.dataDir, latestFile), snap)
}

// LoadLatest returns the most recent snapshot, or an error when no daily
// collection has run yet.
func (s *FileStore) LoadLatest() (domain.DayBucket, error) {
	raw, err := os.ReadFile(filepath.Join(s.dataDir, latestFile))
	if err != nil {
		return domain.DayBucket{}, fmt.Errorf("read latest snapshot: %w", err)
	}

	var snap latestSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return domain.DayBucket{}, fmt.Errorf("parse latest snapshot: %w", err)
	}

	bucket := domain.DayBucket{Articles: snap.Articles}
	if len(snap.Articles) > 0 {
		bucket.Date = domain.Day(snap.Articles[0].PublishedAt)
	}
	if t, err := time.Parse("2006-01-02", snap.Date); err == nil {
		bucket.Date = t.UTC()
	}
	return bucket, nil
}

// SaveWindow persists the weekly window in the documented external shape.
func (s *FileStore) SaveWindow(window domain.WeeklyWindow) error {
	if window == nil {
		window = domain.WeeklyWindow{}
	}
	return s.writeJSON(filepath.Join(s.dataDir, weeklyFile), window)
}

// LoadWindow reads the weekly window; a missing file is an empty window,
// not an error, so the first run of a fresh install works.
func (s *FileStore) LoadWindow() (domain.WeeklyWindow, error) {
	raw, err := os.ReadFile(filepath.Join(s.dataDir, weeklyFile))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.WeeklyWindow{}, nil
		}
		return nil, fmt.Errorf("read weekly window: %w", err)
	}

	var window domain.WeeklyWindow
	if err := json.Unmarshal(raw, &window); err != nil {
		return nil, fmt.Errorf("parse weekly window: %w", err)
	}
	return window, nil
}

// SaveSheetsBackup writes the upload payload next to the other snapshots.
func (s *FileStore) SaveSheetsBackup(bucket domain.DayBucket) error {
	name := fmt.Sprintf("sheets-backup-%s.json", bucket.Date.Format("2006-01-02"))
	return s.writeJSON(filepath.Join(s.dataDir, name), bucket)
}

// SaveContent writes a generated draft into the content directory.
func (s *FileStore) SaveContent(filename string, data []byte) (string, error) {
	path := filepath.Join(s.contentDir, filepath.Base(filename))
	if err := atomicWrite(path, data); err != nil {
		return "", fmt.Errorf("save content %s: %w", filename, err)
	}
	return path, nil
}

// SaveReport writes a generated report into the reports directory.
func (s *FileStore) SaveReport(filename string, data []byte) (string, error) {
	path := filepath.Join(s.reportsDir, filepath.Base(filename))
	if err := atomicWrite(path, data); err != nil {
		return "", fmt.Errorf("save report %s: %w", filename, err)
	}
	return path, nil
}

// ListGenerated names every draft and report on disk, newest last.
func (s *FileStore) ListGenerated() ([]string, error) {
	var names []string
	for _, dir := range []string{s.contentDir, s.reportsDir} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", dir, err)
		}
		for _, e := range entries {
			if !e.IsDir() {
				names = append(names, filepath.Join(filepath.Base(dir), e.Name()))
			}
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *FileStore) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := atomicWrite(path, data); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func atomicWrite(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func distinct(articles []domain.ScoredArticle, key func(domain.ScoredArticle) string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, a := range articles {
		k := key(a)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
