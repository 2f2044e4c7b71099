package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 3000 {
		t.Errorf("default port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Data.Dir != "data" || cfg.Data.DailyTop != 5 {
		t.Errorf("unexpected data defaults: %+v", cfg.Data)
	}
	if cfg.Scheduler.DailyHour != 9 || cfg.Scheduler.WeeklyHour != 10 {
		t.Errorf("unexpected scheduler defaults: %+v", cfg.Scheduler)
	}
	if cfg.Scheduler.Location().String() != "Europe/Amsterdam" {
		t.Errorf("timezone = %s, want Europe/Amsterdam", cfg.Scheduler.Location())
	}
	if cfg.Weights.Keywords["ai"] != 10 {
		t.Errorf("keyword weight ai = %d, want 10", cfg.Weights.Keywords["ai"])
	}
	if len(cfg.Sites) != 8 {
		t.Errorf("default sites = %d, want 8", len(cfg.Sites))
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("WEBHOOK_SECRET", "geheim")
	t.Setenv("DATABASE_DSN", "postgres://localhost/recruitintel")

	cfg := Load()

	if cfg.Server.Port != 8081 {
		t.Errorf("port = %d, want 8081", cfg.Server.Port)
	}
	if cfg.Server.Secret != "geheim" {
		t.Errorf("secret = %q, want geheim", cfg.Server.Secret)
	}
	if cfg.Database.DSN != "postgres://localhost/recruitintel" {
		t.Errorf("dsn = %q", cfg.Database.DSN)
	}
}

func TestLoadInvalidPortIgnored(t *testing.T) {
	t.Setenv("PORT", "niet-een-getal")

	cfg := Load()
	if cfg.Server.Port != 3000 {
		t.Errorf("port = %d, want default 3000", cfg.Server.Port)
	}
}

func TestLoadYAMLFileMerge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  port: 4000
data:
  dailyTop: 3
scheduler:
  timezone: UTC
weights:
  keywords:
    robotisering: 9
sites:
  - name: Testbron
    scanner: fixture
    categories: [Arbeidsmarkt]
    options:
      path: testdata/articles.json
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RECRUITINTEL_CONFIG", path)

	cfg := Load()

	if cfg.Server.Port != 4000 {
		t.Errorf("port = %d, want 4000", cfg.Server.Port)
	}
	if cfg.Data.DailyTop != 3 {
		t.Errorf("dailyTop = %d, want 3", cfg.Data.DailyTop)
	}
	if cfg.Data.Dir != "data" {
		t.Errorf("dir = %q, merge should keep defaults", cfg.Data.Dir)
	}
	if cfg.Scheduler.Location() != nil && cfg.Scheduler.Location().String() != "UTC" {
		t.Errorf("timezone = %s, want UTC", cfg.Scheduler.Location())
	}
	if cfg.Weights.Keywords["robotisering"] != 9 {
		t.Errorf("keyword weights not taken from file: %+v", cfg.Weights.Keywords)
	}
	if _, ok := cfg.Weights.Keywords["ai"]; ok {
		t.Error("file keyword table should replace the default table")
	}
	if len(cfg.Sites) != 1 || cfg.Sites[0].Scanner != "fixture" {
		t.Errorf("sites not taken from file: %+v", cfg.Sites)
	}
}

func TestLoadUnknownTimezoneFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("scheduler:\n  timezone: Mars/Olympus\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RECRUITINTEL_CONFIG", path)

	cfg := Load()
	if cfg.Scheduler.Location().String() != "Europe/Amsterdam" {
		t.Errorf("timezone = %s, want fallback Europe/Amsterdam", cfg.Scheduler.Location())
	}
}
