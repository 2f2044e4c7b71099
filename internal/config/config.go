package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"RecruitIntel/internal/domain"
)

const (
	defaultTimezone = "Europe/Amsterdam"
	defaultPort     = 3000
	defaultDataDir  = "data"
	defaultTopN     = 5

	configPathEnv     = "RECRUITINTEL_CONFIG"
	portEnv           = "PORT"
	webhookSecretEnv  = "WEBHOOK_SECRET"
	databaseDSNEnv    = "DATABASE_DSN"
	spreadsheetIDEnv  = "SHEETS_SPREADSHEET_ID"
	credentialsEnv    = "GOOGLE_CREDENTIALS_FILE"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
)

// Config holds high-level settings required across the application.
type Config struct {
	Server        ServerConfig       `yaml:"server"`
	Data          DataConfig         `yaml:"data"`
	Database      DatabaseConfig     `yaml:"database"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Sheets        SheetsConfig       `yaml:"sheets"`
	Notifications NotificationConfig `yaml:"notifications"`
	Logging       LoggingConfig      `yaml:"logging"`
	Weights       domain.Weights     `yaml:"weights"`
	Sites         []SiteConfig       `yaml:"sites"`
}

// ServerConfig describes the webhook HTTP listener.
type ServerConfig struct {
	Port   int    `yaml:"port"`
	Secret string `yaml:"secret"`
}

// DataConfig locates the on-disk state and how much of a day survives
// into the weekly window.
type DataConfig struct {
	Dir      string `yaml:"dir"`
	DailyTop int    `yaml:"dailyTop"`
}

// DatabaseConfig describes the optional Postgres archive connection.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// SchedulerConfig defines when collection and content creation run.
type SchedulerConfig struct {
	DailyHour  int    `yaml:"dailyHour"`
	WeeklyHour int    `yaml:"weeklyHour"`
	Timezone   string `yaml:"timezone"`

	location *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, err := time.LoadLocation(defaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SheetsConfig wires the Google Sheets uploader.
type SheetsConfig struct {
	CredentialsFile string `yaml:"credentialsFile"`
	SpreadsheetID   string `yaml:"spreadsheetId"`
}

// NotificationConfig encapsulates outbound channels.
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SiteConfig describes a single news source with its scanner strategy.
type SiteConfig struct {
	Name       string            `yaml:"name"`
	Scanner    string            `yaml:"scanner"`
	Categories []string          `yaml:"categories"`
	Options    map[string]string `yaml:"options"`
}

// Load reads .env, YAML configuration (if present), and applies
// environment overrides.
func Load() Config {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	if len(cfg.Sites) == 0 {
		cfg.Sites = defaultConfig().Sites
	}
	if cfg.Weights.Keywords == nil && cfg.Weights.Sources == nil && cfg.Weights.Categories == nil {
		cfg.Weights = defaultConfig().Weights
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(portEnv); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			c.Server.Port = port
		}
	}
	if v := os.Getenv(webhookSecretEnv); v != "" {
		c.Server.Secret = v
	}
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv(spreadsheetIDEnv); v != "" {
		c.Sheets.SpreadsheetID = v
	}
	if v := os.Getenv(credentialsEnv); v != "" {
		c.Sheets.CredentialsFile = v
	}
	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}
	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, err = time.LoadLocation(defaultTimezone)
		if err != nil {
			loc = time.UTC
		}
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Server.Port != 0 {
		base.Server.Port = override.Server.Port
	}
	if override.Server.Secret != "" {
		base.Server.Secret = override.Server.Secret
	}

	if override.Data.Dir != "" {
		base.Data.Dir = override.Data.Dir
	}
	if override.Data.DailyTop != 0 {
		base.Data.DailyTop = override.Data.DailyTop
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Scheduler.DailyHour != 0 {
		base.Scheduler.DailyHour = override.Scheduler.DailyHour
	}
	if override.Scheduler.WeeklyHour != 0 {
		base.Scheduler.WeeklyHour = override.Scheduler.WeeklyHour
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Sheets.CredentialsFile != "" {
		base.Sheets.CredentialsFile = override.Sheets.CredentialsFile
	}
	if override.Sheets.SpreadsheetID != "" {
		base.Sheets.SpreadsheetID = override.Sheets.SpreadsheetID
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Weights.Keywords != nil {
		base.Weights.Keywords = override.Weights.Keywords
	}
	if override.Weights.Sources != nil {
		base.Weights.Sources = override.Weights.Sources
	}
	if override.Weights.Categories != nil {
		base.Weights.Categories = override.Weights.Categories
	}

	if len(override.Sites) > 0 {
		base.Sites = override.Sites
	}

	return base
}

func defaultConfig() Config {
	loc, err := time.LoadLocation(defaultTimezone)
	if err != nil {
		loc = time.UTC
	}
	return Config{
		Server: ServerConfig{Port: defaultPort},
		Data:   DataConfig{Dir: defaultDataDir, DailyTop: defaultTopN},
		Scheduler: SchedulerConfig{
			DailyHour:  9,
			WeeklyHour: 10,
			Timezone:   defaultTimezone,
			location:   loc,
		},
		Logging: LoggingConfig{Level: "info"},
		Weights: domain.Weights{
			Keywords: map[string]int{
				"ai":                        10,
				"kunstmatige intelligentie": 10,
				"chatgpt":                   9,
				"arbeidsmarkt":              9,
				"krapte":                    8,
				"recruitment":               8,
				"automatisering":            7,
				"werving":                   7,
				"employer branding":         7,
				"vacature":                  6,
				"uitzendbureau":             6,
				"flexwerk":                  6,
				"sollicitatie":              5,
				"talent":                    5,
			},
			Sources: map[string]int{
				"Intelligence Group":  9,
				"Werf&":               8,
				"Recruitment Matters": 7,
				"PW.":                 7,
				"HRkrant":             6,
				"Personeelsnet":       6,
				"NU.nl Economie":      5,
				"MT/Sprout":           5,
			},
			Categories: map[string]int{
				"AI & Technologie":      10,
				"Arbeidsmarkt":          9,
				"Werving & Selectie":    8,
				"HR Tech":               8,
				"Recruitment Marketing": 7,
				"Employer Branding":     7,
				"Uitzendbranche":        6,
			},
		},
		Sites: defaultSites(),
	}
}

func defaultSites() []SiteConfig {
	return []SiteConfig{
		{Name: "Intelligence Group", Scanner: "simulated", Categories: []string{"Arbeidsmarkt", "AI & Technologie"}},
		{Name: "Werf&", Scanner: "simulated", Categories: []string{"Werving & Selectie", "Recruitment Marketing"}},
		{Name: "Recruitment Matters", Scanner: "simulated", Categories: []string{"Werving & Selectie", "Employer Branding"}},
		{Name: "PW.", Scanner: "simulated", Categories: []string{"HR Tech", "Arbeidsmarkt"}},
		{Name: "HRkrant", Scanner: "simulated", Categories: []string{"HR Tech", "Employer Branding"}},
		{Name: "Personeelsnet", Scanner: "simulated", Categories: []string{"Arbeidsmarkt", "Uitzendbranche"}},
		{Name: "NU.nl Economie", Scanner: "simulated", Categories: []string{"Arbeidsmarkt"}},
		{Name: "MT/Sprout", Scanner: "simulated", Categories: []string{"AI & Technologie", "Recruitment Marketing"}},
	}
}
