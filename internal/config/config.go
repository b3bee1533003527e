package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Search    SearchConfig    `yaml:"search"`
	Auth      AuthConfig      `yaml:"auth"`
	Google    GoogleConfig    `yaml:"google"`
	Sync      SyncConfig      `yaml:"sync"`
	Retention RetentionConfig `yaml:"retention"`
	Importer  ImporterConfig  `yaml:"importer"`
	Timezone  string          `yaml:"timezone"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port         int      `yaml:"port"`
	AllowOrigins []string `yaml:"allow_origins"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// SearchConfig contains search engine settings
type SearchConfig struct {
	Enabled     bool              `yaml:"enabled"`
	Meilisearch MeilisearchConfig `yaml:"meilisearch"`
}

// MeilisearchConfig contains Meilisearch connection settings
type MeilisearchConfig struct {
	Host   string `yaml:"host"`
	APIKey string `yaml:"api_key"`
}

// AuthConfig contains session settings
type AuthConfig struct {
	JWTSecret     string `yaml:"jwt_secret"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
}

// GoogleConfig contains Google OAuth client settings
type GoogleConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
	// Where the OAuth callback sends the browser afterwards, with a
	// success/error query flag appended.
	SettingsURL string `yaml:"settings_url"`
}

// SyncConfig contains calendar sync settings
type SyncConfig struct {
	AutoSyncEnabled bool   `yaml:"auto_sync_enabled"`
	AutoSyncTime    string `yaml:"auto_sync_time"`
	LookaheadDays   int    `yaml:"lookahead_days"`
	// Manual sync trigger rate limit, per agent
	ManualSyncPerHour int `yaml:"manual_sync_per_hour"`
}

// RetentionConfig contains retention cleanup settings
type RetentionConfig struct {
	Enabled          bool `yaml:"enabled"`
	ActivityMaxDays  int  `yaml:"activity_max_days"`
	CommsMaxDays     int  `yaml:"comms_max_days"`
	CleanupHourLocal int  `yaml:"cleanup_hour_local"`
}

// ImporterConfig contains listing-page importer settings
type ImporterConfig struct {
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxRetries     int    `yaml:"max_retries"`
	UserAgent      string `yaml:"user_agent"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         8080,
			AllowOrigins: []string{"http://localhost:3000"},
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     3306,
			User:     "crm_user",
			Database: "realestate_crm",
		},
		Search: SearchConfig{
			Enabled: false,
			Meilisearch: MeilisearchConfig{
				Host: "http://localhost:7700",
			},
		},
		Auth: AuthConfig{
			TokenTTLHours: 72,
		},
		Google: GoogleConfig{
			RedirectURL: "http://localhost:8080/api/calendar/callback",
			SettingsURL: "http://localhost:3000/settings",
		},
		Sync: SyncConfig{
			AutoSyncEnabled:   false,
			AutoSyncTime:      "06:00",
			LookaheadDays:     90,
			ManualSyncPerHour: 12,
		},
		Retention: RetentionConfig{
			Enabled:          false,
			ActivityMaxDays:  365,
			CommsMaxDays:     730,
			CleanupHourLocal: 3,
		},
		Importer: ImporterConfig{
			TimeoutSeconds: 30,
			MaxRetries:     3,
			UserAgent:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
		},
	}
}

// LoadConfig loads configuration from a YAML file, then applies
// environment overrides for deployment-sensitive values.
func LoadConfig(filepath string) (*Config, error) {
	// Start with default config
	config := DefaultConfig()

	// If file doesn't exist, fall through to env overrides on defaults
	if _, err := os.Stat(filepath); err == nil {
		data, err := os.ReadFile(filepath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	config.applyEnv()
	return config, nil
}

// applyEnv overrides secrets and connection settings from the environment
func (c *Config) applyEnv() {
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		c.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		c.Database.Database = v
	}
	if v := os.Getenv("MEILISEARCH_HOST"); v != "" {
		c.Search.Meilisearch.Host = v
		c.Search.Enabled = true
	}
	if v := os.Getenv("MEILISEARCH_API_KEY"); v != "" {
		c.Search.Meilisearch.APIKey = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("GOOGLE_CLIENT_ID"); v != "" {
		c.Google.ClientID = v
	}
	if v := os.Getenv("GOOGLE_CLIENT_SECRET"); v != "" {
		c.Google.ClientSecret = v
	}
	if v := os.Getenv("GOOGLE_REDIRECT_URL"); v != "" {
		c.Google.RedirectURL = v
	}
}

// TokenTTL returns the session token lifetime as a duration
func (c *AuthConfig) TokenTTL() time.Duration {
	if c.TokenTTLHours <= 0 {
		return 72 * time.Hour
	}
	return time.Duration(c.TokenTTLHours) * time.Hour
}

// Lookahead returns the calendar import window as a duration
func (c *SyncConfig) Lookahead() time.Duration {
	days := c.LookaheadDays
	if days <= 0 {
		days = 90
	}
	return time.Duration(days) * 24 * time.Hour
}

// GetTimeout returns the importer fetch timeout as a duration
func (c *ImporterConfig) GetTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
