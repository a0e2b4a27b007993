// Package config reads the runtime configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"time"
)

// Environment variable names.
const (
	EnvAPIKey            = "BAMBOORAT_API_KEY"
	EnvProjectID         = "BAMBOORAT_PROJECT_ID"
	EnvStorageBucket     = "BAMBOORAT_STORAGE_BUCKET"
	EnvMessagingSenderID = "BAMBOORAT_MESSAGING_SENDER_ID"
	EnvAppID             = "BAMBOORAT_APP_ID"

	EnvAddr       = "BAMBOORAT_ADDR"
	EnvDB         = "BAMBOORAT_DB"
	EnvDBDSN      = "BAMBOORAT_DB_DSN"
	EnvS3Endpoint = "BAMBOORAT_S3_ENDPOINT"
	EnvS3Access   = "BAMBOORAT_S3_ACCESS_KEY"
	EnvS3Secret   = "BAMBOORAT_S3_SECRET_KEY"
	EnvS3UseSSL   = "BAMBOORAT_S3_USE_SSL"
	EnvLog        = "BAMBOORAT_LOG"
	EnvNoticeTTL  = "BAMBOORAT_NOTICE_TTL"
)

const (
	defaultAddr      = ":8080"
	defaultDB        = "bamboorat.sqlite3"
	defaultNoticeTTL = 6 * time.Second
)

// Config is the runtime configuration.
type Config struct {
	// Backend project settings.
	APIKey            string
	ProjectID         string
	StorageBucket     string
	MessagingSenderID string
	AppID             string

	Addr      string
	DBPath    string
	DBDSN     string
	LogPath   string
	NoticeTTL time.Duration

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3UseSSL    bool
}

// Load reads configuration from environment variables falling back to defaults.
func Load() *Config {
	cfg := &Config{
		APIKey:            readEnv(EnvAPIKey, ""),
		ProjectID:         readEnv(EnvProjectID, ""),
		StorageBucket:     readEnv(EnvStorageBucket, ""),
		MessagingSenderID: readEnv(EnvMessagingSenderID, ""),
		AppID:             readEnv(EnvAppID, ""),

		Addr:      readEnv(EnvAddr, defaultAddr),
		DBPath:    readEnv(EnvDB, defaultDB),
		DBDSN:     readEnv(EnvDBDSN, ""),
		LogPath:   readEnv(EnvLog, ""),
		NoticeTTL: parseDuration(EnvNoticeTTL, defaultNoticeTTL),

		S3Endpoint:  readEnv(EnvS3Endpoint, ""),
		S3AccessKey: readEnv(EnvS3Access, ""),
		S3SecretKey: readEnv(EnvS3Secret, ""),
		S3UseSSL:    parseBool(EnvS3UseSSL, true),
	}
	if cfg.NoticeTTL <= 0 {
		cfg.NoticeTTL = defaultNoticeTTL
	}
	return cfg
}

// Missing returns the names of required variables that are not set.
func (c *Config) Missing() []string {
	required := []struct {
		name  string
		value string
	}{
		{EnvAPIKey, c.APIKey},
		{EnvProjectID, c.ProjectID},
		{EnvStorageBucket, c.StorageBucket},
		{EnvMessagingSenderID, c.MessagingSenderID},
		{EnvAppID, c.AppID},
	}

	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.name)
		}
	}
	return missing
}

// SnapshotsEnabled reports whether object storage is configured.
func (c *Config) SnapshotsEnabled() bool {
	return c.S3Endpoint != "" && c.StorageBucket != ""
}

// Project returns the project ID, or "default" when unset.
func (c *Config) Project() string {
	if c.ProjectID == "" {
		return "default"
	}
	return c.ProjectID
}

func readEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func parseDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}

func parseBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}
