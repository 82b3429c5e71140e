package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvAPIURL      = "UPLOADER_API_URL"
	EnvDatabase    = "UPLOADER_DB"
	EnvTimeout     = "UPLOADER_TIMEOUT"
	EnvLogLevel    = "UPLOADER_LOG_LEVEL"
	EnvLocation    = "UPLOADER_LOCATION"
	EnvS3Region    = "UPLOADER_S3_REGION"
	EnvS3Endpoint  = "UPLOADER_S3_ENDPOINT"
	EnvS3AccessKey = "UPLOADER_S3_ACCESS_KEY"
	EnvS3SecretKey = "UPLOADER_S3_SECRET_KEY"
)

// parseEnv overlays Config with UPLOADER_* variables. A .env file in the
// working directory is loaded first when present; it never overrides
// variables already set in the process environment.
//
// UPLOADER_TIMEOUT accepts a Go duration ("15s") or a number of seconds.
// Unparsable timeouts are ignored.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	setString(&cfg.APIBaseURL, os.Getenv(EnvAPIURL))
	setString(&cfg.DatabasePath, os.Getenv(EnvDatabase))
	setString(&cfg.LogLevel, os.Getenv(EnvLogLevel))
	setString(&cfg.Location, os.Getenv(EnvLocation))
	setString(&cfg.S3Region, os.Getenv(EnvS3Region))
	setString(&cfg.S3Endpoint, os.Getenv(EnvS3Endpoint))
	setString(&cfg.S3AccessKey, os.Getenv(EnvS3AccessKey))
	setString(&cfg.S3SecretKey, os.Getenv(EnvS3SecretKey))

	if v := os.Getenv(EnvTimeout); v != "" {
		if d, ok := parseTimeout(v); ok {
			cfg.RequestTimeout = d
		}
	}
}

func parseTimeout(v string) (time.Duration, bool) {
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d, true
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second, true
	}
	return 0, false
}
