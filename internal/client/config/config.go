package config

import "time"

// Config holds runtime settings for the uploader CLI.
//
// Fields:
//   - APIBaseURL: root of the remote file API, e.g. http://localhost:5000/api.
//   - DatabasePath: SQLite file holding local preferences.
//   - RequestTimeout: per-request HTTP timeout.
//   - LogLevel: debug, info, warn or error.
//   - Location: IANA zone name used to format upload dates ("Local" for the
//     system zone).
//   - S3*: access to s3:// file URLs for downloads.
type Config struct {
	APIBaseURL     string
	DatabasePath   string
	RequestTimeout time.Duration
	LogLevel       string
	Location       string

	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000/api"
	c.DatabasePath = "uploader.db"
	c.RequestTimeout = 30 * time.Second
	c.LogLevel = "info"
	c.Location = "Local"
	c.S3Region = "us-east-1"
}

// TimeLocation resolves Location, falling back to time.Local when the name
// is empty or unknown.
func (c *Config) TimeLocation() *time.Location {
	if c.Location == "" || c.Location == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return time.Local
	}
	return loc
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if present), the environment and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
