package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:5000/api", c.APIBaseURL)
	assert.Equal(t, "uploader.db", c.DatabasePath)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "Local", c.Location)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}
	t.Setenv(EnvAPIURL, "")

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://localhost:5000/api", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTemp(t, "cfg.yaml", "api_base_url: http://file/api\ndatabase_path: file.db\nlog_level: warn\n")
	t.Setenv(EnvDatabase, "env.db")
	t.Setenv(EnvLogLevel, "error")

	os.Args = []string{"testbin", "-c", path, "-l", "debug"}
	cfg := LoadConfig()

	assert.Equal(t, "http://file/api", cfg.APIBaseURL, "file beats defaults")
	assert.Equal(t, "env.db", cfg.DatabasePath, "env beats file")
	assert.Equal(t, "debug", cfg.LogLevel, "flags beat env")
}

func TestLoadConfig_SubSecondTimeoutSurvivesFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		env  string
		args []string
		want time.Duration
	}{
		{env: "1500ms", args: []string{"testbin"}, want: 1500 * time.Millisecond},
		{env: "500ms", args: []string{"testbin", "-l", "debug"}, want: 500 * time.Millisecond},
		{env: "500ms", args: []string{"testbin", "-t", "7"}, want: 7 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv(EnvTimeout, tt.env)
			os.Args = tt.args

			cfg := LoadConfig()
			assert.Equal(t, tt.want, cfg.RequestTimeout)
		})
	}
}

func TestTimeLocation(t *testing.T) {
	c := Config{Location: "UTC"}
	assert.Equal(t, time.UTC, c.TimeLocation())

	c.Location = "Local"
	assert.Equal(t, time.Local, c.TimeLocation())

	c.Location = "Nowhere/Special"
	assert.Equal(t, time.Local, c.TimeLocation())
}
