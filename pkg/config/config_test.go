package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandEnv(t *testing.T) {
	tests := []struct {
		name  string
		input string
		env   map[string]string
		want  string
	}{
		{
			name:  "simple substitution",
			input: "api_key: {{.API_KEY}}",
			env:   map[string]string{"API_KEY": "secret123"},
			want:  "api_key: secret123",
		},
		{
			name:  "literal dollar syntax is not expanded",
			input: "password: p@ss$word",
			env:   map[string]string{},
			want:  "password: p@ss$word",
		},
		{
			name:  "multiple substitutions in one line",
			input: "addr: {{.DB_HOST}}:{{.DB_PORT}}",
			env:   map[string]string{"DB_HOST": "localhost", "DB_PORT": "5432"},
			want:  "addr: localhost:5432",
		},
		{
			name:  "missing variable expands to empty",
			input: "endpoint: {{.MISSING_VAR}}",
			env:   map[string]string{},
			want:  "endpoint: ",
		},
		{
			name:  "malformed template passes through unchanged",
			input: "api_key: {{.API_KEY",
			env:   map[string]string{"API_KEY": "should-not-appear"},
			want:  "api_key: {{.API_KEY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			assert.Equal(t, tt.want, string(ExpandEnv([]byte(tt.input))))
		})
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "porchlight.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("expands env and applies defaults", func(t *testing.T) {
		t.Setenv("DB_PASSWORD", "s3cret")
		t.Setenv("OPENAI_API_KEY", "sk-test")

		path := writeConfigFile(t, `
database:
  user: porchlight
  password: {{.DB_PASSWORD}}
  name: porchlight
llm:
  api_key: {{.OPENAI_API_KEY}}
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "s3cret", cfg.Database.Password)
		assert.Equal(t, "sk-test", cfg.LLM.APIKey)
		assert.Equal(t, ":8080", cfg.HTTP.Addr)
		assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, 15*time.Minute, cfg.Reviews.CacheTTL)
		assert.Equal(t, 587, cfg.CRM.Port)
	})

	t.Run("explicit values override defaults", func(t *testing.T) {
		path := writeConfigFile(t, `
http:
  addr: ":9090"
  shutdown_timeout: 5s
database:
  user: porchlight
  name: porchlight
  max_open_conns: 50
llm:
  api_key: sk-test
reviews:
  cache_ttl: 1h
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, ":9090", cfg.HTTP.Addr)
		assert.Equal(t, 5*time.Second, cfg.HTTP.ShutdownTimeout)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, time.Hour, cfg.Reviews.CacheTTL)
	})

	t.Run("missing llm api key fails validation", func(t *testing.T) {
		path := writeConfigFile(t, `
database:
  user: porchlight
  name: porchlight
`)

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "llm.api_key is required")
	})

	t.Run("crm host without intake address fails validation", func(t *testing.T) {
		path := writeConfigFile(t, `
database:
  user: porchlight
  name: porchlight
llm:
  api_key: sk-test
crm:
  host: smtp.example.com
`)

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "crm.intake_address")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeConfigFile(t, "database:\n  user: porchlight\n bad indent")
		_, err := Load(path)
		require.Error(t, err)
	})
}
