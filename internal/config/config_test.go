package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, "Departure Station", cfg.Data.DepartureColumn)
	assert.Equal(t, "Arrival Destination", cfg.Data.ArrivalColumn)
	assert.Equal(t, "Transaction ID", cfg.Data.IDColumn)
}

func TestLoad(t *testing.T) {
	t.Run("defaults only", func(t *testing.T) {
		t.Setenv(PathEnvVar, "")
		t.Chdir(t.TempDir())

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("yaml file overrides defaults", func(t *testing.T) {
		path := writeFile(t, "railmap.yaml", `
server:
  port: 9090
  read_timeout: 5s
data:
  transactions: /srv/railway.csv
logging:
  format: console
`)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, "/srv/railway.csv", cfg.Data.Transactions)
		assert.Equal(t, "console", cfg.Logging.Format)
		assert.Equal(t, "data/station_coords.json", cfg.Data.Coordinates)
	})

	t.Run("toml file", func(t *testing.T) {
		path := writeFile(t, "railmap.toml", `
[server]
port = 7070

[cache]
size = 4
`)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 7070, cfg.Server.Port)
		assert.Equal(t, 4, cfg.Cache.Size)
	})

	t.Run("environment wins over file", func(t *testing.T) {
		path := writeFile(t, "railmap.yaml", "server:\n  port: 9090\n")
		t.Setenv("RAILMAP_SERVER_PORT", "6060")
		t.Setenv("RAILMAP_SERVER_CORS_ORIGINS", "http://a.example, http://b.example")
		t.Setenv("RAILMAP_DATA_ID_COLUMN", "Ticket")
		t.Setenv("RAILMAP_LOGGING_LEVEL", "debug")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 6060, cfg.Server.Port)
		assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Server.CORSOrigins)
		assert.Equal(t, "Ticket", cfg.Data.IDColumn)
		assert.Equal(t, "debug", cfg.Logging.Level)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

		assert.Error(t, err)
	})

	t.Run("invalid values fail validation", func(t *testing.T) {
		path := writeFile(t, "railmap.yaml", "server:\n  port: 70000\nlogging:\n  format: xml\n")

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Port")
		assert.Contains(t, err.Error(), "Format")
	})
}

func TestValidateRateLimitWindow(t *testing.T) {
	cfg := Default()
	cfg.Server.RateLimitWindow = 0

	assert.Error(t, cfg.Validate())

	cfg.Server.RateLimitDisabled = true
	assert.NoError(t, cfg.Validate())
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		env, value string
		key        string
		want       interface{}
	}{
		{"RAILMAP_SERVER_PORT", "1", "server.port", "1"},
		{"RAILMAP_SERVER_READ_TIMEOUT", "2s", "server.read_timeout", "2s"},
		{"RAILMAP_DATA_DEPARTURE_COLUMN", "From", "data.departure_column", "From"},
		{"RAILMAP_SERVER_CORS_ORIGINS", "a,,b", "server.cors_origins", []string{"a", "b"}},
		{"RAILMAP_CONFIG", "x.yaml", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			key, value := envTransform(tt.env, tt.value)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.want, value)
		})
	}
}

func TestTOMLParser(t *testing.T) {
	p := TOML()

	out, err := p.Unmarshal([]byte("[server]\nhost = \"127.0.0.1\"\n"))
	require.NoError(t, err)

	server, ok := out["server"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "127.0.0.1", server["host"])

	_, err = p.Unmarshal([]byte("[server"))
	assert.Error(t, err)
}
