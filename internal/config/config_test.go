package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `
api:
  environment: "test"
  base_url: "localhost:8080"
  port: "8080"
  jwt_signing_key: "test-key"
  allowed_cors_domains:
    - "http://localhost:3000"
gin:
  mode: "test"
postgres:
  host: "localhost"
  port: "5432"
  user: "postgres"
  password: "postgres"
  db_name: "sportconnect"
  ssl_mode: "disable"
redis:
  enabled: false
  addr: "localhost:6379"
  password: ""
  db: 0
  leaderboard_ttl: "30s"
coach:
  api_url: "https://albert.api.etalab.gouv.fr/v1"
  api_key: ""
  model: "albert-large"
  timeout: "15s"
`

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	conf, err := Load(writeConfigFile(t, validConfig))

	require.NoError(t, err)
	assert.Equal(t, "8080", conf.API.Port)
	assert.Equal(t, "test-key", conf.API.JWTSigningKey)
	assert.Equal(t, []string{"http://localhost:3000"}, conf.API.AllowedCORSDomains)
	assert.Equal(t, "sportconnect", conf.Postgres.DBName)
	assert.False(t, conf.Redis.Enabled)
	assert.Equal(t, 30*time.Second, conf.Redis.LeaderboardTTL)
	assert.Equal(t, 15*time.Second, conf.Coach.Timeout)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))

	assert.Error(t, err)
}

func TestLoad_MissingSigningKey(t *testing.T) {
	content := `
api:
  port: "8080"
gin:
  mode: "test"
postgres:
  host: "localhost"
redis:
  enabled: false
coach:
  api_url: "http://localhost"
`
	_, err := Load(writeConfigFile(t, content))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_signing_key")
}
