package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 8080

[database]
host = "localhost"
port = 5432
user = "booking"
password = "from-file"
dbname = "booking"

[business]
utc_offset = "+03:00"

[auth]
jwt_secret = "file-secret"
admin_token = "file-admin"
token_ttl = 24
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsAndValues(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, TransportAMQP, cfg.Outbox.Transport)
	assert.Equal(t, 10, cfg.Outbox.MaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.Outbox.RetryBackoffDuration())
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTLDuration())
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv(EnvDBPassword, "env-password")
	t.Setenv(EnvJWTSecret, "env-secret")
	t.Setenv(EnvAdminToken, "env-admin")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "env-password", cfg.Database.Password)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "env-admin", cfg.Auth.AdminToken)
}

func TestBusinessConfig_Location(t *testing.T) {
	tests := []struct {
		name    string
		offset  string
		seconds int
		wantErr bool
	}{
		{name: "positive", offset: "+03:00", seconds: 3 * 3600},
		{name: "negative", offset: "-05:30", seconds: -(5*3600 + 1800)},
		{name: "utc", offset: "Z", seconds: 0},
		{name: "garbage", offset: "Moscow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := BusinessConfig{UTCOffset: tt.offset}.Location()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			_, seconds := time.Date(2025, 1, 1, 0, 0, 0, 0, loc).Zone()
			assert.Equal(t, tt.seconds, seconds)
		})
	}
}

func TestValidate_OutboxTransport(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	cfg.Outbox.Enabled = true
	cfg.Outbox.Transport = TransportHTTP
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg.PushGateway.URL = "http://push.local"
	assert.NoError(t, cfg.Validate())

	cfg.Outbox.Transport = "smoke-signals"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg.Outbox.Transport = TransportHTTP
	cfg.Outbox.MaxAttempts = -1
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestValidate_RequiresSecrets(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	cfg.Auth.AdminToken = ""
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}
