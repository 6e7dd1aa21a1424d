package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"DATABASE_URL", "PG_DSN", "REDIS_ADDRESS", "SERVER_PORT", "BREAKER_TIMEOUT", "BREAKER_FAILURE_THRESHOLD"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "mollysou_db", cfg.PostgreSQL.Database)
	assert.Empty(t, cfg.Redis.Address)
	assert.Equal(t, 30*time.Second, cfg.Breaker.Timeout)
	assert.Equal(t, uint32(5), cfg.Breaker.FailureThreshold)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")
	t.Setenv("REDIS_TTL", "90s")
	t.Setenv("LOG_NO_COLOR", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, 90*time.Second, cfg.Redis.TTL)
	assert.True(t, cfg.Logging.NoColor)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")
	t.Setenv("REDIS_TTL", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
}

func TestGetPostgreSQLDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  PostgreSQLConfig
		want string
	}{
		{
			name: "explicit DSN wins",
			cfg:  PostgreSQLConfig{DSN: "postgres://u:p@db/mollysou", Host: "ignored"},
			want: "postgres://u:p@db/mollysou",
		},
		{
			name: "assembled from fields",
			cfg: PostgreSQLConfig{
				Host: "db", Port: 5433, User: "molly", Password: "secret",
				Database: "mollysou_db", SSLMode: "disable",
			},
			want: "host=db port=5433 user=molly password=secret dbname=mollysou_db sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{PostgreSQL: tt.cfg}
			assert.Equal(t, tt.want, c.GetPostgreSQLDSN())
		})
	}
}
