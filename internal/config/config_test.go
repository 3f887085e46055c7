package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DATABASE_URL", "postgres://kyc@pooler:6543/postgres")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("ADMIN_DASHBOARD_URL", "https://admin.example.com/")
	t.Setenv("KAFKA_BROKERS", "k1:9092, ,k2:9092")
	t.Setenv("UPLOAD_RETRY_DELAY_MS", "50")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, "postgres://kyc@pooler:6543/postgres", cfg.Database.URL)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, "kyc-documents", cfg.MinIO.Bucket)
	assert.Equal(t, "https://admin.example.com", cfg.DashboardURL)
	assert.Equal(t, "https://admin.example.com", cfg.PublicBaseURL, "BASE_URL falls back to the dashboard url")
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 50*time.Millisecond, cfg.UploadRetryDelay)
	assert.Equal(t, 3, cfg.UploadMaxRetries)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, "text-embedding-3-small", cfg.OpenAI.EmbeddingModel)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	t.Setenv(key, "value")

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	t.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	t.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	t.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	t.Setenv(key, "")
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	t.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	t.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	t.Setenv(key, "")
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestGetEnvList(t *testing.T) {
	key := "TEST_LIST_VAR"

	t.Setenv(key, "")
	assert.Nil(t, getEnvList(key))

	t.Setenv(key, "a,b , c")
	assert.Equal(t, []string{"a", "b", "c"}, getEnvList(key))
}
