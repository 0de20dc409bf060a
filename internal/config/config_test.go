package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
env: test
commission_db:
  dsn: "host=localhost user=app dbname=commission"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, "8080", cfg.HTTPServer.Port)
	assert.Equal(t, "0.033", cfg.CommissionRule.Rate)
	assert.Equal(t, 7, cfg.CommissionRule.GracePeriodDays)
	assert.Equal(t, "UTC", cfg.CommissionRule.Timezone)
	assert.False(t, cfg.CommissionRule.Retry.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.CommissionRule.Retry.Interval)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaService.Brokers())
	assert.False(t, cfg.MailService.Enabled())
}

func TestLoad_ReadsFileValues(t *testing.T) {
	path := writeConfig(t, `
commission_db:
  dsn: "host=db"
kafka-service:
  host: kafka
  port: "29092"
mail-service:
  smtp_host: smtp.example.com
  admin_email: ops@example.com
commission:
  rate: "0.05"
  timezone: Asia/Seoul
  retry:
    enabled: true
    batch_size: 10
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"kafka:29092"}, cfg.KafkaService.Brokers())
	assert.True(t, cfg.MailService.Enabled())
	assert.Equal(t, "0.05", cfg.CommissionRule.Rate)
	assert.True(t, cfg.CommissionRule.Retry.Enabled)
	assert.Equal(t, 10, cfg.CommissionRule.Retry.BatchSize)

	loc, err := cfg.CommissionRule.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Seoul", loc.String())
}

func TestLoad_RejectsUnknownTimezone(t *testing.T) {
	path := writeConfig(t, `
commission_db:
  dsn: "host=db"
commission:
  timezone: Mars/Olympus
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
