package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Backend.ID)
	assert.False(t, cfg.Locator.Enabled)
	assert.Equal(t, 10*time.Second, cfg.Locator.Timeout)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SMP_BACKEND_ID", "file")
	t.Setenv("SMP_BACKEND_FILE_PATH", "/tmp/registry.db")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.Backend.ID)
	assert.Equal(t, "/tmp/registry.db", cfg.Backend.File.Path)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smp.yaml")
	content := []byte("backend:\n  id: sql\n  sql:\n    dsn: postgres://localhost/smp\nlocator:\n  enabled: true\n  url: https://sml.example.com\n  smp_id: SMP-1\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "sql", cfg.Backend.ID)
	assert.Equal(t, "postgres://localhost/smp", cfg.Backend.SQL.DSN)
	assert.True(t, cfg.Locator.Enabled)
	assert.Equal(t, "SMP-1", cfg.Locator.SMPID)
}

func TestValidate_LocatorRequiresAddress(t *testing.T) {
	cfg := Defaults()
	cfg.Locator.Enabled = true
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locator.url")
	assert.Contains(t, err.Error(), "locator.smp_id")
}

func TestValidate_AuditSink(t *testing.T) {
	t.Run("unknown sink", func(t *testing.T) {
		cfg := Defaults()
		cfg.Audit.Sink = "syslog"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "audit.sink")
	})

	t.Run("kafka needs brokers", func(t *testing.T) {
		cfg := Defaults()
		cfg.Audit.Sink = AuditSinkKafka
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "audit.kafka.brokers")
	})

	t.Run("memory retain is not negative", func(t *testing.T) {
		cfg := Defaults()
		cfg.Audit.MemoryRetain = -1
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "audit.memory_retain")
	})

	t.Run("sql needs a dsn", func(t *testing.T) {
		cfg := Defaults()
		cfg.Audit.Sink = AuditSinkSQL
		require.Error(t, cfg.Validate())
		cfg.Backend.SQL.DSN = "postgres://localhost/smp"
		require.NoError(t, cfg.Validate())
	})
}

func TestLoad_KafkaBrokersNormalised(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smp.yaml")
	content := []byte("audit:\n  sink: kafka\n  kafka:\n    brokers: [\" kafka-1:9092\", \"kafka-1:9092\", \"kafka-2:9092\"]\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Audit.Kafka.Brokers)
	assert.Equal(t, "smp.audit", cfg.Audit.Kafka.Topic)
}
