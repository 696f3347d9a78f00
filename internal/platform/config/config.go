package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	strs "smp/pkg/platform/strings"
)

// EnvPrefix is prepended to every environment override, e.g. SMP_BACKEND_ID.
const EnvPrefix = "SMP"

// Config is the full process configuration.
type Config struct {
	Server  Server  `mapstructure:"server"`
	Log     Log     `mapstructure:"log"`
	Backend Backend `mapstructure:"backend"`
	Locator Locator `mapstructure:"locator"`
	Audit   Audit   `mapstructure:"audit"`
	Tracing Tracing `mapstructure:"tracing"`
}

// Server captures HTTP server level configuration. AdminToken guards the
// operator routes; leaving it empty disables them.
type Server struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AdminToken      string        `mapstructure:"admin_token"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" (default) or "text"
}

// Backend selects and configures the storage engine. ID must name a
// registered backend; the sub-sections are read only by the matching engine.
type Backend struct {
	ID    string       `mapstructure:"id"`
	File  FileBackend  `mapstructure:"file"`
	Redis RedisBackend `mapstructure:"redis"`
	SQL   SQLBackend   `mapstructure:"sql"`
}

type FileBackend struct {
	Path        string        `mapstructure:"path"`
	OpenTimeout time.Duration `mapstructure:"open_timeout"`
}

type RedisBackend struct {
	URL       string `mapstructure:"url"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type SQLBackend struct {
	DSN          string `mapstructure:"dsn"`
	Migrate      bool   `mapstructure:"migrate"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

// Locator configures the client of the external locator service.
type Locator struct {
	Enabled bool          `mapstructure:"enabled"`
	URL     string        `mapstructure:"url"`
	SMPID   string        `mapstructure:"smp_id"`
	Timeout time.Duration `mapstructure:"timeout"`
	Breaker Breaker       `mapstructure:"breaker"`
}

type Breaker struct {
	FailureThreshold int           `mapstructure:"failure_threshold"`
	SuccessThreshold int           `mapstructure:"success_threshold"`
	Cooldown         time.Duration `mapstructure:"cooldown"`
}

// Audit selects where audit events go: "memory" keeps them in process,
// "sql" writes them to the backend.sql database, "kafka" produces them to
// Kafka.Topic. MemoryRetain caps the in-process trail; zero keeps everything.
type Audit struct {
	Sink         string `mapstructure:"sink"`
	AsyncBuffer  int    `mapstructure:"async_buffer"`
	MemoryRetain int    `mapstructure:"memory_retain"`
	Kafka        Kafka  `mapstructure:"kafka"`
}

// Audit sinks.
const (
	AuditSinkMemory = "memory"
	AuditSinkSQL    = "sql"
	AuditSinkKafka  = "kafka"
)

// Kafka configures the kafka audit sink. EnsureTopic creates Topic at
// startup when it does not exist.
type Kafka struct {
	Brokers     []string `mapstructure:"brokers"`
	Topic       string   `mapstructure:"topic"`
	EnsureTopic bool     `mapstructure:"ensure_topic"`
}

// Tracing installs the OpenTelemetry SDK with the stdout exporter when
// Enabled. SampleRate is the fraction of root spans kept.
type Tracing struct {
	Enabled    bool    `mapstructure:"enabled"`
	SampleRate float64 `mapstructure:"sample_rate"`
}

// Defaults returns the development configuration: in-memory backend, locator off.
func Defaults() Config {
	return Config{
		Server: Server{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Log:     Log{Level: "info", Format: "json"},
		Backend: Backend{
			ID:    "memory",
			File:  FileBackend{Path: "smp.db", OpenTimeout: time.Second},
			Redis: RedisBackend{URL: "redis://localhost:6379/0", KeyPrefix: "smp:"},
			SQL:   SQLBackend{Migrate: true, MaxOpenConns: 10},
		},
		Locator: Locator{
			Timeout: 10 * time.Second,
			Breaker: Breaker{FailureThreshold: 5, SuccessThreshold: 1, Cooldown: 30 * time.Second},
		},
		Audit:   Audit{Sink: AuditSinkMemory, AsyncBuffer: 1024, MemoryRetain: 10000, Kafka: Kafka{Topic: "smp.audit"}},
		Tracing: Tracing{SampleRate: 1},
	}
}

// SetDefaults registers Defaults with v so every key is known to viper and
// can be overridden through the environment.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.admin_token", d.Server.AdminToken)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("backend.id", d.Backend.ID)
	v.SetDefault("backend.file.path", d.Backend.File.Path)
	v.SetDefault("backend.file.open_timeout", d.Backend.File.OpenTimeout)
	v.SetDefault("backend.redis.url", d.Backend.Redis.URL)
	v.SetDefault("backend.redis.key_prefix", d.Backend.Redis.KeyPrefix)
	v.SetDefault("backend.sql.dsn", d.Backend.SQL.DSN)
	v.SetDefault("backend.sql.migrate", d.Backend.SQL.Migrate)
	v.SetDefault("backend.sql.max_open_conns", d.Backend.SQL.MaxOpenConns)
	v.SetDefault("locator.enabled", d.Locator.Enabled)
	v.SetDefault("locator.url", d.Locator.URL)
	v.SetDefault("locator.smp_id", d.Locator.SMPID)
	v.SetDefault("locator.timeout", d.Locator.Timeout)
	v.SetDefault("locator.breaker.failure_threshold", d.Locator.Breaker.FailureThreshold)
	v.SetDefault("locator.breaker.success_threshold", d.Locator.Breaker.SuccessThreshold)
	v.SetDefault("locator.breaker.cooldown", d.Locator.Breaker.Cooldown)
	v.SetDefault("audit.sink", d.Audit.Sink)
	v.SetDefault("audit.async_buffer", d.Audit.AsyncBuffer)
	v.SetDefault("audit.memory_retain", d.Audit.MemoryRetain)
	v.SetDefault("audit.kafka.brokers", d.Audit.Kafka.Brokers)
	v.SetDefault("audit.kafka.topic", d.Audit.Kafka.Topic)
	v.SetDefault("audit.kafka.ensure_topic", d.Audit.Kafka.EnsureTopic)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
}

// Load reads the optional config file, applies SMP_* environment overrides
// and validates the result.
func Load(v *viper.Viper, file string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Audit.Kafka.Brokers = strs.DedupeAndTrim(cfg.Audit.Kafka.Brokers)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field requirements. Whether Backend.ID names a known
// backend is decided by the backend registry at startup, not here.
func (c Config) Validate() error {
	var errs []error
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		errs = append(errs, errors.New("tracing.sample_rate must be between 0 and 1"))
	}
	if strings.TrimSpace(c.Backend.ID) == "" {
		errs = append(errs, errors.New("backend.id is required"))
	}
	if c.Locator.Enabled {
		if c.Locator.URL == "" {
			errs = append(errs, errors.New("locator.url is required when the locator is enabled"))
		}
		if c.Locator.SMPID == "" {
			errs = append(errs, errors.New("locator.smp_id is required when the locator is enabled"))
		}
	}
	switch c.Audit.Sink {
	case AuditSinkMemory:
		if c.Audit.MemoryRetain < 0 {
			errs = append(errs, errors.New("audit.memory_retain must not be negative"))
		}
	case AuditSinkSQL:
		if c.Backend.SQL.DSN == "" {
			errs = append(errs, errors.New("backend.sql.dsn is required for the sql audit sink"))
		}
	case AuditSinkKafka:
		if len(c.Audit.Kafka.Brokers) == 0 {
			errs = append(errs, errors.New("audit.kafka.brokers is required for the kafka audit sink"))
		}
		if c.Audit.Kafka.Topic == "" {
			errs = append(errs, errors.New("audit.kafka.topic is required for the kafka audit sink"))
		}
	default:
		errs = append(errs, fmt.Errorf("audit.sink %q is not one of memory, sql, kafka", c.Audit.Sink))
	}
	return errors.Join(errs...)
}
