package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceName string
	HTTP        HTTPConfig
	Postgres    PostgresConfig
	Redis       RedisConfig
	Stream      StreamConfig
	Dispatch    DispatchConfig
	Log         LogConfig
}

type HTTPConfig struct {
	Port            int
	ShutdownTimeout time.Duration
	// InternalToken is required in X-Internal-Token; empty disables the check.
	InternalToken string
	CORSOrigins   []string
}

type PostgresConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	URL string
}

type StreamConfig struct {
	Name     string
	Group    string
	Consumer string
	MaxLen   int64
}

type DispatchConfig struct {
	// Enabled runs the stream consumer and the reclaim job in this process.
	Enabled         bool
	BatchSize       int64
	Block           time.Duration
	Backoff         time.Duration
	ReclaimInterval time.Duration
	ReclaimMinIdle  time.Duration
	GaugeInterval   time.Duration
}

type LogConfig struct {
	Level string
}

// LoadConfig reads the process environment, after loading envFile when it
// exists, and applies defaults for everything but the connection URLs.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_NAME", "dispatcher")
	v.SetDefault("PORT", 8003)
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("INTERNAL_TOKEN", "")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("STREAM_NAME", "orders:new")
	v.SetDefault("STREAM_GROUP", "dispatcher-group")
	v.SetDefault("STREAM_CONSUMER", "dispatcher-1")
	v.SetDefault("STREAM_MAXLEN", 5000)
	v.SetDefault("DISPATCH_ENABLED", true)
	v.SetDefault("DISPATCH_BATCH_SIZE", 20)
	v.SetDefault("DISPATCH_BLOCK", "2s")
	v.SetDefault("DISPATCH_BACKOFF", "1s")
	v.SetDefault("RECLAIM_INTERVAL", "5s")
	v.SetDefault("RECLAIM_MIN_IDLE", "30s")
	v.SetDefault("GAUGE_INTERVAL", "15s")
	v.SetDefault("LOG_LEVEL", "info")

	cfg := Config{
		ServiceName: v.GetString("APP_NAME"),
		HTTP: HTTPConfig{
			Port:            v.GetInt("PORT"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
			InternalToken:   v.GetString("INTERNAL_TOKEN"),
			CORSOrigins:     splitList(v.GetString("CORS_ORIGINS")),
		},
		Postgres: PostgresConfig{
			URL:             v.GetString("DATABASE_URL"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Redis: RedisConfig{
			URL: v.GetString("REDIS_URL"),
		},
		Stream: StreamConfig{
			Name:     v.GetString("STREAM_NAME"),
			Group:    v.GetString("STREAM_GROUP"),
			Consumer: v.GetString("STREAM_CONSUMER"),
			MaxLen:   v.GetInt64("STREAM_MAXLEN"),
		},
		Dispatch: DispatchConfig{
			Enabled:         v.GetBool("DISPATCH_ENABLED"),
			BatchSize:       v.GetInt64("DISPATCH_BATCH_SIZE"),
			Block:           v.GetDuration("DISPATCH_BLOCK"),
			Backoff:         v.GetDuration("DISPATCH_BACKOFF"),
			ReclaimInterval: v.GetDuration("RECLAIM_INTERVAL"),
			ReclaimMinIdle:  v.GetDuration("RECLAIM_MIN_IDLE"),
			GaugeInterval:   v.GetDuration("GAUGE_INTERVAL"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every missing or out of range setting at once.
func (c Config) Validate() error {
	var problems []error

	if c.Postgres.URL == "" {
		problems = append(problems, errors.New("DATABASE_URL is required"))
	}
	if c.Redis.URL == "" {
		problems = append(problems, errors.New("REDIS_URL is required"))
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		problems = append(problems, fmt.Errorf("PORT %d is out of range", c.HTTP.Port))
	}
	if c.Postgres.MaxOpenConns <= 0 {
		problems = append(problems, errors.New("DB_MAX_OPEN_CONNS must be positive"))
	}
	if c.Stream.Name == "" || c.Stream.Group == "" || c.Stream.Consumer == "" {
		problems = append(problems, errors.New("STREAM_NAME, STREAM_GROUP and STREAM_CONSUMER must be set"))
	}
	if c.Dispatch.BatchSize <= 0 {
		problems = append(problems, errors.New("DISPATCH_BATCH_SIZE must be positive"))
	}

	positive := map[string]time.Duration{
		"DISPATCH_BLOCK":   c.Dispatch.Block,
		"DISPATCH_BACKOFF": c.Dispatch.Backoff,
		"RECLAIM_INTERVAL": c.Dispatch.ReclaimInterval,
		"RECLAIM_MIN_IDLE": c.Dispatch.ReclaimMinIdle,
		"GAUGE_INTERVAL":   c.Dispatch.GaugeInterval,
		"SHUTDOWN_TIMEOUT": c.HTTP.ShutdownTimeout,
	}
	for name, d := range positive {
		if d <= 0 {
			problems = append(problems, fmt.Errorf("%s must be a positive duration", name))
		}
	}

	return errors.Join(problems...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
