package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Log      LogConfig      `mapstructure:"log"`
	DB       DBConfig       `mapstructure:"db"`
	Ingest   IngestConfig   `mapstructure:"ingest"`
	Cron     CronConfig     `mapstructure:"cron"`
	Kalshi   KalshiConfig   `mapstructure:"kalshi"`
	Gamma    GammaConfig    `mapstructure:"gamma"`
	FeedSync FeedSyncConfig `mapstructure:"feed_sync"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

// DBConfig selects the gorm dialector. Driver is "postgres" or "sqlite".
type DBConfig struct {
	Driver          string        `mapstructure:"driver"`
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

type IngestConfig struct {
	BatchSize int `mapstructure:"batch_size"`
}

type CronConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	FeedSync string `mapstructure:"feed_sync"`
}

type KalshiConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type GammaConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type FeedSyncConfig struct {
	Scope        string `mapstructure:"scope"`
	PageLimit    int    `mapstructure:"page_limit"`
	MaxPages     int    `mapstructure:"max_pages"`
	Resume       bool   `mapstructure:"resume"`
	KalshiStatus string `mapstructure:"kalshi_status"`
	Closed       string `mapstructure:"closed"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("ingest.batch_size", 100)
	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.feed_sync", "@every 10m")
	v.SetDefault("kalshi.base_url", "https://api.elections.kalshi.com/trade-api/v2")
	v.SetDefault("kalshi.timeout", "15s")
	v.SetDefault("gamma.base_url", "https://gamma-api.polymarket.com")
	v.SetDefault("gamma.timeout", "15s")
	v.SetDefault("feed_sync.scope", "all")
	v.SetDefault("feed_sync.page_limit", 200)
	v.SetDefault("feed_sync.max_pages", 5)
	v.SetDefault("feed_sync.resume", true)
	v.SetDefault("feed_sync.kalshi_status", "open")
	v.SetDefault("feed_sync.closed", "open")

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
