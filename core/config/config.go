package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"legalease-api/core/logger"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Worker   WorkerConfig   `mapstructure:"worker"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // minutes
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	CacheDB  int    `mapstructure:"cache_db"`
	QueueDB  int    `mapstructure:"queue_db"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpiryHours int    `mapstructure:"expiry_hours"`
}

type WorkerConfig struct {
	// SweepInterval is the cron-style interval (in minutes) between
	// background expiration sweeps
	SweepIntervalMinutes int `mapstructure:"sweep_interval_minutes"`
	Concurrency          int `mapstructure:"concurrency"`
}

var (
	cfg  *Config
	once sync.Once
)

// Load reads configuration from .env / environment variables via viper.
// Called once at startup; subsequent calls are no-ops.
func Load() (*Config, error) {
	var loadErr error
	once.Do(func() {
		// .env is optional; env vars win either way
		if err := godotenv.Load(); err != nil {
			logger.Info("config: no .env file found, relying on environment")
		}

		v := viper.New()
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		setDefaults(v)

		var c Config
		if err := v.Unmarshal(&c); err != nil {
			loadErr = fmt.Errorf("config: unmarshal: %w", err)
			return
		}
		cfg = &c
	})
	if loadErr != nil {
		return nil, loadErr
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 7070)
	v.SetDefault("server.env", "development")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "legalease")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.cache_db", 0)
	v.SetDefault("redis.queue_db", 1)

	v.SetDefault("jwt.secret", "change-me")
	v.SetDefault("jwt.expiry_hours", 72)

	v.SetDefault("worker.sweep_interval_minutes", 5)
	v.SetDefault("worker.concurrency", 4)
}

// Get returns the loaded config, loading it on first use.
func Get() *Config {
	if cfg == nil {
		c, err := Load()
		if err != nil {
			logger.Error("config: load failed", err)
			return &Config{}
		}
		return c
	}
	return cfg
}

// GetSafe returns the config and whether it has been initialized.
func GetSafe() (*Config, bool) {
	if cfg == nil {
		return nil, false
	}
	return cfg, true
}
