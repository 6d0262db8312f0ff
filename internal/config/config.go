package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/DanKadrios/SMTLite/internal/constants"
)

// Config mirrors config.yaml. Every key may be overridden from the
// environment as SMTLITE_<SECTION>_<KEY>, e.g. SMTLITE_SERVER_ADDRESS.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Battle   BattleConfig   `mapstructure:"battle"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Mode    string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	// DSN is a SQLite path or a postgres:// URL.
	DSN string `mapstructure:"dsn"`
}

// RedisConfig enables the live leaderboard when Address is set.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type BattleConfig struct {
	TurnDelay    time.Duration `mapstructure:"turn_delay"`
	SessionTTL   time.Duration `mapstructure:"session_ttl"`
	ReapInterval time.Duration `mapstructure:"reap_interval"`
}

// CatalogConfig points at a YAML catalog; empty uses the embedded one.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.dsn", "./data/smtlite.db")
	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("battle.turn_delay", 500*time.Millisecond)
	v.SetDefault("battle.session_ttl", 30*time.Minute)
	v.SetDefault("battle.reap_interval", time.Minute)
	v.SetDefault("catalog.path", "")
	v.SetDefault("log.level", "info")
}

// Load reads configuration from path, or from config.yaml in ./config or
// the working directory when path is empty. A missing file is not an
// error; defaults and environment variables still apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(constants.EnvConfigPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Server.Address) == "" {
		return fmt.Errorf("config: server.address is empty")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode '%s' must be debug, release or test", c.Server.Mode)
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("config: database.dsn is empty")
	}
	if c.Battle.TurnDelay < 0 {
		return fmt.Errorf("config: battle.turn_delay must not be negative")
	}
	if c.Battle.SessionTTL <= 0 {
		return fmt.Errorf("config: battle.session_ttl must be positive")
	}
	if c.Battle.ReapInterval <= 0 {
		return fmt.Errorf("config: battle.reap_interval must be positive")
	}
	return nil
}
