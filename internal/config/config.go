// Package config loads jyotish settings from .jyotish.toml, JYOTISH_* env
// vars and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/matzehuels/jyotish/pkg/cache"
	"github.com/matzehuels/jyotish/pkg/ephemeris"
	"github.com/matzehuels/jyotish/pkg/ephemeris/remote"
	jerrors "github.com/matzehuels/jyotish/pkg/errors"
)

// FileName is the config file searched for in the working directory and
// the home directory.
const FileName = ".jyotish"

// EnvPrefix prefixes every environment override, e.g. JYOTISH_CACHE_BACKEND.
const EnvPrefix = "JYOTISH"

// EphemerisConfig points at the position service.
type EphemerisConfig struct {
	URL      string        `mapstructure:"url"`
	Token    string        `mapstructure:"token"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Ayanamsa string        `mapstructure:"ayanamsa"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend string        `mapstructure:"backend"`
	Dir     string        `mapstructure:"dir"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// MongoConfig configures the mongo backend.
type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

// ServerConfig configures jyotish serve.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Config holds all runtime configuration.
type Config struct {
	Ephemeris EphemerisConfig `mapstructure:"ephemeris"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
}

// New returns a viper instance with defaults, env bindings and the config
// file search path. An explicit file replaces the search path.
func New(file string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults registers the built-in value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("ephemeris.url", "")
	v.SetDefault("ephemeris.token", "")
	v.SetDefault("ephemeris.timeout", 10*time.Second)
	v.SetDefault("ephemeris.ayanamsa", ephemeris.Lahiri)
	v.SetDefault("cache.backend", cache.BackendFile)
	v.SetDefault("cache.dir", defaultCacheDir())
	v.SetDefault("cache.ttl", cache.TTLPositions)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "jyotish")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("log.level", "info")
}

func defaultCacheDir() string {
	dir, err := cache.DefaultDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "jyotish")
	}
	return dir
}

// Load reads the config file, if one exists, and unmarshals every key.
// A missing file is not an error; a malformed one is.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, jerrors.Wrap(jerrors.ErrCodeInvalidFormat, err, "read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, jerrors.Wrap(jerrors.ErrCodeInvalidFormat, err, "decode config")
	}
	return cfg, cfg.Validate()
}

// Validate checks enumerated values and URLs.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case cache.BackendFile, cache.BackendRedis, cache.BackendMongo, cache.BackendNone:
	default:
		return jerrors.New(jerrors.ErrCodeInvalidInput,
			"cache.backend must be one of file, redis, mongo, none (got %q)", c.Cache.Backend)
	}
	if c.Ephemeris.Ayanamsa != ephemeris.Lahiri {
		return jerrors.New(jerrors.ErrCodeInvalidInput,
			"ephemeris.ayanamsa must be %s (got %q)", ephemeris.Lahiri, c.Ephemeris.Ayanamsa)
	}
	if c.Ephemeris.URL != "" {
		if err := jerrors.ValidateURL(c.Ephemeris.URL); err != nil {
			return fmt.Errorf("ephemeris.url: %w", err)
		}
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses log.level.
func (c Config) LogLevel() (log.Level, error) {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, jerrors.Wrap(jerrors.ErrCodeInvalidInput, err, "log.level")
	}
	return lvl, nil
}

// CacheOptions returns the options for [cache.Open].
func (c Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend: c.Cache.Backend,
		Dir:     c.Cache.Dir,
		Redis: cache.RedisConfig{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
			Prefix:   "jyotish:",
		},
		Mongo: cache.MongoConfig{
			URI:      c.Mongo.URI,
			Database: c.Mongo.Database,
		},
	}
}

// RemoteConfig returns the options for [remote.New].
func (c Config) RemoteConfig(refresh bool) remote.Config {
	return remote.Config{
		BaseURL:  c.Ephemeris.URL,
		Token:    c.Ephemeris.Token,
		Ayanamsa: c.Ephemeris.Ayanamsa,
		Timeout:  c.Ephemeris.Timeout,
		Refresh:  refresh,
	}
}
