package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the server reads,
// e.g. SCRABBLE_PORT
const EnvPrefix = "SCRABBLE"

// Keys understood in the environment and in a config file
const (
	KeyHost            = "host"
	KeyPort            = "port"
	KeyLogLevel        = "log_level"
	KeyStorageType     = "storage_type"
	KeyRedisURL        = "redis_url"
	KeyRedisPrefix     = "redis_prefix"
	KeyGameTTL         = "game_ttl"
	KeyDictionaryPath  = "dictionary_path"
	KeyValidateWords   = "validate_words"
	KeyShutdownTimeout = "shutdown_timeout"
	KeyConfigFile      = "config"
)

// ErrInvalidConfig is returned for values that parse but make no sense
var ErrInvalidConfig = errors.New("invalid config")

// Config is the server configuration
type Config struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	LogLevel        string        `mapstructure:"log_level"`
	StorageType     string        `mapstructure:"storage_type"`
	RedisURL        string        `mapstructure:"redis_url"`
	RedisPrefix     string        `mapstructure:"redis_prefix"`
	GameTTL         time.Duration `mapstructure:"game_ttl"`
	DictionaryPath  string        `mapstructure:"dictionary_path"`
	ValidateWords   bool          `mapstructure:"validate_words"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyHost, "")
	v.SetDefault(KeyPort, 8080)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyStorageType, "memory")
	v.SetDefault(KeyRedisURL, "redis://localhost:6379")
	v.SetDefault(KeyRedisPrefix, "scrabble")
	v.SetDefault(KeyGameTTL, 7*24*time.Hour)
	v.SetDefault(KeyDictionaryPath, "data/words.txt")
	v.SetDefault(KeyValidateWords, true)
	v.SetDefault(KeyShutdownTimeout, 10*time.Second)
}

// Load reads the configuration from SCRABBLE_* environment variables. When
// SCRABBLE_CONFIG names a file it is read first and the environment
// overrides it.
func Load() (Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path := v.GetString(KeyConfigFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values viper cannot check by type alone
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d", ErrInvalidConfig, c.Port)
	}
	switch c.StorageType {
	case "memory":
	case "redis":
		if c.RedisURL == "" {
			return fmt.Errorf("%w: redis storage needs %s_REDIS_URL", ErrInvalidConfig, EnvPrefix)
		}
	default:
		return fmt.Errorf("%w: storage type %q", ErrInvalidConfig, c.StorageType)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.GameTTL < 0 {
		return fmt.Errorf("%w: negative game ttl", ErrInvalidConfig)
	}
	return nil
}

// Level parses LogLevel
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	return level, nil
}
