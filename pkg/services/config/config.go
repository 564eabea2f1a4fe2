package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "REPORTS"

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Store   StoreConfig   `mapstructure:"store"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Export  ExportConfig  `mapstructure:"export"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

type AuthConfig struct {
	AdminToken string `mapstructure:"admin_token"`
}

// StoreConfig selects the data source. DSN wins over Profile, Profile over Fixture.
type StoreConfig struct {
	DSN             string        `mapstructure:"dsn"`
	Profile         string        `mapstructure:"profile"`
	ProfilesPath    string        `mapstructure:"profiles_path"`
	Fixture         string        `mapstructure:"fixture"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type CacheConfig struct {
	TTL     time.Duration `mapstructure:"ttl"`
	Cleanup time.Duration `mapstructure:"cleanup"`
}

type ExportConfig struct {
	CompressPDF bool `mapstructure:"compress_pdf"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("auth.admin_token", "")
	v.SetDefault("store.dsn", "")
	v.SetDefault("store.profile", "")
	v.SetDefault("store.profiles_path", "")
	v.SetDefault("store.fixture", "")
	v.SetDefault("store.max_open_conns", 8)
	v.SetDefault("store.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("cache.ttl", 2*time.Minute)
	v.SetDefault("cache.cleanup", 5*time.Minute)
	v.SetDefault("export.compress_pdf", true)
	v.SetDefault("logging.level", "info")
}

// LoadConfig reads the optional config file at path, then overlays REPORTS_*
// environment variables (REPORTS_SERVER_PORT, REPORTS_AUTH_ADMIN_TOKEN, ...).
// A .env file in the working directory is loaded first when present.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
