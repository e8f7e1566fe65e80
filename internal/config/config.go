package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	AnimeAPI AnimeAPIConfig `mapstructure:"anime_api"`
	Log      LogConfig      `mapstructure:"log"`
	Sync     SyncConfig     `mapstructure:"sync"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// AnimeAPIConfig holds the catalog API endpoints and adapter options
type AnimeAPIConfig struct {
	// URL is the ordered mirror list. A single comma-separated string is accepted too.
	URL      []string `mapstructure:"url"`
	EdgeHost string   `mapstructure:"edge_host"`
	Timeout  int      `mapstructure:"timeout"`
	Proxies  []string `mapstructure:"proxies"`

	Language  string `mapstructure:"language"`
	Quality   string `mapstructure:"quality"`
	Translate string `mapstructure:"translate"`
}

// LogConfig holds logrus settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SyncConfig controls the catalog snapshot command
type SyncConfig struct {
	Workers  int `mapstructure:"workers"`
	MaxPages int `mapstructure:"max_pages"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Name)
}

// RedisConfig holds Redis connection details
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads config.yaml from the given directories (default ".") with
// environment variable overrides. A missing file is not an error.
func Load(paths ...string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, path := range paths {
		viper.AddConfigPath(path)
	}

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	config.AnimeAPI.URL = normalizeURLs(config.AnimeAPI.URL)
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects configs the adapter cannot run with.
func (c *Config) Validate() error {
	if len(c.AnimeAPI.URL) == 0 {
		return errors.New("anime_api.url must list at least one endpoint")
	}
	if c.AnimeAPI.Timeout <= 0 {
		return fmt.Errorf("anime_api.timeout must be positive, got %d", c.AnimeAPI.Timeout)
	}
	if c.Sync.Workers <= 0 {
		return fmt.Errorf("sync.workers must be positive, got %d", c.Sync.Workers)
	}
	return nil
}

// normalizeURLs splits comma-joined entries and drops blanks, keeping order.
func normalizeURLs(urls []string) []string {
	out := lo.FlatMap(urls, func(u string, _ int) []string {
		return strings.Split(u, ",")
	})
	out = lo.Map(out, func(u string, _ int) string { return strings.TrimSpace(u) })
	return lo.Compact(out)
}

func setDefaults() {
	viper.SetDefault("anime_api.url", DefaultAPIURLs)
	viper.SetDefault("anime_api.edge_host", "cloudflare.com")
	viper.SetDefault("anime_api.timeout", 20)
	viper.SetDefault("anime_api.proxies", []string{})
	viper.SetDefault("anime_api.language", "en")
	viper.SetDefault("anime_api.quality", "720p")
	viper.SetDefault("anime_api.translate", "en")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	viper.SetDefault("sync.workers", 4)
	viper.SetDefault("sync.max_pages", 0)

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "animeapi")
	viper.SetDefault("database.user", "animeapi_user")
	viper.SetDefault("database.password", "animeapi_pass")

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.database", 0)
}

// DefaultAPIURLs are the public mirrors tried when none are configured.
var DefaultAPIURLs = []string{
	"https://anime.api-fetch.website/",
	"cloudflare+https://anime.api-fetch.website/",
}
