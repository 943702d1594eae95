package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Scraper configuration
	Scraper ScraperConfig `mapstructure:"scraper"`

	// Extractor configuration
	Extractor ExtractorConfig `mapstructure:"extractor"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// ScraperConfig holds crawl-run configuration
type ScraperConfig struct {
	OutputDir      string        `mapstructure:"output_dir"`
	Delay          time.Duration `mapstructure:"delay"`
	MaxPosts       int           `mapstructure:"max_posts"`
	MaxPages       int           `mapstructure:"max_pages"`
	Timeout        time.Duration `mapstructure:"timeout"`
	UserAgent      string        `mapstructure:"user_agent"`
	MaxFilenameLen int           `mapstructure:"max_filename_len"`
}

// ExtractorConfig holds content-extraction configuration
type ExtractorConfig struct {
	// ReadabilityFallback runs a generic article extractor when none of
	// the content selectors match. Off by default so selector results
	// stay comparable across sites.
	ReadabilityFallback bool `mapstructure:"readability_fallback"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "text"
}

// Load loads configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.blogsmith")
	}

	setDefaults(v)

	v.SetEnvPrefix("BLOGSMITH")
	// Nested keys map to env vars with underscores: scraper.max_posts
	// becomes BLOGSMITH_SCRAPER_MAX_POSTS.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file not found is not an error, defaults and env apply
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("scraper.output_dir", "posts")
	v.SetDefault("scraper.delay", "1s")
	v.SetDefault("scraper.max_posts", 50)
	v.SetDefault("scraper.max_pages", 5)
	v.SetDefault("scraper.timeout", "10s")
	v.SetDefault("scraper.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	v.SetDefault("scraper.max_filename_len", 50)

	v.SetDefault("extractor.readability_fallback", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Scraper.MaxPosts <= 0 {
		return fmt.Errorf("scraper.max_posts must be positive")
	}
	if c.Scraper.MaxPages <= 0 {
		return fmt.Errorf("scraper.max_pages must be positive")
	}
	if c.Scraper.Timeout <= 0 {
		return fmt.Errorf("scraper.timeout must be positive")
	}
	if c.Scraper.Delay < 0 {
		return fmt.Errorf("scraper.delay must not be negative")
	}
	if c.Scraper.MaxFilenameLen <= 0 {
		return fmt.Errorf("scraper.max_filename_len must be positive")
	}
	if c.Scraper.OutputDir == "" {
		return fmt.Errorf("scraper.output_dir must not be empty")
	}
	return nil
}
