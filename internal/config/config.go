// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct that is built once at
// startup and passed to every collaborator client.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"blogsmith/internal/filter"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL article archive. Enabled only when POSTGRES_HOST is set.
	ArchiveEnabled bool
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string

	// Valkey (Redis-compatible cache). Enabled only when VALKEY_HOST is set.
	CacheEnabled   bool
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// Text generation
	AIProvider    string // "claude" or "openai"
	ClaudeKey     string
	ClaudeModel   string
	ClaudeBaseURL string
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string

	// Research
	ResearchProvider string // "exa" or "tavily"
	ExaKey           string
	ExaBaseURL       string
	TavilyKey        string
	TavilyBaseURL    string

	// Images
	UnsplashKey      string
	UnsplashBaseURL  string
	UnsplashRPM      int
	ImageConcurrency int
	ImageCacheTTL    time.Duration
	ImageTimeout     time.Duration // per-lookup cap

	// S3-compatible storage for published documents. Enabled only when
	// S3_ENDPOINT and S3_ACCESS_KEY are set.
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string // optional CDN/direct URL for published files

	// Pipeline
	GenerationTimeout time.Duration
	RateLimitPerMin   int

	// Denylist of phrases that disqualify a section.
	DenylistFile    string
	DenylistPhrases []string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if a value cannot be
// parsed or if critical values are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		ArchiveEnabled: os.Getenv("POSTGRES_HOST") != "",
		DBHost:         envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:         envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:         envOrDefault("POSTGRES_USER", "blogsmith"),
		DBPassword:     envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:         envOrDefault("POSTGRES_DB", "blogsmith"),

		CacheEnabled:   os.Getenv("VALKEY_HOST") != "",
		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		AIProvider:    envOrDefault("AI_PROVIDER", "claude"),
		ClaudeKey:     os.Getenv("CLAUDE_API_KEY"),
		ClaudeModel:   envOrDefault("CLAUDE_MODEL", "claude-3-5-sonnet-20241022"),
		ClaudeBaseURL: envOrDefault("CLAUDE_BASE_URL", "https://api.anthropic.com"),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   envOrDefault("OPENAI_MODEL", "gpt-4o"),
		OpenAIBaseURL: envOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),

		ResearchProvider: envOrDefault("RESEARCH_PROVIDER", "exa"),
		ExaKey:           os.Getenv("EXA_API_KEY"),
		ExaBaseURL:       envOrDefault("EXA_BASE_URL", "https://api.exa.ai"),
		TavilyKey:        os.Getenv("TAVILY_API_KEY"),
		TavilyBaseURL:    envOrDefault("TAVILY_BASE_URL", "https://api.tavily.com"),

		UnsplashKey:     os.Getenv("UNSPLASH_ACCESS_KEY"),
		UnsplashBaseURL: envOrDefault("UNSPLASH_BASE_URL", "https://api.unsplash.com"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "us-east-1"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    envOrDefault("S3_BUCKET", "blogsmith-published"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),

		DenylistFile: os.Getenv("DENYLIST_FILE"),
	}

	var errs []error
	intVar := func(dst *int, key string, fallback int) {
		v, err := envInt(key, fallback)
		if err != nil {
			errs = append(errs, err)
		}
		*dst = v
	}
	durationVar := func(dst *time.Duration, key string, fallback time.Duration) {
		v, err := envDuration(key, fallback)
		if err != nil {
			errs = append(errs, err)
		}
		*dst = v
	}
	intVar(&cfg.UnsplashRPM, "UNSPLASH_RPM", 50)
	intVar(&cfg.ImageConcurrency, "IMAGE_CONCURRENCY", 4)
	intVar(&cfg.RateLimitPerMin, "RATE_LIMIT_PER_MINUTE", 10)
	durationVar(&cfg.ImageCacheTTL, "IMAGE_CACHE_TTL", 15*time.Minute)
	durationVar(&cfg.ImageTimeout, "IMAGE_LOOKUP_TIMEOUT", 10*time.Second)
	durationVar(&cfg.GenerationTimeout, "GENERATION_TIMEOUT", 3*time.Minute)
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	phrases, err := loadDenylist(cfg.DenylistFile, os.Getenv("DENYLIST_PHRASES"))
	if err != nil {
		return nil, err
	}
	cfg.DenylistPhrases = phrases

	if cfg.Env == "production" && cfg.ArchiveEnabled {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// Validate reports the keys the generation pipeline cannot run without.
// Image lookups are optional and not checked here.
func (c *Config) Validate() error {
	var missing []string

	switch c.AIProvider {
	case "claude":
		if c.ClaudeKey == "" {
			missing = append(missing, "CLAUDE_API_KEY")
		}
	case "openai":
		if c.OpenAIKey == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
	default:
		return fmt.Errorf("config: unknown AI_PROVIDER %q (want claude or openai)", c.AIProvider)
	}

	switch c.ResearchProvider {
	case "exa":
		if c.ExaKey == "" {
			missing = append(missing, "EXA_API_KEY")
		}
	case "tavily":
		if c.TavilyKey == "" {
			missing = append(missing, "TAVILY_API_KEY")
		}
	default:
		return fmt.Errorf("config: unknown RESEARCH_PROVIDER %q (want exa or tavily)", c.ResearchProvider)
	}

	if len(missing) > 0 {
		return fmt.Errorf("config: missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// StorageEnabled reports whether document publishing to S3 is configured.
func (c *Config) StorageEnabled() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != ""
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// LoadDotEnv loads .env.local and .env from the working directory when
// present. Variables already set in the environment are never overridden,
// and .env.local wins over .env.
func LoadDotEnv() error {
	for _, name := range []string{".env.local", ".env"} {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return fmt.Errorf("config: load %s: %w", name, err)
		}
	}
	return nil
}

// denylistFile is the YAML layout of DENYLIST_FILE.
type denylistFile struct {
	Phrases []string `yaml:"phrases"`
}

// loadDenylist merges phrases from the YAML file and the pipe-separated
// env value. With neither configured the built-in list applies.
func loadDenylist(path, inline string) ([]string, error) {
	if path == "" && strings.TrimSpace(inline) == "" {
		return append([]string(nil), filter.DefaultPhrases...), nil
	}

	var phrases []string
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read denylist: %w", err)
		}
		var f denylistFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("config: parse denylist %s: %w", path, err)
		}
		phrases = append(phrases, f.Phrases...)
	}
	for _, p := range strings.Split(inline, "|") {
		if p = strings.TrimSpace(p); p != "" {
			phrases = append(phrases, p)
		}
	}
	return phrases, nil
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback, fmt.Errorf("config: %s must be a positive integer, got %q", key, v)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback, fmt.Errorf("config: %s must be a positive duration, got %q", key, v)
	}
	return d, nil
}
