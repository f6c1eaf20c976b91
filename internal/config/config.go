// Package config loads service settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"

	"github.com/Komy007/kkshop-sub000/internal/app/product/domain"
)

// Storage backends.
const (
	BackendSpanner  = "spanner"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Translation providers.
const (
	ProviderGoogle   = "google"
	ProviderDisabled = "disabled"
)

// Config holds application configuration.
type Config struct {
	HTTPPort string
	GRPCPort string

	StorageBackend  string
	SpannerDatabase string
	PostgresDSN     string

	Languages domain.Languages

	TranslationProvider   string
	GoogleAPIKey          string
	GoogleEndpoint        string
	TranslationConcurrent int
	TranslationTimeout    time.Duration

	LogLevel  string
	LogFormat string

	ShutdownTimeout time.Duration
}

// Load reads envFiles (".env" when none are given) into the process
// environment without overriding variables already set, then builds the
// Config. Missing files are ignored.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from lookup, applying defaults, and validates it.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return def
	}

	languages, err := domain.ParseLanguages(get("SUPPORTED_LANGUAGES", domain.DefaultLanguages().String()))
	if err != nil {
		return nil, fmt.Errorf("config: SUPPORTED_LANGUAGES: %w", err)
	}

	concurrent, err := strconv.Atoi(get("TRANSLATION_MAX_CONCURRENT", "8"))
	if err != nil {
		return nil, fmt.Errorf("config: TRANSLATION_MAX_CONCURRENT: %w", err)
	}

	timeout, err := time.ParseDuration(get("TRANSLATION_CALL_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("config: TRANSLATION_CALL_TIMEOUT: %w", err)
	}

	shutdown, err := time.ParseDuration(get("SHUTDOWN_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("config: SHUTDOWN_TIMEOUT: %w", err)
	}

	cfg := &Config{
		HTTPPort:              get("HTTP_PORT", "8080"),
		GRPCPort:              get("GRPC_PORT", "9090"),
		StorageBackend:        get("STORAGE_BACKEND", BackendSpanner),
		SpannerDatabase:       get("SPANNER_DATABASE", "projects/test-project/instances/dev-instance/databases/catalog-db"),
		PostgresDSN:           get("POSTGRES_DSN", ""),
		Languages:             languages,
		TranslationProvider:   get("TRANSLATION_PROVIDER", ProviderDisabled),
		GoogleAPIKey:          get("GOOGLE_TRANSLATE_API_KEY", ""),
		GoogleEndpoint:        get("GOOGLE_TRANSLATE_ENDPOINT", ""),
		TranslationConcurrent: concurrent,
		TranslationTimeout:    timeout,
		LogLevel:              get("LOG_LEVEL", "info"),
		LogFormat:             get("LOG_FORMAT", "json"),
		ShutdownTimeout:       shutdown,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Validate checks cross-field requirements.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.HTTPPort, validation.Required, is.Port),
		validation.Field(&c.GRPCPort, validation.Required, is.Port),
		validation.Field(&c.StorageBackend, validation.Required,
			validation.In(BackendSpanner, BackendPostgres, BackendMemory)),
		validation.Field(&c.SpannerDatabase,
			validation.When(c.StorageBackend == BackendSpanner, validation.Required)),
		validation.Field(&c.PostgresDSN,
			validation.When(c.StorageBackend == BackendPostgres, validation.Required)),
		validation.Field(&c.TranslationProvider, validation.Required,
			validation.In(ProviderGoogle, ProviderDisabled)),
		validation.Field(&c.GoogleAPIKey,
			validation.When(c.TranslationProvider == ProviderGoogle && c.GoogleEndpoint == "", validation.Required)),
		validation.Field(&c.GoogleEndpoint, is.URL),
		validation.Field(&c.TranslationConcurrent, validation.Required, validation.Min(1), validation.Max(64)),
		validation.Field(&c.TranslationTimeout, validation.Required, validation.Min(100*time.Millisecond)),
		validation.Field(&c.LogLevel, validation.In("trace", "debug", "info", "warn", "warning", "error", "fatal")),
		validation.Field(&c.LogFormat, validation.In("json", "console", "pretty")),
		validation.Field(&c.ShutdownTimeout, validation.Required),
	)
}
