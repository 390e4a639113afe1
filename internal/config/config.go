package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	ProviderDeepgram = "deepgram"
	ProviderOpenAI   = "openai"

	DriverSupabase = "supabase"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is the full service configuration. Values come from an optional
// YAML file first and are then overridden by environment variables.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	Store         StoreConfig         `yaml:"store"`
	Archive       ArchiveConfig       `yaml:"archive,omitempty"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host        string `yaml:"host" env:"HOST"`
	Port        string `yaml:"port" env:"PORT" validate:"required,numeric"`
	Environment string `yaml:"environment" env:"APP_ENV" validate:"oneof=development production test"`
	CORSOrigin  string `yaml:"cors_origin" env:"CORS_ORIGIN" validate:"required"`
	// ReadTimeoutSec bounds reading the whole request, upload body included.
	// Zero (the default) lets slow uploads finish; headers are still bounded
	// by ReadHeaderTimeoutSec.
	ReadTimeoutSec       int `yaml:"read_timeout_sec" env:"READ_TIMEOUT_SEC" validate:"gte=0"`
	ReadHeaderTimeoutSec int `yaml:"read_header_timeout_sec" env:"READ_HEADER_TIMEOUT_SEC" validate:"gte=0"`
	WriteTimeoutSec      int `yaml:"write_timeout_sec" env:"WRITE_TIMEOUT_SEC" validate:"gte=0"`
	IdleTimeoutSec       int `yaml:"idle_timeout_sec" env:"IDLE_TIMEOUT_SEC" validate:"gte=0"`
	MaxUploadMB          int `yaml:"max_upload_mb" env:"MAX_UPLOAD_MB" validate:"gt=0"`
}

// TranscriptionConfig selects and configures the speech-to-text vendor
type TranscriptionConfig struct {
	Provider        string `yaml:"provider" env:"TRANSCRIPTION_PROVIDER" validate:"oneof=deepgram openai"`
	DeepgramAPIKey  string `yaml:"deepgram_api_key" env:"DEEPGRAM_API_KEY" validate:"required_if=Provider deepgram"`
	DeepgramBaseURL string `yaml:"deepgram_base_url" env:"DEEPGRAM_BASE_URL"`
	OpenAIAPIKey    string `yaml:"openai_api_key" env:"OPENAI_API_KEY" validate:"required_if=Provider openai"`
	OpenAIBaseURL   string `yaml:"openai_base_url" env:"OPENAI_BASE_URL"`
	// TimeoutSec bounds the vendor call. Zero leaves it unbounded.
	TimeoutSec int `yaml:"timeout_sec" env:"TRANSCRIPTION_TIMEOUT_SEC" validate:"gte=0"`
}

// StoreConfig selects the transcript store
type StoreConfig struct {
	Driver      string `yaml:"driver" env:"STORE_DRIVER" validate:"oneof=supabase postgres sqlite"`
	SupabaseURL string `yaml:"supabase_url" env:"SUPABASE_URL" validate:"required_if=Driver supabase"`
	SupabaseKey string `yaml:"supabase_key" env:"SUPABASE_KEY" validate:"required_if=Driver supabase"`
	DatabaseURL string `yaml:"database_url" env:"DATABASE_URL" validate:"required_unless=Driver supabase"`
	Table       string `yaml:"table" env:"TRANSCRIPTS_TABLE" validate:"required,sqlident"`
}

// ArchiveConfig configures optional S3-compatible archival of uploaded audio.
// Archival is disabled when Endpoint is empty.
type ArchiveConfig struct {
	Endpoint  string `yaml:"endpoint" env:"MINIO_ENDPOINT"`
	AccessKey string `yaml:"access_key" env:"MINIO_ACCESS_KEY" validate:"required_with=Endpoint"`
	SecretKey string `yaml:"secret_key" env:"MINIO_SECRET_KEY" validate:"required_with=Endpoint"`
	Bucket    string `yaml:"bucket" env:"MINIO_BUCKET" validate:"required_with=Endpoint"`
	UseSSL    bool   `yaml:"use_ssl" env:"MINIO_USE_SSL"`
}

// Enabled reports whether audio archival is configured
func (a ArchiveConfig) Enabled() bool {
	return a.Endpoint != ""
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:                 "0.0.0.0",
			Port:                 "8000",
			Environment:          "development",
			CORSOrigin:           "http://localhost:5173",
			ReadTimeoutSec:       0,
			ReadHeaderTimeoutSec: 30,
			WriteTimeoutSec:      0,
			IdleTimeoutSec:       120,
			MaxUploadMB:          100,
		},
		Transcription: TranscriptionConfig{
			Provider: ProviderDeepgram,
		},
		Store: StoreConfig{
			Driver: DriverSupabase,
			Table:  "transcripts",
		},
		Archive: ArchiveConfig{
			Bucket: "transcripts-audio",
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// any), then environment variables. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadStore is Load for commands that only touch the transcript store: the
// server and vendor sections are not validated.
func LoadStore(path string) (StoreConfig, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return StoreConfig{}, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return StoreConfig{}, err
	}

	if err := validateStruct(cfg.Store); err != nil {
		return StoreConfig{}, err
	}

	return cfg.Store, nil
}

func (c *Config) mergeFile(path string) error {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), c); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	return nil
}

func (c *Config) applyEnv() error {
	lookupString("HOST", &c.Server.Host)
	lookupString("PORT", &c.Server.Port)
	lookupString("APP_ENV", &c.Server.Environment)
	lookupString("CORS_ORIGIN", &c.Server.CORSOrigin)

	lookupString("TRANSCRIPTION_PROVIDER", &c.Transcription.Provider)
	lookupString("DEEPGRAM_API_KEY", &c.Transcription.DeepgramAPIKey)
	lookupString("DEEPGRAM_BASE_URL", &c.Transcription.DeepgramBaseURL)
	lookupString("OPENAI_API_KEY", &c.Transcription.OpenAIAPIKey)
	lookupString("OPENAI_BASE_URL", &c.Transcription.OpenAIBaseURL)

	lookupString("STORE_DRIVER", &c.Store.Driver)
	lookupString("SUPABASE_URL", &c.Store.SupabaseURL)
	lookupString("SUPABASE_KEY", &c.Store.SupabaseKey)
	lookupString("DATABASE_URL", &c.Store.DatabaseURL)
	lookupString("TRANSCRIPTS_TABLE", &c.Store.Table)

	lookupString("MINIO_ENDPOINT", &c.Archive.Endpoint)
	lookupString("MINIO_ACCESS_KEY", &c.Archive.AccessKey)
	lookupString("MINIO_SECRET_KEY", &c.Archive.SecretKey)
	lookupString("MINIO_BUCKET", &c.Archive.Bucket)

	ints := []struct {
		key string
		dst *int
	}{
		{"READ_TIMEOUT_SEC", &c.Server.ReadTimeoutSec},
		{"READ_HEADER_TIMEOUT_SEC", &c.Server.ReadHeaderTimeoutSec},
		{"WRITE_TIMEOUT_SEC", &c.Server.WriteTimeoutSec},
		{"IDLE_TIMEOUT_SEC", &c.Server.IdleTimeoutSec},
		{"MAX_UPLOAD_MB", &c.Server.MaxUploadMB},
		{"TRANSCRIPTION_TIMEOUT_SEC", &c.Transcription.TimeoutSec},
	}
	for _, i := range ints {
		if err := lookupInt(i.key, i.dst); err != nil {
			return err
		}
	}

	return lookupBool("MINIO_USE_SSL", &c.Archive.UseSSL)
}

// Timeout returns the vendor timeout, zero when unbounded
func (t TranscriptionConfig) Timeout() time.Duration {
	return time.Duration(t.TimeoutSec) * time.Second
}

// IsProduction reports whether the server runs in production mode
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}
