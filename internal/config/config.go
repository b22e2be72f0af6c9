package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables holding secrets. They never live in the config file.
const (
	AnthropicAPIKeyEnv = "ANTHROPIC_API_KEY"
	JWTSecretEnv       = "JOURNAL_JWT_SECRET"
	DatabaseURLEnv     = "JOURNAL_DATABASE_URL"
)

const (
	DefaultWindowDays = 30
	DefaultServerAddr = ":8080"
	DefaultRateLimit  = 0.5 // LLM requests per second per client
	DefaultRateBurst  = 5
	DefaultModel      = "claude-sonnet-4-20250514"
	DefaultMaxTokens  = 1000
)

// Config represents the main configuration for journal.
type Config struct {
	UserID   string         `toml:"user_id"`
	BaseDir  string         `toml:"base_dir"`
	LogDir   string         `toml:"log_dir"`
	Database DatabaseConfig `toml:"database"`
	Vaults   []VaultConfig  `toml:"vaults"`
	Analysis AnalysisConfig `toml:"analysis"`
	Server   ServerConfig   `toml:"server"`
	Trends   TrendsConfig   `toml:"trends"`
}

// VaultConfig represents configuration for a snapshot vault backend.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type VaultConfig struct {
	Type string `toml:"type"` // "memory", "s3", or "filesystem"
	Name string `toml:"name"`

	// S3-specific fields (only used when Type == "s3")
	S3Bucket   string `toml:"s3_bucket,omitempty"`
	S3Prefix   string `toml:"s3_prefix,omitempty"`
	S3Region   string `toml:"s3_region,omitempty"`
	S3Endpoint string `toml:"s3_endpoint,omitempty"`

	// FileSystem-specific fields (only used when Type == "filesystem")
	FSVaultRoot string `toml:"fs_vault_root,omitempty"`
}

// DatabaseConfig represents configuration for the entry store.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type DatabaseConfig struct {
	Type    string `toml:"type"`               // "sqlite", "memory" or "postgres"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
	URL     string `toml:"url,omitempty"`      // only used for type=postgres
}

// AnalysisConfig selects the entry analyzer.
type AnalysisConfig struct {
	Type      string `toml:"type"` // "anthropic" (default) or "test"
	Model     string `toml:"model,omitempty"`
	MaxTokens int64  `toml:"max_tokens,omitempty"`
}

// ServerConfig holds settings for `journal serve`.
type ServerConfig struct {
	Addr      string  `toml:"addr"`
	RateLimit float64 `toml:"rate_limit"`
	RateBurst int     `toml:"rate_burst"`
}

type TrendsConfig struct {
	WindowDays int `toml:"window_days"`
}

// NewConfig creates a new Config with the provided values and defaults for everything else.
func NewConfig(userID, baseDir string) *Config {
	return &Config{
		UserID:  userID,
		BaseDir: baseDir,
		LogDir:  filepath.Join(baseDir, "log"),
		Database: DatabaseConfig{
			Type:    "sqlite",
			DataDir: filepath.Join(baseDir, "db"),
		},
		Analysis: AnalysisConfig{
			Type:      "anthropic",
			Model:     DefaultModel,
			MaxTokens: DefaultMaxTokens,
		},
		Server: ServerConfig{
			Addr:      DefaultServerAddr,
			RateLimit: DefaultRateLimit,
			RateBurst: DefaultRateBurst,
		},
		Trends: TrendsConfig{WindowDays: DefaultWindowDays},
	}
}

// ApplyDefaults fills zero values left by hand-edited config files.
func (c *Config) ApplyDefaults() {
	if c.Analysis.Type == "" {
		c.Analysis.Type = "anthropic"
	}
	if c.Analysis.Model == "" {
		c.Analysis.Model = DefaultModel
	}
	if c.Analysis.MaxTokens <= 0 {
		c.Analysis.MaxTokens = DefaultMaxTokens
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	if c.Server.RateLimit <= 0 {
		c.Server.RateLimit = DefaultRateLimit
	}
	if c.Server.RateBurst <= 0 {
		c.Server.RateBurst = DefaultRateBurst
	}
	if c.Trends.WindowDays <= 0 {
		c.Trends.WindowDays = DefaultWindowDays
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

func writeToFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}

// LoadEnv loads variables from the given .env files into the process
// environment. Missing files are skipped; variables already set win.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// MissingEnvError lists every required variable that is unset.
type MissingEnvError struct {
	Names []string
}

func (e *MissingEnvError) Error() string {
	return "missing required environment variables: " + strings.Join(e.Names, ", ")
}

// CheckEnv reports all unset or blank variables at once.
func CheckEnv(names ...string) error {
	var missing []string
	for _, name := range names {
		if strings.TrimSpace(os.Getenv(name)) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingEnvError{Names: missing}
	}
	return nil
}
