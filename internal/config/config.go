package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level finchat.yaml configuration.
type Config struct {
	DataDir  string         `yaml:"data_dir"`
	Store    StoreConfig    `yaml:"store"`
	Provider ProviderConfig `yaml:"provider"`
	Agent    AgentConfig    `yaml:"agent"`
	Notify   NotifyConfig   `yaml:"notify"`
}

// StoreConfig selects and parameterizes the persistence backend.
type StoreConfig struct {
	Backend    string `yaml:"backend"` // memory, file, or sqlite
	SQLitePath string `yaml:"sqlite_path,omitempty"`
}

// ProviderConfig holds bank-data provider credentials. ClientID and Secret
// normally come from the environment, not the file.
type ProviderConfig struct {
	BaseURL  string `yaml:"base_url"`
	ClientID string `yaml:"client_id,omitempty"`
	Secret   string `yaml:"secret,omitempty"`
}

// AgentConfig controls the conversation agent.
type AgentConfig struct {
	Model      string `yaml:"model"`
	MaxHistory int    `yaml:"max_history"`
}

// NotifyConfig enables AMQP sync notifications when URL is set.
type NotifyConfig struct {
	AMQPURL  string `yaml:"amqp_url,omitempty"`
	Exchange string `yaml:"exchange,omitempty"`
	Queue    string `yaml:"queue,omitempty"`
}

// Load reads a finchat.yaml file from disk and applies environment
// overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyEnv()
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new setup.
func Default(dataDir string) *Config {
	return &Config{
		DataDir: dataDir,
		Store: StoreConfig{
			Backend: "file",
		},
		Provider: ProviderConfig{
			BaseURL: "https://sandbox.plaid.com",
		},
		Agent: AgentConfig{
			Model:      "gemini-2.0-flash",
			MaxHistory: 20,
		},
		Notify: NotifyConfig{
			Exchange: "finchat",
			Queue:    "sync_notifications",
		},
	}
}

// applyEnv lets deployment environments override secrets and endpoints
// without touching the file.
func (c *Config) applyEnv() {
	c.Provider.ClientID = getEnv("FINCHAT_PROVIDER_CLIENT_ID", c.Provider.ClientID)
	c.Provider.Secret = getEnv("FINCHAT_PROVIDER_SECRET", c.Provider.Secret)
	c.Provider.BaseURL = getEnv("FINCHAT_PROVIDER_BASE_URL", c.Provider.BaseURL)
	c.Store.Backend = getEnv("FINCHAT_STORE_BACKEND", c.Store.Backend)
	c.Agent.Model = getEnv("FINCHAT_AGENT_MODEL", c.Agent.Model)
	c.Agent.MaxHistory = getEnvInt("FINCHAT_AGENT_MAX_HISTORY", c.Agent.MaxHistory)
	c.Notify.AMQPURL = getEnv("FINCHAT_AMQP_URL", c.Notify.AMQPURL)
}

// Validate catches configurations that would fail at first use.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "memory", "file", "sqlite":
	default:
		return fmt.Errorf("invalid store backend %q (want memory, file, or sqlite)", c.Store.Backend)
	}
	if c.Agent.MaxHistory < 0 {
		return fmt.Errorf("agent max_history must not be negative, got %d", c.Agent.MaxHistory)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must be set")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
