package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	YouTube    YouTubeConfig    `yaml:"youtube"`
	AI         AIConfig         `yaml:"ai"`
	Output     OutputConfig     `yaml:"output"`
	Defaults   SearchDefaults   `yaml:"defaults"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Schedule   string           `yaml:"schedule"`
}

type YouTubeConfig struct {
	APIKey           string `yaml:"api_key" env:"YOUTUBE_API_KEY"`
	ClientID         string `yaml:"client_id" env:"GOOGLE_CLIENT_ID"`
	ClientSecret     string `yaml:"client_secret" env:"GOOGLE_CLIENT_SECRET"`
	TokenFile        string `yaml:"token_file"`
	DailyQuota       int    `yaml:"daily_quota"`
	Region           string `yaml:"region"`
	FetchTranscripts bool   `yaml:"fetch_transcripts"`
}

type AIConfig struct {
	GeminiAPIKey string `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	Model        string `yaml:"model"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// SearchDefaults drive scheduled runs, where nobody is around to answer
// the interactive prompts.
type SearchDefaults struct {
	Category   string `yaml:"category"`
	SortMethod string `yaml:"sort_method"`
	MaxResults int    `yaml:"max_results"`
	WindowDays int    `yaml:"window_days"`
}

type MonitoringConfig struct {
	HealthPort int `yaml:"health_port"`
}

// Load reads configuration from the optional YAML config file with
// environment variables taking precedence. Env files are tried in the
// order webap.env, .env (the former for compatibility with earlier
// deployments of this tool).
func Load() (*Config, error) {
	_ = godotenv.Load("webap.env")
	_ = godotenv.Load()

	cfg := &Config{}

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}
	data, err := os.ReadFile(configFile)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	if v := os.Getenv("YOUTUBE_API_KEY"); v != "" {
		cfg.YouTube.APIKey = v
	}
	if cfg.YouTube.ClientID == "" {
		cfg.YouTube.ClientID = os.Getenv("GOOGLE_CLIENT_ID")
	}
	if cfg.YouTube.ClientSecret == "" {
		cfg.YouTube.ClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	}
	if cfg.AI.GeminiAPIKey == "" {
		cfg.AI.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}

	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.YouTube.TokenFile == "" {
		c.YouTube.TokenFile = "youtube_token.json"
	}
	if c.YouTube.DailyQuota <= 0 {
		c.YouTube.DailyQuota = 10000
	}
	if c.YouTube.Region == "" {
		c.YouTube.Region = "US"
	}
	if c.AI.Model == "" {
		c.AI.Model = "gemini-2.5-flash"
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "output"
	}
	if c.Defaults.Category == "" {
		c.Defaults.Category = "trending shorts"
	}
	if c.Defaults.SortMethod == "" {
		c.Defaults.SortMethod = "viewCount"
	}
	if c.Defaults.MaxResults <= 0 {
		c.Defaults.MaxResults = 25
	}
	if c.Defaults.WindowDays <= 0 {
		c.Defaults.WindowDays = 7
	}
	if c.Monitoring.HealthPort <= 0 {
		c.Monitoring.HealthPort = 8080
	}
	if c.Schedule == "" {
		c.Schedule = "0 9 * * *" // Daily at 9 AM
	}
}

// Validate checks that some credential is available. Called before any
// network I/O so a missing key fails fast with guidance instead of a 401
// halfway through a run.
func (c *Config) Validate() error {
	if c.YouTube.APIKey == "" && (c.YouTube.ClientID == "" || c.YouTube.ClientSecret == "") {
		return fmt.Errorf("YouTube credentials are required: set YOUTUBE_API_KEY (in the environment, webap.env or .env), " +
			"pass --api_key, or configure an OAuth client via GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET")
	}
	return nil
}
