package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the production dashboard endpoint; override with
// --base-url or MERAKI_BASE_URL.
const DefaultBaseURL = "https://api.meraki.com/api/v1"

// Reporting window bounds in days, matching the dashboard's 31-day retention
// for the request log.
const (
	MinWindowDays     = 1
	MaxWindowDays     = 31
	DefaultWindowDays = 1
)

const secondsPerDay = 24 * 60 * 60

// Config holds all runtime configuration for a merakiusage run.
type Config struct {
	APIKey    string // never a flag: environment or interactive prompt only
	OrgID     string
	BaseURL   string
	Caller    string // appended to the User-Agent for dashboard-side attribution
	DSN       string
	LogFormat string // "text" or "json"
	Verbose   bool
	Days      int // 0 = prompt interactively
	OutDir    string
	Archive   bool
	Parquet   bool
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	OrgID   string `yaml:"org_id"`
	BaseURL string `yaml:"base_url"`
	Caller  string `yaml:"caller"`
	OutDir  string `yaml:"out_dir"`
}

// Resolve layers the remaining configuration sources under the flag values:
// a .env file when present, then the environment, then the optional YAML
// file, then defaults. Fields already set keep their value, so precedence is
// flags > environment > file > defaults.
func (c *Config) Resolve(configFile string) error {
	_ = godotenv.Load()
	c.fillFromEnv()
	if configFile != "" {
		if err := c.LoadFromFile(configFile); err != nil {
			return err
		}
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.OutDir == "" {
		c.OutDir = "."
	}
	return nil
}

func (c *Config) fillFromEnv() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("MERAKI_API_KEY")
	}
	if c.OrgID == "" {
		c.OrgID = os.Getenv("ORG_ID")
	}
	if c.BaseURL == "" {
		c.BaseURL = os.Getenv("MERAKI_BASE_URL")
	}
	if c.DSN == "" {
		c.DSN = os.Getenv("MERAKIUSAGE_DB_URL")
	}
}

// LoadFromFile reads a YAML config file and fills fields that are still
// unset, preserving flag and environment precedence.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if c.OrgID == "" {
		c.OrgID = yc.OrgID
	}
	if c.BaseURL == "" {
		c.BaseURL = yc.BaseURL
	}
	if c.Caller == "" {
		c.Caller = yc.Caller
	}
	if c.OutDir == "" {
		c.OutDir = yc.OutDir
	}
	return nil
}

// Validate checks required fields for commands that talk to the dashboard.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("API key is required (set MERAKI_API_KEY)")
	}
	if c.OrgID == "" {
		return fmt.Errorf("--org or ORG_ID is required")
	}
	return nil
}

// ValidateDays checks the reporting window flag; 0 means prompt interactively.
func (c *Config) ValidateDays() error {
	if c.Days == 0 {
		return nil
	}
	if c.Days < MinWindowDays || c.Days > MaxWindowDays {
		return fmt.Errorf("--days must be between %d and %d", MinWindowDays, MaxWindowDays)
	}
	return nil
}

// ValidateWithDSN additionally requires the archive database URL.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or MERAKIUSAGE_DB_URL is required")
	}
	return nil
}

// TimespanSeconds converts a day count to the dashboard's timespan parameter.
func TimespanSeconds(days int) int {
	return days * secondsPerDay
}
