package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds runtime settings for the pagescout CLI.
type Config struct {
	ServerURL string
	TokenFile string
	Timeout   time.Duration
}

// DefaultTokenFile is ~/.pagescout/token, or .pagescout-token in the working
// directory when the home directory is unknown.
func DefaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".pagescout-token"
	}
	return filepath.Join(home, ".pagescout", "token")
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.TokenFile = DefaultTokenFile()
	c.Timeout = 3 * time.Minute
}

// Load builds a Config from defaults, JSON, environment and flags, in that
// order. It returns the arguments left after the flags.
func Load(args []string) (*Config, []string, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, nil, err
	}
	parseEnv(cfg)

	rest, err := parseFlags(cfg, args)
	if err != nil {
		return nil, nil, err
	}
	return cfg, rest, nil
}

// parseEnv applies PAGESCOUT_SERVER and PAGESCOUT_TOKEN_FILE when set.
func parseEnv(cfg *Config) {
	v := viper.New()
	v.SetEnvPrefix("PAGESCOUT")
	v.AutomaticEnv()

	if s := v.GetString("SERVER"); s != "" {
		cfg.ServerURL = s
	}
	if s := v.GetString("TOKEN_FILE"); s != "" {
		cfg.TokenFile = s
	}
}
