package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/pagescout/internal/flagx"
	"github.com/dmitrijs2005/pagescout/internal/timex"
)

// JSONConfig mirrors Config for JSON files. Durations use timex.Duration so
// both "30s" and integer nanoseconds are accepted. Fields left out of the
// file keep their current values.
type JSONConfig struct {
	HTTPAddr              string         `json:"http_addr"`
	GRPCAddr              string         `json:"grpc_addr"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	PasswordHashCost      int            `json:"password_hash_cost"`
	RenderProxyURL        string         `json:"render_proxy_url"`
	RenderProxyAPIKey     string         `json:"render_proxy_api_key"`
	FetchTimeout          timex.Duration `json:"fetch_timeout"`
	MaxContentBytes       int64          `json:"max_content_bytes"`
	LLMBaseURL            string         `json:"llm_base_url"`
	LLMAPIKey             string         `json:"llm_api_key"`
	LLMModel              string         `json:"llm_model"`
	LLMTimeout            timex.Duration `json:"llm_timeout"`
	LLMMock               *bool          `json:"llm_mock"`
	RequestTimeout        timex.Duration `json:"request_timeout"`
	LogLevel              string         `json:"log_level"`
	S3RootUser            string         `json:"s3_root_user"`
	S3RootPassword        string         `json:"s3_root_password"`
	S3Bucket              string         `json:"s3_bucket"`
	S3Region              string         `json:"s3_region"`
	S3BaseEndpoint        string         `json:"s3_base_endpoint"`
}

// parseJSON overlays values from the file named by -c/-config, if any.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var c JSONConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}

	setString(&cfg.HTTPAddr, c.HTTPAddr)
	setString(&cfg.GRPCAddr, c.GRPCAddr)
	setString(&cfg.DatabaseDSN, c.DatabaseDSN)
	setString(&cfg.SecretKey, c.SecretKey)
	setDuration(&cfg.TokenValidityDuration, c.TokenValidityDuration)
	if c.PasswordHashCost != 0 {
		cfg.PasswordHashCost = c.PasswordHashCost
	}
	setString(&cfg.RenderProxyURL, c.RenderProxyURL)
	setString(&cfg.RenderProxyAPIKey, c.RenderProxyAPIKey)
	setDuration(&cfg.FetchTimeout, c.FetchTimeout)
	if c.MaxContentBytes != 0 {
		cfg.MaxContentBytes = c.MaxContentBytes
	}
	setString(&cfg.LLMBaseURL, c.LLMBaseURL)
	setString(&cfg.LLMAPIKey, c.LLMAPIKey)
	setString(&cfg.LLMModel, c.LLMModel)
	setDuration(&cfg.LLMTimeout, c.LLMTimeout)
	if c.LLMMock != nil {
		cfg.LLMMock = *c.LLMMock
	}
	setDuration(&cfg.RequestTimeout, c.RequestTimeout)
	setString(&cfg.LogLevel, c.LogLevel)
	setString(&cfg.S3RootUser, c.S3RootUser)
	setString(&cfg.S3RootPassword, c.S3RootPassword)
	setString(&cfg.S3Bucket, c.S3Bucket)
	setString(&cfg.S3Region, c.S3Region)
	setString(&cfg.S3BaseEndpoint, c.S3BaseEndpoint)

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
