package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Environment variable names understood by parseEnv. The same names may be
// used as keys in the optional .env file; real environment variables win.
const (
	envHTTPAddr              = "HTTP_ADDR"
	envGRPCAddr              = "GRPC_ADDR"
	envDatabaseDSN           = "DATABASE_DSN"
	envSecretKey             = "SECRET_KEY"
	envTokenValidityDuration = "TOKEN_VALIDITY_DURATION"
	envPasswordHashCost      = "PASSWORD_HASH_COST"
	envRenderProxyURL        = "RENDER_PROXY_URL"
	envRenderProxyAPIKey     = "RENDER_PROXY_API_KEY"
	envFetchTimeout          = "FETCH_TIMEOUT"
	envMaxContentBytes       = "MAX_CONTENT_BYTES"
	envLLMBaseURL            = "LLM_BASE_URL"
	envLLMAPIKey             = "OPENAI_API_KEY"
	envLLMModel              = "LLM_MODEL"
	envLLMTimeout            = "LLM_TIMEOUT"
	envLLMMock               = "LLM_MOCK"
	envRequestTimeout        = "REQUEST_TIMEOUT"
	envLogLevel              = "LOG_LEVEL"
	envS3RootUser            = "S3_ROOT_USER"
	envS3RootPassword        = "S3_ROOT_PASSWORD"
	envS3Bucket              = "S3_BUCKET"
	envS3Region              = "S3_REGION"
	envS3BaseEndpoint        = "S3_BASE_ENDPOINT"
)

// parseEnv overlays values from the process environment and from envFile.
// A missing envFile is not an error.
func parseEnv(cfg *Config, envFile string) error {
	v := viper.New()
	v.AutomaticEnv()

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read env file %s: %w", envFile, err)
		}
	}

	strs := map[string]*string{
		envHTTPAddr:          &cfg.HTTPAddr,
		envGRPCAddr:          &cfg.GRPCAddr,
		envDatabaseDSN:       &cfg.DatabaseDSN,
		envSecretKey:         &cfg.SecretKey,
		envRenderProxyURL:    &cfg.RenderProxyURL,
		envRenderProxyAPIKey: &cfg.RenderProxyAPIKey,
		envLLMBaseURL:        &cfg.LLMBaseURL,
		envLLMAPIKey:         &cfg.LLMAPIKey,
		envLLMModel:          &cfg.LLMModel,
		envLogLevel:          &cfg.LogLevel,
		envS3RootUser:        &cfg.S3RootUser,
		envS3RootPassword:    &cfg.S3RootPassword,
		envS3Bucket:          &cfg.S3Bucket,
		envS3Region:          &cfg.S3Region,
		envS3BaseEndpoint:    &cfg.S3BaseEndpoint,
	}
	for key, dst := range strs {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}

	durations := map[string]*time.Duration{
		envTokenValidityDuration: &cfg.TokenValidityDuration,
		envFetchTimeout:          &cfg.FetchTimeout,
		envLLMTimeout:            &cfg.LLMTimeout,
		envRequestTimeout:        &cfg.RequestTimeout,
	}
	for key, dst := range durations {
		if !v.IsSet(key) {
			continue
		}
		d, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
	}

	if v.IsSet(envPasswordHashCost) {
		cost, err := strconv.Atoi(v.GetString(envPasswordHashCost))
		if err != nil {
			return fmt.Errorf("%s: %w", envPasswordHashCost, err)
		}
		cfg.PasswordHashCost = cost
	}
	if v.IsSet(envMaxContentBytes) {
		n, err := strconv.ParseInt(v.GetString(envMaxContentBytes), 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", envMaxContentBytes, err)
		}
		cfg.MaxContentBytes = n
	}
	if v.IsSet(envLLMMock) {
		mock, err := strconv.ParseBool(v.GetString(envLLMMock))
		if err != nil {
			return fmt.Errorf("%s: %w", envLLMMock, err)
		}
		cfg.LLMMock = mock
	}

	return nil
}
