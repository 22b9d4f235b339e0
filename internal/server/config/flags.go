package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/pagescout/internal/flagx"
)

var serverFlags = []string{"-a", "-g", "-d", "-s", "-t", "-r", "-m", "-l", "-mock", "-b", "-e"}

// parseFlags overlays values given on the command line:
//
//	-a string    HTTP listen address (":8080")
//	-g string    gRPC health listen address (":50051")
//	-d string    PostgreSQL DSN
//	-s string    JWT signing secret
//	-t duration  token validity ("1h")
//	-r string    rendering proxy prefix ("https://r.jina.ai/")
//	-m string    extraction model name
//	-l string    log level
//	-mock        use the canned extraction client
//	-b string    S3 bucket for agent images
//	-e string    S3 base endpoint
//
// Flags that belong to other components (such as -c) are filtered out first.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("pagescout", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.HTTPAddr, "a", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.GRPCAddr, "g", cfg.GRPCAddr, "gRPC health listen address")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "token signing secret")
	fs.DurationVar(&cfg.TokenValidityDuration, "t", cfg.TokenValidityDuration, "token validity duration")
	fs.StringVar(&cfg.RenderProxyURL, "r", cfg.RenderProxyURL, "rendering proxy prefix")
	fs.StringVar(&cfg.LLMModel, "m", cfg.LLMModel, "extraction model")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.BoolVar(&cfg.LLMMock, "mock", cfg.LLMMock, "use canned extraction responses")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3BaseEndpoint, "e", cfg.S3BaseEndpoint, "S3 base endpoint")

	return fs.Parse(flagx.FilterArgs(args, serverFlags))
}
