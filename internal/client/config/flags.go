package config

import (
	"flag"
	"io"
)

// parseFlags applies -s, -t and -timeout and returns the remaining
// positional arguments. -c/-config are accepted here too so the file path
// does not end up in the command line.
func parseFlags(cfg *Config, args []string) ([]string, error) {
	fs := flag.NewFlagSet("pagescout-cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "s", cfg.ServerURL, "base URL of the pagescout API")
	fs.StringVar(&cfg.TokenFile, "t", cfg.TokenFile, "file holding the session token")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "per-request timeout")

	var ignored string
	fs.StringVar(&ignored, "c", "", "JSON config file")
	fs.StringVar(&ignored, "config", "", "JSON config file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}
