// Package config loads runtime configuration for the pagescout CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment: PAGESCOUT_SERVER and PAGESCOUT_TOKEN_FILE.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-s string   base URL of the pagescout HTTP API
//	-t string   file holding the session token
//	-timeout    per-request timeout (e.g. "3m")
//
// # JSON schema
//
// Durations accept strings like "90s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "token_file": "/home/me/.pagescout/token",
//	  "timeout": "3m"
//	}
//
// Everything after the flags is returned to the caller as the command line.
package config
