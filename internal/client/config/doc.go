// Package config loads runtime configuration for the tasklist CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment: TASKLIST_ADDRESS, TASKLIST_TIMEOUT.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string     base URL or host:port of the server
//	-t duration   per-request timeout
//
// # JSON schema
//
//	{
//	  "server_address": "http://127.0.0.1:3000",
//	  "request_timeout": "10s"
//	}
package config
