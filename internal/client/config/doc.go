// Package config loads runtime configuration for the bookmarks CLI.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags.
//
// Supported flags
//
//	-a string   base URL of the bookmarks API
//	-t int      request timeout (seconds)
//	-i int      online status check interval (seconds)
//	-o string   directory for downloaded exports
//
// # JSON schema
//
// Durations are either strings like "3s" or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "http://127.0.0.1:8080",
//	  "request_timeout": "5s",
//	  "online_check_interval": "3s",
//	  "export_dir": "exports"
//	}
package config
