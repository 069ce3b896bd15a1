// Package config loads runtime configuration for the freelancehub CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the directory API, including the route prefix
//	-t int      request timeout (seconds)
//	-i int      online status check interval (seconds)
//	-cache dir  directory of the offline cache
//
// # File schema
//
// Durations use timex.Duration, so values can be strings like "5s" or
// integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8080/api",
//	  "request_timeout": "5s",
//	  "cache_dir": ".freelancehub",
//	  "online_check_interval": "3s"
//	}
package config
