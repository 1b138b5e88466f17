// Package config loads runtime configuration for the Azyrnyx CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: AZYRNYX_SERVER_URL, AZYRNYX_SESSION_FILE.
//  3. Optional JSON file given with -c / --config (see LoadFile).
//  4. Command-line flags of the cli package, which override everything.
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so it can be either a
// string like "10s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:3000",
//	  "session_file": "/home/me/.config/azyrnyx/session.json",
//	  "timeout": "10s"
//	}
package config
