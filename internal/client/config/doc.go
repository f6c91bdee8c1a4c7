// Package config loads runtime configuration for the ticketapp client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config. Comments and trailing
//     commas are accepted (JSONC).
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-d string   path of the SQLite storage file
//	-q int      storage quota in bytes (0 = unlimited)
//	-s bool     seed demo tickets when the ticket list is empty
//	-l string   log level
//
// # JSON schema
//
//	{
//	  // where everything is kept
//	  "storage_path": "data/ticketapp.db",
//	  "storage_quota": 5242880,
//	  "seed_tickets": true,
//	  "log_level": "info",
//	}
//
// Keys missing from the file keep their default values.
package config
