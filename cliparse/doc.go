// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3000)
  - DatabaseType: file, sqlite, postgres or memory (default: file)
  - DataFile: JSON document for file storage (default: data.json)
  - DatabaseURL: connection string for sqlite/postgres storage
  - AdminKey: enables POST /api/stats/reset when set
  - IPHashSalt: salt for client IP hashes in logs (random per process if empty)

# CLI Flags

	-p          Server port
	-t          Storage type
	-f          Data file
	-d          Database URL
	--admin-key Admin key
	--ip-salt   IP hash salt

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_TYPE → -t
	DATA_FILE     → -f
	DATABASE_URL  → -d
	ADMIN_KEY     → --admin-key
	IP_HASH_SALT  → --ip-salt

CLI flags take precedence over environment variables. main loads a .env file
(if present) before parsing, so the same names work there.

# Validation

ParseFlags returns an error if:

  - PORT is not a number or outside 1-65535
  - the storage type is unknown
  - sqlite or postgres storage is selected without a DATABASE_URL
*/
package cliparse
