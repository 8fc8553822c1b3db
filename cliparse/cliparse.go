package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
)

// Storage types
const (
	StorageFile     = "file"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Port         int
	DataFile     string
	DatabaseURL  string
	DatabaseType string
	AdminKey     string
	IPHashSalt   string
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("survey-tally", flag.ContinueOnError)

	// Network and storage config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DataFile, "f", "", "JSON data file (file storage)")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (sqlite or postgres storage)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Storage type (file, sqlite, postgres or memory)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKey, "admin-key", "", "Admin key for resetting tallies (prefer env)")
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", "", "Salt for hashing client IPs in logs (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3000 // default
		}
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("port %d out of range", cfg.Port)
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = StorageFile
		}
	}

	switch cfg.DatabaseType {
	case StorageFile:
		if cfg.DataFile == "" {
			cfg.DataFile = os.Getenv("DATA_FILE")
		}
		if cfg.DataFile == "" {
			cfg.DataFile = "data.json"
		}
	case StorageSQLite, StoragePostgres:
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = os.Getenv("DATABASE_URL")
		}
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	case StorageMemory:
	default:
		return Config{}, fmt.Errorf("unknown storage type %q", cfg.DatabaseType)
	}

	// Secrets - optional
	if cfg.AdminKey == "" {
		cfg.AdminKey = os.Getenv("ADMIN_KEY")
	}
	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = os.Getenv("IP_HASH_SALT")
	}

	return cfg, nil
}
