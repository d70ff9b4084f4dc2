package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port            int
	DatabaseURL     string
	DatabaseType    string
	TokenSecret     string
	SessionSecret   string
	VoterHashSecret string
	AdminKeySalt    string
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("qr-vote", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.TokenSecret, "token-secret", "", "Token hashing secret (prefer env)")
	fs.StringVar(&cfg.SessionSecret, "session-secret", "", "Credential signing secret (prefer env)")
	fs.StringVar(&cfg.VoterHashSecret, "voter-secret", "", "Voter anonymization secret (prefer env)")
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", "", "Admin key salt (prefer env)")

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
			cfg.Port = 3412 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	// Secrets - MUST be provided, no hard-coded defaults
	if cfg.TokenSecret == "" {
		cfg.TokenSecret = os.Getenv("TOKEN_SECRET")
	}
	if cfg.TokenSecret == "" {
		return Config{}, errors.New("TOKEN_SECRET required")
	}

	if cfg.SessionSecret == "" {
		cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	}
	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET required")
	}

	if cfg.VoterHashSecret == "" {
		cfg.VoterHashSecret = os.Getenv("VOTER_HASH_SECRET")
	}
	if cfg.VoterHashSecret == "" {
		return Config{}, errors.New("VOTER_HASH_SECRET required")
	}

	if cfg.AdminKeySalt == "" {
		cfg.AdminKeySalt = os.Getenv("ADMIN_KEY_SALT")
	}
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}

	// The three voting secrets must rotate independently; sharing a
	// value would couple them.
	if cfg.TokenSecret == cfg.SessionSecret ||
		cfg.TokenSecret == cfg.VoterHashSecret ||
		cfg.SessionSecret == cfg.VoterHashSecret {
		return Config{}, errors.New("TOKEN_SECRET, SESSION_SECRET and VOTER_HASH_SECRET must be distinct")
	}

	return cfg, nil
}
