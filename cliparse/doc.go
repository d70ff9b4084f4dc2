/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3412)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - TokenSecret: Keyed-hash secret for token storage (required)
  - SessionSecret: Credential signing secret (required)
  - VoterHashSecret: Vote anonymization secret (required)
  - AdminKeySalt: Secret for per-session admin key HMAC (required)

# CLI Flags

	-p              Server port
	-d              Database URL
	-t              Database type
	--token-secret   Token hashing secret
	--session-secret Credential signing secret
	--voter-secret   Voter anonymization secret
	--admin-salt     Admin key salt

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	DATABASE_URL      → -d
	DATABASE_TYPE     → -t
	TOKEN_SECRET      → --token-secret
	SESSION_SECRET    → --session-secret
	VOTER_HASH_SECRET → --voter-secret
	ADMIN_KEY_SALT    → --admin-salt

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing, and
requires the three voting secrets to be pairwise distinct so each can
be rotated independently. Rotating SESSION_SECRET invalidates all
outstanding credentials, which is acceptable because they live for at
most an hour.
*/
package cliparse
