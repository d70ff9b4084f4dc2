/*
Package auth provides the keyed-hash primitives and session credential
handling for the voting service.

# Token Hashing

Raw voting tokens are never persisted. Storage is keyed by an
HMAC-SHA256 of the raw token:

	hashed := auth.HashToken(rawToken, cfg.TokenSecret)

A database compromise therefore does not disclose usable tokens.

# Session Credentials

Redeeming a token mints a signed bearer credential:

	cred, err := auth.SignCredential(voterID, cfg.SessionSecret)
	voterID, err := auth.VerifyCredential(cred, cfg.SessionSecret)

The credential is base64 of a JSON envelope {voterId, timestamp, nonce,
signature} where the signature is HMAC-SHA256 over the payload.
Verification is stateless (no store access), compares signatures in
constant time, and rejects credentials older than CredentialMaxAge
(one hour). Rotating the session secret invalidates all outstanding
credentials immediately.

# Voter Hashing

Vote records carry an anonymized voter hash instead of the voter ID:

	voterHash := auth.HashVoter(voterID, cfg.VoterHashSecret)

A separate secret keeps the vote audit trail unlinkable even if the
token secret leaks.

# Admin Keys

Admin keys use HMAC-SHA256 to create deterministic, verifiable keys:

	adminKey := auth.GenerateAdminKey(sessionID, salt)
	err := auth.ValidateAdminKey(sessionID, adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's
deterministic, the same session ID and salt always produce the same
key. This allows validation without storing the key in the database.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters

# IP Hashing

For privacy-preserving request logs:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
