package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidAdminKey   = errors.New("invalid admin key")
	ErrInvalidCredential = errors.New("invalid session credential")
	ErrCredentialExpired = errors.New("session credential expired")
)

// CredentialMaxAge is how long a minted session credential stays valid.
const CredentialMaxAge = time.Hour

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashToken computes the keyed hash under which a raw voting token is
// stored. Only this value ever reaches the database.
func HashToken(rawToken, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(rawToken))
	return hex.EncodeToString(h.Sum(nil))
}

// HashVoter anonymizes a voter ID for the vote audit trail. Uses its
// own secret so compromising the token secret alone does not link
// votes back to voters.
func HashVoter(voterID, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(voterID))
	return hex.EncodeToString(h.Sum(nil))
}

// GenerateAdminKey creates an HMAC-based admin key for a voting session
// This is deterministic and verifiable
func GenerateAdminKey(sessionID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(sessionID))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return base64.RawURLEncoding.EncodeToString(sum)
}

// ValidateAdminKey checks if the provided admin key is valid for the session
func ValidateAdminKey(sessionID, adminKey, salt string) error {
	expected := GenerateAdminKey(sessionID, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// credentialPayload is the signed portion of a session credential.
// Field order matters: the signature covers the exact JSON encoding.
type credentialPayload struct {
	VoterID   string `json:"voterId"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
	Nonce     string `json:"nonce"`
}

type credentialEnvelope struct {
	credentialPayload
	Signature string `json:"signature"`
}

func signPayload(p credentialPayload, secret string) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to encode credential payload: %w", err)
	}
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(raw)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// SignCredential mints a short-lived bearer credential for a voter who
// just redeemed a token. The result is an opaque base64 string; nothing
// is persisted server-side.
func SignCredential(voterID, secret string) (string, error) {
	payload := credentialPayload{
		VoterID:   voterID,
		Timestamp: time.Now().UnixMilli(),
		Nonce:     uuid.NewString(),
	}
	sig, err := signPayload(payload, secret)
	if err != nil {
		return "", err
	}
	envelope, err := json.Marshal(credentialEnvelope{
		credentialPayload: payload,
		Signature:         sig,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode credential: %w", err)
	}
	return base64.StdEncoding.EncodeToString(envelope), nil
}

// VerifyCredential checks a credential's signature and age, returning
// the voter ID it was minted for. Stateless: no store access.
func VerifyCredential(encoded, secret string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidCredential
	}
	var env credentialEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", ErrInvalidCredential
	}
	if env.VoterID == "" || env.Signature == "" {
		return "", ErrInvalidCredential
	}
	expected, err := signPayload(env.credentialPayload, secret)
	if err != nil {
		return "", ErrInvalidCredential
	}
	if !hmac.Equal([]byte(env.Signature), []byte(expected)) {
		return "", ErrInvalidCredential
	}
	issuedAt := time.UnixMilli(env.Timestamp)
	if time.Since(issuedAt) > CredentialMaxAge {
		return "", ErrCredentialExpired
	}
	return env.VoterID, nil
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}
