package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestGenerateID(t *testing.T) {
	tests := []struct {
		name    string
		byteLen int
		wantLen int // hex encoded length = byteLen * 2
	}{
		{"8 bytes", 8, 16},
		{"16 bytes", 16, 32},
		{"24 bytes", 24, 48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := GenerateID(tt.byteLen)
			if err != nil {
				t.Fatalf("GenerateID() error = %v", err)
			}
			if len(id) != tt.wantLen {
				t.Errorf("GenerateID() length = %d, want %d", len(id), tt.wantLen)
			}
			// Verify it's valid hex
			for _, c := range id {
				if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
					t.Errorf("GenerateID() contains invalid hex char: %c", c)
				}
			}
		})
	}

	// Test randomness - two IDs should be different
	id1, _ := GenerateID(16)
	id2, _ := GenerateID(16)
	if id1 == id2 {
		t.Error("GenerateID() produced duplicate IDs (extremely unlikely)")
	}
}

func TestHashToken(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"standard", "VOTE_abc_session1", "token-secret"},
		{"empty token", "", "token-secret"},
		{"empty secret", "VOTE_abc_session1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash := HashToken(tt.token, tt.secret)

			// SHA256 hex = 64 chars
			if len(hash) != 64 {
				t.Errorf("HashToken() length = %d, want 64", len(hash))
			}

			// Should be deterministic
			if hash != HashToken(tt.token, tt.secret) {
				t.Error("HashToken() is not deterministic")
			}
		})
	}

	// Different tokens and different secrets must hash differently
	if HashToken("VOTE_a_s", "secret") == HashToken("VOTE_b_s", "secret") {
		t.Error("HashToken() produced same hash for different tokens")
	}
	if HashToken("VOTE_a_s", "secret1") == HashToken("VOTE_a_s", "secret2") {
		t.Error("HashToken() produced same hash for different secrets")
	}
}

func TestHashVoter(t *testing.T) {
	hash := HashVoter("voter_123", "voter-secret")
	if len(hash) != 64 {
		t.Errorf("HashVoter() length = %d, want 64", len(hash))
	}
	if hash != HashVoter("voter_123", "voter-secret") {
		t.Error("HashVoter() is not deterministic")
	}
	if hash == HashVoter("voter_456", "voter-secret") {
		t.Error("HashVoter() produced same hash for different voters")
	}
	// Must differ from the token hash of the same input: separate
	// secrets break the link between the two keyspaces.
	if hash == HashToken("voter_123", "token-secret") {
		t.Error("HashVoter() collides with HashToken() under different secrets")
	}
}

func TestGenerateAdminKey(t *testing.T) {
	tests := []struct {
		name      string
		sessionID string
		salt      string
	}{
		{"standard", "session123", "secret-salt"},
		{"empty session id", "", "salt"},
		{"empty salt", "session456", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := GenerateAdminKey(tt.sessionID, tt.salt)

			if key == "" {
				t.Error("GenerateAdminKey() returned empty string")
			}

			// Should be deterministic
			if key != GenerateAdminKey(tt.sessionID, tt.salt) {
				t.Error("GenerateAdminKey() is not deterministic")
			}

			// Should be URL-safe (no padding)
			if strings.Contains(key, "=") {
				t.Error("GenerateAdminKey() contains padding characters")
			}
		})
	}
}

func TestValidateAdminKey(t *testing.T) {
	sessionID := "test-session-123"
	salt := "test-salt"
	validKey := GenerateAdminKey(sessionID, salt)

	tests := []struct {
		name      string
		sessionID string
		adminKey  string
		salt      string
		wantErr   bool
	}{
		{"valid key", sessionID, validKey, salt, false},
		{"wrong key", sessionID, "wrong-key", salt, true},
		{"wrong session id", "different-session", validKey, salt, true},
		{"wrong salt", sessionID, validKey, "different-salt", true},
		{"empty key", sessionID, "", salt, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAdminKey(tt.sessionID, tt.adminKey, tt.salt)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAdminKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != ErrInvalidAdminKey {
				t.Errorf("ValidateAdminKey() error = %v, want %v", err, ErrInvalidAdminKey)
			}
		})
	}
}

func TestCredentialRoundTrip(t *testing.T) {
	secret := "session-secret"

	cred, err := SignCredential("voter_abc", secret)
	if err != nil {
		t.Fatalf("SignCredential() error = %v", err)
	}

	voterID, err := VerifyCredential(cred, secret)
	if err != nil {
		t.Fatalf("VerifyCredential() error = %v", err)
	}
	if voterID != "voter_abc" {
		t.Errorf("VerifyCredential() voterID = %q, want %q", voterID, "voter_abc")
	}

	// Two credentials for the same voter differ (fresh nonce)
	cred2, _ := SignCredential("voter_abc", secret)
	if cred == cred2 {
		t.Error("SignCredential() produced identical credentials (nonce not fresh)")
	}
}

func TestVerifyCredentialWrongSecret(t *testing.T) {
	cred, err := SignCredential("voter_abc", "secret-one")
	if err != nil {
		t.Fatalf("SignCredential() error = %v", err)
	}

	if _, err := VerifyCredential(cred, "secret-two"); err != ErrInvalidCredential {
		t.Errorf("VerifyCredential() with wrong secret error = %v, want %v", err, ErrInvalidCredential)
	}
}

// TestVerifyCredentialTampered flips every byte of the decoded
// envelope, one at a time, and expects verification to fail each time.
func TestVerifyCredentialTampered(t *testing.T) {
	secret := "session-secret"
	cred, err := SignCredential("voter_abc", secret)
	if err != nil {
		t.Fatalf("SignCredential() error = %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(cred)
	if err != nil {
		t.Fatalf("credential is not valid base64: %v", err)
	}

	for i := range raw {
		mutated := make([]byte, len(raw))
		copy(mutated, raw)
		mutated[i] ^= 0x01

		tampered := base64.StdEncoding.EncodeToString(mutated)
		if _, err := VerifyCredential(tampered, secret); err == nil {
			t.Fatalf("VerifyCredential() accepted credential with byte %d flipped", i)
		}
	}
}

func TestVerifyCredentialGarbage(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"not base64", "!!!not-base64!!!"},
		{"base64 but not json", base64.StdEncoding.EncodeToString([]byte("hello"))},
		{"valid json, no fields", base64.StdEncoding.EncodeToString([]byte("{}"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := VerifyCredential(tt.encoded, "secret"); err != ErrInvalidCredential {
				t.Errorf("VerifyCredential() error = %v, want %v", err, ErrInvalidCredential)
			}
		})
	}
}

func TestVerifyCredentialExpired(t *testing.T) {
	secret := "session-secret"

	// Build a correctly signed envelope whose timestamp is past the
	// max age.
	payload := credentialPayload{
		VoterID:   "voter_old",
		Timestamp: time.Now().Add(-CredentialMaxAge - time.Minute).UnixMilli(),
		Nonce:     "nonce-1",
	}
	sig, err := signPayload(payload, secret)
	if err != nil {
		t.Fatalf("signPayload() error = %v", err)
	}
	cred := encodeEnvelope(t, payload, sig)

	if _, err := VerifyCredential(cred, secret); err != ErrCredentialExpired {
		t.Errorf("VerifyCredential() error = %v, want %v", err, ErrCredentialExpired)
	}

	// Just inside the window still verifies
	payload.Timestamp = time.Now().Add(-CredentialMaxAge + time.Minute).UnixMilli()
	sig, _ = signPayload(payload, secret)
	cred = encodeEnvelope(t, payload, sig)

	if _, err := VerifyCredential(cred, secret); err != nil {
		t.Errorf("VerifyCredential() just inside max age error = %v", err)
	}
}

func encodeEnvelope(t *testing.T, payload credentialPayload, sig string) string {
	t.Helper()
	raw, err := json.Marshal(credentialEnvelope{
		credentialPayload: payload,
		Signature:         sig,
	})
	if err != nil {
		t.Fatalf("failed to encode envelope: %v", err)
	}
	return base64.StdEncoding.EncodeToString(raw)
}

func TestHashIP(t *testing.T) {
	hash := HashIP("192.168.1.1", "ip-salt")

	// Should be 16 hex characters (8 bytes * 2)
	if len(hash) != 16 {
		t.Errorf("HashIP() length = %d, want 16", len(hash))
	}

	if hash != HashIP("192.168.1.1", "ip-salt") {
		t.Error("HashIP() is not deterministic")
	}
	if hash == HashIP("192.168.1.2", "ip-salt") {
		t.Error("HashIP() produced same hash for different IPs")
	}
	if hash == HashIP("192.168.1.1", "other-salt") {
		t.Error("HashIP() produced same hash for different salts")
	}
}

// Benchmark tests
func BenchmarkHashToken(b *testing.B) {
	for i := 0; i < b.N; i++ {
		HashToken("VOTE_3f2504e0-4f89-11d3-9a0c-0305e82c3301_session-1", "token-secret")
	}
}

func BenchmarkSignCredential(b *testing.B) {
	for i := 0; i < b.N; i++ {
		SignCredential("voter_abc", "session-secret")
	}
}

func BenchmarkVerifyCredential(b *testing.B) {
	cred, _ := SignCredential("voter_abc", "session-secret")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		VerifyCredential(cred, "session-secret")
	}
}
