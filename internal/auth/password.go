package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HashPassword computes the keyed hash stored in the credential store:
// hex(HMAC-SHA256(password, key)). Deterministic on purpose: login compares
// stored hashes by equality, so the same password under the same key must
// always produce the same value. The key is shared by the whole deployment,
// which means equal passwords collide across accounts; configure
// AUTH_HASH_KEY per deployment, never ship the dev default.
func HashPassword(password, key string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(password))
	return hex.EncodeToString(mac.Sum(nil))
}
