package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"
)

// ErrInvalidToken is returned by Verify for every failure mode: malformed
// encoding, malformed payload, or expiry.
var ErrInvalidToken = errors.New("invalid token")

// TokenPayload is the self-describing content of a bearer token.
type TokenPayload struct {
	Username  string `json:"username"`
	IssuedAt  int64  `json:"issuedAt"`
	ExpiresAt int64  `json:"expiresAt"`
}

// TokenCodec issues and verifies bearer tokens. Tokens are base64url-encoded
// JSON with no signature and no encryption: anyone who can read one can
// forge another. Validity is purely time-bounded; there is no revocation,
// so an issued token outlives even deletion of its user. Both are
// documented legacy properties of the system, not defects to patch here.
type TokenCodec struct {
	ttl time.Duration
}

// NewTokenCodec builds a codec with the given token lifetime.
func NewTokenCodec(ttl time.Duration) *TokenCodec {
	return &TokenCodec{ttl: ttl}
}

// Issue builds a token for the username, valid for the configured TTL.
func (c *TokenCodec) Issue(username string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(c.ttl)
	payload := TokenPayload{
		Username:  username,
		IssuedAt:  now.UnixMilli(),
		ExpiresAt: expiresAt.UnixMilli(),
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", time.Time{}, err
	}
	return base64.RawURLEncoding.EncodeToString(raw), expiresAt, nil
}

// Verify decodes a token and checks expiry. All decode failures collapse to
// ErrInvalidToken; Verify never panics past its boundary.
func (c *TokenCodec) Verify(token string) (*TokenPayload, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var payload TokenPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, ErrInvalidToken
	}
	if payload.Username == "" {
		return nil, ErrInvalidToken
	}
	if payload.ExpiresAt <= time.Now().UnixMilli() {
		return nil, ErrInvalidToken
	}
	return &payload, nil
}
