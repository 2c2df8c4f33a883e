// internal/form/csrf.go
//
// Jeevan – Forms: stateless CSRF tokens.
//
// Context
//   Every HTML form embeds a hidden `csrf_token` input generated at render
//   time.  The server verifies it on POST to ensure the request originated
//   from a page it rendered.  Tokens are stateless:
//
//      base64url( nonce | unixMicro | HMAC_SHA256(key, nonce+unixMicro) )
//
//   •  nonce – 16 random bytes.
//   •  unixMicro – microseconds since Unix epoch, 8 bytes, big-endian.
//   •  HMAC – keyed with `csrf.key` from configuration.
//
//   Verification checks the signature and that the timestamp is within
//   MaxAge.  No server-side session store is required, so any instance can
//   verify a token minted by another.
//
// Workflow
//   •  NewTokens(key, maxAge, log) → *Tokens, once at boot.
//   •  Generate()                 → token string for the renderer.
//   •  Verify(tok)                → constant-time verify; false on any failure.
//
//------------------------------------------------------------------------------

package form

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"time"

	"go.uber.org/zap"
)

// TokenField is the hidden input name.
const TokenField = "csrf_token"

const (
	nonceBytes = 16
	tokenBytes = nonceBytes + 8 + sha256.Size
	maxSkew    = time.Minute
)

// Tokens mints and checks CSRF tokens.
type Tokens struct {
	key    []byte
	maxAge time.Duration
	now    func() time.Time
}

// NewTokens returns a Tokens keyed with key.  An empty key generates a
// random one, which invalidates outstanding tokens on restart.
func NewTokens(key string, maxAge time.Duration, log *zap.SugaredLogger) *Tokens {
	t := &Tokens{key: []byte(key), maxAge: maxAge, now: time.Now}
	if len(t.key) == 0 {
		t.key = make([]byte, 32)
		_, _ = rand.Read(t.key)
		if log != nil {
			log.Warn("csrf.key not set, using an ephemeral key")
		}
	}
	return t
}

// Generate creates a new token.  Call once per form render.
func (t *Tokens) Generate() (string, error) {
	nonce := make([]byte, nonceBytes)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	ts := make([]byte, 8)
	binary.BigEndian.PutUint64(ts, uint64(t.now().UnixMicro()))

	buf := make([]byte, 0, tokenBytes)
	buf = append(buf, nonce...)
	buf = append(buf, ts...)
	buf = append(buf, t.sign(nonce, ts)...)

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Verify reports whether tok passes HMAC and age checks.
func (t *Tokens) Verify(tok string) bool {
	raw, err := base64.RawURLEncoding.DecodeString(tok)
	if err != nil || len(raw) != tokenBytes {
		return false
	}

	nonce := raw[:nonceBytes]
	tsBytes := raw[nonceBytes : nonceBytes+8]
	sig := raw[nonceBytes+8:]

	issued := time.UnixMicro(int64(binary.BigEndian.Uint64(tsBytes)))
	now := t.now()
	if now.Sub(issued) > t.maxAge || issued.Sub(now) > maxSkew {
		return false
	}

	return hmac.Equal(sig, t.sign(nonce, tsBytes))
}

func (t *Tokens) sign(nonce, ts []byte) []byte {
	mac := hmac.New(sha256.New, t.key)
	mac.Write(nonce)
	mac.Write(ts)
	return mac.Sum(nil)
}
