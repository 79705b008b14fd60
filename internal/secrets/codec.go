// Package secrets encodes user API keys for storage. The default mode is
// reversible obfuscation, not encryption: it only keeps keys from being
// read verbatim out of database dumps. Configuring a cipher key upgrades
// new writes to ChaCha20-Poly1305 while old obfuscated values stay
// readable.
package secrets

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
)

const (
	obfuscatedPrefix = "v1:"
	sealedPrefix     = "v2:"
)

var (
	// ErrCipherKeyMissing is returned when a sealed value is decoded
	// without a configured cipher key.
	ErrCipherKeyMissing = errors.New("cipher key required to decode sealed secret")
	// ErrMalformedSecret is returned when a stored value does not match
	// any known encoding.
	ErrMalformedSecret = errors.New("malformed stored secret")
)

var xorPad = []byte("promptvault-settings-pad")

// Codec encodes and decodes stored secrets.
type Codec struct {
	aead cipher.AEAD
}

// NewCodec builds a codec. An empty cipherKey selects obfuscation-only
// mode; any non-empty key is stretched to the AEAD key size. A failing
// cipher constructor degrades to obfuscation rather than disabling the
// surrounding mutations.
func NewCodec(cipherKey string) *Codec {
	if cipherKey == "" {
		return &Codec{}
	}
	sum := sha256.Sum256([]byte(cipherKey))
	aead, err := chacha20poly1305.NewX(sum[:])
	if err != nil {
		return &Codec{}
	}
	return &Codec{aead: aead}
}

// Encode returns the storable form of plaintext. With an AEAD configured
// the value is sealed under a random nonce; otherwise, or when the random
// source fails, it is XOR-obfuscated and base64 encoded.
func (c *Codec) Encode(plaintext string) string {
	if c.aead != nil {
		nonce := make([]byte, c.aead.NonceSize())
		if _, err := rand.Read(nonce); err == nil {
			sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
			return sealedPrefix + base64.StdEncoding.EncodeToString(sealed)
		}
	}
	return obfuscatedPrefix + base64.StdEncoding.EncodeToString(xor([]byte(plaintext)))
}

// Decode restores the plaintext from a stored value of either encoding.
func (c *Codec) Decode(encoded string) (string, error) {
	switch {
	case strings.HasPrefix(encoded, sealedPrefix):
		if c.aead == nil {
			return "", ErrCipherKeyMissing
		}
		raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(encoded, sealedPrefix))
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrMalformedSecret, err)
		}
		if len(raw) < c.aead.NonceSize() {
			return "", ErrMalformedSecret
		}
		nonce, ciphertext := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
		plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrMalformedSecret, err)
		}
		return string(plaintext), nil

	case strings.HasPrefix(encoded, obfuscatedPrefix):
		raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(encoded, obfuscatedPrefix))
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrMalformedSecret, err)
		}
		return string(xor(raw)), nil

	default:
		return "", ErrMalformedSecret
	}
}

func xor(b []byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[i] = b[i] ^ xorPad[i%len(xorPad)]
	}
	return out
}
