// Package security seals archived webhook bodies at rest.
package security

import (
	"bytes"
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-paywebhooks/core"
)

type Option func(*AppKeyCipher) error

// AppKeyCipher seals bodies with AES-GCM under an application key. Bodies
// sealed under a retired key stay readable when that key is registered with
// WithRetiredKey. Unsealed input is returned unchanged by Decrypt.
type AppKeyCipher struct {
	current appKey
	retired map[string]appKey
}

type appKey struct {
	id      string
	version int
	key     []byte
}

func WithKeyID(id string) Option {
	return func(c *AppKeyCipher) error {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			c.current.id = trimmed
		}
		return nil
	}
}

func WithVersion(version int) Option {
	return func(c *AppKeyCipher) error {
		if version > 0 {
			c.current.version = version
		}
		return nil
	}
}

// WithRetiredKey keeps a previous key available for decryption only.
func WithRetiredKey(id string, version int, keyMaterial []byte) Option {
	return func(c *AppKeyCipher) error {
		id = strings.TrimSpace(id)
		material := bytes.TrimSpace(keyMaterial)
		if id == "" || len(material) == 0 {
			return fmt.Errorf("security: retired key requires id and key material")
		}
		c.retired[retiredKey(id, version)] = appKey{id: id, version: version, key: normalizeKey(material)}
		return nil
	}
}

func NewAppKeyCipher(keyMaterial []byte, opts ...Option) (*AppKeyCipher, error) {
	key := bytes.TrimSpace(keyMaterial)
	if len(key) == 0 {
		return nil, fmt.Errorf("security: key material is required")
	}
	c := &AppKeyCipher{
		current: appKey{id: "app-key", version: 1, key: normalizeKey(key)},
		retired: map[string]appKey{},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func NewAppKeyCipherFromString(key string, opts ...Option) (*AppKeyCipher, error) {
	return NewAppKeyCipher([]byte(key), opts...)
}

func (c *AppKeyCipher) Encrypt(_ context.Context, plaintext []byte) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("security: cipher is nil")
	}
	if len(plaintext) == 0 {
		return nil, fmt.Errorf("security: plaintext is required")
	}
	gcm, err := newGCM(c.current.key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("security: nonce generation failed: %w", err)
	}
	return encodeEnvelope(envelope{
		KeyID:      c.current.id,
		Version:    c.current.version,
		Algorithm:  envelopeAlgorithm,
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		Ciphertext: base64.StdEncoding.EncodeToString(gcm.Seal(nil, nonce, plaintext, nil)),
	})
}

func (c *AppKeyCipher) Decrypt(_ context.Context, data []byte) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("security: cipher is nil")
	}
	if !IsSealed(data) {
		return append([]byte(nil), data...), nil
	}
	env, err := decodeEnvelope(data)
	if err != nil {
		return nil, err
	}
	if env.Algorithm != envelopeAlgorithm {
		return nil, fmt.Errorf("security: unsupported algorithm %q", env.Algorithm)
	}
	key, err := c.keyFor(env)
	if err != nil {
		return nil, err
	}
	nonce, err := decodeBase64("nonce", env.Nonce)
	if err != nil {
		return nil, err
	}
	sealed, err := decodeBase64("ciphertext", env.Ciphertext)
	if err != nil {
		return nil, err
	}
	gcm, err := newGCM(key.key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != gcm.NonceSize() {
		return nil, fmt.Errorf("security: invalid nonce size %d", len(nonce))
	}
	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("security: decrypt payload: %w", err)
	}
	return plaintext, nil
}

func (c *AppKeyCipher) KeyID() string {
	if c == nil {
		return ""
	}
	return c.current.id
}

func (c *AppKeyCipher) Version() int {
	if c == nil {
		return 0
	}
	return c.current.version
}

func (c *AppKeyCipher) keyFor(env envelope) (appKey, error) {
	if env.KeyID == "" || (env.KeyID == c.current.id && (env.Version == 0 || env.Version == c.current.version)) {
		return c.current, nil
	}
	if key, ok := c.retired[retiredKey(env.KeyID, env.Version)]; ok {
		return key, nil
	}
	return appKey{}, fmt.Errorf("security: no key for id %q version %d", env.KeyID, env.Version)
}

func retiredKey(id string, version int) string {
	return fmt.Sprintf("%s#%d", id, version)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("security: create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("security: create gcm: %w", err)
	}
	return gcm, nil
}

func normalizeKey(value []byte) []byte {
	if len(value) == 32 {
		return append([]byte(nil), value...)
	}
	sum := sha256.Sum256(value)
	return sum[:]
}

var _ core.BodyCipher = (*AppKeyCipher)(nil)
