package auth

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

var errSealedTokenInvalid = errors.New("sealed token is invalid")

// keySalt is fixed so the same secret derives the same key on every replica
var keySalt = []byte("rockquest-admin/session-token/v1")

// Sealer encrypts backend tokens before they are written to session storage
type Sealer struct {
	key []byte
}

// NewSealer derives a sealing key from secret. An empty secret yields a random
// key, which means sessions do not survive a restart.
func NewSealer(secret string) (*Sealer, error) {
	if secret == "" {
		key := make([]byte, chacha20poly1305.KeySize)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate session key: %w", err)
		}
		return &Sealer{key: key}, nil
	}
	key := argon2.IDKey([]byte(secret), keySalt, 1, 64*1024, 4, chacha20poly1305.KeySize)
	return &Sealer{key: key}, nil
}

// Seal encrypts token, binding it to the session id
func (s *Sealer) Seal(token string, sessionID string) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(token)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	return aead.Seal(nonce, nonce, []byte(token), []byte(sessionID)), nil
}

// Open decrypts a token sealed for sessionID
func (s *Sealer) Open(sealed []byte, sessionID string) (string, error) {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return "", err
	}

	if len(sealed) < aead.NonceSize() {
		return "", errSealedTokenInvalid
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ciphertext, []byte(sessionID))
	if err != nil {
		return "", errSealedTokenInvalid
	}
	return string(plain), nil
}
