// Package crypt provides at-rest encryption for OAuth tokens using
// XChaCha20-Poly1305. Ciphertexts carry their random nonce as a prefix.
package crypt

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

var errCiphertextTooShort = errors.New("crypt: ciphertext too short")

// Cipher seals and opens small secrets with a key derived from a passphrase.
type Cipher struct {
	key []byte
}

// New derives a 256-bit key from the configured passphrase.
func New(passphrase string) (*Cipher, error) {
	if passphrase == "" {
		return nil, errors.New("crypt: empty encryption key")
	}
	sum := sha256.Sum256([]byte(passphrase))
	return &Cipher{key: sum[:]}, nil
}

// Seal encrypts value and returns nonce||ciphertext.
func (c *Cipher) Seal(value string) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return nil, fmt.Errorf("failed to construct cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return aead.Seal(nonce, nonce, []byte(value), nil), nil
}

// Open decrypts a value produced by Seal.
func (c *Cipher) Open(ciphertext []byte) (string, error) {
	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", fmt.Errorf("failed to construct cipher: %w", err)
	}

	if len(ciphertext) < aead.NonceSize() {
		return "", errCiphertextTooShort
	}

	nonce, sealed := ciphertext[:aead.NonceSize()], ciphertext[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt value: %w", err)
	}
	return string(plaintext), nil
}
