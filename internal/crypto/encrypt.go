// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

// ErrInvalid is the only error Decrypt ever returns for bad input.
// Tampered, truncated and wrong-key blobs are indistinguishable to the
// caller so that nothing usable leaks across the trust boundary.
var ErrInvalid = errors.New("invalid ciphertext")

const keySize = 32

var _ EncrypterInterface = (*Encrypter)(nil)

// Encrypter performs authenticated symmetric encryption (AES-256-GCM)
// with a process-wide key sourced from configuration.
type Encrypter struct {
	aead cipher.AEAD
}

func NewEncrypter(key []byte) (*Encrypter, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", keySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise AEAD: %w", err)
	}

	return &Encrypter{aead: aead}, nil
}

// Encrypt seals the plaintext and returns base64url(nonce || ciphertext).
func (e *Encrypter) Encrypt(plaintext []byte) (string, error) {
	nonce := make([]byte, e.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := e.aead.Seal(nonce, nonce, plaintext, nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a blob produced by Encrypt. Every failure mode collapses
// to ErrInvalid.
func (e *Encrypter) Decrypt(blob string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(blob)
	if err != nil {
		return nil, ErrInvalid
	}

	if len(raw) < e.aead.NonceSize() {
		return nil, ErrInvalid
	}

	nonce, ciphertext := raw[:e.aead.NonceSize()], raw[e.aead.NonceSize():]
	plaintext, err := e.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrInvalid
	}

	return plaintext, nil
}
