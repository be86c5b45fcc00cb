// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

var _ SignerInterface = (*Signer)(nil)

// Signer produces keyed MACs (HMAC-SHA256). The label gives each caller
// its own MAC domain so a session artifact can never be replayed as a
// handoff envelope or vice versa.
type Signer struct {
	key []byte
}

func NewSigner(key []byte) (*Signer, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("signing key must be %d bytes, got %d", keySize, len(key))
	}

	return &Signer{key: key}, nil
}

func (s *Signer) Sign(label string, data []byte) string {
	return base64.RawURLEncoding.EncodeToString(s.mac(label, data))
}

// Verify compares in constant time.
func (s *Signer) Verify(label string, data []byte, mac string) bool {
	raw, err := base64.RawURLEncoding.DecodeString(mac)
	if err != nil {
		return false
	}

	return hmac.Equal(raw, s.mac(label, data))
}

func (s *Signer) mac(label string, data []byte) []byte {
	h := hmac.New(sha256.New, s.key)
	h.Write([]byte(label))
	h.Write([]byte{0})
	h.Write(data)
	return h.Sum(nil)
}
