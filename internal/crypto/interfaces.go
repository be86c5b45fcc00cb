// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package crypto

type EncrypterInterface interface {
	Encrypt(plaintext []byte) (string, error)
	Decrypt(blob string) ([]byte, error)
}

type SignerInterface interface {
	Sign(label string, data []byte) string
	Verify(label string, data []byte, mac string) bool
}
