// SPDX-FileCopyrightText: 2025 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

// Package anonkey implements the secret key material shared by the
// PRF-driven engines: a 32-byte secret plus a 16-byte padding block
// used as the second input to the prefix-preserving construction.
package anonkey

import (
	"crypto/sha256"
	"encoding/binary"
	"io"

	cryptorand "crypto/rand"
)

// Size of the secret (K) and padding (pad) blocks.
const (
	KeySize = 32
	PadSize = 16
)

// Key is the immutable-after-construction secret used to drive the
// PRF. Multiple engines may share one Key.
type Key struct {
	k   [KeySize]byte
	pad [PadSize]byte
	set bool
}

// New returns an empty key. Call SetRandom or SetPassphrase before
// handing it to an engine.
func New() *Key {
	return &Key{}
}

// SetRandom fills K and pad from a CSPRNG. A nil source defaults to
// the operating system's CSPRNG.
func (k *Key) SetRandom(src io.Reader) error {
	if src == nil {
		src = cryptorand.Reader
	}
	if _, err := io.ReadFull(src, k.k[:]); err != nil {
		return err
	}
	if _, err := io.ReadFull(src, k.pad[:]); err != nil {
		return err
	}
	k.set = true
	return nil
}

// SetPassphrase derives K ∥ pad from a digest of the passphrase.
// The leading 32 bytes of the digest stream become K, the following
// 16 bytes become pad. SHA-256 only produces 32 bytes per round, so
// the stream is extended by digesting digest(p) ∥ counter for
// counter = 0, 1, … until at least 48 bytes have been produced. The
// derivation is deterministic in p.
func (k *Key) SetPassphrase(passphrase []byte) {
	root := sha256.Sum256(passphrase)
	stream := append([]byte{}, root[:]...)
	for counter := uint64(0); len(stream) < KeySize+PadSize; counter++ {
		var cb [8]byte
		binary.BigEndian.PutUint64(cb[:], counter)
		round := sha256.New()
		round.Write(root[:])
		round.Write(cb[:])
		stream = append(stream, round.Sum(nil)...)
	}
	copy(k.k[:], stream[:KeySize])
	copy(k.pad[:], stream[KeySize:KeySize+PadSize])
	k.set = true
}

// Bytes returns read-only copies of K and pad for use by engines.
func (k *Key) Bytes() (secret [KeySize]byte, pad [PadSize]byte) {
	return k.k, k.pad
}

// IsSet reports whether the key has been seeded by SetRandom or
// SetPassphrase.
func (k *Key) IsSet() bool {
	return k.set
}

// Delete zeroizes the key material. The Key must not be used
// afterwards.
func (k *Key) Delete() {
	for i := range k.k {
		k.k[i] = 0
	}
	for i := range k.pad {
		k.pad[i] = 0
	}
	k.set = false
}
