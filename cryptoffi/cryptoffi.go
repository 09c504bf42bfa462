// Package cryptoffi wraps the hash functions used by delta proofs.
// the bank hash and the delta tree use SHA-256.
// account state hashes use BLAKE3.
package cryptoffi

import (
	"crypto/sha256"
	"hash"

	"github.com/zeebo/blake3"
)

const (
	HashLen uint64 = 32
)

// # Hash

func Hash(data []byte) []byte {
	h := sha256.Sum256(data)
	return h[:]
}

// NewHasher returns a streaming SHA-256 hasher.
func NewHasher() hash.Hash {
	return sha256.New()
}

// ZeroHash is the all-zero digest.
// nothing hashes to it, so it doubles as the padding and "no value" marker.
func ZeroHash() []byte {
	return make([]byte, HashLen)
}

// # Account hash

// NewAccountHasher returns the BLAKE3 hasher used for account state hashes.
func NewAccountHasher() hash.Hash {
	return blake3.New()
}
