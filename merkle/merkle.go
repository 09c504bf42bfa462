// Package merkle verifies paths in the binary account delta tree.
//
// interior nodes hash as H(left || right).
// a level with an odd number of nodes pairs its last node
// with the all-zero padding digest on the right.
// the position bit at level k is bit k of the leaf index,
// so a tree of n leaves has every path of length [Depth](n).
package merkle

import (
	"bytes"
	"math/bits"

	"github.com/mit-pdos/deltaproof/cryptoffi"
	"github.com/mit-pdos/deltaproof/cryptoutil"
)

const (
	ErrNone      uint64 = 0
	ErrMalformed uint64 = 1
	ErrMismatch  uint64 = 2
)

// maxDepth bounds paths so index bits fit in a uint64.
const maxDepth = 64

// Proof is a leaf's sibling path.
type Proof struct {
	// Index of the leaf. bit k gives the position at level k.
	Index uint64
	// Siblings from the leaf's level up to the root's children.
	Siblings [][]byte
}

// Combine is the order-sensitive interior node hash.
func Combine(left, right []byte) []byte {
	var b = make([]byte, 0, 2*cryptoffi.HashLen)
	b = append(b, left...)
	b = append(b, right...)
	return cryptoutil.Hash(b)
}

// IsLeft reports if the path of index goes left at level.
func IsLeft(index uint64, level uint64) bool {
	return (index>>level)&1 == 0
}

// IsPadding reports if h is the padding digest.
func IsPadding(h []byte) bool {
	return bytes.Equal(h, cryptoffi.ZeroHash())
}

// Levels walks the path from leaf up.
// levels[0] is the leaf and levels[len(proof.Siblings)] the candidate root.
// it errors on a malformed proof.
func Levels(leaf []byte, proof *Proof) ([][]byte, bool) {
	if proof == nil || uint64(len(leaf)) != cryptoffi.HashLen {
		return nil, true
	}
	depth := uint64(len(proof.Siblings))
	if depth > maxDepth {
		return nil, true
	}
	// index needs more bits than the path has.
	if depth < maxDepth && proof.Index>>depth != 0 {
		return nil, true
	}

	levels := make([][]byte, 0, depth+1)
	var curr = leaf
	levels = append(levels, curr)
	for level := uint64(0); level < depth; level++ {
		sib := proof.Siblings[level]
		if uint64(len(sib)) != cryptoffi.HashLen {
			return nil, true
		}
		if IsLeft(proof.Index, level) {
			curr = Combine(curr, sib)
		} else {
			curr = Combine(sib, curr)
		}
		levels = append(levels, curr)
	}
	return levels, false
}

// ComputeRoot returns the root that proof implies for leaf.
// an empty path makes the leaf its own root.
func ComputeRoot(leaf []byte, proof *Proof) ([]byte, bool) {
	levels, err := Levels(leaf, proof)
	if err {
		return nil, true
	}
	return levels[len(levels)-1], false
}

// Verify checks proof for leaf against root.
func Verify(leaf []byte, proof *Proof, root []byte) uint64 {
	computed, err := ComputeRoot(leaf, proof)
	if err {
		return ErrMalformed
	}
	if !bytes.Equal(computed, root) {
		return ErrMismatch
	}
	return ErrNone
}

// VerifyCount is [Verify] for a tree known to have leafCount leaves.
// it rejects paths whose length or index don't fit that tree.
func VerifyCount(leaf []byte, proof *Proof, root []byte, leafCount uint64) uint64 {
	if proof == nil || leafCount == 0 {
		return ErrMalformed
	}
	if proof.Index >= leafCount || uint64(len(proof.Siblings)) != Depth(leafCount) {
		return ErrMalformed
	}
	return Verify(leaf, proof, root)
}

// Depth is the path length in a tree of leafCount leaves.
func Depth(leafCount uint64) uint64 {
	if leafCount <= 1 {
		return 0
	}
	return uint64(bits.Len64(leafCount - 1))
}
