package merkle

import (
	"github.com/mit-pdos/deltaproof/cryptoffi"
)

// Tree holds every level of a delta tree built from known leaves.
// verifiers use it to recompute a root from a full leaf list.
type Tree struct {
	// levels[0] are the leaves. the last level is the root.
	levels [][][]byte
}

// NewTree builds the tree over leaves, in order.
// it doesn't copy leaves.
func NewTree(leaves [][]byte) *Tree {
	if len(leaves) == 0 {
		return &Tree{}
	}
	levels := [][][]byte{leaves}
	var curr = leaves
	for len(curr) > 1 {
		next := make([][]byte, 0, (len(curr)+1)/2)
		for i := 0; i < len(curr); i += 2 {
			if i+1 < len(curr) {
				next = append(next, Combine(curr[i], curr[i+1]))
			} else {
				next = append(next, Combine(curr[i], cryptoffi.ZeroHash()))
			}
		}
		levels = append(levels, next)
		curr = next
	}
	return &Tree{levels: levels}
}

// Len is the number of leaves.
func (t *Tree) Len() uint64 {
	if len(t.levels) == 0 {
		return 0
	}
	return uint64(len(t.levels[0]))
}

// Root of the empty tree is the padding digest.
func (t *Tree) Root() []byte {
	if len(t.levels) == 0 {
		return cryptoffi.ZeroHash()
	}
	return t.levels[len(t.levels)-1][0]
}

// Prove returns the path for the leaf at index.
// it errors if index is out of range.
func (t *Tree) Prove(index uint64) (*Proof, bool) {
	if index >= t.Len() {
		return nil, true
	}
	depth := len(t.levels) - 1
	sibs := make([][]byte, 0, depth)
	var pos = index
	for level := 0; level < depth; level++ {
		nodes := t.levels[level]
		sibPos := pos ^ 1
		if sibPos < uint64(len(nodes)) {
			sibs = append(sibs, nodes[sibPos])
		} else {
			sibs = append(sibs, cryptoffi.ZeroHash())
		}
		pos >>= 1
	}
	return &Proof{Index: index, Siblings: sibs}, false
}

// RootOf is the root of the tree over leaves.
func RootOf(leaves [][]byte) []byte {
	return NewTree(leaves).Root()
}
