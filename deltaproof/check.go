package deltaproof

import (
	"bytes"
	"math/bits"

	"github.com/mit-pdos/deltaproof/account"
	"github.com/mit-pdos/deltaproof/cryptoffi"
	"github.com/mit-pdos/deltaproof/merkle"
)

// Checker validates proofs against a delta root.
// the zero value treats record metadata as opaque.
type Checker struct {
	// StateHash additionally decodes each leaf's metadata
	// and checks it against the leaf's state hash.
	StateHash bool
}

// Check routes p to its variant's check.
// it returns nil if p holds against root.
// the returned error has no slot set.
func (c *Checker) Check(p AccountDeltaProof, root []byte) *Error {
	if p == nil {
		return &Error{Kind: MalformedProof, Msg: "missing proof"}
	}
	if p.isNil() {
		return fail(p, MalformedProof, "missing proof")
	}
	if uint64(len(p.Queried())) != cryptoffi.HashLen {
		return fail(p, MalformedProof, "queried pubkey isn't a digest")
	}
	switch p := p.(type) {
	case *Inclusion:
		return c.checkInclusion(p, root)
	case *NonInclusionInner:
		return c.checkInner(p, root)
	case *NonInclusionLeft:
		return c.checkLeft(p, root)
	case *NonInclusionRight:
		return c.checkRight(p, root)
	default:
		panic("deltaproof: unknown proof variant")
	}
}

// leafCheck is the outcome of checking one leaf's path.
type leafCheck struct {
	digest []byte
	levels [][]byte
	kind   Kind
	msg    string
}

func (c *Checker) checkLeaf(l *Leaf, root []byte) *leafCheck {
	if l.Record == nil || l.Proof == nil {
		return &leafCheck{kind: MalformedProof, msg: "missing leaf"}
	}
	digest, err := account.LeafHash(l.Record)
	if err {
		return &leafCheck{kind: MalformedProof, msg: "bad account record"}
	}
	if c.StateHash && account.CheckStateHash(l.Record) {
		return &leafCheck{kind: MalformedProof, msg: "state hash doesn't match metadata"}
	}
	levels, err := merkle.Levels(digest, l.Proof)
	if err {
		return &leafCheck{kind: MalformedProof, msg: "bad merkle path"}
	}
	if !bytes.Equal(levels[len(levels)-1], root) {
		return &leafCheck{kind: RootMismatch, msg: "path doesn't reach delta root"}
	}
	return &leafCheck{digest: digest, levels: levels}
}

func (c *Checker) checkInclusion(p *Inclusion, root []byte) *Error {
	if p.Leaf.Record == nil || !bytes.Equal(p.Leaf.Record.Pubkey, p.Pubkey) {
		return fail(p, MalformedProof, "record pubkey differs from queried pubkey")
	}
	if lc := c.checkLeaf(&p.Leaf, root); lc.kind != KindNone {
		return fail(p, lc.kind, lc.msg)
	}
	return nil
}

func (c *Checker) checkInner(p *NonInclusionInner, root []byte) *Error {
	left := c.checkLeaf(&p.Left, root)
	if left.kind != KindNone {
		return fail(p, left.kind, "left leaf: "+left.msg)
	}
	right := c.checkLeaf(&p.Right, root)
	if right.kind != KindNone {
		return fail(p, right.kind, "right leaf: "+right.msg)
	}
	if len(left.levels) != len(right.levels) {
		return fail(p, MalformedProof, "leaf paths have different lengths")
	}
	if !adjacent(p.Left.Proof, left.levels, p.Right.Proof, right.levels) {
		return fail(p, OrderingViolation, "leaves aren't adjacent in the tree")
	}
	if account.Compare(p.Left.Record.Pubkey, p.Pubkey) >= 0 ||
		account.Compare(p.Pubkey, p.Right.Record.Pubkey) >= 0 {
		return fail(p, OrderingViolation, "queried pubkey isn't strictly between leaves")
	}
	return nil
}

// adjacent checks that r is the leaf right after l.
// beyond consecutive indices, the paths must agree from their lowest
// shared ancestor upward: at the level they diverge, each side's running
// digest is the other's sibling, and every sibling above that is shared.
// both paths are assumed to have the same length.
func adjacent(l *merkle.Proof, lLevels [][]byte, r *merkle.Proof, rLevels [][]byte) bool {
	if l.Index == ^uint64(0) || r.Index != l.Index+1 {
		return false
	}
	// the highest differing bit is the level below the shared ancestor.
	split := uint64(bits.Len64(l.Index^r.Index)) - 1
	if split >= uint64(len(l.Siblings)) {
		return false
	}
	if !bytes.Equal(l.Siblings[split], rLevels[split]) ||
		!bytes.Equal(r.Siblings[split], lLevels[split]) {
		return false
	}
	for level := split + 1; level < uint64(len(l.Siblings)); level++ {
		if !bytes.Equal(l.Siblings[level], r.Siblings[level]) {
			return false
		}
	}
	return true
}

func (c *Checker) checkLeft(p *NonInclusionLeft, root []byte) *Error {
	lc := c.checkLeaf(&p.Leaf, root)
	if lc.kind != KindNone {
		return fail(p, lc.kind, lc.msg)
	}
	// index 0 means every position bit is left.
	if p.Leaf.Proof.Index != 0 {
		return fail(p, OrderingViolation, "leaf isn't leftmost")
	}
	if account.Compare(p.Pubkey, p.Leaf.Record.Pubkey) >= 0 {
		return fail(p, OrderingViolation, "queried pubkey doesn't sort before leftmost leaf")
	}
	return nil
}

func (c *Checker) checkRight(p *NonInclusionRight, root []byte) *Error {
	lc := c.checkLeaf(&p.Leaf, root)
	if lc.kind != KindNone {
		return fail(p, lc.kind, lc.msg)
	}
	// a left turn is only allowed against padding, i.e., no real node to the right.
	proof := p.Leaf.Proof
	for level, sib := range proof.Siblings {
		if merkle.IsLeft(proof.Index, uint64(level)) && !merkle.IsPadding(sib) {
			return fail(p, OrderingViolation, "leaf isn't rightmost")
		}
	}

	n := uint64(len(p.Leaves))
	if n == 0 {
		return fail(p, SizeMismatch, "empty leaf list")
	}
	for _, h := range p.Leaves {
		if uint64(len(h)) != cryptoffi.HashLen {
			return fail(p, MalformedProof, "leaf list entry isn't a digest")
		}
	}
	if !bytes.Equal(merkle.RootOf(p.Leaves), root) {
		return fail(p, SizeMismatch, "leaf list doesn't reach delta root")
	}
	if proof.Index != n-1 || !bytes.Equal(p.Leaves[n-1], lc.digest) {
		return fail(p, SizeMismatch, "leaf isn't last in leaf list")
	}
	if merkle.VerifyCount(lc.digest, proof, root, n) != merkle.ErrNone {
		return fail(p, SizeMismatch, "path length doesn't fit leaf count")
	}

	if account.Compare(p.Pubkey, p.Leaf.Record.Pubkey) <= 0 {
		return fail(p, OrderingViolation, "queried pubkey doesn't sort after rightmost leaf")
	}
	return nil
}
