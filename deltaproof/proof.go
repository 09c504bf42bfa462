// Package deltaproof checks that an account was, or wasn't,
// in the set of accounts a slot changed.
//
// the delta tree's leaves are sorted by pubkey.
// absence is shown by a boundary leaf (leftmost or rightmost)
// or by two tree-adjacent leaves that bracket the queried pubkey.
package deltaproof

import (
	"fmt"

	"github.com/mit-pdos/deltaproof/account"
	"github.com/mit-pdos/deltaproof/merkle"
)

// Variant tags the proof kinds. the values are the wire discriminants.
type Variant byte

const (
	VariantInclusion Variant = 0
	VariantInner     Variant = 1
	VariantLeft      Variant = 2
	VariantRight     Variant = 3
)

func (v Variant) String() string {
	switch v {
	case VariantInclusion:
		return "inclusion"
	case VariantInner:
		return "non-inclusion-inner"
	case VariantLeft:
		return "non-inclusion-left"
	case VariantRight:
		return "non-inclusion-right"
	}
	return fmt.Sprintf("variant(%d)", byte(v))
}

// AccountDeltaProof is implemented by exactly
// [*Inclusion], [*NonInclusionInner], [*NonInclusionLeft], and [*NonInclusionRight].
type AccountDeltaProof interface {
	Variant() Variant
	// Queried is the pubkey the proof is about.
	// it's nil for a nil proof.
	Queried() []byte
	// isNil reports a typed nil, which the interface nil check misses.
	isNil() bool
}

// Leaf is a record with its path in the delta tree.
type Leaf struct {
	Record *account.Record
	Proof  *merkle.Proof
}

// Inclusion shows Pubkey's record is in the delta.
type Inclusion struct {
	Pubkey []byte
	Leaf   Leaf
}

// NonInclusionInner shows Pubkey is absent
// via two adjacent leaves, Left < Pubkey < Right.
type NonInclusionInner struct {
	Pubkey []byte
	Left   Leaf
	Right  Leaf
}

// NonInclusionLeft shows Pubkey sorts before the leftmost leaf.
type NonInclusionLeft struct {
	Pubkey []byte
	Leaf   Leaf
}

// NonInclusionRight shows Pubkey sorts after the rightmost leaf.
// Leaves has every leaf digest, which pins down the tree size.
type NonInclusionRight struct {
	Pubkey []byte
	Leaf   Leaf
	Leaves [][]byte
}

func (*Inclusion) Variant() Variant         { return VariantInclusion }
func (*NonInclusionInner) Variant() Variant { return VariantInner }
func (*NonInclusionLeft) Variant() Variant  { return VariantLeft }
func (*NonInclusionRight) Variant() Variant { return VariantRight }

func (p *Inclusion) Queried() []byte {
	if p == nil {
		return nil
	}
	return p.Pubkey
}

func (p *NonInclusionInner) Queried() []byte {
	if p == nil {
		return nil
	}
	return p.Pubkey
}

func (p *NonInclusionLeft) Queried() []byte {
	if p == nil {
		return nil
	}
	return p.Pubkey
}

func (p *NonInclusionRight) Queried() []byte {
	if p == nil {
		return nil
	}
	return p.Pubkey
}

func (p *Inclusion) isNil() bool         { return p == nil }
func (p *NonInclusionInner) isNil() bool { return p == nil }
func (p *NonInclusionLeft) isNil() bool  { return p == nil }
func (p *NonInclusionRight) isNil() bool { return p == nil }
