// Package deltatest builds account deltas and their proofs for tests.
package deltatest

import (
	"encoding/binary"

	"github.com/mit-pdos/deltaproof/account"
	"github.com/mit-pdos/deltaproof/cryptoffi"
	"github.com/mit-pdos/deltaproof/deltaproof"
	"github.com/mit-pdos/deltaproof/merkle"
)

// Spacing between consecutive pubkeys in a [Delta],
// leaving room for absent keys in between.
const Spacing = 16

// Key makes a pubkey that sorts by v.
func Key(v uint64) []byte {
	k := make([]byte, cryptoffi.HashLen)
	binary.BigEndian.PutUint64(k, v)
	return k
}

// Delta is a sorted account delta with its tree.
// account i has pubkey Key((i+1)*Spacing).
type Delta struct {
	Records []*account.Record
	Leaves  [][]byte
	Tree    *merkle.Tree
}

func NewDelta(n int) *Delta {
	var records []*account.Record
	for i := 0; i < n; i++ {
		pk := Key(uint64(i+1) * Spacing)
		info := &account.Info{
			Lamports:     uint64(1_000 * (i + 1)),
			Owner:        cryptoffi.Hash([]byte("owner")),
			RentEpoch:    uint64(i),
			Data:         []byte{byte(i), byte(i >> 8)},
			WriteVersion: uint64(i),
			Slot:         1,
		}
		r := &account.Record{
			Pubkey:    pk,
			StateHash: account.StateHash(pk, info),
			Metadata:  account.InfoEncode(nil, info),
		}
		records = append(records, r)
	}
	return FromRecords(records)
}

// FromRecords builds the delta over records, which must be sorted by pubkey.
func FromRecords(records []*account.Record) *Delta {
	d := &Delta{Records: records}
	for _, r := range records {
		leaf, err := account.LeafHash(r)
		if err {
			panic("deltatest: bad record")
		}
		d.Leaves = append(d.Leaves, leaf)
	}
	d.Tree = merkle.NewTree(d.Leaves)
	return d
}

func (d *Delta) Root() []byte {
	return d.Tree.Root()
}

// PresentKey is the pubkey of account i.
func (d *Delta) PresentKey(i int) []byte {
	return d.Records[i].Pubkey
}

// AbsentKey is a pubkey right after account i.
// i = -1 gives a key before every account.
func (d *Delta) AbsentKey(i int) []byte {
	return Key(uint64(i+1)*Spacing + 1)
}

func (d *Delta) Leaf(i int) deltaproof.Leaf {
	proof, err := d.Tree.Prove(uint64(i))
	if err {
		panic("deltatest: index out of range")
	}
	return deltaproof.Leaf{Record: d.Records[i], Proof: proof}
}

func (d *Delta) Inclusion(i int) *deltaproof.Inclusion {
	return &deltaproof.Inclusion{Pubkey: d.PresentKey(i), Leaf: d.Leaf(i)}
}

// Inner brackets queried with accounts i and i+1.
func (d *Delta) Inner(i int, queried []byte) *deltaproof.NonInclusionInner {
	return &deltaproof.NonInclusionInner{Pubkey: queried, Left: d.Leaf(i), Right: d.Leaf(i + 1)}
}

func (d *Delta) Left(queried []byte) *deltaproof.NonInclusionLeft {
	return &deltaproof.NonInclusionLeft{Pubkey: queried, Leaf: d.Leaf(0)}
}

func (d *Delta) Right(queried []byte) *deltaproof.NonInclusionRight {
	last := len(d.Records) - 1
	leaves := make([][]byte, len(d.Leaves))
	copy(leaves, d.Leaves)
	return &deltaproof.NonInclusionRight{Pubkey: queried, Leaf: d.Leaf(last), Leaves: leaves}
}

// NonInclusion picks the right witness for an absent key.
func (d *Delta) NonInclusion(queried []byte) deltaproof.AccountDeltaProof {
	if account.Compare(queried, d.Records[0].Pubkey) < 0 {
		return d.Left(queried)
	}
	last := len(d.Records) - 1
	if account.Compare(queried, d.Records[last].Pubkey) > 0 {
		return d.Right(queried)
	}
	for i := 0; i < last; i++ {
		if account.Compare(queried, d.Records[i+1].Pubkey) < 0 {
			return d.Inner(i, queried)
		}
	}
	panic("deltatest: queried key is present")
}
