// Package bankhash recombines a slot's commitments into its bank hash:
//
//	H(parentBankHash || accountDeltaRoot || numSigs (le64) || blockhash)
package bankhash

import (
	"bytes"

	"github.com/mit-pdos/deltaproof/cryptoffi"
	"github.com/mit-pdos/deltaproof/deltaproof"
	"github.com/tchajed/marshal"
)

// Context groups the values one update is checked against,
// so they can't be passed out of order.
type Context struct {
	Slot uint64
	// Claimed is the bank hash the sender claims for Slot.
	Claimed          []byte
	NumSigs          uint64
	AccountDeltaRoot []byte
	ParentBankHash   []byte
	BlockHash        []byte
}

// Compute is the bank hash of the given commitments.
func Compute(parent, deltaRoot []byte, numSigs uint64, blockhash []byte) []byte {
	var b = make([]byte, 0, 3*cryptoffi.HashLen+8)
	b = append(b, parent...)
	b = append(b, deltaRoot...)
	b = marshal.WriteInt(b, numSigs)
	b = append(b, blockhash...)
	return cryptoffi.Hash(b)
}

// BankHash reconstructs the bank hash from c.
func (c *Context) BankHash() []byte {
	return Compute(c.ParentBankHash, c.AccountDeltaRoot, c.NumSigs, c.BlockHash)
}

// Check returns the reconstructed bank hash and,
// if it differs from the claimed one, a [deltaproof.BankHashMismatch].
// malformed digests in c are a [deltaproof.MalformedProof].
func (c *Context) Check() ([]byte, *deltaproof.Error) {
	for _, h := range [][]byte{c.Claimed, c.AccountDeltaRoot, c.ParentBankHash, c.BlockHash} {
		if uint64(len(h)) != cryptoffi.HashLen {
			return nil, &deltaproof.Error{Kind: deltaproof.MalformedProof, Slot: c.Slot, Msg: "bank hash input isn't a digest"}
		}
	}
	got := c.BankHash()
	if !bytes.Equal(got, c.Claimed) {
		return got, &deltaproof.Error{Kind: deltaproof.BankHashMismatch, Slot: c.Slot, Msg: "reconstructed bank hash differs from claimed"}
	}
	return got, nil
}
