// Package account encodes account records into delta-tree leaves.
//
// the canonical leaf layout is
//
//	pubkey (32) || stateHash (32) || len(metadata) (le64) || metadata
//
// which is also the record's wire encoding.
// the length prefix keeps leaf preimages at >= 72 bytes,
// so a leaf can never be confused with a 64-byte interior node.
package account

import (
	"bytes"

	"github.com/mit-pdos/deltaproof/cryptoffi"
	"github.com/tchajed/marshal"
)

// Record is one leaf of the account delta tree.
type Record struct {
	Pubkey []byte
	// StateHash digests the account contents.
	StateHash []byte
	// Metadata is opaque to the tree. see [Info] for its usual contents.
	Metadata []byte
}

// Info is the account state usually carried in [Record.Metadata].
type Info struct {
	Lamports     uint64
	Owner        []byte
	Executable   bool
	RentEpoch    uint64
	Data         []byte
	WriteVersion uint64
	Slot         uint64
}

// LeafHash computes the leaf digest of r.
// it errors if the pubkey or state hash isn't a digest.
// metadata is hashed as-is.
func LeafHash(r *Record) ([]byte, bool) {
	if !wellFormed(r) {
		return nil, true
	}
	b := make([]byte, 0, 2*cryptoffi.HashLen+8+uint64(len(r.Metadata)))
	b = RecordEncode(b, r)
	return cryptoffi.Hash(b), false
}

func wellFormed(r *Record) bool {
	return r != nil &&
		uint64(len(r.Pubkey)) == cryptoffi.HashLen &&
		uint64(len(r.StateHash)) == cryptoffi.HashLen
}

// StateHash computes the account hash of (pubkey, info).
// accounts with zero lamports hash to the zero digest.
func StateHash(pubkey []byte, info *Info) []byte {
	if info.Lamports == 0 {
		return cryptoffi.ZeroHash()
	}
	hr := cryptoffi.NewAccountHasher()
	var b = make([]byte, 0, 16)
	b = marshal.WriteInt(b, info.Lamports)
	b = marshal.WriteInt(b, info.RentEpoch)
	hr.Write(b)
	hr.Write(info.Data)
	if info.Executable {
		hr.Write([]byte{1})
	} else {
		hr.Write([]byte{0})
	}
	hr.Write(info.Owner)
	hr.Write(pubkey)
	return hr.Sum(nil)
}

// CheckStateHash decodes r's metadata as an [Info]
// and checks it against r's state hash.
// it errors on undecodable metadata or a hash mismatch.
func CheckStateHash(r *Record) bool {
	if !wellFormed(r) {
		return true
	}
	info, rem, err := InfoDecode(r.Metadata)
	if err || len(rem) != 0 {
		return true
	}
	return !bytes.Equal(StateHash(r.Pubkey, info), r.StateHash)
}

// Compare orders records by pubkey, the delta tree's sort order.
func Compare(a, b []byte) int {
	return bytes.Compare(a, b)
}
