package verifier

import (
	"github.com/mit-pdos/deltaproof/cryptoffi"
	"github.com/mit-pdos/deltaproof/deltaproof"
	"github.com/mit-pdos/deltaproof/safemarshal"
	"github.com/tchajed/marshal"
)

// minProofLen is a variant byte plus the queried pubkey.
const minProofLen = 1 + cryptoffi.HashLen

func BankHashProofEncode(b0 []byte, o *BankHashProof) []byte {
	var b = b0
	b = marshal.WriteInt(b, uint64(len(o.Proofs)))
	for _, p := range o.Proofs {
		b = deltaproof.AccountDeltaProofEncode(b, p)
	}
	b = marshal.WriteInt(b, o.NumSigs)
	b = safemarshal.WriteHash(b, o.AccountDeltaRoot)
	b = safemarshal.WriteHash(b, o.ParentBankHash)
	b = safemarshal.WriteHash(b, o.BlockHash)
	return b
}

func BankHashProofDecode(b0 []byte) (*BankHashProof, []byte, bool) {
	n, b1, err1 := safemarshal.ReadInt(b0)
	if err1 {
		return nil, nil, true
	}
	if n > uint64(len(b1))/minProofLen {
		return nil, nil, true
	}
	proofs := make([]deltaproof.AccountDeltaProof, 0, n)
	var b2 = b1
	for i := uint64(0); i < n; i++ {
		var p deltaproof.AccountDeltaProof
		var err bool
		p, b2, err = deltaproof.AccountDeltaProofDecode(b2)
		if err {
			return nil, nil, true
		}
		proofs = append(proofs, p)
	}
	a3, b3, err3 := safemarshal.ReadInt(b2)
	if err3 {
		return nil, nil, true
	}
	a4, b4, err4 := safemarshal.ReadHash(b3)
	if err4 {
		return nil, nil, true
	}
	a5, b5, err5 := safemarshal.ReadHash(b4)
	if err5 {
		return nil, nil, true
	}
	a6, b6, err6 := safemarshal.ReadHash(b5)
	if err6 {
		return nil, nil, true
	}
	return &BankHashProof{Proofs: proofs, NumSigs: a3, AccountDeltaRoot: a4, ParentBankHash: a5, BlockHash: a6}, b6, false
}

func UpdateEncode(b0 []byte, o *Update) []byte {
	var b = b0
	b = marshal.WriteInt(b, o.Slot)
	b = safemarshal.WriteHash(b, o.Root)
	b = BankHashProofEncode(b, o.Proof)
	return b
}

func UpdateDecode(b0 []byte) (*Update, []byte, bool) {
	a1, b1, err1 := safemarshal.ReadInt(b0)
	if err1 {
		return nil, nil, true
	}
	a2, b2, err2 := safemarshal.ReadHash(b1)
	if err2 {
		return nil, nil, true
	}
	a3, b3, err3 := BankHashProofDecode(b2)
	if err3 {
		return nil, nil, true
	}
	return &Update{Slot: a1, Root: a2, Proof: a3}, b3, false
}

// DecodeMessage decodes one whole message and errors on trailing bytes.
func DecodeMessage(msg []byte) (*Update, bool) {
	u, rem, err := UpdateDecode(msg)
	if err || len(rem) != 0 {
		return nil, true
	}
	return u, false
}
