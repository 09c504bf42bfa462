package deltaproof

import (
	"github.com/mit-pdos/deltaproof/account"
	"github.com/mit-pdos/deltaproof/merkle"
	"github.com/mit-pdos/deltaproof/safemarshal"
)

func LeafEncode(b0 []byte, o *Leaf) []byte {
	var b = b0
	b = account.RecordEncode(b, o.Record)
	b = merkle.ProofEncode(b, o.Proof)
	return b
}

func LeafDecode(b0 []byte) (*Leaf, []byte, bool) {
	a1, b1, err1 := account.RecordDecode(b0)
	if err1 {
		return nil, nil, true
	}
	a2, b2, err2 := merkle.ProofDecode(b1)
	if err2 {
		return nil, nil, true
	}
	return &Leaf{Record: a1, Proof: a2}, b2, false
}

// AccountDeltaProofEncode writes the variant byte, then the variant's fields.
func AccountDeltaProofEncode(b0 []byte, o AccountDeltaProof) []byte {
	var b = b0
	b = safemarshal.WriteByte(b, byte(o.Variant()))
	b = safemarshal.WriteHash(b, o.Queried())
	switch o := o.(type) {
	case *Inclusion:
		b = LeafEncode(b, &o.Leaf)
	case *NonInclusionInner:
		b = LeafEncode(b, &o.Left)
		b = LeafEncode(b, &o.Right)
	case *NonInclusionLeft:
		b = LeafEncode(b, &o.Leaf)
	case *NonInclusionRight:
		b = LeafEncode(b, &o.Leaf)
		b = safemarshal.WriteHashSlice(b, o.Leaves)
	default:
		panic("deltaproof: unknown proof variant")
	}
	return b
}

// AccountDeltaProofDecode errors on an unknown variant byte.
func AccountDeltaProofDecode(b0 []byte) (AccountDeltaProof, []byte, bool) {
	tag, b1, err1 := safemarshal.ReadByte(b0)
	if err1 {
		return nil, nil, true
	}
	pk, b2, err2 := safemarshal.ReadHash(b1)
	if err2 {
		return nil, nil, true
	}
	switch Variant(tag) {
	case VariantInclusion:
		l, b3, err3 := LeafDecode(b2)
		if err3 {
			return nil, nil, true
		}
		return &Inclusion{Pubkey: pk, Leaf: *l}, b3, false
	case VariantInner:
		l, b3, err3 := LeafDecode(b2)
		if err3 {
			return nil, nil, true
		}
		r, b4, err4 := LeafDecode(b3)
		if err4 {
			return nil, nil, true
		}
		return &NonInclusionInner{Pubkey: pk, Left: *l, Right: *r}, b4, false
	case VariantLeft:
		l, b3, err3 := LeafDecode(b2)
		if err3 {
			return nil, nil, true
		}
		return &NonInclusionLeft{Pubkey: pk, Leaf: *l}, b3, false
	case VariantRight:
		l, b3, err3 := LeafDecode(b2)
		if err3 {
			return nil, nil, true
		}
		leaves, b4, err4 := safemarshal.ReadHashSlice(b3)
		if err4 {
			return nil, nil, true
		}
		return &NonInclusionRight{Pubkey: pk, Leaf: *l, Leaves: leaves}, b4, false
	}
	return nil, nil, true
}
