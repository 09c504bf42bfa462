package merkle

import (
	"github.com/mit-pdos/deltaproof/safemarshal"
	"github.com/tchajed/marshal"
)

func ProofEncode(b0 []byte, o *Proof) []byte {
	var b = b0
	b = marshal.WriteInt(b, o.Index)
	b = safemarshal.WriteHashSlice(b, o.Siblings)
	return b
}

func ProofDecode(b0 []byte) (*Proof, []byte, bool) {
	a1, b1, err1 := safemarshal.ReadInt(b0)
	if err1 {
		return nil, nil, true
	}
	a2, b2, err2 := safemarshal.ReadHashSlice(b1)
	if err2 {
		return nil, nil, true
	}
	return &Proof{Index: a1, Siblings: a2}, b2, false
}
