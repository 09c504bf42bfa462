package account

import (
	"github.com/mit-pdos/deltaproof/safemarshal"
	"github.com/tchajed/marshal"
)

func RecordEncode(b0 []byte, o *Record) []byte {
	var b = b0
	b = safemarshal.WriteHash(b, o.Pubkey)
	b = safemarshal.WriteHash(b, o.StateHash)
	b = safemarshal.WriteSlice1D(b, o.Metadata)
	return b
}

func RecordDecode(b0 []byte) (*Record, []byte, bool) {
	a1, b1, err1 := safemarshal.ReadHash(b0)
	if err1 {
		return nil, nil, true
	}
	a2, b2, err2 := safemarshal.ReadHash(b1)
	if err2 {
		return nil, nil, true
	}
	a3, b3, err3 := safemarshal.ReadSlice1D(b2)
	if err3 {
		return nil, nil, true
	}
	return &Record{Pubkey: a1, StateHash: a2, Metadata: a3}, b3, false
}

func InfoEncode(b0 []byte, o *Info) []byte {
	var b = b0
	b = marshal.WriteInt(b, o.Lamports)
	b = safemarshal.WriteHash(b, o.Owner)
	b = marshal.WriteBool(b, o.Executable)
	b = marshal.WriteInt(b, o.RentEpoch)
	b = safemarshal.WriteSlice1D(b, o.Data)
	b = marshal.WriteInt(b, o.WriteVersion)
	b = marshal.WriteInt(b, o.Slot)
	return b
}

func InfoDecode(b0 []byte) (*Info, []byte, bool) {
	a1, b1, err1 := safemarshal.ReadInt(b0)
	if err1 {
		return nil, nil, true
	}
	a2, b2, err2 := safemarshal.ReadHash(b1)
	if err2 {
		return nil, nil, true
	}
	a3, b3, err3 := safemarshal.ReadBool(b2)
	if err3 {
		return nil, nil, true
	}
	a4, b4, err4 := safemarshal.ReadInt(b3)
	if err4 {
		return nil, nil, true
	}
	a5, b5, err5 := safemarshal.ReadSlice1D(b4)
	if err5 {
		return nil, nil, true
	}
	a6, b6, err6 := safemarshal.ReadInt(b5)
	if err6 {
		return nil, nil, true
	}
	a7, b7, err7 := safemarshal.ReadInt(b6)
	if err7 {
		return nil, nil, true
	}
	return &Info{Lamports: a1, Owner: a2, Executable: a3, RentEpoch: a4, Data: a5, WriteVersion: a6, Slot: a7}, b7, false
}
