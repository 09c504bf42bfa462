package account

import (
	"bytes"
	"testing"

	"github.com/mit-pdos/deltaproof/cryptoffi"
	"github.com/stretchr/testify/require"
)

func testRecord(seed string) *Record {
	return &Record{
		Pubkey:    cryptoffi.Hash([]byte("pk" + seed)),
		StateHash: cryptoffi.Hash([]byte("state" + seed)),
		Metadata:  []byte("meta" + seed),
	}
}

func TestLeafHashDeterministic(t *testing.T) {
	r := testRecord("0")
	h0, err := LeafHash(r)
	require.False(t, err)
	require.Len(t, h0, int(cryptoffi.HashLen))

	h1, err := LeafHash(testRecord("0"))
	require.False(t, err)
	require.Equal(t, h0, h1)
}

func TestLeafHashLayout(t *testing.T) {
	r := testRecord("0")
	var want []byte
	want = append(want, r.Pubkey...)
	want = append(want, r.StateHash...)
	want = append(want, byte(len(r.Metadata)), 0, 0, 0, 0, 0, 0, 0)
	want = append(want, r.Metadata...)

	h, err := LeafHash(r)
	require.False(t, err)
	require.Equal(t, cryptoffi.Hash(want), h)
}

func TestLeafHashSensitivity(t *testing.T) {
	base := testRecord("0")
	h0, _ := LeafHash(base)

	mods := []func(r *Record){
		func(r *Record) { r.Pubkey = cryptoffi.Hash([]byte("other")) },
		func(r *Record) { r.StateHash = cryptoffi.Hash([]byte("other")) },
		func(r *Record) { r.Metadata = []byte("other") },
		func(r *Record) { r.Metadata = nil },
	}
	for i, mod := range mods {
		r := testRecord("0")
		mod(r)
		h, err := LeafHash(r)
		require.False(t, err, "mod %d", i)
		require.NotEqual(t, h0, h, "mod %d", i)
	}
}

func TestLeafHashMalformed(t *testing.T) {
	r := testRecord("0")
	r.Pubkey = r.Pubkey[:31]
	_, err := LeafHash(r)
	require.True(t, err)

	r = testRecord("0")
	r.StateHash = nil
	_, err = LeafHash(r)
	require.True(t, err)

	_, err = LeafHash(nil)
	require.True(t, err)
}

func TestRecordSerde(t *testing.T) {
	r := testRecord("1")
	b := RecordEncode(nil, r)
	r0, rem, err := RecordDecode(b)
	require.False(t, err)
	require.Empty(t, rem)
	require.Equal(t, r, r0)

	_, _, err = RecordDecode(b[:40])
	require.True(t, err)
}

func testInfo() *Info {
	return &Info{
		Lamports:     1_000_000,
		Owner:        cryptoffi.Hash([]byte("owner")),
		Executable:   true,
		RentEpoch:    361,
		Data:         []byte{1, 2, 3, 4},
		WriteVersion: 7,
		Slot:         100,
	}
}

func TestStateHash(t *testing.T) {
	pk := cryptoffi.Hash([]byte("pk"))
	info := testInfo()
	h0 := StateHash(pk, info)
	require.Len(t, h0, int(cryptoffi.HashLen))

	// write version and slot aren't part of the account hash.
	info.WriteVersion = 8
	info.Slot = 101
	require.Equal(t, h0, StateHash(pk, info))

	info.Executable = false
	require.NotEqual(t, h0, StateHash(pk, info))

	info.Lamports = 0
	require.Equal(t, cryptoffi.ZeroHash(), StateHash(pk, info))
}

func TestCheckStateHash(t *testing.T) {
	pk := cryptoffi.Hash([]byte("pk"))
	info := testInfo()
	r := &Record{Pubkey: pk, StateHash: StateHash(pk, info), Metadata: InfoEncode(nil, info)}
	require.False(t, CheckStateHash(r))

	// wrong hash.
	r.StateHash = cryptoffi.Hash([]byte("x"))
	require.True(t, CheckStateHash(r))

	// trailing bytes.
	r.StateHash = StateHash(pk, info)
	r.Metadata = append(InfoEncode(nil, info), 0)
	require.True(t, CheckStateHash(r))

	// opaque metadata.
	r.Metadata = []byte("opaque")
	require.True(t, CheckStateHash(r))
}

func TestCompare(t *testing.T) {
	a := bytes.Repeat([]byte{1}, 32)
	b := bytes.Repeat([]byte{2}, 32)
	require.Negative(t, Compare(a, b))
	require.Positive(t, Compare(b, a))
	require.Zero(t, Compare(a, a))
}
