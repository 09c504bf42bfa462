package chainstate

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/mit-pdos/deltaproof/cryptoffi"
	"github.com/stretchr/testify/require"
)

func randHash(src *rand.ChaCha8) []byte {
	h := make([]byte, cryptoffi.HashLen)
	src.Read(h)
	return h
}

func TestHashChain(t *testing.T) {
	var seed [32]byte
	rndSrc := rand.NewChaCha8(seed)
	rnd := rand.New(rndSrc)
	tr := New()
	links := [][]byte{EmptyLink()}

	{
		// empty chain.
		p, errb := tr.Prove(0)
		if errb {
			t.Fatal()
		}
		extLen, slot, bankHash, newLink, err := VerifyChain(links[0], p)
		if err {
			t.Fatal()
		}
		if extLen != 0 || slot != 0 || bankHash != nil {
			t.Fatal()
		}
		if !bytes.Equal(links[0], newLink) {
			t.Fatal()
		}
	}

	var slot uint64
	for newLen := uint64(1); newLen < 500; newLen++ {
		slot += 1 + rnd.Uint64N(3)
		bankHash := randHash(rndSrc)
		if _, _, err := tr.Record(slot, nil, bankHash); err != nil {
			t.Fatal(err)
		}
		links = append(links, tr.Link())

		prevLen := rnd.Uint64N(newLen + 1)
		proof, errb := tr.Prove(prevLen)
		if errb {
			t.Fatal()
		}
		extLen, slot0, bankHash0, newLink, err := VerifyChain(links[prevLen], proof)
		if err {
			t.Fatal()
		}
		if extLen != newLen-prevLen {
			t.Fatal()
		}
		if extLen == 0 && bankHash0 != nil {
			t.Fatal()
		}
		if extLen != 0 && (slot0 != slot || !bytes.Equal(bankHash, bankHash0)) {
			t.Fatal()
		}
		if !bytes.Equal(links[newLen], newLink) {
			t.Fatal()
		}
	}
}

func TestProveBeyondHeight(t *testing.T) {
	tr := New()
	if _, err := tr.Prove(1); !err {
		t.Fatal()
	}
	if _, _, err := tr.Record(1, nil, make([]byte, cryptoffi.HashLen)); err != nil {
		t.Fatal(err)
	}
	if _, err := tr.Prove(1); err {
		t.Fatal()
	}
	if _, err := tr.Prove(2); !err {
		t.Fatal()
	}
}

func TestVerifyMalformed(t *testing.T) {
	_, _, _, _, err := VerifyChain(EmptyLink(), make([]byte, entryLen+1))
	require.True(t, err)
}

func TestRecord(t *testing.T) {
	tr := New()
	require.Nil(t, tr.Head())
	h1 := bytes.Repeat([]byte{1}, 32)
	h2 := bytes.Repeat([]byte{2}, 32)
	h3 := bytes.Repeat([]byte{3}, 32)

	height, linked, err := tr.Record(10, bytes.Repeat([]byte{9}, 32), h1)
	require.NoError(t, err)
	require.Equal(t, uint64(1), height)
	require.False(t, linked, "nothing to link to")

	height, linked, err = tr.Record(11, h1, h2)
	require.NoError(t, err)
	require.Equal(t, uint64(2), height)
	require.True(t, linked)

	// slot 12 was skipped.
	height, linked, err = tr.Record(13, h1, h3)
	require.NoError(t, err)
	require.Equal(t, uint64(3), height)
	require.False(t, linked)

	_, _, err = tr.Record(13, h3, h1)
	require.ErrorIs(t, err, ErrSlotNotIncreasing)
	_, _, err = tr.Record(14, h3, []byte{1})
	require.ErrorIs(t, err, ErrBadBankHash)

	require.Equal(t, uint64(3), tr.Height())
	require.Equal(t, uint64(13), tr.Head().Slot)
	tr2, ok := tr.Transition(2)
	require.True(t, ok)
	require.Equal(t, uint64(11), tr2.Slot)
	require.Equal(t, h1, tr2.ParentBankHash)

	// callers can't rewrite recorded history.
	tr2.BankHash[0] = 0xff
	tr2.Slot = 99
	head := tr.Head()
	head.BankHash[0] = 0xff
	again, _ := tr.Transition(2)
	require.Equal(t, uint64(11), again.Slot)
	require.Equal(t, h2, again.BankHash)
	require.Equal(t, h3, tr.Head().BankHash)

	_, ok = tr.Transition(0)
	require.False(t, ok)
	_, ok = tr.Transition(4)
	require.False(t, ok)
}
