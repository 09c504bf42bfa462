package merkle

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/mit-pdos/deltaproof/cryptoffi"
	"github.com/stretchr/testify/require"
)

func testLeaves(n int) [][]byte {
	leaves := make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(i))
		leaves = append(leaves, cryptoffi.Hash(b[:]))
	}
	return leaves
}

func TestAllPathsVerify(t *testing.T) {
	for n := 1; n <= 33; n++ {
		leaves := testLeaves(n)
		tr := NewTree(leaves)
		root := tr.Root()
		require.Equal(t, uint64(n), tr.Len())
		for i := 0; i < n; i++ {
			proof, err := tr.Prove(uint64(i))
			require.False(t, err)
			require.Len(t, proof.Siblings, int(Depth(uint64(n))))
			require.Equal(t, ErrNone, Verify(leaves[i], proof, root), "n=%d i=%d", n, i)
			require.Equal(t, ErrNone, VerifyCount(leaves[i], proof, root, uint64(n)), "n=%d i=%d", n, i)
		}
	}
}

func TestSingleLeafIsRoot(t *testing.T) {
	leaves := testLeaves(1)
	tr := NewTree(leaves)
	require.Equal(t, leaves[0], tr.Root())

	proof, err := tr.Prove(0)
	require.False(t, err)
	require.Empty(t, proof.Siblings)
	root, err := ComputeRoot(leaves[0], proof)
	require.False(t, err)
	require.Equal(t, leaves[0], root)
}

func TestFourLeafRoot(t *testing.T) {
	l := testLeaves(4)
	want := Combine(Combine(l[0], l[1]), Combine(l[2], l[3]))
	require.Equal(t, want, RootOf(l))
}

func TestOddLevelPadding(t *testing.T) {
	l := testLeaves(3)
	want := Combine(Combine(l[0], l[1]), Combine(l[2], cryptoffi.ZeroHash()))
	require.Equal(t, want, RootOf(l))

	proof, err := NewTree(l).Prove(2)
	require.False(t, err)
	require.True(t, IsPadding(proof.Siblings[0]))
	require.False(t, IsPadding(proof.Siblings[1]))
}

func TestEmptyTree(t *testing.T) {
	tr := NewTree(nil)
	require.Equal(t, uint64(0), tr.Len())
	require.Equal(t, cryptoffi.ZeroHash(), tr.Root())
	_, err := tr.Prove(0)
	require.True(t, err)
}

func TestTamperedSibling(t *testing.T) {
	leaves := testLeaves(8)
	tr := NewTree(leaves)
	for i := range leaves {
		proof, _ := tr.Prove(uint64(i))
		for level := range proof.Siblings {
			bad := &Proof{Index: proof.Index, Siblings: make([][]byte, len(proof.Siblings))}
			copy(bad.Siblings, proof.Siblings)
			sib := bytes.Clone(bad.Siblings[level])
			sib[0] ^= 1
			bad.Siblings[level] = sib
			require.Equal(t, ErrMismatch, Verify(leaves[i], bad, tr.Root()))
		}
	}
}

func TestWrongIndex(t *testing.T) {
	leaves := testLeaves(8)
	tr := NewTree(leaves)
	proof, _ := tr.Prove(2)
	proof.Index = 3
	require.Equal(t, ErrMismatch, Verify(leaves[2], proof, tr.Root()))
}

func TestMalformed(t *testing.T) {
	leaves := testLeaves(4)
	tr := NewTree(leaves)
	root := tr.Root()
	proof, _ := tr.Prove(1)

	// index doesn't fit in path.
	require.Equal(t, ErrMalformed, Verify(leaves[1], &Proof{Index: 4, Siblings: proof.Siblings}, root))
	// short sibling.
	short := &Proof{Index: 1, Siblings: [][]byte{proof.Siblings[0], proof.Siblings[1][:31]}}
	require.Equal(t, ErrMalformed, Verify(leaves[1], short, root))
	// short leaf.
	require.Equal(t, ErrMalformed, Verify(leaves[1][:31], proof, root))
	// nil proof.
	require.Equal(t, ErrMalformed, Verify(leaves[1], nil, root))
}

func TestVerifyCountLength(t *testing.T) {
	leaves := testLeaves(4)
	tr := NewTree(leaves)
	root := tr.Root()
	proof, _ := tr.Prove(3)

	require.Equal(t, ErrNone, VerifyCount(leaves[3], proof, root, 4))
	// a 5-leaf tree needs depth 3.
	require.Equal(t, ErrMalformed, VerifyCount(leaves[3], proof, root, 5))
	// index past the end.
	require.Equal(t, ErrMalformed, VerifyCount(leaves[3], proof, root, 3))
	require.Equal(t, ErrMalformed, VerifyCount(leaves[3], proof, root, 0))
}

func TestLevels(t *testing.T) {
	l := testLeaves(4)
	tr := NewTree(l)
	proof, _ := tr.Prove(2)
	levels, err := Levels(l[2], proof)
	require.False(t, err)
	require.Len(t, levels, 3)
	require.Equal(t, l[2], levels[0])
	require.Equal(t, Combine(l[2], l[3]), levels[1])
	require.Equal(t, tr.Root(), levels[2])
}

func TestDepth(t *testing.T) {
	cases := map[uint64]uint64{0: 0, 1: 0, 2: 1, 3: 2, 4: 2, 5: 3, 8: 3, 9: 4, 1 << 20: 20}
	for n, d := range cases {
		require.Equal(t, d, Depth(n), "n=%d", n)
	}
}

func TestTruncatedLeavesChangeRoot(t *testing.T) {
	leaves := testLeaves(6)
	require.NotEqual(t, RootOf(leaves), RootOf(leaves[:5]))
	require.NotEqual(t, RootOf(leaves), RootOf(leaves[:4]))
}

func TestProofSerde(t *testing.T) {
	tr := NewTree(testLeaves(5))
	proof, _ := tr.Prove(4)
	b := ProofEncode(nil, proof)
	proof0, rem, err := ProofDecode(b)
	require.False(t, err)
	require.Empty(t, rem)
	require.Equal(t, proof, proof0)

	_, _, err = ProofDecode(b[:len(b)-1])
	require.True(t, err)
}
