package cryptoutil

import (
	"bytes"
	"testing"

	"github.com/mit-pdos/deltaproof/cryptoffi"
)

func TestHashConcat(t *testing.T) {
	a := []byte("left")
	b := []byte("right")
	joined := append(append([]byte{}, a...), b...)
	if !bytes.Equal(HashConcat(a, b), Hash(joined)) {
		t.Fatal()
	}
	if !bytes.Equal(Hash(joined), cryptoffi.Hash(joined)) {
		t.Fatal()
	}
	// order matters.
	if bytes.Equal(HashConcat(a, b), HashConcat(b, a)) {
		t.Fatal()
	}
}
