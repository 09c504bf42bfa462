package cryptoutil

import (
	"github.com/mit-pdos/deltaproof/cryptoffi"
)

func Hash(b []byte) []byte {
	hr := cryptoffi.NewHasher()
	hr.Write(b)
	return hr.Sum(nil)
}

// HashConcat hashes the concatenation of its args,
// without materializing the concatenation.
func HashConcat(bs ...[]byte) []byte {
	hr := cryptoffi.NewHasher()
	for _, b := range bs {
		hr.Write(b)
	}
	return hr.Sum(nil)
}
