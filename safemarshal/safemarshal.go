// Package safemarshal wraps [marshal] readers with length checks,
// so decoding adversarial bytes errors instead of panicking.
// all integers are little-endian, matching the hash preimages.
package safemarshal

import (
	"github.com/mit-pdos/deltaproof/cryptoffi"
	"github.com/tchajed/marshal"
)

func ReadBool(b []byte) (data bool, rem []byte, err bool) {
	rem = b
	if uint64(len(rem)) < 1 {
		err = true
		return
	}
	// marshal.ReadBool accepts any nonzero byte. keep encodings canonical.
	if rem[0] > 1 {
		err = true
		return
	}
	data, rem = marshal.ReadBool(rem)
	return
}

func ReadInt(b []byte) (data uint64, rem []byte, err bool) {
	rem = b
	if uint64(len(rem)) < 8 {
		err = true
		return
	}
	data, rem = marshal.ReadInt(rem)
	return
}

func ReadByte(b []byte) (data byte, rem []byte, err bool) {
	rem = b
	if uint64(len(rem)) < 1 {
		err = true
		return
	}
	data0, rem := marshal.ReadBytes(rem, 1)
	data = data0[0]
	return
}

func WriteByte(b []byte, data byte) []byte {
	return marshal.WriteBytes(b, []byte{data})
}

func ReadBytes(b []byte, length uint64) (data []byte, rem []byte, err bool) {
	rem = b
	if uint64(len(rem)) < length {
		err = true
		return
	}
	data, rem = marshal.ReadBytes(rem, length)
	return
}

func ReadSlice1D(b []byte) (data []byte, rem []byte, err bool) {
	rem = b
	length, rem, err := ReadInt(rem)
	if err {
		return
	}
	return ReadBytes(rem, length)
}

func WriteSlice1D(b []byte, data []byte) []byte {
	b = marshal.WriteInt(b, uint64(len(data)))
	return marshal.WriteBytes(b, data)
}

// ReadHash reads a fixed-width digest, with no length prefix.
func ReadHash(b []byte) (data []byte, rem []byte, err bool) {
	return ReadBytes(b, cryptoffi.HashLen)
}

// WriteHash requires data to be a digest.
// anything else has no fixed-width encoding, so it panics.
func WriteHash(b []byte, data []byte) []byte {
	if uint64(len(data)) != cryptoffi.HashLen {
		panic("safemarshal: writing a hash that isn't a digest")
	}
	return marshal.WriteBytes(b, data)
}

// ReadHashSlice reads a count-prefixed list of digests.
// the count is checked against the remaining bytes before allocating.
func ReadHashSlice(b []byte) (data [][]byte, rem []byte, err bool) {
	rem = b
	count, rem, err := ReadInt(rem)
	if err {
		return
	}
	if count > uint64(len(rem))/cryptoffi.HashLen {
		err = true
		return
	}
	data = make([][]byte, 0, count)
	for i := uint64(0); i < count; i++ {
		var h []byte
		h, rem, err = ReadHash(rem)
		if err {
			return
		}
		data = append(data, h)
	}
	return
}

func WriteHashSlice(b []byte, data [][]byte) []byte {
	b = marshal.WriteInt(b, uint64(len(data)))
	for _, h := range data {
		b = WriteHash(b, h)
	}
	return b
}
