package field

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// shake128Rate is the SHAKE128 block size in bytes.
const shake128Rate = 168

// SampleUniform expands seed into n uniform elements of GF(Modulus).
// Each candidate is 30 little-endian bits (Modulus < 2^30) and is rejected
// when it is not below Modulus, so the same seed always yields the same slice.
func SampleUniform(seed []byte, n int) []uint64 {
	h := sha3.NewShake128()
	h.Write(seed)

	out := make([]uint64, 0, n)
	var buf [shake128Rate]byte

	for len(out) < n {
		h.Read(buf[:])
		for i := 0; i+4 <= len(buf) && len(out) < n; i += 4 {
			d := uint64(binary.LittleEndian.Uint32(buf[i:]) & (1<<30 - 1))
			if d < Modulus {
				out = append(out, d)
			}
		}
	}

	return out
}
