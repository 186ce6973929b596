package ntt

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitReversePermutation(t *testing.T) {
	a := assert.New(t)

	a.Equal([]int{0}, BitReversePermutation(1))
	a.Equal([]int{0, 1}, BitReversePermutation(2))
	a.Equal([]int{0, 4, 2, 6, 1, 5, 3, 7}, BitReversePermutation(8))

	for h := 1; h <= 12; h++ {
		n := 1 << h
		rev := BitReversePermutation(n)
		for i, r := range rev {
			want := int(bits.Reverse32(uint32(i)) >> (32 - h))
			if r != want {
				t.Fatalf("n=%d: rev[%d]=%d, want %d", n, i, r, want)
			}
		}
	}
}

func TestBitReverseInvolution(t *testing.T) {
	a := assert.New(t)

	for h := 0; h <= 12; h++ {
		n := 1 << h
		xs := make([]uint64, n)
		for i := range xs {
			xs[i] = uint64(i)
		}

		BitReverse(xs)
		rev := BitReversePermutation(n)
		for i := range xs {
			a.Equal(uint64(rev[i]), xs[i])
		}

		BitReverse(xs)
		for i := range xs {
			a.Equal(uint64(i), xs[i])
		}
	}

	BitReverse(nil)
}
