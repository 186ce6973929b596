package ntt

// BitReversePermutation maps every index i in [0, n) to i with its low
// log2(n) bits reversed. n must be a power of two.
func BitReversePermutation(n int) []int {
	rev := make([]int, n)
	for i := 1; i < n; i++ {
		rev[i] = rev[i>>1] >> 1
		if i&1 == 1 {
			rev[i] |= n >> 1
		}
	}

	return rev
}

// BitReverse reorders xs into bit-reversed order in place. Applying it twice
// restores the original order.
func BitReverse(xs []uint64) {
	rev := BitReversePermutation(len(xs))
	for i, j := range rev {
		if i < j {
			xs[i], xs[j] = xs[j], xs[i]
		}
	}
}
