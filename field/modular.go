package field

import "math/bits"

// PowerMod returns base^exponent mod modulus, for any modulus > 0.
// https://en.wikipedia.org/wiki/Exponentiation_by_squaring
func PowerMod(base, exponent, modulus uint64) uint64 {
	base %= modulus

	x := uint64(1)
	for exponent > 0 {
		if exponent&1 == 1 { // If exponent is odd, multiply base with x
			x = mulMod(x, base, modulus)
		}

		base = mulMod(base, base, modulus) // Square the base
		exponent >>= 1                     // Halve the exponent
	}

	return x % modulus
}

// mulMod expects a, b < mod so that the high word stays below mod.
func mulMod(a, b, mod uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, mod)

	return rem
}

// The functions below work under Modulus only. Inputs must already be
// reduced; (Modulus-1)^2 < 2^60 so products fit in a uint64.

func Reduce(a uint64) uint64 {
	return a % Modulus
}

func Add(a, b uint64) uint64 {
	tmp := a + b
	if tmp >= Modulus {
		tmp -= Modulus
	}

	return tmp
}

func Sub(a, b uint64) uint64 {
	return (a + Modulus - b) % Modulus
}

func Mul(a, b uint64) uint64 {
	return a * b % Modulus
}

func Neg(a uint64) uint64 {
	if a == 0 {
		return 0
	}

	return Modulus - a
}

func Pow(base, exp uint64) uint64 {
	return PowerMod(base, exp, Modulus)
}

// Inverse uses Fermat's little theorem, so x must not be ≡ 0.
func Inverse(x uint64) uint64 {
	if x%Modulus == 0 {
		panic("zero has no inverse")
	}

	return PowerMod(x, Modulus-2, Modulus)
}

// RootOfUnity returns the principal n-th root of unity derived from the
// generator root. n must be a power of two dividing Modulus-1.
func RootOfUnity(root uint64, n uint64) uint64 {
	return PowerMod(root, (Modulus-1)/n, Modulus)
}
