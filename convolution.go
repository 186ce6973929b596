package ntt

import (
	"fmt"
	"math/bits"

	"github.com/jonathanmweiss/go-ntt/field"
	"lukechampine.com/uint128"
)

// PointwiseMul sets dst[i] = a[i] * b[i] mod field.Modulus. The three slices
// must share one length; dst may alias a or b.
func PointwiseMul(dst, a, b []uint64) {
	if len(a) != len(b) || len(dst) != len(a) {
		panic("PointwiseMul: length mismatch")
	}

	for i := range a {
		dst[i] = field.Mul(a[i]%field.Modulus, b[i]%field.Modulus)
	}
}

// Convolve multiplies two sequences of the same power-of-two length through
// the transform domain and leaves their cyclic convolution in a. b is left in
// the transform domain. When both inputs were padded to at least
// len(a_orig)+len(b_orig)-1, a holds the linear product.
func Convolve(a, b []uint64, v Variant) error {
	n := len(a)
	if len(b) != n {
		return fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(a), len(b))
	}

	if err := ForwardWith(v, a, n, field.PrimitiveRoot); err != nil {
		return err
	}

	if err := ForwardWith(v, b, n, field.PrimitiveRoot); err != nil {
		return err
	}

	PointwiseMul(a, a, b)

	return Inverse(a, n, field.PrimitiveRoot)
}

// ProductLength returns the smallest power of two that holds a product of
// polynomials with la and lb coefficients, or 0 if either is empty.
func ProductLength(la, lb int) int {
	if la <= 0 || lb <= 0 {
		return 0
	}

	size := la + lb - 1
	if size == 1 {
		return 1
	}

	return 1 << bits.Len(uint(size-1))
}

// Multiply returns the product of two coefficient sequences (lowest degree
// first). Inputs are not modified.
func Multiply(a, b []uint64) ([]uint64, error) {
	return MultiplyWith(CT, a, b)
}

// MultiplyWith is Multiply with an explicit forward network.
func MultiplyWith(v Variant, a, b []uint64) ([]uint64, error) {
	n := ProductLength(len(a), len(b))
	if n == 0 {
		return []uint64{}, nil
	}

	if n > 1<<field.MaxLogN {
		return nil, fmt.Errorf("%w: product needs %d points, at most 2^%d supported", ErrInvalidLength, n, field.MaxLogN)
	}

	fa := make([]uint64, n)
	copy(fa, a)

	fb := make([]uint64, n)
	copy(fb, b)

	if err := Convolve(fa, fb, v); err != nil {
		return nil, err
	}

	return fa[:len(a)+len(b)-1], nil
}

// MulNaive is the O(len(a)*len(b)) schoolbook product. Each output
// coefficient is accumulated in 128 bits and reduced once.
func MulNaive(a, b []uint64) []uint64 {
	if len(a) == 0 || len(b) == 0 {
		return []uint64{}
	}

	acc := make([]uint128.Uint128, len(a)+len(b)-1)
	for i, ai := range a {
		ai %= field.Modulus
		if ai == 0 {
			continue
		}

		for j, bj := range b {
			acc[i+j] = acc[i+j].Add64(ai * (bj % field.Modulus))
		}
	}

	return reduceAcc(acc)
}

// CyclicNaive is the O(n^2) cyclic convolution of two equal-length sequences.
func CyclicNaive(a, b []uint64) []uint64 {
	n := len(a)
	if len(b) != n {
		panic("CyclicNaive: length mismatch")
	}

	acc := make([]uint128.Uint128, n)
	for i, ai := range a {
		ai %= field.Modulus
		for j, bj := range b {
			k := (i + j) % n
			acc[k] = acc[k].Add64(ai * (bj % field.Modulus))
		}
	}

	return reduceAcc(acc)
}

func reduceAcc(acc []uint128.Uint128) []uint64 {
	out := make([]uint64, len(acc))
	for i, v := range acc {
		out[i] = v.Mod64(field.Modulus)
	}

	return out
}
