// Package ntt computes the number-theoretic transform over GF(field.Modulus)
// and multiplies polynomials with it.
package ntt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jonathanmweiss/go-ntt/field"
)

// Variant selects the butterfly network of a forward transform. Both
// variants produce the same natural-order output.
type Variant int

const (
	// CT is the Cooley-Tukey decimation-in-time network: bit-reverse the
	// input, then run stages of growing width.
	CT Variant = iota
	// GS is the Gentleman-Sande decimation-in-frequency network: run stages
	// of shrinking width, then bit-reverse the output.
	GS
)

func (v Variant) String() string {
	switch v {
	case CT:
		return "ct"
	case GS:
		return "gs"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

var (
	ErrInvalidLength  = errors.New("invalid transform length")
	ErrLengthMismatch = errors.New("sequence length mismatch")
	ErrInvalidRoot    = errors.New("root does not generate the multiplicative group")
	ErrUnknownVariant = errors.New("unknown transform variant")
)

// ParseVariant accepts "ct"/"dit" and "gs"/"dif", case-insensitively.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(s) {
	case "ct", "dit":
		return CT, nil
	case "gs", "dif":
		return GS, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// Forward replaces a with its NTT image using the decimation-in-time network.
// n must equal len(a), be a power of two and divide field.Modulus-1; root must
// generate the multiplicative group (normally field.PrimitiveRoot).
func Forward(a []uint64, n int, root uint64) error {
	return ForwardWith(CT, a, n, root)
}

// ForwardWith is Forward with an explicit butterfly network.
func ForwardWith(v Variant, a []uint64, n int, root uint64) error {
	if err := checkArgs(v, a, n, root); err != nil {
		return err
	}

	reduceAll(a)
	transform(v, a, root%field.Modulus)

	return nil
}

// Inverse undoes Forward: it transforms with root^-1 and scales by n^-1.
func Inverse(a []uint64, n int, root uint64) error {
	return InverseWith(CT, a, n, root)
}

// InverseWith is Inverse with an explicit butterfly network.
func InverseWith(v Variant, a []uint64, n int, root uint64) error {
	if err := checkArgs(v, a, n, root); err != nil {
		return err
	}

	reduceAll(a)
	transform(v, a, field.Inverse(root))

	nInv := field.Inverse(uint64(n))
	for i := range a {
		a[i] = field.Mul(a[i], nInv)
	}

	return nil
}

func checkArgs(v Variant, a []uint64, n int, root uint64) error {
	if v != CT && v != GS {
		return fmt.Errorf("%w: %v", ErrUnknownVariant, v)
	}

	if n <= 0 || !field.IsPowerOfTwo(uint64(n)) || (field.Modulus-1)%uint64(n) != 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}

	if len(a) != n {
		return fmt.Errorf("%w: len(a)=%d, n=%d", ErrLengthMismatch, len(a), n)
	}

	if !field.Default().IsGenerator(root) {
		return fmt.Errorf("%w: %d", ErrInvalidRoot, root)
	}

	return nil
}

func reduceAll(a []uint64) {
	for i, x := range a {
		if x >= field.Modulus {
			a[i] = x % field.Modulus
		}
	}
}

func transform(v Variant, a []uint64, root uint64) {
	switch v {
	case CT:
		decimationInTime(a, root)
	case GS:
		decimationInFrequency(a, root)
	}
}

func decimationInTime(a []uint64, root uint64) {
	n := len(a)

	BitReverse(a)

	// Stages: mh = 2,4,8,...,n. The twiddle of each stage is recomputed.
	for mh := 2; mh <= n; mh <<= 1 {
		m := mh >> 1
		base := field.RootOfUnity(root, uint64(mh))

		w := uint64(1)
		for j := 0; j < m; j++ {
			for k := 0; k < n; k += mh {
				u := a[k+j]
				t := field.Mul(w, a[k+j+m])
				a[k+j] = field.Add(u, t)
				a[k+j+m] = field.Sub(u, t)
			}

			w = field.Mul(w, base)
		}
	}
}

func decimationInFrequency(a []uint64, root uint64) {
	n := len(a)

	m := n
	base := field.RootOfUnity(root, uint64(n))
	for m > 2 {
		m >>= 1
		for r := 0; r < n; r += 2 * m {
			w := uint64(1)
			for s := r; s < r+m; s++ {
				u, d := a[s], a[s+m]
				a[s] = field.Add(u, d)
				a[s+m] = field.Mul(w, field.Sub(u, d))
				w = field.Mul(w, base)
			}
		}

		base = field.Mul(base, base)
	}

	// m == 1: plain 2-point butterflies.
	if m > 1 {
		for r := 0; r < n; r += 2 {
			u, d := a[r], a[r+1]
			a[r] = field.Add(u, d)
			a[r+1] = field.Sub(u, d)
		}
	}

	BitReverse(a)
}
