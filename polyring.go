package ntt

import (
	"errors"

	"github.com/jonathanmweiss/go-ntt/field"
)

type PolyRing interface {
	field.Field

	Evaluate(a *Polynomial, x uint64) uint64
	// compute c = a * scalar
	MulScalar(a *Polynomial, scalar uint64, c *Polynomial)

	// compute c = a * b
	MulPoly(a, b, c *Polynomial) error
	// compute c = a + b
	AddPoly(a, b, c *Polynomial)
	// compute c = a - b
	SubPoly(a, b, c *Polynomial)

	// Pads to a power of two and moves into the transform domain.
	NttForward(a *Polynomial) error
	NttBackward(a *Polynomial) error
}

// naiveThreshold is the shorter operand length up to which MulPoly uses the
// schoolbook product.
const naiveThreshold = 32

var errNotInNTTForm = errors.New("polynomial is not in NTT form")

var _ PolyRing = (*DensePolyRing)(nil)

// DensePolyRing implements PolyRing over GF(field.Modulus).
type DensePolyRing struct {
	field.Field
	variant Variant
}

// NewDensePolyRing constructs a ring whose transforms use the given network.
func NewDensePolyRing(v Variant) *DensePolyRing {
	return &DensePolyRing{Field: field.Default(), variant: v}
}

func (r *DensePolyRing) Variant() Variant { return r.variant }

// ---------- utilities ----------

func ensureLen(c *Polynomial, n int) {
	if len(c.inner) < n {
		tmp := make([]uint64, n)
		copy(tmp, c.inner)
		c.inner = tmp
	} else {
		c.inner = c.inner[:n]
	}
}

func trimTrailingZeros(p *Polynomial) {
	if len(p.inner) == 0 || p.isNTT {
		// In NTT domain we keep the fixed size.
		return
	}

	i := len(p.inner) - 1
	for i > 0 && p.inner[i] == 0 {
		i--
	}
	p.inner = p.inner[:i+1]
}

// ---------- Poly ops ----------

func (r *DensePolyRing) Evaluate(a *Polynomial, x uint64) uint64 {
	if a.isNTT {
		panic("Evaluate not supported in NTT domain")
	}

	x = r.Reduce(x)
	result := uint64(0)

	// horner's rule:
	for i := len(a.inner) - 1; i >= 0; i-- {
		result = r.Add(a.inner[i], r.Mul(x, result))
	}

	return result
}

func (r *DensePolyRing) MulScalar(a *Polynomial, scalar uint64, c *Polynomial) {
	s := r.Reduce(scalar)

	ensureLen(c, len(a.inner))
	for i := range a.inner {
		c.inner[i] = r.Mul(a.inner[i], s)
	}

	c.isNTT = a.isNTT // scalar mult preserves domain

	trimTrailingZeros(c)
}

func (r *DensePolyRing) AddPoly(a, b, c *Polynomial) {
	r.combine(a, b, c, r.Add)
}

func (r *DensePolyRing) SubPoly(a, b, c *Polynomial) {
	r.combine(a, b, c, r.Sub)
}

func (r *DensePolyRing) combine(a, b, c *Polynomial, op func(x, y uint64) uint64) {
	if !preOpVerification(a, b) {
		panic("preOpVerification failed")
	}

	alen := len(a.inner)
	blen := len(b.inner)
	n := max(alen, blen)
	isNTT := a.isNTT

	// c may alias a or b, so read both before resizing c.
	out := make([]uint64, n)
	var av, bv uint64
	for i := 0; i < n; i++ {
		av, bv = 0, 0
		if i < alen {
			av = a.inner[i]
		}

		if i < blen {
			bv = b.inner[i]
		}

		out[i] = op(av, bv)
	}

	c.inner = out
	c.isNTT = isNTT

	trimTrailingZeros(c)
}

// MulPoly computes c = a * b. Transform-domain inputs of equal length are
// multiplied pointwise (a cyclic product); coefficient inputs get the full
// linear product.
func (r *DensePolyRing) MulPoly(a, b, c *Polynomial) error {
	if !preOpVerification(a, b) {
		panic("preOpVerification failed")
	}

	// Case 1: both inputs are already NTT with same length -> pointwise
	if a.isNTT && b.isNTT {
		out := make([]uint64, len(a.inner))
		PointwiseMul(out, a.inner, b.inner)

		c.inner = out
		c.isNTT = true

		return nil
	}

	var out []uint64
	if min(len(a.inner), len(b.inner)) <= naiveThreshold {
		out = MulNaive(a.inner, b.inner)
	} else {
		var err error
		if out, err = MultiplyWith(r.variant, a.inner, b.inner); err != nil {
			return err
		}
	}

	// Write result into c (safe even if c==a or c==b because we used `out`).
	c.inner = out
	c.isNTT = false

	trimTrailingZeros(c)

	return nil
}

// NttForward pads a with zeros to the next power of two and transforms it in
// place. It is a no-op for polynomials already in the transform domain.
func (r *DensePolyRing) NttForward(a *Polynomial) error {
	if a == nil || len(a.inner) == 0 || a.isNTT {
		return nil
	}

	n := ProductLength(len(a.inner), 1)
	ensureLen(a, n)

	if err := ForwardWith(r.variant, a.inner, n, field.PrimitiveRoot); err != nil {
		return err
	}

	a.isNTT = true

	return nil
}

// NttBackward returns a to coefficient form and drops trailing zeros.
func (r *DensePolyRing) NttBackward(a *Polynomial) error {
	if a == nil || len(a.inner) == 0 {
		return nil
	}

	if !a.isNTT {
		return errNotInNTTForm
	}

	if err := InverseWith(r.variant, a.inner, len(a.inner), field.PrimitiveRoot); err != nil {
		return err
	}

	a.isNTT = false
	trimTrailingZeros(a)

	return nil
}
