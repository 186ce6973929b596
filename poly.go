package ntt

import (
	"strconv"
	"strings"
)

type Polynomial struct {
	inner []uint64
	isNTT bool
}

/*
NewPolynomial expects coefficients ordered from lowest to highest degree
(e.g. [1, 2, 3] is 1 + 2x + 3x^2), or transform-domain values when isNTT is
set. Values are reduced into the field in place.
*/
func NewPolynomial(inner []uint64, isNTT bool) *Polynomial {
	if len(inner) == 0 {
		panic("empty polynomial")
	}

	reduceAll(inner)

	return &Polynomial{
		inner: inner,
		isNTT: isNTT,
	}
}

func preOpVerification(p, q *Polynomial) bool {
	if p.isNTT != q.isNTT {
		return false
	}

	if p.isNTT {
		return len(p.inner) == len(q.inner)
	}

	return true
}

func (p *Polynomial) IsZero() bool {
	for _, c := range p.inner {
		if c != 0 {
			return false
		}
	}

	return true
}

func (p *Polynomial) Equals(q *Polynomial) bool {
	if !preOpVerification(p, q) {
		return false
	}

	if len(p.inner) != len(q.inner) {
		return false
	}

	for i := range p.inner {
		if p.inner[i] != q.inner[i] {
			return false
		}
	}

	return true
}

// Degree returns -1 for the zero polynomial.
func (p *Polynomial) Degree() int {
	return p.leadingCoeffPos()
}

func (p *Polynomial) LeadCoeff() uint64 {
	if pos := p.leadingCoeffPos(); pos >= 0 {
		return p.inner[pos]
	}

	return 0
}

func (p *Polynomial) leadingCoeffPos() int {
	for i := len(p.inner) - 1; i >= 0; i-- {
		if p.inner[i] != 0 {
			return i
		}
	}

	return -1
}

func (p *Polynomial) Copy() *Polynomial {
	innercopy := make([]uint64, len(p.inner))
	copy(innercopy, p.inner)

	return &Polynomial{inner: innercopy, isNTT: p.isNTT}
}

func (p *Polynomial) String() string {
	if p.isNTT {
		return "ntt" + formatSlice(p.inner)
	}

	lead := p.leadingCoeffPos()
	if lead <= 0 {
		return strconv.FormatUint(p.inner[0], 10)
	}

	terms := make([]string, 0, lead+1)
	for i := lead; i >= 0; i-- {
		c := p.inner[i]
		if c == 0 {
			continue
		}

		switch i {
		case 0:
			terms = append(terms, strconv.FormatUint(c, 10))
		case 1:
			terms = append(terms, strconv.FormatUint(c, 10)+"*x")
		default:
			terms = append(terms, strconv.FormatUint(c, 10)+"*x^"+strconv.Itoa(i))
		}
	}

	return strings.Join(terms, " + ")
}

func formatSlice(xs []uint64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.FormatUint(x, 10)
	}

	return "[" + strings.Join(parts, " ") + "]"
}

func (p *Polynomial) ToSlice() []uint64 {
	list := make([]uint64, len(p.inner))
	copy(list, p.inner)

	return list
}

// NoCopySlice exposes the backing slice; callers must not keep it across
// ring operations on p.
func (p *Polynomial) NoCopySlice() []uint64 {
	return p.inner
}

func (p *Polynomial) IsNTT() bool {
	return p.isNTT
}

func (p *Polynomial) Len() int {
	return len(p.inner)
}
