package field

import (
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/tuneinsight/lattigo/v6/ring"
)

const (
	// Modulus is the prime every transform works under: 119 * 2^23 + 1.
	Modulus = 998244353
	// PrimitiveRoot generates the multiplicative group of order Modulus-1.
	PrimitiveRoot = 3
	// MaxLogN is the largest h such that 2^h divides Modulus-1.
	MaxLogN = 23
)

type Field interface {
	Equals(a, b uint64) bool
	Add(a, b uint64) uint64
	Sub(a, b uint64) uint64
	Mul(a, b uint64) uint64
	Pow(base, exp uint64) uint64

	Neg(a uint64) uint64
	Inverse(a uint64) uint64
	Reduce(a uint64) uint64

	Modulus() uint64
	GetRootOfUnity(n uint64) (uint64, error)
	Generator() uint64
}

var _ Field = (*PrimeField)(nil)

type PrimeField struct {
	prime     uint64
	generator uint64
	factors   []uint64
}

var (
	errPrimeTooLarge = errors.New("supporting up to 63-bit prime")
	errNotPrime      = errors.New("this package only support prime fields. please use a prime order")
)

const maxBitUsage = 63

/*
NewPrimeField validates the prime, then derives the smallest generator of the
multiplicative group together with the prime factors of prime-1.
*/
func NewPrimeField(prime uint64) (*PrimeField, error) {
	if prime > (1 << maxBitUsage) {
		return nil, errPrimeTooLarge
	}

	b := (&big.Int{}).SetUint64(prime)
	// Probably prime is 100% accurate for 64-bit numbers. Thus, we can use one base check.
	if !b.ProbablyPrime(1) {
		return nil, errNotPrime
	}

	g, factors, err := ring.PrimitiveRoot(prime, nil)
	if err != nil {
		return nil, err
	}

	return &PrimeField{
		prime:     prime,
		generator: g,
		factors:   factors,
	}, nil
}

var (
	defaultOnce  sync.Once
	defaultField *PrimeField
)

// Default returns the field of Modulus. It panics if lattigo disagrees that
// PrimitiveRoot generates it.
func Default() *PrimeField {
	defaultOnce.Do(func() {
		f, err := NewPrimeField(Modulus)
		if err != nil {
			panic(err)
		}

		if !f.IsGenerator(PrimitiveRoot) {
			panic(fmt.Sprintf("%d does not generate GF(%d)", PrimitiveRoot, Modulus))
		}

		defaultField = f
	})

	return defaultField
}

var (
	ErrNotPowerOfTwo = errors.New("n must be a power of 2")
	ErrNotDivisible  = errors.New("n must divide p-1")
	ErrNTooSmall     = errors.New("n must be >= 2")
)

// Modulus implements Field.
func (f *PrimeField) Modulus() uint64 {
	return f.prime
}

func (f *PrimeField) GetRootOfUnity(n uint64) (uint64, error) {
	if n == 0 || n == 1 {
		return 0, ErrNTooSmall
	}

	if !IsPowerOfTwo(n) {
		return 0, ErrNotPowerOfTwo
	}

	if (f.prime-1)%n != 0 {
		return 0, ErrNotDivisible
	}

	// since g^(x) == 1 (mod p) iff x=p-1, then w=g^((p-1)/n) is not 1, and the following n powers of w != 1 too.
	// proof is by contradiction to g being the generator of the field.
	return f.Pow(f.generator, (f.prime-1)/n), nil
}

// IsGenerator reports whether g has full order p-1.
func (f *PrimeField) IsGenerator(g uint64) bool {
	g %= f.prime
	if g == 0 {
		return false
	}

	for _, q := range f.factors {
		if f.Pow(g, (f.prime-1)/q) == 1 {
			return false
		}
	}

	return true
}

func IsPowerOfTwo(n uint64) bool {
	// https://graphics.stanford.edu/~seander/bithacks.html#DetermineIfPowerOf2
	return n != 0 && (n&(n-1)) == 0
}

func (f *PrimeField) Generator() uint64 {
	return f.generator
}

func (f *PrimeField) Factors() []uint64 {
	cpy := make([]uint64, len(f.factors))
	copy(cpy, f.factors)

	return cpy
}

func (f *PrimeField) Reduce(val uint64) uint64 {
	return val % f.prime
}

func (f *PrimeField) Add(a, b uint64) uint64 {
	tmp := a%f.prime + b%f.prime // can't overflow since both are below 2^63.
	if tmp >= f.prime {
		tmp -= f.prime
	}

	return tmp
}

// Mul returns a * b (mod field prime). Operands need not be reduced.
func (f *PrimeField) Mul(a, b uint64) uint64 {
	a %= f.prime
	b %= f.prime

	if a == 0 || b == 0 {
		return 0
	}

	return mulMod(a, b, f.prime)
}

func (f *PrimeField) Pow(base, exp uint64) uint64 {
	return PowerMod(base, exp, f.prime)
}

func (f *PrimeField) Inverse(e uint64) uint64 {
	// Fermat's little theorem: a^(p-1) = 1 (mod p), so a^(p-2) is the inverse of a.
	if e%f.prime == 0 {
		panic("zero has no inverse")
	}

	return f.Pow(e, f.prime-2)
}

func (f *PrimeField) Neg(e uint64) uint64 {
	e %= f.prime
	if e == 0 {
		return 0
	}

	return f.prime - e
}

func (f *PrimeField) Sub(a, b uint64) uint64 {
	a %= f.prime
	b %= f.prime

	if a < b {
		return f.prime - (b - a)
	}

	return a - b
}

func (f *PrimeField) Equals(a, b uint64) bool {
	mod := f.prime
	return (a % mod) == (b % mod)
}
