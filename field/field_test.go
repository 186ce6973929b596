package field

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tuneinsight/lattigo/v6/ring"
)

func TestRootsOfUnity(t *testing.T) {
	a := assert.New(t)

	f, err := NewPrimeField(65537)
	a.NoError(err)

	root, err := f.GetRootOfUnity(4)
	a.NoError(err)
	a.Equal(uint64(65281), root)

	root, err = f.GetRootOfUnity(8)
	a.NoError(err)
	a.Equal(uint64(4096), root)

	f, err = NewPrimeField(157)
	a.NoError(err)

	root, err = f.GetRootOfUnity(4)
	a.NoError(err)
	a.Equal(uint64(129), root)

	_, err = f.GetRootOfUnity(1)
	a.ErrorIs(err, ErrNTooSmall)

	_, err = f.GetRootOfUnity(6)
	a.ErrorIs(err, ErrNotPowerOfTwo)

	_, err = f.GetRootOfUnity(8)
	a.ErrorIs(err, ErrNotDivisible)
}

func TestNewPrimeFieldRejects(t *testing.T) {
	a := assert.New(t)

	_, err := NewPrimeField(65536)
	a.ErrorIs(err, errNotPrime)

	_, err = NewPrimeField(1<<63 + 1)
	a.ErrorIs(err, errPrimeTooLarge)
}

func TestDefaultField(t *testing.T) {
	a := assert.New(t)

	f := Default()
	a.Equal(uint64(Modulus), f.Modulus())
	a.Equal(uint64(PrimitiveRoot), f.Generator())
	a.True(f.IsGenerator(PrimitiveRoot))
	a.False(f.IsGenerator(2)) // 2 is a quadratic residue mod Modulus.
	a.False(f.IsGenerator(0))

	factors := f.Factors()
	a.Contains(factors, uint64(2))
	a.Contains(factors, uint64(7))
	a.Contains(factors, uint64(17))

	order := uint64(Modulus - 1)
	a.Equal(uint64(1<<MaxLogN), order&-order)

	w, err := f.GetRootOfUnity(8)
	a.NoError(err)
	a.Equal(uint64(372528824), w)
	a.Equal(w, RootOfUnity(PrimitiveRoot, 8))
	a.Equal(uint64(1), Pow(w, 8))
	a.NotEqual(uint64(1), Pow(w, 4))
}

func TestPowerMod(t *testing.T) {
	a := assert.New(t)

	t.Run("zeroExponent", func(t *testing.T) {
		for _, x := range []uint64{0, 1, 2, Modulus - 1, Modulus, 1<<64 - 1} {
			a.Equal(uint64(1), PowerMod(x, 0, Modulus))
			a.Equal(uint64(1), PowerMod(x, 0, 7))
		}
		a.Equal(uint64(0), PowerMod(5, 0, 1))
	})

	t.Run("oneExponent", func(t *testing.T) {
		for _, x := range []uint64{0, 1, 12345, Modulus + 3, 1<<64 - 1} {
			a.Equal(x%Modulus, PowerMod(x, 1, Modulus))
		}
	})

	t.Run("groupOrder", func(t *testing.T) {
		a.Equal(uint64(1), PowerMod(PrimitiveRoot, Modulus-1, Modulus))
		a.Equal(uint64(Modulus-1), PowerMod(PrimitiveRoot, (Modulus-1)/2, Modulus))
	})

	t.Run("matchesLattigo", func(t *testing.T) {
		xs := SampleUniform([]byte("power-mod"), 64)
		for i, x := range xs {
			e := xs[(i+1)%len(xs)]
			a.Equal(ring.ModExp(x, e, Modulus), PowerMod(x, e, Modulus))
		}
	})

	t.Run("largeModulus", func(t *testing.T) {
		const largePrime = 9191248642791733759 // p > 2^62
		x := uint64(1<<63 - 1)

		want := new(big.Int).Exp(
			new(big.Int).SetUint64(x),
			new(big.Int).SetUint64(largePrime-2),
			new(big.Int).SetUint64(largePrime),
		)
		a.Equal(want.Uint64(), PowerMod(x, largePrime-2, largePrime))
	})
}

func TestFixedModulusOps(t *testing.T) {
	a := assert.New(t)

	q := uint64(Modulus - 1)
	a.Equal(uint64(0), Add(q, 1))
	a.Equal(q, Sub(0, 1))
	a.Equal(uint64(1), Mul(q, q))
	a.Equal(uint64(0), Neg(0))
	a.Equal(uint64(1), Neg(q))
	a.Equal(uint64(3), Reduce(Modulus+3))

	a.Equal(uint64(873463809), Inverse(8))
	a.Equal(uint64(332748118), Inverse(PrimitiveRoot))
	a.Panics(func() { Inverse(0) })
	a.Panics(func() { Inverse(Modulus) })

	f := Default()
	for _, x := range SampleUniform([]byte("fixed-ops"), 32) {
		y := Mul(x, 7919)
		a.Equal(f.Add(x, y), Add(x, y))
		a.Equal(f.Sub(x, y), Sub(x, y))
		a.Equal(f.Mul(x, y), Mul(x, y))
		a.Equal(f.Neg(x), Neg(x))
		a.True(f.Equals(x+Modulus, x))
	}
}

func TestSampleUniform(t *testing.T) {
	a := assert.New(t)

	xs := SampleUniform([]byte("seed"), 1000)
	a.Len(xs, 1000)
	for _, x := range xs {
		a.Less(x, uint64(Modulus))
	}

	a.Equal(xs, SampleUniform([]byte("seed"), 1000))
	a.NotEqual(xs, SampleUniform([]byte("other seed"), 1000))
	a.Equal(xs[:10], SampleUniform([]byte("seed"), 10))
	a.Empty(SampleUniform([]byte("seed"), 0))
}

func TestCorrectOps(t *testing.T) {
	a := assert.New(t)

	f, err := NewPrimeField(9191248642791733759) // p > 2^62
	a.NoError(err)

	n := uint64((1 << 63) - 1)
	e1 := f.Reduce(n)

	e2 := &big.Int{}
	e2.SetUint64(n)
	e2.Mul(e2, e2)
	e2.Mod(e2, new(big.Int).SetUint64(f.Modulus()))

	a.Equal(e2.Uint64(), f.Mul(e1, e1))
	a.Equal(uint64(1), f.Mul(e1, f.Inverse(e1)))
}

func TestUnreducedOperands(t *testing.T) {
	a := assert.New(t)

	bigP := new(big.Int).SetUint64(Modulus)
	mod := func(op func(z, x, y *big.Int) *big.Int, x, y uint64) uint64 {
		z := op(new(big.Int), new(big.Int).SetUint64(x), new(big.Int).SetUint64(y))
		return z.Mod(z, bigP).Uint64()
	}

	f := Default()
	vals := []uint64{0, 1, Modulus, Modulus + 1, 1 << 63, 1<<64 - 1}
	for _, x := range vals {
		for _, y := range vals {
			a.NotPanics(func() { f.Mul(x, y) })
			a.Equal(mod((*big.Int).Mul, x, y), f.Mul(x, y), "%d * %d", x, y)
			a.Equal(mod((*big.Int).Add, x, y), f.Add(x, y), "%d + %d", x, y)
			a.Equal(mod((*big.Int).Sub, x, y), f.Sub(x, y), "%d - %d", x, y)
		}

		a.Equal(uint64(0), f.Add(f.Neg(x), x))
	}
}

func FuzzInverse(f *testing.F) {
	testcases := []uint64{1, 54347, 4534523, 021310, 1<<63 - 1}
	for _, tc := range testcases {
		f.Add(tc) // Use f.Add to provide a seed corpus
	}

	f.Fuzz(func(t *testing.T, num uint64) {
		e1 := Reduce(num)
		if e1 == 0 {
			return
		}

		if res := Mul(e1, Inverse(e1)); res != 1 {
			t.Fatalf("expected 1, got %d", res)
		}

		if sum := Add(Neg(e1), e1); sum != 0 {
			t.Fatalf("expected 0, got %d", sum)
		}
	})
}

func BenchmarkPowMod(b *testing.B) {
	x := uint64(Modulus - 2)

	b.Run("PowerMod", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			PowerMod(x, Modulus-2, Modulus)
		}
	})

	b.Run("PowBig", func(b *testing.B) {
		bx := new(big.Int).SetUint64(x)
		be := big.NewInt(Modulus - 2)
		bm := big.NewInt(Modulus)
		for i := 0; i < b.N; i++ {
			new(big.Int).Exp(bx, be, bm)
		}
	})
}
