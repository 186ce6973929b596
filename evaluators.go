package ntt

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/jonathanmweiss/go-ntt/field"
)

// EvaluationMap evaluates polynomials on the n-th roots of unity
// 1, w, w^2, ..., w^(n-1), where w is the principal root derived from
// field.PrimitiveRoot and n is the next power of two >= the polynomial length.
type EvaluationMap interface {
	// returns the evaluation points for polynomials with up to n coefficients
	EvaluationPoints(n int) (xs []uint64, err error)
	EvaluatePolynomial(p *Polynomial) (ys []uint64, err error)
	// Interpolate recovers the polynomial whose evaluations are ys.
	// len(ys) must be a power of two.
	Interpolate(ys []uint64) (*Polynomial, error)
}

var (
	_ EvaluationMap = (*SlowEvaluator)(nil)
	_ EvaluationMap = (*NttEvaluator)(nil)
)

var errNotInCoefficientForm = errors.New("polynomial not in coefficient form")

type evaluationCache struct {
	sync.Locker
	sizeToPoints map[int][]uint64
}

func newEvaluatorCache() *evaluationCache {
	return &evaluationCache{
		Locker:       &sync.Mutex{},
		sizeToPoints: make(map[int][]uint64),
	}
}

// loadPoints returns a copy of the cached points, or nil.
func (e *evaluationCache) loadPoints(n int) []uint64 {
	e.Lock()
	defer e.Unlock()

	if points, ok := e.sizeToPoints[n]; ok {
		return slices.Clone(points)
	}

	return nil
}

// storePoints keeps its own copy; the caller may hand points out.
func (e *evaluationCache) storePoints(n int, points []uint64) {
	e.Lock()
	defer e.Unlock()

	if _, ok := e.sizeToPoints[n]; ok {
		return
	}

	e.sizeToPoints[n] = slices.Clone(points)
}

func evaluationSize(n int) (int, error) {
	size := ProductLength(n, 1)
	if size == 0 || size > 1<<field.MaxLogN {
		return 0, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}

	return size, nil
}

func interpolationSize(ys []uint64) (int, error) {
	size, err := evaluationSize(len(ys))
	if err != nil {
		return 0, err
	}

	if size != len(ys) {
		return 0, fmt.Errorf("%w: %d values is not a power of two", ErrInvalidLength, len(ys))
	}

	return size, nil
}

// SlowEvaluator runs Horner's rule once per point, O(n^2) in total. Its
// Interpolate is the matching O(n^2) inverse.
type SlowEvaluator struct {
	cache *evaluationCache
	pr    *DensePolyRing
}

func NewSlowEvaluator() *SlowEvaluator {
	return &SlowEvaluator{
		pr:    NewDensePolyRing(CT),
		cache: newEvaluatorCache(),
	}
}

func (e *SlowEvaluator) EvaluationPoints(n int) ([]uint64, error) {
	size, err := evaluationSize(n)
	if err != nil {
		return nil, err
	}

	if points := e.cache.loadPoints(size); points != nil {
		return points, nil
	}

	points := make([]uint64, size)
	points[0] = 1

	if size > 1 {
		w, err := e.pr.GetRootOfUnity(uint64(size))
		if err != nil {
			return nil, err
		}

		for i := 1; i < size; i++ {
			points[i] = e.pr.Mul(points[i-1], w)
		}
	}

	e.cache.storePoints(size, points)

	return points, nil
}

func (e *SlowEvaluator) EvaluatePolynomial(p *Polynomial) ([]uint64, error) {
	if p.IsNTT() {
		return nil, errNotInCoefficientForm
	}

	points, err := e.EvaluationPoints(p.Len())
	if err != nil {
		return nil, err
	}

	values := make([]uint64, len(points))
	for i, x := range points {
		values[i] = e.pr.Evaluate(p, x)
	}

	return values, nil
}

/*
Interpolate inverts EvaluatePolynomial at the n-th roots of unity. With
ys read as the coefficients of Y(x), the j-th coefficient is
n^-1 * Y(w^-j), and w^-j is the (n-j)-th evaluation point.
*/
func (e *SlowEvaluator) Interpolate(ys []uint64) (*Polynomial, error) {
	n, err := interpolationSize(ys)
	if err != nil {
		return nil, err
	}

	points, err := e.EvaluationPoints(n)
	if err != nil {
		return nil, err
	}

	y := NewPolynomial(slices.Clone(ys), false)
	nInv := e.pr.Inverse(uint64(n))

	coeffs := make([]uint64, n)
	for j := range coeffs {
		coeffs[j] = e.pr.Mul(nInv, e.pr.Evaluate(y, points[(n-j)%n]))
	}

	p := NewPolynomial(coeffs, false)
	trimTrailingZeros(p)

	return p, nil
}

// NttEvaluator evaluates with one forward transform.
type NttEvaluator struct {
	cache *evaluationCache
	pr    *DensePolyRing
}

func NewNttEvaluator(v Variant) *NttEvaluator {
	return &NttEvaluator{
		pr:    NewDensePolyRing(v),
		cache: newEvaluatorCache(),
	}
}

func (e *NttEvaluator) EvaluationPoints(n int) ([]uint64, error) {
	size, err := evaluationSize(n)
	if err != nil {
		return nil, err
	}

	if points := e.cache.loadPoints(size); points != nil {
		return points, nil
	}

	// The transform of p(x) = x is exactly the list of evaluation points.
	inner := make([]uint64, size)
	if size == 1 {
		inner[0] = 1
	} else {
		inner[1] = 1
	}

	p := NewPolynomial(inner, false)
	if err := e.pr.NttForward(p); err != nil {
		return nil, err
	}

	points := p.ToSlice()
	e.cache.storePoints(size, points)

	return points, nil
}

// EvaluatePolynomial leaves p untouched.
func (e *NttEvaluator) EvaluatePolynomial(p *Polynomial) ([]uint64, error) {
	if p.IsNTT() {
		return nil, errNotInCoefficientForm
	}

	cpy := p.Copy()
	if err := e.pr.NttForward(cpy); err != nil {
		return nil, err
	}

	return cpy.NoCopySlice(), nil
}

// Interpolate leaves ys untouched.
func (e *NttEvaluator) Interpolate(ys []uint64) (*Polynomial, error) {
	if _, err := interpolationSize(ys); err != nil {
		return nil, err
	}

	p := NewPolynomial(slices.Clone(ys), true)
	if err := e.pr.NttBackward(p); err != nil {
		return nil, err
	}

	return p, nil
}
