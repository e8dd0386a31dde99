// Package numtheory is the arithmetic kernel shared by every cryptosystem:
// primality, factorization, Euler's totient, modular arithmetic, inverses and
// primitive roots. All functions are pure; the factorization cache is a memo.
package numtheory

import (
	"math"
	"sort"
	"sync"

	"github.com/pkg/errors"

	cryptology "github.com/BackendStack21/cryptology-go"
	"github.com/BackendStack21/cryptology-go/utils"
)

// Factorization cache with arbitrary eviction
var (
	factorCacheMu sync.RWMutex
	factorCache   = make(map[int]cryptology.FactorMap)
	cacheMaxSize  = 256
)

// =============================================================================
// Modulus
// =============================================================================

// Modulus is a validated modulus m > 1. Once constructed its methods cannot fail.
type Modulus struct {
	m int
}

// NewModulus validates m and returns it as a Modulus.
func NewModulus(m int) (Modulus, error) {
	if m <= 1 {
		return Modulus{}, errors.Wrapf(cryptology.ErrInvalidArgument, "modulus %d must be greater than 1", m)
	}
	return Modulus{m: m}, nil
}

// Value returns m.
func (md Modulus) Value() int { return md.m }

// Reduce returns x mod m in [0, m), for negative x too.
func (md Modulus) Reduce(x int) int {
	r := x % md.m
	if r < 0 {
		r += md.m
	}
	return r
}

// Add returns (a + b) mod m.
func (md Modulus) Add(a, b int) int {
	return int((uint64(md.Reduce(a)) + uint64(md.Reduce(b))) % uint64(md.m))
}

// Sub returns (a - b) mod m.
func (md Modulus) Sub(a, b int) int {
	return md.Add(a, md.m-md.Reduce(b))
}

// Mul returns (a * b) mod m without overflow for any int operands.
func (md Modulus) Mul(a, b int) int {
	return int(utils.MulMod(uint64(md.Reduce(a)), uint64(md.Reduce(b)), uint64(md.m)))
}

// Pow returns base^exp mod m by square-and-multiply.
// Panics if exp is negative.
func (md Modulus) Pow(base, exp int) int {
	if exp < 0 {
		panic("negative exponent")
	}
	result := 1 % md.m
	b := md.Reduce(base)
	for exp > 0 {
		if exp&1 == 1 {
			result = md.Mul(result, b)
		}
		b = md.Mul(b, b)
		exp >>= 1
	}
	return result
}

// ModPow computes a^b mod m.
func ModPow(a, b, m int) (int, error) {
	md, err := NewModulus(m)
	if err != nil {
		return 0, err
	}
	if b < 0 {
		return 0, errors.Wrapf(cryptology.ErrInvalidArgument, "negative exponent %d", b)
	}
	return md.Pow(a, b), nil
}

// ModMultiply computes a*b mod m.
func ModMultiply(a, b, m int) (int, error) {
	md, err := NewModulus(m)
	if err != nil {
		return 0, err
	}
	return md.Mul(a, b), nil
}

// =============================================================================
// Primes and Factorization
// =============================================================================

// IsPrime reports whether n is prime by trial division.
func IsPrime(n int) (bool, error) {
	if n < 0 {
		return false, errors.Wrapf(cryptology.ErrInvalidArgument, "primality of negative %d", n)
	}
	if n < 2 {
		return false, nil
	}
	if n < 4 {
		return true, nil
	}
	if n%2 == 0 {
		return false, nil
	}
	for i := 3; i <= n/i; i += 2 {
		if n%i == 0 {
			return false, nil
		}
	}
	return true, nil
}

// mustBePrime returns ErrInvalidArgument unless m is prime.
func mustBePrime(m int, what string) error {
	ok, err := IsPrime(m)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(cryptology.ErrInvalidArgument, "%s %d is not prime", what, m)
	}
	return nil
}

// Factorize returns the prime factorization of n.
// Factorize(1) is the empty map. The returned map is owned by the caller.
func Factorize(n int) (cryptology.FactorMap, error) {
	if n < 1 {
		return nil, errors.Wrapf(cryptology.ErrInvalidArgument, "cannot factor %d", n)
	}

	factorCacheMu.RLock()
	if f, ok := factorCache[n]; ok {
		factorCacheMu.RUnlock()
		return copyFactors(f), nil
	}
	factorCacheMu.RUnlock()

	f := trialDivide(n)

	factorCacheMu.Lock()
	if len(factorCache) >= cacheMaxSize {
		for k := range factorCache {
			delete(factorCache, k)
			break
		}
	}
	factorCache[n] = f
	factorCacheMu.Unlock()

	return copyFactors(f), nil
}

func trialDivide(n int) cryptology.FactorMap {
	f := make(cryptology.FactorMap)
	for n%2 == 0 {
		f[2]++
		n /= 2
	}
	for i := 3; i <= n/i; i += 2 {
		for n%i == 0 {
			f[i]++
			n /= i
		}
	}
	if n > 1 {
		f[n]++
	}
	return f
}

func copyFactors(f cryptology.FactorMap) cryptology.FactorMap {
	out := make(cryptology.FactorMap, len(f))
	for p, e := range f {
		out[p] = e
	}
	return out
}

// EulerTotient computes φ(n), the count of integers in [1, n] coprime to n.
func EulerTotient(n int) (int, error) {
	f, err := Factorize(n)
	if err != nil {
		return 0, err
	}
	result := 1
	for p, e := range f {
		result *= p - 1
		for i := 1; i < e; i++ {
			result *= p
		}
	}
	return result, nil
}

// =============================================================================
// GCD and Inverses
// =============================================================================

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// GCD returns the non-negative greatest common divisor of a and b.
func GCD(a, b int) int {
	a, b = abs(a), abs(b)
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// ExtendedGCD returns g = gcd(a, b) and Bézout coefficients with a*x + b*y = g.
func ExtendedGCD(a, b int) (g, x, y int) {
	oldR, r := a, b
	oldS, s := 1, 0
	oldT, tt := 0, 1
	for r != 0 {
		q := oldR / r
		oldR, r = r, oldR-q*r
		oldS, s = s, oldS-q*s
		oldT, tt = tt, oldT-q*tt
	}
	if oldR < 0 {
		oldR, oldS, oldT = -oldR, -oldS, -oldT
	}
	return oldR, oldS, oldT
}

// ModInverse computes a^-1 mod m by Fermat's little theorem, a^(m-2).
// m must be prime and a must not be a multiple of m.
func ModInverse(a, m int) (int, error) {
	if err := mustBePrime(m, "modulus"); err != nil {
		return 0, err
	}
	md := Modulus{m: m}
	if md.Reduce(a) == 0 {
		return 0, errors.Wrapf(cryptology.ErrInvalidArgument, "%d has no inverse mod %d", a, m)
	}
	return md.Pow(a, m-2), nil
}

// ModInverseGeneral computes a^-1 mod m as a^(φ(m)-1) for any m > 1.
// It fails when gcd(a, m) != 1.
func ModInverseGeneral(a, m int) (int, error) {
	md, err := NewModulus(m)
	if err != nil {
		return 0, err
	}
	if GCD(md.Reduce(a), m) != 1 {
		return 0, errors.Wrapf(cryptology.ErrInvalidArgument, "%d is not coprime to %d", a, m)
	}
	phi, err := EulerTotient(m)
	if err != nil {
		return 0, err
	}
	return md.Pow(a, phi-1), nil
}

// MultiplicativeOrder returns the smallest k > 0 with x^k ≡ 1 (mod m).
// x must be coprime to m.
func MultiplicativeOrder(x, m int) (int, error) {
	md, err := NewModulus(m)
	if err != nil {
		return 0, err
	}
	if GCD(md.Reduce(x), m) != 1 {
		return 0, errors.Wrapf(cryptology.ErrInvalidArgument, "%d is not a unit mod %d", x, m)
	}
	order, err := EulerTotient(m)
	if err != nil {
		return 0, err
	}
	f, err := Factorize(order)
	if err != nil {
		return 0, err
	}
	for p, e := range f {
		for i := 0; i < e && md.Pow(x, order/p) == 1; i++ {
			order /= p
		}
	}
	return order, nil
}

// =============================================================================
// Primitive Roots
// =============================================================================

// IsPrimitiveRoot reports whether x generates the multiplicative group mod the prime m.
func IsPrimitiveRoot(x, m int) (bool, error) {
	if err := mustBePrime(m, "modulus"); err != nil {
		return false, err
	}
	order, err := Factorize(m - 1)
	if err != nil {
		return false, err
	}
	return isGenerator(Modulus{m: m}, x, order), nil
}

// isGenerator checks x^((m-1)/q) != 1 for every prime q dividing m-1.
func isGenerator(md Modulus, x int, order cryptology.FactorMap) bool {
	x = md.Reduce(x)
	if x == 0 {
		return false
	}
	for q := range order {
		if md.Pow(x, (md.m-1)/q) == 1 {
			return false
		}
	}
	return true
}

// FindPrimitiveRoots returns every primitive root mod the prime m in ascending order.
// The roots are the powers g^k of the smallest root g with gcd(k, m-1) = 1.
func FindPrimitiveRoots(m int) ([]int, error) {
	if err := mustBePrime(m, "modulus"); err != nil {
		return nil, err
	}
	order, err := Factorize(m - 1)
	if err != nil {
		return nil, err
	}
	md := Modulus{m: m}

	g := 1
	for ; g < m; g++ {
		if isGenerator(md, g, order) {
			break
		}
	}

	// Every root is g^k with gcd(k, m-1) = 1.
	n := m - 1
	roots := make([]int, 0)
	x := 1 % m
	for k := 1; k <= n; k++ {
		x = md.Mul(x, g)
		if GCD(k, n) == 1 {
			roots = append(roots, x)
		}
	}
	sort.Ints(roots)
	return roots, nil
}

// CountPrimitiveRoots returns φ(m-1), the number of primitive roots mod the prime m.
func CountPrimitiveRoots(m int) (int, error) {
	if err := mustBePrime(m, "modulus"); err != nil {
		return 0, err
	}
	return EulerTotient(m - 1)
}

// Sqrt returns ⌊√n⌋ for n >= 0.
func Sqrt(n int) int {
	if n < 2 {
		return n
	}
	r := int(math.Sqrt(float64(n)))
	for r > 0 && r > n/r {
		r--
	}
	for r+1 <= n/(r+1) {
		r++
	}
	return r
}
