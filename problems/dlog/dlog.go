// Package dlog solves the discrete logarithm problem a^x ≡ b (mod m) for the
// toy moduli used by the cryptology packages. It provides a bounded brute-force
// scan, a sharded parallel scan and Shanks' baby-step giant-step algorithm.
package dlog

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync/atomic"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	cryptology "github.com/BackendStack21/cryptology-go"
	"github.com/BackendStack21/cryptology-go/numtheory"
)

// checkInterval is how many steps a scan runs between context checks.
const checkInterval = 1024

// minParallelRange is the smallest search range worth sharding.
const minParallelRange = 1 << 14

var debugDLOG = os.Getenv("DEBUG_DLOG") != ""

func logDLOG(format string, args ...interface{}) {
	if debugDLOG {
		fmt.Fprintf(os.Stderr, "[DLOG-Go] "+format+"\n", args...)
	}
}

// Solver finds some x with a^x ≡ b (mod m). Attacks take a Solver so callers
// choose the algorithm.
type Solver func(ctx context.Context, a, b, m int) (int, error)

// Bruteforce is a Solver scanning the whole cycle; it always returns the smallest x.
func Bruteforce(ctx context.Context, a, b, m int) (int, error) {
	return SolveBruteforce(ctx, a, b, m, 0)
}

// Shanks is a Solver running baby-step giant-step. The answer is a valid
// exponent but not necessarily the smallest one.
func Shanks(ctx context.Context, a, b, m int) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}
	return SolveShanks(a, b, m)
}

// Parallel returns a Solver running SolveBruteforceParallel with the given worker count.
func Parallel(workers int) Solver {
	return func(ctx context.Context, a, b, m int) (int, error) {
		return SolveBruteforceParallel(ctx, a, b, m, 0, workers)
	}
}

// Bounded returns a Solver running SolveBruteforce with the given bound.
func Bounded(bound int) Solver {
	return func(ctx context.Context, a, b, m int) (int, error) {
		return SolveBruteforce(ctx, a, b, m, bound)
	}
}

// Solve runs solver on p and classifies the outcome. A nil solver means Bruteforce.
func Solve(ctx context.Context, p cryptology.DiscreteLogProblem, solver Solver) cryptology.DiscreteLogResult {
	if solver == nil {
		solver = Bruteforce
	}
	x, err := solver(ctx, p.Base, p.Target, p.Modulus)
	if err != nil {
		return cryptology.DiscreteLogResult{X: -1, Status: cryptology.Status(err), Err: err}
	}
	return cryptology.DiscreteLogResult{X: x, Status: cryptology.Found}
}

// searchLimit turns a caller bound into the number of exponents to scan and
// reports whether that covers the full cycle. Every value a^x takes appears
// for some x < m, so m steps are exhaustive.
func searchLimit(bound, m int) (limit int, exhaustive bool) {
	if bound <= 0 || bound >= m {
		return m, true
	}
	return bound, false
}

func exhausted(a, b, m int, exhaustive bool, limit int) error {
	if exhaustive {
		return errors.Wrapf(cryptology.ErrNotFound, "%d^x ≡ %d (mod %d)", a, b, m)
	}
	return errors.Wrapf(cryptology.ErrBoundExceeded, "%d^x ≡ %d (mod %d) after %d steps", a, b, m, limit)
}

// SolveBruteforce returns the smallest x >= 0 with a^x ≡ b (mod m), scanning
// at most bound exponents. bound <= 0 scans the whole cycle.
//
// A full scan without a match returns ErrNotFound; stopping at a smaller bound
// returns ErrBoundExceeded. A cancelled ctx returns ctx.Err().
func SolveBruteforce(ctx context.Context, a, b, m, bound int) (int, error) {
	md, err := numtheory.NewModulus(m)
	if err != nil {
		return -1, err
	}
	limit, exhaustive := searchLimit(bound, m)
	target := md.Reduce(b)

	cur := md.Reduce(1)
	for x := 0; x < limit; x++ {
		if x%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return -1, err
			}
		}
		if cur == target {
			logDLOG("bruteforce %d^%d ≡ %d (mod %d)", a, x, b, m)
			return x, nil
		}
		cur = md.Mul(cur, a)
	}
	logDLOG("bruteforce gave up on %d^x ≡ %d (mod %d) after %d steps", a, b, m, limit)
	return -1, exhausted(a, b, m, exhaustive, limit)
}

// SolveBruteforceParallel is SolveBruteforce split into contiguous shards run
// concurrently. The result is still the smallest x: a shard stops only once it
// passes the best index found so far. workers <= 0 uses GOMAXPROCS.
func SolveBruteforceParallel(ctx context.Context, a, b, m, bound, workers int) (int, error) {
	md, err := numtheory.NewModulus(m)
	if err != nil {
		return -1, err
	}
	limit, exhaustive := searchLimit(bound, m)
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 || limit < minParallelRange {
		return SolveBruteforce(ctx, a, b, m, bound)
	}

	target := md.Reduce(b)
	var best atomic.Int64
	best.Store(int64(limit))

	shard := (limit + workers - 1) / workers
	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < limit; start += shard {
		start := start
		end := start + shard
		if end > limit {
			end = limit
		}
		g.Go(func() error {
			cur := md.Pow(a, start)
			for x := start; x < end; x++ {
				if (x-start)%checkInterval == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
					if int64(x) >= best.Load() {
						return nil
					}
				}
				if cur == target {
					for {
						old := best.Load()
						if int64(x) >= old || best.CompareAndSwap(old, int64(x)) {
							return nil
						}
					}
				}
				cur = md.Mul(cur, a)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return -1, err
	}

	if x := int(best.Load()); x < limit {
		logDLOG("parallel bruteforce %d^%d ≡ %d (mod %d) with %d workers", a, x, b, m, workers)
		return x, nil
	}
	return -1, exhausted(a, b, m, exhaustive, limit)
}

// SolveShanks solves a^x ≡ b (mod m) with baby-step giant-step, n = ⌊√m⌋+1.
// Giant steps (a^n)^j for j = 1..n are tabled keeping the first j; baby steps
// b*a^i for i = 0..n are looked up, and x = j*n - i is accepted when 0 <= x < m.
func SolveShanks(a, b, m int) (int, error) {
	md, err := numtheory.NewModulus(m)
	if err != nil {
		return -1, err
	}
	n := numtheory.Sqrt(m) + 1

	an := md.Pow(a, n)
	giant := make(map[int]int, n)
	cur := md.Reduce(1)
	for j := 1; j <= n; j++ {
		cur = md.Mul(cur, an)
		if _, ok := giant[cur]; !ok {
			giant[cur] = j
		}
	}

	cur = md.Reduce(b)
	for i := 0; i <= n; i++ {
		if j, ok := giant[cur]; ok {
			if x := j*n - i; x >= 0 && x < m {
				logDLOG("shanks %d^%d ≡ %d (mod %d), n=%d", a, x, b, m, n)
				return x, nil
			}
		}
		cur = md.Mul(cur, a)
	}
	return -1, errors.Wrapf(cryptology.ErrNotFound, "%d^x ≡ %d (mod %d)", a, b, m)
}

// SolvePowerBruteforce returns the smallest x in [0, m) with x^a ≡ b (mod m)
// for which accept (if non-nil) also holds.
func SolvePowerBruteforce(ctx context.Context, a, b, m int, accept func(int) bool) (int, error) {
	md, err := numtheory.NewModulus(m)
	if err != nil {
		return -1, err
	}
	if a < 0 {
		return -1, errors.Wrapf(cryptology.ErrInvalidArgument, "negative exponent %d", a)
	}
	target := md.Reduce(b)
	for x := 0; x < m; x++ {
		if x%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return -1, err
			}
		}
		if md.Pow(x, a) == target && (accept == nil || accept(x)) {
			return x, nil
		}
	}
	return -1, errors.Wrapf(cryptology.ErrNotFound, "x^%d ≡ %d (mod %d)", a, b, m)
}
