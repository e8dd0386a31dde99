package dlog

import (
	"context"
	"testing"

	"github.com/pkg/errors"

	cryptology "github.com/BackendStack21/cryptology-go"
	"github.com/BackendStack21/cryptology-go/numtheory"
)

var vectors = []struct {
	a, b, m, x int
}{
	{2, 23, 35, 7},
	{54, 196, 596, 9},
	{270, 342, 503, 49},
	{10025, 19120, 25679, 14678},
	{10025, 12097, 25679, 1234},
	{11039, 31214, 49559, 1159},
}

func TestSolveBruteforce(t *testing.T) {
	ctx := context.Background()
	for _, v := range vectors {
		x, err := SolveBruteforce(ctx, v.a, v.b, v.m, 0)
		if err != nil {
			t.Fatalf("SolveBruteforce(%d, %d, %d): %v", v.a, v.b, v.m, err)
		}
		if x != v.x {
			t.Errorf("SolveBruteforce(%d, %d, %d) = %d, want %d", v.a, v.b, v.m, x, v.x)
		}
	}
}

func TestSolveShanks(t *testing.T) {
	for _, v := range vectors {
		x, err := SolveShanks(v.a, v.b, v.m)
		if err != nil {
			t.Fatalf("SolveShanks(%d, %d, %d): %v", v.a, v.b, v.m, err)
		}
		if x != v.x {
			t.Errorf("SolveShanks(%d, %d, %d) = %d, want %d", v.a, v.b, v.m, x, v.x)
		}
	}
}

func TestSolveShanks_NotMinimal(t *testing.T) {
	// 11444 has order 443 mod 48731; Shanks finds a larger representative.
	x, err := SolveShanks(11444, 45776, 48731)
	if err != nil {
		t.Fatal(err)
	}
	if x != 38012 || x%443 != 357 {
		t.Errorf("SolveShanks = %d, want 38012", x)
	}
	if got, _ := numtheory.ModPow(11444, x, 48731); got != 45776 {
		t.Errorf("11444^%d = %d, want 45776", x, got)
	}
}

func TestNoSolution(t *testing.T) {
	ctx := context.Background()
	// 2 generates {1, 2, 4} mod 7
	if _, err := SolveBruteforce(ctx, 2, 5, 7, 0); !errors.Is(err, cryptology.ErrNotFound) {
		t.Errorf("SolveBruteforce: expected ErrNotFound, got %v", err)
	}
	x, err := SolveShanks(2, 5, 7)
	if !errors.Is(err, cryptology.ErrNotFound) || x != -1 {
		t.Errorf("SolveShanks = %d, %v; want -1, ErrNotFound", x, err)
	}
}

func TestSolveBruteforce_Bound(t *testing.T) {
	_, err := SolveBruteforce(context.Background(), 10025, 19120, 25679, 1000)
	if !errors.Is(err, cryptology.ErrBoundExceeded) {
		t.Errorf("expected ErrBoundExceeded, got %v", err)
	}
	x, err := SolveBruteforce(context.Background(), 10025, 19120, 25679, 14679)
	if err != nil || x != 14678 {
		t.Errorf("bound just above the answer: %d, %v", x, err)
	}
}

func TestSolveBruteforce_ZeroExponent(t *testing.T) {
	x, err := SolveBruteforce(context.Background(), 3, 1, 7, 0)
	if err != nil || x != 0 {
		t.Errorf("3^x ≡ 1 (mod 7) = %d, %v; want 0", x, err)
	}
}

func TestSolveBruteforce_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := SolveBruteforce(ctx, 2, 5, 7, 0)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if cryptology.Status(err) != cryptology.Cancelled {
		t.Errorf("Status = %v", cryptology.Status(err))
	}
}

func TestSolveBruteforceParallel(t *testing.T) {
	ctx := context.Background()
	for _, v := range vectors {
		for _, workers := range []int{0, 1, 3, 8} {
			x, err := SolveBruteforceParallel(ctx, v.a, v.b, v.m, 0, workers)
			if err != nil {
				t.Fatalf("parallel(%d workers) %v: %v", workers, v, err)
			}
			if x != v.x {
				t.Errorf("parallel(%d workers) %d^x ≡ %d (mod %d) = %d, want %d", workers, v.a, v.b, v.m, x, v.x)
			}
		}
	}
}

func TestSolveBruteforceParallel_Minimal(t *testing.T) {
	// 4 has order 430470 mod 860941, so 4^7 reappears at 430477 in a later
	// shard that may finish first.
	target, _ := numtheory.ModPow(4, 7, 860941)
	x, err := SolveBruteforceParallel(context.Background(), 4, target, 860941, 0, 8)
	if err != nil {
		t.Fatal(err)
	}
	if x != 7 {
		t.Errorf("parallel returned %d, want the smallest exponent 7", x)
	}
}

func TestSolveBruteforceParallel_NotFound(t *testing.T) {
	// 4 is a quadratic residue mod 860941, 2 is not, so 4^x never equals 2.
	_, err := SolveBruteforceParallel(context.Background(), 4, 2, 860941, 0, 4)
	if !errors.Is(err, cryptology.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	_, err = SolveBruteforceParallel(context.Background(), 4, 2, 860941, 100000, 4)
	if !errors.Is(err, cryptology.ErrBoundExceeded) {
		t.Errorf("expected ErrBoundExceeded, got %v", err)
	}
}

func TestSolve(t *testing.T) {
	ctx := context.Background()
	p := cryptology.DiscreteLogProblem{Base: 2, Target: 23, Modulus: 35}

	for name, s := range map[string]Solver{
		"default":    nil,
		"bruteforce": Bruteforce,
		"shanks":     Shanks,
		"parallel":   Parallel(2),
		"bounded":    Bounded(100),
	} {
		r := Solve(ctx, p, s)
		if r.Status != cryptology.Found || r.X != 7 || r.Err != nil {
			t.Errorf("%s: %+v", name, r)
		}
	}

	r := Solve(ctx, cryptology.DiscreteLogProblem{Base: 10025, Target: 19120, Modulus: 25679}, Bounded(10))
	if r.Status != cryptology.BoundExceeded || r.X != -1 {
		t.Errorf("bounded-out: %+v", r)
	}
	r = Solve(ctx, cryptology.DiscreteLogProblem{Base: 2, Target: 5, Modulus: 7}, Shanks)
	if r.Status != cryptology.NotFound {
		t.Errorf("not-found: %+v", r)
	}
	for _, m := range []int{1, 0, -7} {
		r = Solve(ctx, cryptology.DiscreteLogProblem{Base: 2, Target: 1, Modulus: m}, nil)
		if r.Status != cryptology.Invalid || r.X != -1 || !errors.Is(r.Err, cryptology.ErrInvalidArgument) {
			t.Errorf("modulus %d: %+v", m, r)
		}
	}
}

func TestShanksAgreesWithBruteforce(t *testing.T) {
	ctx := context.Background()
	const p = 787
	roots, err := numtheory.FindPrimitiveRoots(p)
	if err != nil {
		t.Fatal(err)
	}
	for _, g := range roots[:10] {
		for b := 2; b < p; b += 13 {
			bf, err := SolveBruteforce(ctx, g, b, p, 0)
			if err != nil {
				t.Fatal(err)
			}
			sh, err := SolveShanks(g, b, p)
			if err != nil {
				t.Fatal(err)
			}
			if bf != sh {
				t.Fatalf("g=%d b=%d: bruteforce %d, shanks %d", g, b, bf, sh)
			}
		}
	}
}

func TestSolvePowerBruteforce(t *testing.T) {
	ctx := context.Background()
	cases := []struct{ a, b, m, x int }{
		{7, 23, 35, 2},
		{9, 196, 596, 54},
		{49, 342, 503, 270},
	}
	for _, c := range cases {
		x, err := SolvePowerBruteforce(ctx, c.a, c.b, c.m, nil)
		if err != nil || x != c.x {
			t.Errorf("SolvePowerBruteforce(%d, %d, %d) = %d, %v; want %d", c.a, c.b, c.m, x, err, c.x)
		}
	}

	x, err := SolvePowerBruteforce(ctx, 443, 1, 48731, func(x int) bool { return x > 1 })
	if err != nil || x != 4 {
		t.Errorf("generator search = %d, %v; want 4", x, err)
	}

	if _, err := SolvePowerBruteforce(ctx, 2, 3, 7, nil); !errors.Is(err, cryptology.ErrNotFound) {
		t.Errorf("3 is not a square mod 7: %v", err)
	}
}

func TestInvalidModulus(t *testing.T) {
	ctx := context.Background()
	if _, err := SolveBruteforce(ctx, 2, 1, 1, 0); !errors.Is(err, cryptology.ErrInvalidArgument) {
		t.Errorf("SolveBruteforce: %v", err)
	}
	if _, err := SolveBruteforceParallel(ctx, 2, 1, 0, 0, 2); !errors.Is(err, cryptology.ErrInvalidArgument) {
		t.Errorf("SolveBruteforceParallel: %v", err)
	}
	if _, err := SolveShanks(2, 1, -5); !errors.Is(err, cryptology.ErrInvalidArgument) {
		t.Errorf("SolveShanks: %v", err)
	}
	if _, err := SolvePowerBruteforce(ctx, -1, 1, 7, nil); !errors.Is(err, cryptology.ErrInvalidArgument) {
		t.Errorf("SolvePowerBruteforce: %v", err)
	}
}

func BenchmarkSolveBruteforce(b *testing.B) {
	ctx := context.Background()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = SolveBruteforce(ctx, 10025, 19120, 25679, 0)
	}
}

func BenchmarkSolveShanks(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = SolveShanks(10025, 19120, 25679)
	}
}

func BenchmarkSolveBruteforceParallel(b *testing.B) {
	ctx := context.Background()
	for i := 0; i < b.N; i++ {
		_, _ = SolveBruteforceParallel(ctx, 2, 5, 860941, 0, 0)
	}
}
