package numtheory

import (
	"sync"
	"testing"
)

func TestFactorize_ReturnsCopy(t *testing.T) {
	f, err := Factorize(360)
	if err != nil {
		t.Fatal(err)
	}
	f[2] = 99
	delete(f, 3)

	again, _ := Factorize(360)
	if again[2] != 3 || again[3] != 2 || again[5] != 1 {
		t.Errorf("cache was mutated through a returned map: %v", again)
	}
}

func TestFactorize_CacheEviction(t *testing.T) {
	for n := 1000; n < 1000+2*cacheMaxSize; n++ {
		if _, err := Factorize(n); err != nil {
			t.Fatal(err)
		}
	}
	factorCacheMu.RLock()
	size := len(factorCache)
	factorCacheMu.RUnlock()
	if size > cacheMaxSize {
		t.Errorf("cache grew to %d entries, max %d", size, cacheMaxSize)
	}
}

func TestFactorize_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for n := 2; n < 400; n++ {
				f, err := Factorize(n*(w+1) + 1)
				if err != nil || f.Product() != n*(w+1)+1 {
					t.Errorf("Factorize(%d) = %v, %v", n*(w+1)+1, f, err)
					return
				}
			}
		}(w)
	}
	wg.Wait()
}

func TestModulus_PowNegativePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for negative exponent")
		}
	}()
	md, _ := NewModulus(7)
	md.Pow(3, -1)
}

func TestModInverse_ModTwo(t *testing.T) {
	inv, err := ModInverse(1, 2)
	if err != nil || inv != 1 {
		t.Errorf("ModInverse(1, 2) = %d, %v", inv, err)
	}
	inv, err = ModInverseGeneral(3, 2)
	if err != nil || inv != 1 {
		t.Errorf("ModInverseGeneral(3, 2) = %d, %v", inv, err)
	}
}

func TestModInverseGeneral_NegativeInput(t *testing.T) {
	inv, err := ModInverseGeneral(-4, 9)
	if err != nil {
		t.Fatal(err)
	}
	// -4 ≡ 5, 5*2 = 10 ≡ 1 (mod 9)
	if inv != 2 {
		t.Errorf("ModInverseGeneral(-4, 9) = %d, want 2", inv)
	}
}

func TestCountPrimitiveRoots(t *testing.T) {
	got, err := CountPrimitiveRoots(29)
	if err != nil || got != 12 {
		t.Errorf("CountPrimitiveRoots(29) = %d, %v", got, err)
	}
}

func TestMultiplicativeOrder(t *testing.T) {
	cases := []struct{ x, m, want int }{
		{11444, 48731, 443},
		{4, 860941, 430470},
		{2, 860941, 860940},
		{1, 29, 1},
		{2, 35, 12},
	}
	for _, c := range cases {
		got, err := MultiplicativeOrder(c.x, c.m)
		if err != nil {
			t.Fatal(err)
		}
		if got != c.want {
			t.Errorf("MultiplicativeOrder(%d, %d) = %d, want %d", c.x, c.m, got, c.want)
		}
	}
	if _, err := MultiplicativeOrder(5, 35); err == nil {
		t.Error("non-unit should fail")
	}
}

func BenchmarkModPow(b *testing.B) {
	md, _ := NewModulus(32015873)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		md.Pow(111890, 174673)
	}
}

func BenchmarkIsPrimitiveRoot(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = IsPrimitiveRoot(2, 860941)
	}
}
