package core

import (
	"testing"

	"github.com/pkg/errors"

	cryptology "github.com/BackendStack21/cryptology-go"
)

func TestValidateDH_Coverage(t *testing.T) {
	if err := ValidateDH(cryptology.DHParams{P: 2, G: 1}); err == nil {
		t.Error("expected error for p = 2")
	}
	if err := ValidateDH(cryptology.DHParams{P: 29, G: 18}); err != nil {
		t.Errorf("18 is a primitive root mod 29: %v", err)
	}
	if err := ValidateDH(cryptology.DHParams{P: 29, G: 7}); !errors.Is(err, cryptology.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for g = 7, got %v", err)
	}
	if err := ValidateDH(cryptology.DHParams{P: -7, G: 3}); err == nil {
		t.Error("expected error for negative p")
	}
}

func TestValidateRSA_Coverage(t *testing.T) {
	cases := []struct {
		name   string
		params cryptology.RSAParams
	}{
		{"composite p1", cryptology.RSAParams{P1: 358, P2: 593, E: 3061}},
		{"composite p2", cryptology.RSAParams{P1: 359, P2: 592, E: 3061}},
		{"equal primes", cryptology.RSAParams{P1: 359, P2: 359, E: 3061}},
		{"e too small", cryptology.RSAParams{P1: 359, P2: 593, E: 1}},
		{"e too large", cryptology.RSAParams{P1: 359, P2: 593, E: 358 * 592}},
	}
	for _, c := range cases {
		if err := ValidateRSA(c.params); err == nil {
			t.Errorf("%s: expected error", c.name)
		}
	}
}

func TestValidateKnapsack_Coverage(t *testing.T) {
	cases := []struct {
		name   string
		params cryptology.KnapsackParams
	}{
		{"empty", cryptology.KnapsackParams{Q: 10, R: 3}},
		{"not superincreasing", cryptology.KnapsackParams{W: []int{2, 2, 7}, Q: 20, R: 3}},
		{"zero element", cryptology.KnapsackParams{W: []int{0, 1}, Q: 20, R: 3}},
		{"r zero", cryptology.KnapsackParams{W: []int{1, 2}, Q: 20, R: 0}},
		{"r not coprime", cryptology.KnapsackParams{W: []int{1, 2}, Q: 20, R: 4}},
		{"too long", cryptology.KnapsackParams{W: make([]int, 65), Q: 20, R: 3}},
	}
	for _, c := range cases {
		if err := ValidateKnapsack(c.params); err == nil {
			t.Errorf("%s: expected error", c.name)
		}
	}
	ok := cryptology.KnapsackParams{W: []int{1, 2, 4, 9, 18, 35}, Q: 80, R: 29}
	if err := ValidateKnapsack(ok); err != nil {
		t.Errorf("valid knapsack rejected: %v", err)
	}
}

func TestValidateSchnorr_Coverage(t *testing.T) {
	cases := []struct {
		name   string
		params cryptology.SchnorrParams
	}{
		{"composite p", cryptology.SchnorrParams{P: 48730, Q: 443, G: 11444}},
		{"composite q", cryptology.SchnorrParams{P: 48731, Q: 444, G: 11444}},
		{"q does not divide p-1", cryptology.SchnorrParams{P: 48731, Q: 439, G: 11444}},
		{"g = 1", cryptology.SchnorrParams{P: 48731, Q: 443, G: 1}},
		{"g = p", cryptology.SchnorrParams{P: 48731, Q: 443, G: 48731}},
	}
	for _, c := range cases {
		if err := ValidateSchnorr(c.params); err == nil {
			t.Errorf("%s: expected error", c.name)
		}
	}
}

func TestValidateThreePass_Coverage(t *testing.T) {
	if err := ValidateThreePass(cryptology.ThreePassParams{P: 2}); err == nil {
		t.Error("expected error for p = 2")
	}
	if err := ValidateThreePass(cryptology.ThreePassParams{P: 1964323}); err != nil {
		t.Errorf("1964323 is prime: %v", err)
	}
}
