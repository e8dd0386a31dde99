// Package core provides parameter presets and validation for the cryptology schemes.
package core

import (
	"github.com/pkg/errors"

	cryptology "github.com/BackendStack21/cryptology-go"
	"github.com/BackendStack21/cryptology-go/numtheory"
	"github.com/BackendStack21/cryptology-go/utils"
)

// MaxModulus bounds every prime a preset or caller may supply; trial division
// and brute-force attacks stay fast below it.
const MaxModulus = 1 << 40

// TOY16Params keep every modulus below 2^16 so each attack finishes instantly.
var TOY16Params = cryptology.ClassicParams{
	Level: cryptology.TOY16,
	DH: cryptology.DHParams{
		P: 25679,
		G: 10025,
	},
	ElGamal: cryptology.ElGamalParams{
		P: 25679,
		G: 10025,
	},
	RSA: cryptology.RSAParams{
		P1: 359,
		P2: 593,
		E:  3061,
	},
	Knapsack: cryptology.KnapsackParams{
		W: []int{2, 3, 7, 14, 29, 57},
		Q: 120,
		R: 71,
	},
	Schnorr: cryptology.SchnorrParams{
		P: 48731,
		Q: 443,
		G: 11444,
	},
	ThreePass: cryptology.ThreePassParams{
		P: 49559,
	},
}

// TOY24Params use moduli between 2^15 and 2^25; brute force still completes in well under a second.
var TOY24Params = cryptology.ClassicParams{
	Level: cryptology.TOY24,
	DH: cryptology.DHParams{
		P: 860941,
		G: 2,
	},
	ElGamal: cryptology.ElGamalParams{
		P: 860941,
		G: 2,
	},
	RSA: cryptology.RSAParams{
		P1: 2503,
		P2: 12791,
		E:  174673,
	},
	Knapsack: cryptology.KnapsackParams{
		W: []int{3, 5, 11, 23, 47, 97},
		Q: 191,
		R: 101,
	},
	Schnorr: cryptology.SchnorrParams{
		P: 33107,
		Q: 16553,
		G: 2902,
	},
	ThreePass: cryptology.ThreePassParams{
		P: 1964323,
	},
}

// GetParams returns the parameter set for the given level.
// The knapsack sequence is copied so callers cannot alter the preset.
func GetParams(level cryptology.ParamLevel) (cryptology.ClassicParams, error) {
	var params cryptology.ClassicParams
	switch level {
	case cryptology.TOY16:
		params = TOY16Params
	case cryptology.TOY24:
		params = TOY24Params
	default:
		return cryptology.ClassicParams{}, errors.Wrapf(cryptology.ErrInvalidArgument, "unknown parameter level: %s", level)
	}
	params.Knapsack.W = append([]int(nil), params.Knapsack.W...)
	return params, nil
}

// ValidateParams validates every scheme in the parameter set.
func ValidateParams(params cryptology.ClassicParams) error {
	if err := ValidateDH(params.DH); err != nil {
		return errors.Wrap(err, "dh")
	}
	if err := ValidateElGamal(params.ElGamal); err != nil {
		return errors.Wrap(err, "elgamal")
	}
	if err := ValidateRSA(params.RSA); err != nil {
		return errors.Wrap(err, "rsa")
	}
	if err := ValidateKnapsack(params.Knapsack); err != nil {
		return errors.Wrap(err, "knapsack")
	}
	if err := ValidateSchnorr(params.Schnorr); err != nil {
		return errors.Wrap(err, "schnorr")
	}
	if err := ValidateThreePass(params.ThreePass); err != nil {
		return errors.Wrap(err, "threepass")
	}
	return nil
}

func invalid(format string, args ...interface{}) error {
	return errors.Wrapf(cryptology.ErrInvalidArgument, format, args...)
}

func requirePrime(n int, name string) error {
	if n > MaxModulus {
		return invalid("%s = %d exceeds %d", name, n, MaxModulus)
	}
	ok, err := numtheory.IsPrime(n)
	if err != nil {
		return err
	}
	if !ok {
		return invalid("%s = %d is not prime", name, n)
	}
	return nil
}

// validateGroup checks a prime modulus with a primitive root.
func validateGroup(p, g int) error {
	if p <= 2 {
		return invalid("modulus %d too small", p)
	}
	if err := requirePrime(p, "p"); err != nil {
		return err
	}
	ok, err := numtheory.IsPrimitiveRoot(g, p)
	if err != nil {
		return err
	}
	if !ok {
		return invalid("g = %d is not a primitive root mod %d", g, p)
	}
	return nil
}

// ValidateDH checks that P is prime and G is a primitive root mod P.
func ValidateDH(params cryptology.DHParams) error {
	return validateGroup(params.P, params.G)
}

// ValidateElGamal checks that P is prime and G is a primitive root mod P.
func ValidateElGamal(params cryptology.ElGamalParams) error {
	return validateGroup(params.P, params.G)
}

// ValidateRSA checks for distinct primes, a modulus that fits an int and an
// exponent invertible mod φ(N).
func ValidateRSA(params cryptology.RSAParams) error {
	if err := requirePrime(params.P1, "p1"); err != nil {
		return err
	}
	if err := requirePrime(params.P2, "p2"); err != nil {
		return err
	}
	if params.P1 == params.P2 {
		return invalid("p1 and p2 must differ")
	}
	if _, err := utils.SafeMultiply(params.P1, params.P2); err != nil {
		return errors.Wrap(err, "modulus")
	}
	phi := (params.P1 - 1) * (params.P2 - 1)
	if params.E <= 1 || params.E >= phi {
		return invalid("e = %d outside (1, %d)", params.E, phi)
	}
	if numtheory.GCD(params.E, phi) != 1 {
		return invalid("e = %d shares a factor with φ(N) = %d", params.E, phi)
	}
	return nil
}

// ValidateKnapsack checks that W is superincreasing, Q exceeds its sum and R is a unit mod Q.
func ValidateKnapsack(params cryptology.KnapsackParams) error {
	if len(params.W) == 0 {
		return invalid("empty knapsack sequence")
	}
	if err := utils.CheckLength(len(params.W), utils.MaxSequenceLength); err != nil {
		return errors.Wrap(err, "knapsack sequence")
	}
	sum := 0
	for i, w := range params.W {
		if w <= sum {
			return invalid("w[%d] = %d is not greater than the sum %d of its predecessors", i, w, sum)
		}
		var err error
		if sum, err = utils.SafeAdd(sum, w); err != nil {
			return errors.Wrap(err, "knapsack sum")
		}
	}
	if params.Q <= sum {
		return invalid("q = %d must exceed sum(w) = %d", params.Q, sum)
	}
	if params.R <= 0 || params.R >= params.Q {
		return invalid("r = %d outside (0, %d)", params.R, params.Q)
	}
	if numtheory.GCD(params.R, params.Q) != 1 {
		return invalid("r = %d is not coprime to q = %d", params.R, params.Q)
	}
	return nil
}

// ValidateSchnorr checks that P and Q are prime, Q divides P-1 and G has order Q.
func ValidateSchnorr(params cryptology.SchnorrParams) error {
	if err := requirePrime(params.P, "p"); err != nil {
		return err
	}
	if err := requirePrime(params.Q, "q"); err != nil {
		return err
	}
	if (params.P-1)%params.Q != 0 {
		return invalid("q = %d does not divide p-1 = %d", params.Q, params.P-1)
	}
	if params.G <= 1 || params.G >= params.P {
		return invalid("g = %d outside (1, %d)", params.G, params.P)
	}
	md, _ := numtheory.NewModulus(params.P)
	if md.Pow(params.G, params.Q) != 1 {
		return invalid("g = %d does not have order %d mod %d", params.G, params.Q, params.P)
	}
	return nil
}

// ValidateThreePass checks that P is an odd prime.
func ValidateThreePass(params cryptology.ThreePassParams) error {
	if params.P <= 2 {
		return invalid("modulus %d too small", params.P)
	}
	return requirePrime(params.P, "p")
}
