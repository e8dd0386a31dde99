// Package cryptology is a teaching library of classical public-key cryptosystems
// built on a shared modular-arithmetic kernel.
// This package holds the value types shared by every scheme; the algorithms live
// in sub-packages: numtheory (the kernel), problems/dlog (discrete-log solvers),
// the protocol packages dh, elgamal, rsa, knapsack, schnorr and threepass, and
// attack, which breaks them.
//
// WARNING: every scheme here is deliberately breakable at the parameter sizes it
// supports. DO NOT use it to protect anything.
package cryptology

// Version of the cryptology Go implementation.
const Version = "0.4.0"

// API summary:
//
// Kernel:
//   - numtheory.IsPrime(n), numtheory.Factorize(n), numtheory.EulerTotient(n)
//   - numtheory.ModPow(a, b, m), numtheory.ModMultiply(a, b, m)
//   - numtheory.ModInverse(a, p) - prime moduli only
//   - numtheory.ModInverseGeneral(a, m) - any modulus coprime to a
//   - numtheory.IsPrimitiveRoot(x, p), numtheory.FindPrimitiveRoots(p)
//
// Discrete logarithms:
//   - dlog.SolveBruteforce(ctx, a, b, m, bound)
//   - dlog.SolveBruteforceParallel(ctx, a, b, m, bound, workers)
//   - dlog.SolveShanks(a, b, m)
//
// Protocols:
//   - dh.SharedKey(value, exponent, mod)
//   - elgamal.Encrypt(pk, Q, k), elgamal.Decrypt(sk, ct), elgamal.Sign(sk, Q, k)
//   - rsa.Encrypt(pk, m), rsa.Decrypt(sk, c)
//   - knapsack.Encrypt(pk, codec, text), knapsack.Decrypt(sk, codec, ct)
//   - schnorr.Commit(params), schnorr.Respond(sk, a, e), schnorr.Verify(pk, r, e, s)
//   - threepass.Run(keyA, keyB, m)
//
// Attacks:
//   - attack.RecoverElGamalKey(ctx, pk, solver)
//   - attack.RSANoKeyRead(ctx, pk, c, bound)
//   - attack.RSACommonModulus(pkA, pkB, c1, c2)
//
// Parameters:
//   - core.GetParams(level) - preset parameters for TOY-16 and TOY-24
