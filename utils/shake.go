package utils

import (
	"encoding/binary"
	"sync"

	"golang.org/x/crypto/sha3"
)

const (
	// MaxHashConcatInputSize bounds each HashConcat input.
	MaxHashConcatInputSize = 1 << 20
)

var shake256Pool = sync.Pool{
	New: func() interface{} {
		return sha3.NewShake256()
	},
}

// Shake256 computes the SHAKE256 extendable output function (XOF).
func Shake256(input []byte, outputLen int) []byte {
	h := shake256Pool.Get().(sha3.ShakeHash)
	defer func() {
		h.Reset()
		shake256Pool.Put(h)
	}()

	h.Write(input)
	output := make([]byte, outputLen)
	_, _ = h.Read(output)
	return output
}

// HashWithDomain computes a domain-separated SHA3-256 hash.
// It prefixes the data with the length of the domain string and the domain string itself.
// Panics if domain is longer than 255 bytes.
func HashWithDomain(domain string, data []byte) []byte {
	domainBytes := []byte(domain)
	if len(domainBytes) > 255 {
		panic("domain string must be at most 255 bytes")
	}
	h := sha3.New256()
	h.Write([]byte{byte(len(domainBytes))})
	h.Write(domainBytes)
	h.Write(data)
	return h.Sum(nil)
}

// HashConcat computes the SHA3-256 hash of length-prefixed inputs.
// Each slice is prefixed with its length (4 bytes, little-endian) to ensure unique encoding.
func HashConcat(inputs ...[]byte) []byte {
	h := sha3.New256()
	lenBytes := make([]byte, 4)
	for _, input := range inputs {
		if len(input) > MaxHashConcatInputSize {
			panic("HashConcat: input size exceeds maximum")
		}
		binary.LittleEndian.PutUint32(lenBytes, uint32(len(input)))
		h.Write(lenBytes)
		h.Write(input)
	}
	return h.Sum(nil)
}

// HashToInt maps data to an integer in [0, m) using SHAKE256 over a
// domain-separated digest. Sixteen output bytes keep the modulo bias negligible
// for every modulus an int can hold.
func HashToInt(domain string, data []byte, m int) int {
	if m <= 1 {
		return 0
	}
	out := Shake256(HashWithDomain(domain, data), 16)
	hi := binary.BigEndian.Uint64(out[:8]) % uint64(m)
	lo := binary.BigEndian.Uint64(out[8:]) % uint64(m)
	// (hi * 2^64 + lo) mod m, folded with 2^64 mod m
	shift := (^uint64(0)%uint64(m) + 1) % uint64(m)
	return int((mulMod(hi, shift, uint64(m)) + lo) % uint64(m))
}

// IntBytes encodes v as 8 big-endian bytes.
func IntBytes(v int) []byte {
	out := make([]byte, 8)
	binary.BigEndian.PutUint64(out, uint64(v))
	return out
}
