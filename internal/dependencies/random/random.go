// Package random abstracts randomness so that bag shuffles, starting-player
// draws and session tokens are deterministic under test.
package random

import (
	"crypto/rand"
	"math/big"
)

// Random is a source of randomness.
type Random interface {
	// Intn returns a random int in [0, n).
	Intn(n int) int

	// String returns a random string of length characters drawn from alphabet.
	String(length int, alphabet string) string
}

// CryptoRandom draws from crypto/rand. Session tokens are derived from
// String, so the source must be unpredictable.
type CryptoRandom struct{}

// New creates a CryptoRandom.
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Intn returns a random int in [0, n). Returns 0 for n <= 0.
func (r *CryptoRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails if the OS entropy source is broken
		return 0
	}
	return int(v.Int64())
}

// String returns a random string of length characters drawn from alphabet.
func (r *CryptoRandom) String(length int, alphabet string) string {
	if length <= 0 || len(alphabet) == 0 {
		return ""
	}
	out := make([]byte, length)
	for i := range out {
		out[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(out)
}
