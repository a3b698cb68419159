package random

import (
	"crypto/rand"
	"math/big"
)

// Random is the source of game IDs and rack draws
type Random interface {
	// Intn returns a value in [0, n), or 0 when n is not positive
	Intn(n int) int

	// String returns length characters picked from alphabet
	String(length int, alphabet string) string
}

// Crypto draws from crypto/rand
type Crypto struct{}

var _ Random = (*Crypto)(nil)

// New creates a crypto/rand backed Random
func New() *Crypto {
	return &Crypto{}
}

// Intn returns a uniformly distributed value in [0, n)
func (r *Crypto) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand does not fail on supported platforms
		return 0
	}
	return int(v.Int64())
}

// String returns a random string over alphabet
func (r *Crypto) String(length int, alphabet string) string {
	if length <= 0 || alphabet == "" {
		return ""
	}
	out := make([]byte, length)
	for i := range out {
		out[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(out)
}
