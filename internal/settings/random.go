// internal/settings/random.go
package settings

import (
	"crypto/rand"
	"encoding/binary"
)

// RandomSource supplies uniform draws for randomPercentage conditions.
// Ownership stays with the caller; the evaluator only draws from it. Test
// harnesses inject scripted sources to pin non-deterministic behavior.
type RandomSource interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
}

// cryptoSource reads from crypto/rand. Stateless, safe for concurrent use.
type cryptoSource struct{}

// Float64 draws a uniform value in [0, 1). Fail-safe returns 1 on an
// entropy read error, which never matches under strict comparison.
func (cryptoSource) Float64() float64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 1
	}
	n := binary.BigEndian.Uint64(buf[:])
	return float64(n) / float64(1<<64)
}

// DefaultRandomSource returns the process random source used when an
// evaluation environment does not supply one.
func DefaultRandomSource() RandomSource {
	return cryptoSource{}
}
