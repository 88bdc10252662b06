package encryption

import (
	"crypto/rand"
	"fmt"
)

// RandomSource produces cryptographically secure random bytes. Salts, IVs,
// vault keys and generated password characters are all drawn through this
// interface so tests can substitute a deterministic source.
type RandomSource interface {
	// Bytes returns n cryptographically secure random bytes
	Bytes(n int) ([]byte, error)
}

// SystemRandom implements RandomSource using crypto/rand
type SystemRandom struct{}

// NewSystemRandom creates a new SystemRandom instance
func NewSystemRandom() *SystemRandom {
	return &SystemRandom{}
}

// Bytes returns n random bytes from the operating system's CSPRNG
func (s *SystemRandom) Bytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid random byte count: %d", n)
	}

	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return buf, nil
}
