package engine

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// maxPrefix is the largest value the 32-bit digest prefix can take. Samples
// divide by it directly, so the maximum prefix maps to exactly 1.0 rather
// than being clamped away.
const maxPrefix = 0xFFFFFFFF

// Sample derives a deterministic unit-interval value from a seed pair and
// nonce. The message layout and digest truncation are a frozen wire format:
// SHA-256 over "{server}:{client}:{nonce}", first 4 digest bytes read as a
// big-endian uint32, divided by 0xFFFFFFFF. Any change here breaks every
// historical verification.
func Sample(serverSeed, clientSeed string, nonce uint64) float64 {
	message := fmt.Sprintf("%s:%s:%d", serverSeed, clientSeed, nonce)
	digest := sha256.Sum256([]byte(message))
	prefix := binary.BigEndian.Uint32(digest[:4])
	return float64(prefix) / float64(maxPrefix)
}

// Samples draws count independent values; draw i uses nonce+i.
func Samples(serverSeed, clientSeed string, nonce uint64, count int) []float64 {
	samples := make([]float64, count)
	for i := 0; i < count; i++ {
		samples[i] = Sample(serverSeed, clientSeed, nonce+uint64(i))
	}
	return samples
}
