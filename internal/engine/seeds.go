package engine

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

const (
	serverSeedBytes = 32
	clientSeedBytes = 16
)

// GenerateServerSeed produces a fresh 32-byte server seed, hex-encoded.
// An entropy failure is fatal to session creation; there is no fallback to
// a non-cryptographic source.
func GenerateServerSeed() (string, error) {
	b := make([]byte, serverSeedBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("entropy source unavailable: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateClientSeed produces a 16-byte client seed, hex-encoded.
func GenerateClientSeed() (string, error) {
	b := make([]byte, clientSeedBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("entropy source unavailable: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashSeed returns the SHA-256 commitment of a server seed, hex-encoded to
// 64 characters. The commitment is published before the seed is revealed.
func HashSeed(seed string) string {
	h := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(h[:])
}

// CheckCommitment reports whether seed hashes to the published commitment.
func CheckCommitment(seed, commitment string) bool {
	return HashSeed(seed) == commitment
}
