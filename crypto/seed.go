package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// GenerateRaceSeed produces a random seed for race resolution, plus its
// SHA-256 commitment. The hash is returned to the client before the race
// and the seed after, so a player can verify the outcome was not picked
// after the fact.
func GenerateRaceSeed() (seed string, hash string) {
	bytes := make([]byte, 32)
	rand.Read(bytes)

	seed = hex.EncodeToString(bytes)

	h := sha256.Sum256([]byte(seed))
	hash = hex.EncodeToString(h[:])

	return
}

// VerifySeed checks a revealed seed against its earlier commitment.
func VerifySeed(seed, hash string) bool {
	h := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(h[:]) == hash
}
