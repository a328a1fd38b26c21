package crypto

import "testing"

func TestGenerateRaceSeed(t *testing.T) {
	t.Run("CommitmentVerifies", func(t *testing.T) {
		seed, hash := GenerateRaceSeed()
		if seed == "" || hash == "" {
			t.Fatal("empty seed or hash")
		}
		if !VerifySeed(seed, hash) {
			t.Error("seed does not verify against its own commitment")
		}
	})

	t.Run("TamperedSeedFails", func(t *testing.T) {
		seed, hash := GenerateRaceSeed()
		if VerifySeed(seed+"00", hash) {
			t.Error("tampered seed verified")
		}
	})

	t.Run("SeedsAreUnique", func(t *testing.T) {
		seen := map[string]bool{}
		for i := 0; i < 100; i++ {
			seed, _ := GenerateRaceSeed()
			if seen[seed] {
				t.Fatal("duplicate seed generated")
			}
			seen[seed] = true
		}
	})
}
