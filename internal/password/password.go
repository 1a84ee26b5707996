// Package password wraps bcrypt hashing and verification for user
// credentials.
package password

import "golang.org/x/crypto/bcrypt"

// Hasher produces and checks salted bcrypt digests. Cost is tunable; zero
// selects bcrypt.DefaultCost.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher with the given cost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns a salted, irreversible digest of plain. bcrypt generates a
// fresh salt per call, so two hashes of the same password never match.
func (h *Hasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plain matches hash. Malformed hashes count as a
// verification failure, never an error.
func (h *Hasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
