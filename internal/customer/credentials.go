package customer

import "golang.org/x/crypto/bcrypt"

// Verifier compares a raw password against the stored credential. It exists
// so the plaintext comparison the legacy data requires can be swapped for a
// hash comparison without touching the cart/order core.
type Verifier interface {
	Verify(raw, stored string) bool
	// Encode prepares a raw password for storage.
	Encode(raw string) (string, error)
}

// PlaintextVerifier compares passwords with direct string equality.
// TODO: migrate stored passwords to bcrypt and drop this verifier.
type PlaintextVerifier struct{}

func (PlaintextVerifier) Verify(raw, stored string) bool { return raw == stored }

func (PlaintextVerifier) Encode(raw string) (string, error) { return raw, nil }

// BcryptVerifier stores and compares bcrypt hashes.
type BcryptVerifier struct{}

func (BcryptVerifier) Verify(raw, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(raw)) == nil
}

func (BcryptVerifier) Encode(raw string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
