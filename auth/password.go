package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a raw password with bcrypt at the given cost.
// bcrypt salts internally and is deliberately slow, so two hashes of the
// same password differ and brute force stays expensive.
func HashPassword(raw string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether raw matches the stored bcrypt hash.
// Any failure, including a malformed stored hash, is a plain false rather
// than an error: a login attempt either verifies or it does not.
func CheckPassword(raw, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(raw)) == nil
}
