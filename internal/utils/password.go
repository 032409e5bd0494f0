package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a bcrypt hash from the plain password.  The cost
// comes from configuration so tests can use bcrypt.MinCost while production
// runs with a real work factor.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	return string(b), err
}

// VerifyPassword reports whether plain matches the stored bcrypt hash.  The
// comparison is constant time; callers treat any failure as a plain
// credential mismatch.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
