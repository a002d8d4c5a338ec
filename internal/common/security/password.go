package security

import "golang.org/x/crypto/bcrypt"

// BcryptCost matches the work factor the rest of the system was provisioned
// for. bcrypt salts internally, so hashing the same password twice yields
// different stored values.
const BcryptCost = 10

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPasswordHash reports whether password matches the stored hash. A
// malformed hash is treated as a mismatch, never an error.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
