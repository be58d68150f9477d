package auth

import "golang.org/x/crypto/bcrypt"

// Credential hashing for the login and registration flow. These helpers are
// the only place plaintext passwords are handled; everything past login
// proves identity through the signed session token instead.

// HashPassword hashes a plaintext password. Costs outside the bcrypt range
// fall back to the library default.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a plaintext password against its stored hash.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
