// Package password wraps bcrypt hashing and verification of user passwords.
package password

import "golang.org/x/crypto/bcrypt"

// MaxPasswordBytes is bcrypt's input limit. Longer passwords are truncated
// before hashing, so two passwords that agree through byte 72 hash the same.
// Verify applies the same truncation to keep the two sides consistent.
const MaxPasswordBytes = 72

// dummyHash is a valid bcrypt hash of a random string nobody knows. It exists
// so login can burn a comparison even when the account does not exist.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Hash produces a salted bcrypt hash of the password.
func Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(truncate(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether password matches the stored hash. A malformed hash
// verifies as false rather than erroring out.
func Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), truncate(password)) == nil
}

// DummyVerify runs one bcrypt comparison against a throwaway hash so the
// caller's timing does not reveal whether an account exists.
func DummyVerify() {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte("dummy"))
}

func truncate(password string) []byte {
	b := []byte(password)
	if len(b) > MaxPasswordBytes {
		b = b[:MaxPasswordBytes]
	}
	return b
}
