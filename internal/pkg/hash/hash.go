package hash

// Hash abstracts one-way hashing of secrets such as passwords.
type Hash interface {
	// Hash returns the hash of the plaintext.
	Hash(plaintext string) ([]byte, error)
	// Verify reports whether the plaintext matches the stored hash.
	Verify(hashed, plaintext string) bool
}
