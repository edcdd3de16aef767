// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password. Output differs
	// on every call because the salt varies; Check remains the only way to
	// compare.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash to see if they match.
	Check(password, hash string) bool

	// IsHash reports whether the value is already in the hasher's output
	// format. Update paths use this to avoid re-hashing an already-hashed
	// credential handed back by a client.
	IsHash(value string) bool
}
