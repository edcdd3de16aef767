package auth

import (
	"testing"

	"marketplace/config"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher() *bcryptHasher {
	// MinCost keeps the test suite fast; production cost comes from config.
	return &bcryptHasher{cost: bcrypt.MinCost}
}

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := newTestHasher()

	password := "StrongPass123!"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// Verify the hash can be checked
	assert.True(t, hasher.Check(password, hash))
}

func TestBcryptHasher_HashIsSalted(t *testing.T) {
	hasher := newTestHasher()

	first, err := hasher.Hash("SamePassword1!")
	assert.NoError(t, err)
	second, err := hasher.Hash("SamePassword1!")
	assert.NoError(t, err)

	// Different salt per call, both still verify.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("SamePassword1!", first))
	assert.True(t, hasher.Check("SamePassword1!", second))
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := newTestHasher()
	password := "StrongPass123!"

	hash, err := hasher.Hash(password)
	assert.NoError(t, err)

	// Test correct password
	assert.True(t, hasher.Check(password, hash))

	// Test incorrect password
	assert.False(t, hasher.Check("WrongPassword123!", hash))

	// Test empty password
	assert.False(t, hasher.Check("", hash))

	// Test with invalid hash
	assert.False(t, hasher.Check(password, "invalid_hash"))
}

func TestBcryptHasher_UnicodePasswords(t *testing.T) {
	hasher := newTestHasher()

	passwords := []string{
		"pässwörd-Ünïcode1!",
		"密碼很安全123!",
		"Παράδειγμα9#",
		"emoji🔐secret1",
	}

	for _, password := range passwords {
		hash, err := hasher.Hash(password)
		assert.NoError(t, err, "hash failed for %q", password)
		assert.True(t, hasher.Check(password, hash), "check failed for %q", password)
		assert.False(t, hasher.Check(password+"x", hash))
	}
}

func TestBcryptHasher_IsHash(t *testing.T) {
	hasher := newTestHasher()

	hash, err := hasher.Hash("SomePassword1!")
	assert.NoError(t, err)

	assert.True(t, hasher.IsHash(hash))
	assert.True(t, hasher.IsHash("$2a$10$abcdefghijklmnopqrstuv"))
	assert.True(t, hasher.IsHash("$2y$12$abcdefghijklmnopqrstuv"))

	assert.False(t, hasher.IsHash("SomePassword1!"))
	assert.False(t, hasher.IsHash(""))
	assert.False(t, hasher.IsHash("$1$legacy$hash"))
}

func TestNewBcryptHasher_CostFromConfig(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost}}
	hasher := NewBcryptHasher(cfg)

	hash, err := hasher.Hash("ConfiguredCost1!")
	assert.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestNewBcryptHasher_DefaultCost(t *testing.T) {
	// Out-of-range and missing config both fall back to the library default.
	hasher := NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: 99}})
	hash, err := hasher.Hash("x")
	assert.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
