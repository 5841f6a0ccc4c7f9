package auth

import (
	"testing"
	"time"

	"cookbook/config"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func testHasherConfig(cost int) *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{BcryptCost: cost},
	}
}

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := NewBcryptHasher(testHasherConfig(bcrypt.MinCost))

	password := "StrongPass123!"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// Verify the hash can be checked
	assert.True(t, hasher.Check(password, hash))
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := NewBcryptHasher(testHasherConfig(bcrypt.MinCost))
	password := "StrongPass123!"

	hash, err := hasher.Hash(password)
	assert.NoError(t, err)

	// Test correct password
	assert.True(t, hasher.Check(password, hash))

	// Test incorrect password
	assert.False(t, hasher.Check("WrongPassword123!", hash))

	// Test empty password
	assert.False(t, hasher.Check("", hash))

	// Test malformed hash
	assert.False(t, hasher.Check(password, "not-a-bcrypt-hash"))
}

func TestBcryptHasher_HashActionToken(t *testing.T) {
	hasher := NewBcryptHasher(testHasherConfig(bcrypt.MinCost))

	// Random hex tokens also pass through the same hasher.
	token := "9f2c4a6e8b0d1c3e5a7f9b2d4c6e8a0f1b3d5c7e9a1f3b5d7c9e1a3f5b7d9c1e"
	hash, err := hasher.Hash(token)
	assert.NoError(t, err)
	assert.True(t, hasher.Check(token, hash))
	assert.False(t, hasher.Check(token+"x", hash))
}

func TestNewBcryptHasher_CostClamping(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{name: "nil config", cfg: nil},
		{name: "nil auth section", cfg: &config.Config{}},
		{name: "cost below minimum", cfg: testHasherConfig(bcrypt.MinCost - 1)},
		{name: "cost above maximum", cfg: testHasherConfig(bcrypt.MaxCost + 1)},
		{name: "valid cost", cfg: testHasherConfig(bcrypt.MinCost)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hasher := NewBcryptHasher(tt.cfg)

			start := time.Now()
			hash, err := hasher.Hash("SomePassword123!")
			assert.NoError(t, err)
			assert.True(t, hasher.Check("SomePassword123!", hash))
			assert.Less(t, time.Since(start), time.Minute)
		})
	}
}
