package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPasswordKnownVector(t *testing.T) {
	assert.Equal(t,
		"d03a122c2d18fa87be323b02ba3ae0cc342bc6a1cc8d98409495ef5629755f45",
		HashPassword("hunter2", "salt"))
}

func TestHashPasswordDeterministic(t *testing.T) {
	// Login compares stored hashes by equality, so this must hold. It also
	// means two accounts with the same password store the same hash under
	// the deployment-wide key; documented weakness, preserved behavior.
	assert.Equal(t, HashPassword("secret", "key"), HashPassword("secret", "key"))
}

func TestHashPasswordKeyed(t *testing.T) {
	assert.NotEqual(t, HashPassword("secret", "key-a"), HashPassword("secret", "key-b"))
	assert.NotEqual(t, HashPassword("secret", "key"), HashPassword("other", "key"))
}
