package services_test

import (
	"strings"
	"testing"

	"chatroom/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	tests := map[string]string{
		"ascii":           "password123",
		"multibyte":       strings.Repeat("é", 40),
		"beyond 72 bytes": strings.Repeat("a", 100),
		"shared prefix":   strings.Repeat("a", 72) + "tail",
	}
	for name, password := range tests {
		t.Run(name, func(t *testing.T) {
			hash, err := services.HashPassword(password, bcrypt.MinCost)
			require.NoError(t, err)
			assert.True(t, services.CheckPassword(hash, password))
			assert.False(t, services.CheckPassword(hash, password+"x"))
		})
	}
}

func TestCheckPasswordDistinguishesLongPasswords(t *testing.T) {
	hash, err := services.HashPassword(strings.Repeat("a", 72)+"one", bcrypt.MinCost)
	require.NoError(t, err)
	assert.False(t, services.CheckPassword(hash, strings.Repeat("a", 72)+"two"))
}
