package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	req := require.New(t)
	password := "correct horse battery staple"

	hash, err := HashPassword(password, bcrypt.MinCost)
	req.NoError(err)
	req.True(strings.HasPrefix(hash, "$2"))
	req.NotEqual(password, hash)

	req.True(CheckPassword(password, hash))
	req.False(CheckPassword("wrong password", hash))
}

func TestHashPasswordIsSalted(t *testing.T) {
	req := require.New(t)

	first, err := HashPassword("samepassword", bcrypt.MinCost)
	req.NoError(err)
	second, err := HashPassword("samepassword", bcrypt.MinCost)
	req.NoError(err)

	// Same input, different salts, different hashes; both still verify.
	req.NotEqual(first, second)
	req.True(CheckPassword("samepassword", first))
	req.True(CheckPassword("samepassword", second))
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	tests := []struct {
		name   string
		stored string
	}{
		{"empty", ""},
		{"plaintext", "not-a-bcrypt-hash"},
		{"truncated", "$2a$10$abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.False(t, CheckPassword("whatever", tt.stored))
		})
	}
}
