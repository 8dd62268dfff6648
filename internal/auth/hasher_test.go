package auth_test

import (
	"strings"
	"testing"

	"github.com/dom/account-service/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasher_HashAndVerify(t *testing.T) {
	hasher := auth.NewHasher()

	tests := []struct {
		name     string
		password string
		attempt  string
		want     bool
	}{
		{
			name:     "correct password",
			password: "secret1",
			attempt:  "secret1",
			want:     true,
		},
		{
			name:     "wrong password",
			password: "secret1",
			attempt:  "secret2",
			want:     false,
		},
		{
			name:     "empty attempt against non-empty password",
			password: "secret1",
			attempt:  "",
			want:     false,
		},
		{
			name:     "unicode password",
			password: "pässwörd",
			attempt:  "pässwörd",
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := hasher.Hash(tt.password)
			require.NoError(t, err)

			ok, err := hasher.Verify(tt.attempt, encoded)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestHasher_HashFormat(t *testing.T) {
	hasher := auth.NewHasher()

	encoded, err := hasher.Hash("password123")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))
	assert.NotContains(t, encoded, "password123")
}

func TestHasher_SaltRandomization(t *testing.T) {
	hasher := auth.NewHasher()

	first, err := hasher.Hash("samepassword")
	require.NoError(t, err)
	second, err := hasher.Hash("samepassword")
	require.NoError(t, err)

	// Fresh salt per call, so the encodings differ but both verify
	assert.NotEqual(t, first, second)

	ok, err := hasher.Verify("samepassword", first)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("samepassword", second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHasher_MalformedHash(t *testing.T) {
	hasher := auth.NewHasher()

	tests := []struct {
		name    string
		encoded string
	}{
		{name: "empty string", encoded: ""},
		{name: "plaintext leftover", encoded: "password123"},
		{name: "bcrypt hash", encoded: "$2a$10$N9qo8uLOickgx2ZMRZoMye"},
		{name: "wrong part count", encoded: "$argon2id$v=19$m=65536,t=1,p=4$saltonly"},
		{name: "bad salt encoding", encoded: "$argon2id$v=19$m=65536,t=1,p=4$!!!$AAAA"},
		{name: "bad params", encoded: "$argon2id$v=19$m=banana$AAAA$AAAA"},
		{name: "zero time cost", encoded: "$argon2id$v=19$m=65536,t=0,p=4$c29tZXNhbHRzb21lc2FsdA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"},
		{name: "zero parallelism", encoded: "$argon2id$v=19$m=65536,t=1,p=0$c29tZXNhbHRzb21lc2FsdA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"},
		{name: "zero memory", encoded: "$argon2id$v=19$m=0,t=1,p=4$c29tZXNhbHRzb21lc2FsdA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"},
		{name: "absurd memory", encoded: "$argon2id$v=19$m=4294967295,t=1,p=4$c29tZXNhbHRzb21lc2FsdA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := hasher.Verify("anything", tt.encoded)
			assert.False(t, ok)
			assert.ErrorIs(t, err, auth.ErrMalformedHash)
		})
	}
}
